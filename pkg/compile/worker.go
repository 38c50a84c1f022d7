// File: pkg/compile/worker.go
package compile

import (
	"runtime"
	"sync"

	"go.uber.org/zap"
)

type renderJob struct {
	index   int
	relPath string
}

type renderResult struct {
	index int
	block FileBlock
}

// renderConcurrently serializes the selected files using a worker pool.
// Results are placed back at their selection index so the output order is
// the expander's first-occurrence order, not worker completion order.
func (rc *renderContext) renderConcurrently(files []string, maxWorkers int) []FileBlock {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
		rc.logger.Debug("Adjusted worker count", zap.Int("workers", maxWorkers))
	}
	if maxWorkers > len(files) {
		maxWorkers = len(files)
	}

	jobs := make(chan renderJob, len(files))
	results := make(chan renderResult, len(files))
	var wg sync.WaitGroup

	rc.logger.Debug("Initializing render pool", zap.Int("workers", maxWorkers))
	for w := 0; w < maxWorkers; w++ {
		wg.Add(1)
		workerLogger := rc.logger.With(zap.Int("workerID", w))
		go func() {
			defer wg.Done()
			for job := range jobs {
				workerLogger.Debug("Rendering file", zap.String("path", job.relPath))
				results <- renderResult{index: job.index, block: rc.renderFile(job.relPath)}
			}
		}()
	}

	for i, file := range files {
		jobs <- renderJob{index: i, relPath: file}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	blocks := make([]FileBlock, len(files))
	for res := range results {
		blocks[res.index] = res.block
	}

	rc.logger.Debug("All files rendered", zap.Int("renderedFiles", len(blocks)))
	return blocks
}
