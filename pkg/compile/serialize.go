// File: pkg/compile/serialize.go
package compile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FileBlock is the serialized form of one selected file: the rendered
// start text, the contents or placeholder, and the rendered stop text.
type FileBlock struct {
	Path    string // Root-relative path of the source file.
	Content string // Complete block including templates and trailing blank lines.
	Binary  bool   // True when the body is a binary/media placeholder.
}

// renderContext carries the per-run inputs the render workers need.
type renderContext struct {
	root    string
	project *Project
	prober  DurationProber
	logger  *zap.Logger
}

// renderStartText renders the start_text template for one file. A {file}
// placeholder is substituted with the relative path; without one the path
// is appended, quoted.
func renderStartText(template, relPath string) string {
	if template == "" {
		return ""
	}
	if strings.Contains(template, "{file}") {
		return strings.ReplaceAll(template, "{file}", relPath)
	}
	return fmt.Sprintf("%s %q", template, relPath)
}

// renderStopText renders the stop_text template for one file. A {file}
// placeholder is substituted; otherwise the template is used verbatim.
func renderStopText(template, relPath string) string {
	if template == "" {
		return ""
	}
	return strings.ReplaceAll(template, "{file}", relPath)
}

// renderFile builds the serialized block for one selected file. It never
// fails: unreadable, oversized, and binary files serialize as placeholder
// lines so one bad file cannot abort the run.
func (rc *renderContext) renderFile(relPath string) FileBlock {
	fullPath := filepath.Join(rc.root, filepath.FromSlash(relPath))
	body, binary := rc.renderBody(relPath, fullPath)

	var sb strings.Builder
	if start := renderStartText(rc.project.StartText, relPath); start != "" {
		sb.WriteString(start)
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	if stop := renderStopText(rc.project.StopText, relPath); stop != "" {
		sb.WriteString(stop)
	}
	sb.WriteString("\n\n")

	return FileBlock{Path: relPath, Content: sb.String(), Binary: binary}
}

// renderBody produces the contents or placeholder for one file.
func (rc *renderContext) renderBody(relPath, fullPath string) (string, bool) {
	info, err := os.Stat(fullPath)
	if err != nil {
		// Selection saw the file; it vanished before serialization.
		rc.logger.Warn("Selected file disappeared before serialization",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Sprintf("*** ERROR: Could not find file: %s ***\n", fullPath), false
	}

	if info.Size() > int64(rc.project.MaxFileSizeKB)*1024 {
		rc.logger.Debug("Skipping oversized file",
			zap.String("path", relPath),
			zap.Int64("sizeBytes", info.Size()),
			zap.Int("maxSizeKB", rc.project.MaxFileSizeKB))
		return fmt.Sprintf("*** Skipped oversized file: %s (%d bytes, limit %d KB) ***\n",
			relPath, info.Size(), rc.project.MaxFileSizeKB), false
	}

	binary := isCommonBinaryExtension(fullPath)
	if !binary {
		sniffed, err := isBinaryFile(fullPath)
		if err != nil {
			rc.logger.Warn("Failed to sniff file contents",
				zap.String("path", fullPath),
				zap.Error(err))
			return fmt.Sprintf("*** ERROR: Could not read file: %s ***\n", fullPath), false
		}
		binary = sniffed
	}

	if binary {
		return rc.renderBinaryPlaceholder(relPath, fullPath, info.Size()), true
	}

	content, err := os.ReadFile(fullPath)
	if err != nil {
		rc.logger.Warn("Failed to read selected file",
			zap.String("path", fullPath),
			zap.Error(err))
		return fmt.Sprintf("*** ERROR: Could not read file: %s ***\n", fullPath), false
	}
	return string(content), false
}

// renderBinaryPlaceholder writes the one-line stand-in for a binary file,
// with a probed duration for media files when available.
func (rc *renderContext) renderBinaryPlaceholder(relPath, fullPath string, size int64) string {
	if isMediaExtension(fullPath) && rc.prober != nil {
		if d, ok := rc.prober.Probe(context.Background(), fullPath); ok {
			return fmt.Sprintf("*** Skipped media file: %s (%d bytes, duration %s) ***\n",
				relPath, size, d.Round(time.Second))
		}
	}
	return fmt.Sprintf("*** Skipped binary file: %s (%d bytes) ***\n", relPath, size)
}

// writeOutput writes the aggregated artifact: the optional start prompt,
// the optional project title, then every file block in selection order.
func writeOutput(path string, project *Project, blocks []FileBlock, logger *zap.Logger) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	outFile, err := os.Create(path)
	if err != nil {
		logger.Error("Failed to create output file",
			zap.String("file", path),
			zap.Error(err))
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := outFile.Close(); cerr != nil {
			logger.Error("Failed to close output file",
				zap.String("file", path),
				zap.Error(cerr))
		}
	}()

	writer := bufio.NewWriter(outFile)

	if project.StartPrompt != "" {
		if _, err := writer.WriteString(project.StartPrompt + "\n\n"); err != nil {
			return fmt.Errorf("failed to write start prompt: %w", err)
		}
	}
	if project.Title != "" {
		if _, err := writer.WriteString(fmt.Sprintf("Project: %s\n\n", project.Title)); err != nil {
			return fmt.Errorf("failed to write project title: %w", err)
		}
	}

	for _, block := range blocks {
		if _, err := writer.WriteString(block.Content); err != nil {
			logger.Error("Failed to write file block",
				zap.String("file", path),
				zap.String("contentPath", block.Path),
				zap.Error(err))
			return fmt.Errorf("failed to write content: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}
