// File: pkg/compile/media.go
package compile

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DurationProber reports the playback duration of a media file. Probing
// is best effort: a false result means the placeholder simply omits the
// duration.
type DurationProber interface {
	Probe(ctx context.Context, path string) (time.Duration, bool)
}

// NopProber never reports a duration. Used when ffprobe is unavailable
// and in tests.
type NopProber struct{}

func (NopProber) Probe(context.Context, string) (time.Duration, bool) {
	return 0, false
}

// FFProbe probes media durations by invoking the ffprobe binary.
type FFProbe struct {
	Binary  string        // Defaults to "ffprobe".
	Timeout time.Duration // Defaults to 5s per probe.
	logger  *zap.Logger
}

// NewFFProbe returns an FFProbe prober with defaults filled in.
func NewFFProbe(logger *zap.Logger) *FFProbe {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFProbe{
		Binary:  "ffprobe",
		Timeout: 5 * time.Second,
		logger:  logger,
	}
}

// Probe runs ffprobe against the file and parses the container duration.
// Any failure (binary missing, timeout, unparsable output) yields false.
func (f *FFProbe) Probe(ctx context.Context, path string) (time.Duration, bool) {
	logger := f.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	binary := f.Binary
	if binary == "" {
		binary = "ffprobe"
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)

	out, err := cmd.Output()
	if err != nil {
		logger.Debug("ffprobe failed",
			zap.String("path", path),
			zap.Error(err))
		return 0, false
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || seconds < 0 {
		logger.Debug("ffprobe produced unparsable duration",
			zap.String("path", path),
			zap.String("output", strings.TrimSpace(string(out))))
		return 0, false
	}

	return time.Duration(seconds * float64(time.Second)), true
}
