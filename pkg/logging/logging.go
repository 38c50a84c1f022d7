// Package logging configures the process-wide zap logger.
package logging

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// Logger is the global logger instance, set by Setup.
var Logger *zap.Logger

// Setup builds the global logger. Production config by default; debug
// switches to the development config. appName and appVersion are attached
// to every entry.
func Setup(debug bool, appName, appVersion string) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	var err error
	Logger, err = cfg.Build()
	if err != nil {
		Logger = zap.NewExample()
		return err
	}

	zap.ReplaceGlobals(Logger)
	return nil
}

// Sync flushes the global logger. Syncing stderr fails with EINVAL on
// some platforms when stderr is neither a terminal nor a regular file, so
// the flush is only attempted when it can work and that specific failure
// is ignored.
func Sync() {
	if Logger == nil {
		return
	}
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := Logger.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("Logger sync failed: %v", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
