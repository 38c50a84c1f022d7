package main

import (
	"log"
	"os"

	"promptpack/cmd"
	"promptpack/pkg/logging"

	"go.uber.org/zap"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if logging.Logger != nil {
			logging.Logger.Error("promptpack execution failed", zap.Error(err))
		} else {
			log.Printf("promptpack execution failed: %v", err)
		}
		logging.Sync()
		os.Exit(1)
	}
	logging.Sync()
}
