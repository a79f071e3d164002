// Package main is the entry point for the terrain flyover viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/TimelessP/timeless-as0-sub000/internal/app"
	"github.com/TimelessP/timeless-as0-sub000/internal/config"
	"github.com/TimelessP/timeless-as0-sub000/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	opts := logger.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.FilePath = cfg.Logging.LogFile
	if err := logger.Init(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Airship Terrain Flyover ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("failed to create application", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		logger.Error("flyover error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("flyover closed normally")
}
