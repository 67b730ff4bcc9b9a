// Package main is the entry point for the markerlens AR demo.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/markerlens/internal/app"
	"github.com/Faultbox/markerlens/internal/config"
	"github.com/Faultbox/markerlens/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Log.Info("=== markerlens ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.SaveRequested() {
		if err := cfg.Save(); err != nil {
			logger.Log.Warn("failed to save config", zap.Error(err))
		} else {
			logger.Log.Info("config saved", zap.String("dir", config.ConfigDir()))
		}
	}

	a, err := app.New(cfg)
	if err != nil {
		logger.Log.Error("failed to assemble demo", zap.Error(err))
		os.Exit(1)
	}
	defer a.Close()

	if err := a.Run(config.Viewer()); err != nil {
		logger.Log.Error("session error", zap.Error(err))
		os.Exit(1)
	}

	logger.Log.Info("demo finished")
}
