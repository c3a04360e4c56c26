// Package main is the entry point for the interactive turtle animation viewer.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/turtlemotion/internal/config"
	"github.com/Faultbox/turtlemotion/internal/logger"
	"github.com/Faultbox/turtlemotion/internal/scenefile"
	"github.com/Faultbox/turtlemotion/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if flag.NArg() > 0 {
		cfg.Scene = flag.Arg(0)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== turtlemotion viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if cfg.Scene == "" {
		logger.Error("no scene given; pass -scene or a path")
		os.Exit(1)
	}
	sc, err := scenefile.Load(cfg.Scene)
	if err != nil {
		logger.Error("failed to load scene", zap.String("scene", cfg.Scene), zap.Error(err))
		os.Exit(1)
	}

	v, err := viewer.New(cfg, sc, os.Stdout)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
