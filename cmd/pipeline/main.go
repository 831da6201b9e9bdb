package main

import (
	"context"
	"log/slog"
	"os"

	"medcli/internal/app"
	"medcli/internal/config"
	"medcli/internal/infrastructure"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = &config.Config{
			Logging: config.LoggingConfig{
				Level:    "info",
				Format:   "json",
				Output:   "console",
				FilePath: "logs/pipeline.log",
			},
		}
	}

	paths, err := config.GetPaths(cfg.BaseDir)
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting healthcare records pipeline",
		slog.String("input", paths.InputFile()),
		slog.String("base_dir", paths.BaseDir))

	pipeline := app.New(logger, paths)
	if err := pipeline.Run(context.Background()); err != nil {
		logger.Error("Pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
