package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/infopoison/alchemist-workbench/engine/infra/server"
	"github.com/infopoison/alchemist-workbench/pkg/config"
	"github.com/infopoison/alchemist-workbench/pkg/logger"
)

func main() {
	// A missing .env file is fine: configuration falls back to real
	// environment variables and defaults.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = logger.LogLevel(cfg.Log.Level)
	logCfg.JSON = cfg.Log.JSON
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetDefault()

	if err := server.NewServer(cfg, log).Run(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
