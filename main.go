package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/quickbite/order-service/cmd"
	"github.com/quickbite/order-service/config"
	"github.com/quickbite/order-service/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer logger.Sync()

	app, err := cmd.NewApp(cfg)
	if err != nil {
		return err
	}

	return app.Run()
}
