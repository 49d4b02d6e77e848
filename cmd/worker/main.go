// Standalone outbox worker. Runs the same publishing loop the main
// process hosts, for deployments that scale the API and the relay
// independently.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/quickbite/order-service/config"
	"github.com/quickbite/order-service/infrastructure/dispatch"
	"github.com/quickbite/order-service/infrastructure/messaging/kafka"
	"github.com/quickbite/order-service/infrastructure/persistence/mysql"
	"github.com/quickbite/order-service/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker startup failed: %v\n", err)
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

	if !cfg.Outbox.Enabled {
		logger.Info("outbox worker disabled by config; exiting")
		return nil
	}

	db, err := cfg.Database.Connect()
	if err != nil {
		return fmt.Errorf("connect to mysql: %w", err)
	}

	publisher := dispatch.NewEventDispatcher(kafka.NewClient(cfg.Kafka.Brokers), cfg.Kafka.Topic)
	defer publisher.Close()

	worker, err := mysql.NewOutboxWorker(
		mysql.NewOutboxRepository(db),
		publisher,
		cfg.Outbox.PollInterval,
		cfg.Outbox.BatchSize,
		cfg.Outbox.MaxRetries,
	)
	if err != nil {
		return fmt.Errorf("create outbox worker: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("outbox worker started",
		zap.Duration("poll_interval", cfg.Outbox.PollInterval),
		zap.Int("batch_size", cfg.Outbox.BatchSize),
		zap.Int("max_retries", cfg.Outbox.MaxRetries))

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		return fmt.Errorf("outbox worker exited: %w", err)
	}

	logger.Info("outbox worker stopped")
	return nil
}
