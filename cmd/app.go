// Package cmd wires the service together: configuration, logging,
// storage, gateways, the dispatch strategy and the HTTP server.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickbite/order-service/api"
	"github.com/quickbite/order-service/api/health"
	apiorder "github.com/quickbite/order-service/api/order"
	orderapp "github.com/quickbite/order-service/application/order"
	"github.com/quickbite/order-service/config"
	orderdomain "github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/infrastructure/dispatch"
	"github.com/quickbite/order-service/infrastructure/gateway"
	"github.com/quickbite/order-service/infrastructure/messaging/kafka"
	"github.com/quickbite/order-service/infrastructure/persistence/mysql"
	"github.com/quickbite/order-service/infrastructure/persistence/retry"
	"github.com/quickbite/order-service/pkg/logger"
)

// App holds everything the process owns.
type App struct {
	config    *config.Config
	router    *api.Router
	server    *http.Server
	db        *gorm.DB
	worker    *mysql.OutboxWorker
	publisher *dispatch.EventDispatcher
}

// NewApp builds the full object graph. The logger must be initialized
// by the caller first.
func NewApp(cfg *config.Config) (*App, error) {
	db, err := cfg.Database.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db handle: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	logger.Info("connected to mysql",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database))

	if cfg.IsDevelopment() {
		if err := mysql.AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	orderRepo := mysql.NewOrderRepository(db)
	uow := mysql.NewUnitOfWork(db)
	uow.SetRetryConfig(retryConfigFrom(&cfg.Database.Retry))

	catalogClient := gateway.NewCatalogClient(cfg.Gateways.Catalog)
	userClient := gateway.NewUserClient(cfg.Gateways.User)

	app := &App{config: cfg, db: db}

	var dispatcher orderdomain.Dispatcher
	switch cfg.Dispatch.Strategy {
	case config.DispatchStrategySync:
		dispatcher = dispatch.NewPaymentDispatcher(
			gateway.NewPaymentClient(cfg.Gateways.Payment),
			gateway.NewStatusClient(cfg.Gateways.Status),
		)
	default:
		publisher := dispatch.NewEventDispatcher(kafka.NewClient(cfg.Kafka.Brokers), cfg.Kafka.Topic)
		app.publisher = publisher
		dispatcher = publisher

		if cfg.Outbox.Enabled {
			worker, err := mysql.NewOutboxWorker(
				mysql.NewOutboxRepository(db),
				publisher,
				cfg.Outbox.PollInterval,
				cfg.Outbox.BatchSize,
				cfg.Outbox.MaxRetries,
			)
			if err != nil {
				return nil, fmt.Errorf("create outbox worker: %w", err)
			}
			app.worker = worker
		}
	}
	logger.Info("dispatch strategy selected", zap.String("strategy", cfg.Dispatch.Strategy))

	creationService := orderapp.NewService(orderRepo, catalogClient, dispatcher, uow)
	queryService := orderapp.NewQueryService(orderRepo, catalogClient, userClient)

	healthController := health.NewController(cfg, sqlDB)
	orderController := apiorder.NewController(creationService, queryService)

	router := api.NewRouter(cfg, healthController, orderController)
	router.SetupRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return app, nil
}

// Run serves until SIGINT or SIGTERM, then shuts down in order: HTTP
// server, outbox worker, broker connection, database pool.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workerDone := make(chan struct{})
	if a.worker != nil {
		go func() {
			defer close(workerDone)
			if err := a.worker.Run(ctx); err != nil && err != context.Canceled {
				logger.Error("outbox worker exited", zap.Error(err))
			}
		}()
	} else {
		close(workerDone)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		stop()
		<-workerDone
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", zap.Error(err))
	}

	<-workerDone

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			logger.Error("close broker connection", zap.Error(err))
		}
	}

	if sqlDB, err := a.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("close database pool", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
	return nil
}

// GetEngine exposes the gin engine for tests.
func (a *App) GetEngine() http.Handler {
	return a.router.GetEngine()
}

func retryConfigFrom(cfg *config.RetryConfig) retry.Config {
	return retry.Config{
		Enabled:            cfg.Enabled,
		MaxAttempts:        cfg.MaxAttempts,
		InitialDelay:       cfg.InitialDelay,
		MaxDelay:           cfg.MaxDelay,
		BackoffFactor:      cfg.BackoffFactor,
		JitterEnabled:      cfg.JitterEnabled,
		RetryOnDeadlock:    cfg.RetryOnDeadlock,
		RetryOnLockTimeout: cfg.RetryOnLockTimeout,
	}
}
