package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quickbite/order-service/infrastructure/persistence"
)

// GormAdapterConfig tunes the SQL trace output.
type GormAdapterConfig struct {
	SlowThreshold             time.Duration
	IgnoreRecordNotFoundError bool
}

func DefaultGormAdapterConfig() *GormAdapterConfig {
	return &GormAdapterConfig{
		SlowThreshold:             200 * time.Millisecond,
		IgnoreRecordNotFoundError: true,
	}
}

// GormAdapter routes GORM logs through the shared zap logger, tagging
// each line with the request id carried on the context.
type GormAdapter struct {
	logLevel gormlogger.LogLevel
	logger   *zap.Logger
	config   *GormAdapterConfig
}

func NewGormAdapter(logLevel gormlogger.LogLevel) *GormAdapter {
	return NewGormAdapterWithConfig(logLevel, DefaultGormAdapterConfig())
}

func NewGormAdapterWithConfig(logLevel gormlogger.LogLevel, config *GormAdapterConfig) *GormAdapter {
	if config == nil {
		config = DefaultGormAdapterConfig()
	}
	baseLogger := log
	if baseLogger == nil {
		baseLogger = zap.NewNop()
	}
	return &GormAdapter{logLevel: logLevel, logger: baseLogger, config: config}
}

func (l *GormAdapter) LogMode(logLevel gormlogger.LogLevel) gormlogger.Interface {
	return &GormAdapter{logLevel: logLevel, logger: l.logger, config: l.config}
}

func (l *GormAdapter) loggerFor(ctx context.Context) *zap.Logger {
	instance := l.logger
	if instance == nil {
		instance = zap.NewNop()
	}
	if requestID := persistence.RequestIDFromContext(ctx); requestID != "" {
		instance = instance.With(zap.String("request_id", requestID))
	}
	return instance
}

func (l *GormAdapter) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Info {
		l.loggerFor(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (l *GormAdapter) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Warn {
		l.loggerFor(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (l *GormAdapter) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.logLevel >= gormlogger.Error {
		l.loggerFor(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

func (l *GormAdapter) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if l.logLevel <= gormlogger.Silent {
		return
	}

	sql, rows := fc()
	elapsed := time.Since(begin)
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
	}
	instance := l.loggerFor(ctx)

	if err != nil && l.logLevel >= gormlogger.Error {
		if errors.Is(err, gormlogger.ErrRecordNotFound) && l.config.IgnoreRecordNotFoundError {
			return
		}
		instance.Error("database operation failed", append(fields, zap.Error(err))...)
		return
	}

	if l.config.SlowThreshold != 0 && elapsed > l.config.SlowThreshold && l.logLevel >= gormlogger.Warn {
		instance.Warn("slow sql query", append(fields, zap.String("type", "slow_query"))...)
		return
	}

	if l.logLevel >= gormlogger.Info {
		instance.Info("sql query executed", fields...)
	}
}
