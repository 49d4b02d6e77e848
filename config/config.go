// Package config loads the service configuration from yaml and
// environment variables. Environment variables use the ORDER_ prefix
// with dots replaced by underscores, e.g. ORDER_DATABASE_PASSWORD.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/quickbite/order-service/infrastructure/gateway"
	"github.com/quickbite/order-service/infrastructure/messaging/kafka"
	"github.com/quickbite/order-service/infrastructure/persistence/mysql"
	"github.com/quickbite/order-service/pkg/logger"
)

type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      logger.Config  `mapstructure:"log"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Kafka    kafka.Config   `mapstructure:"kafka"`
	Outbox   OutboxConfig   `mapstructure:"outbox"`
	Gateways GatewaysConfig `mapstructure:"gateways"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
}

type ServerConfig struct {
	Port            string          `mapstructure:"port"`
	ReadTimeout     time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration   `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration   `mapstructure:"shutdown_timeout"`
	RateLimit       RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Rate    float64 `mapstructure:"rate"`
	Burst   int     `mapstructure:"burst"`
}

type DatabaseConfig struct {
	mysql.Config `mapstructure:",squash"`
	Retry        RetryConfig `mapstructure:"retry"`
}

type RetryConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	MaxAttempts        int           `mapstructure:"max_attempts"`
	InitialDelay       time.Duration `mapstructure:"initial_delay"`
	MaxDelay           time.Duration `mapstructure:"max_delay"`
	BackoffFactor      float64       `mapstructure:"backoff_factor"`
	JitterEnabled      bool          `mapstructure:"jitter_enabled"`
	RetryOnDeadlock    bool          `mapstructure:"retry_on_deadlock"`
	RetryOnLockTimeout bool          `mapstructure:"retry_on_lock_timeout"`
}

type CORSConfig struct {
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// DispatchConfig selects the post-commit side effect strategy:
// "event" publishes to the order topic, "sync" calls the payment and
// status services inline.
type DispatchConfig struct {
	Strategy string `mapstructure:"strategy"`
}

const (
	DispatchStrategyEvent = "event"
	DispatchStrategySync  = "sync"
)

type OutboxConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	PollInterval time.Duration `mapstructure:"poll_interval"`
	BatchSize    int           `mapstructure:"batch_size"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

type GatewaysConfig struct {
	Catalog gateway.Config `mapstructure:"catalog"`
	User    gateway.Config `mapstructure:"user"`
	Payment gateway.Config `mapstructure:"payment"`
	Status  gateway.Config `mapstructure:"status"`
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Dispatch.Strategy {
	case DispatchStrategyEvent, DispatchStrategySync:
	default:
		return fmt.Errorf("dispatch.strategy must be %q or %q, got %q",
			DispatchStrategyEvent, DispatchStrategySync, c.Dispatch.Strategy)
	}
	if c.Dispatch.Strategy == DispatchStrategyEvent && strings.TrimSpace(c.Kafka.Brokers) == "" {
		return fmt.Errorf("dispatch.strategy %q requires kafka.brokers", DispatchStrategyEvent)
	}
	if c.Dispatch.Strategy == DispatchStrategySync {
		if c.Gateways.Payment.BaseURL == "" || c.Gateways.Status.BaseURL == "" {
			return fmt.Errorf("dispatch.strategy %q requires gateways.payment.base_url and gateways.status.base_url", DispatchStrategySync)
		}
	}
	if c.Gateways.Catalog.BaseURL == "" {
		return fmt.Errorf("gateways.catalog.base_url is required")
	}
	return nil
}

func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("ORDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// defaults only when the file is absent
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "order-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.env", "development")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.rate_limit.enabled", true)
	v.SetDefault("server.rate_limit.rate", 100)
	v.SetDefault("server.rate_limit.burst", 200)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "quickbite_orders")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "10m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.log_level", "warn")

	v.SetDefault("database.retry.enabled", true)
	v.SetDefault("database.retry.max_attempts", 3)
	v.SetDefault("database.retry.initial_delay", "100ms")
	v.SetDefault("database.retry.max_delay", "2s")
	v.SetDefault("database.retry.backoff_factor", 2.0)
	v.SetDefault("database.retry.jitter_enabled", true)
	v.SetDefault("database.retry.retry_on_deadlock", true)
	v.SetDefault("database.retry.retry_on_lock_timeout", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file_path", "logs/app.log")

	v.SetDefault("cors.allow_origins", []string{"http://localhost:3000"})
	v.SetDefault("cors.allow_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("cors.allow_headers", []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"})
	v.SetDefault("cors.allow_credentials", true)
	v.SetDefault("cors.max_age", 86400)

	v.SetDefault("dispatch.strategy", "event")

	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.topic", "order-placed")

	v.SetDefault("outbox.enabled", true)
	v.SetDefault("outbox.poll_interval", "5s")
	v.SetDefault("outbox.batch_size", 50)
	v.SetDefault("outbox.max_retries", 5)

	v.SetDefault("gateways.catalog.base_url", "http://localhost:8081")
	v.SetDefault("gateways.catalog.timeout", "10s")
	v.SetDefault("gateways.user.base_url", "http://localhost:8082")
	v.SetDefault("gateways.user.timeout", "10s")
	v.SetDefault("gateways.payment.base_url", "http://localhost:8083")
	v.SetDefault("gateways.payment.timeout", "10s")
	v.SetDefault("gateways.status.base_url", "http://localhost:8084")
	v.SetDefault("gateways.status.timeout", "10s")
}
