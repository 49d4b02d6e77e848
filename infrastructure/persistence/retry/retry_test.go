package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func fastConfig() Config {
	return Config{
		Enabled:            true,
		MaxAttempts:        3,
		InitialDelay:       time.Millisecond,
		MaxDelay:           5 * time.Millisecond,
		BackoffFactor:      2.0,
		RetryOnDeadlock:    true,
		RetryOnLockTimeout: true,
	}
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"deadlock code", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"lock wait code", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"other mysql code", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"deadlock string", errors.New("Error: deadlock found"), true},
		{"invalid transaction", gorm.ErrInvalidTransaction, true},
		{"connection lost", errors.New("mysql connection was lost"), true},
		{"validation error", errors.New("quantity must be positive"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryableError(tt.err, cfg))
		})
	}
}

func TestIsRetryableErrorHonorsFlags(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryOnDeadlock = false

	assert.False(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1213}, cfg))
	assert.True(t, IsRetryableError(&mysqlDriver.MySQLError{Number: 1205}, cfg))
}

func TestIsRetryableErrorCustomPredicate(t *testing.T) {
	cfg := fastConfig()
	custom := errors.New("custom transient failure")
	cfg.RetryPredicate = func(err error) bool { return errors.Is(err, custom) }

	assert.True(t, IsRetryableError(custom, cfg))
}

func TestExecuteRetriesTransientFailure(t *testing.T) {
	attempts := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return &mysqlDriver.MySQLError{Number: 1213}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestExecuteDoesNotRetryPermanentFailure(t *testing.T) {
	permanent := errors.New("duplicate entry")
	attempts := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, attempts)
}

func TestExecuteExhaustsAttempts(t *testing.T) {
	transient := &mysqlDriver.MySQLError{Number: 1205}
	attempts := 0
	err := Execute(context.Background(), fastConfig(), func(ctx context.Context) error {
		attempts++
		return transient
	})

	assert.ErrorIs(t, err, transient)
	assert.Equal(t, 3, attempts)
}

func TestExecuteDisabledRunsOnce(t *testing.T) {
	cfg := fastConfig()
	cfg.Enabled = false
	attempts := 0
	_ = Execute(context.Background(), cfg, func(ctx context.Context) error {
		attempts++
		return &mysqlDriver.MySQLError{Number: 1213}
	})

	assert.Equal(t, 1, attempts)
}

func TestExecuteStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Execute(ctx, fastConfig(), func(ctx context.Context) error {
		t.Fatal("fn must not run on a canceled context")
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffGrowsAndCaps(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      300 * time.Millisecond,
		BackoffFactor: 2.0,
	}

	assert.Equal(t, 100*time.Millisecond, Backoff(1, cfg))
	assert.Equal(t, 200*time.Millisecond, Backoff(2, cfg))
	assert.Equal(t, 300*time.Millisecond, Backoff(3, cfg))
	assert.Equal(t, time.Duration(0), Backoff(0, cfg))
}

func TestBackoffJitterStaysInRange(t *testing.T) {
	cfg := Config{
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}

	for i := 0; i < 50; i++ {
		delay := Backoff(1, cfg)
		assert.GreaterOrEqual(t, delay, 80*time.Millisecond)
		assert.LessOrEqual(t, delay, 120*time.Millisecond)
	}
}
