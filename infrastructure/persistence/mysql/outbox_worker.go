package mysql

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/quickbite/order-service/pkg/logger"
)

// OutboxPublisher delivers serialized outbox payloads to the message
// topic. The kafka event publisher satisfies this.
type OutboxPublisher interface {
	PublishRaw(ctx context.Context, key string, payload []byte) error
}

// OutboxWorker polls the outbox table and publishes pending events. It
// is the compensating mechanism for orders that committed but whose
// post-commit dispatch never ran; consumers deduplicate by event id.
type OutboxWorker struct {
	repository   *OutboxRepository
	publisher    OutboxPublisher
	pollInterval time.Duration
	batchSize    int
	maxRetries   int
}

// NewOutboxWorker validates and builds the worker.
func NewOutboxWorker(
	repository *OutboxRepository,
	publisher OutboxPublisher,
	pollInterval time.Duration,
	batchSize int,
	maxRetries int,
) (*OutboxWorker, error) {
	if repository == nil {
		return nil, fmt.Errorf("outbox repository is required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("outbox publisher is required")
	}
	if pollInterval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive")
	}
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive")
	}
	if maxRetries <= 0 {
		return nil, fmt.Errorf("max retries must be positive")
	}

	return &OutboxWorker{
		repository:   repository,
		publisher:    publisher,
		pollInterval: pollInterval,
		batchSize:    batchSize,
		maxRetries:   maxRetries,
	}, nil
}

// Run polls until the context is cancelled.
func (w *OutboxWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.processBatch(ctx); err != nil {
				logger.Error("outbox batch processing failed", zap.Error(err))
			}
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) error {
	events, err := w.repository.GetPendingEvents(ctx, w.batchSize)
	if err != nil {
		return err
	}

	for _, event := range events {
		if err := w.publisher.PublishRaw(ctx, event.AggregateID, []byte(event.Payload)); err != nil {
			logger.Warn("outbox publish failed",
				zap.String("event_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.Error(err))
			if failErr := w.repository.MarkEventFailed(ctx, event.ID, w.maxRetries); failErr != nil {
				logger.Error("failed to mark outbox event as failed",
					zap.String("event_id", event.ID),
					zap.Error(failErr))
			}
			continue
		}

		if err := w.repository.MarkEventPublished(ctx, event.ID); err != nil {
			logger.Error("failed to mark outbox event as published",
				zap.String("event_id", event.ID),
				zap.Error(err))
		}
	}
	return nil
}
