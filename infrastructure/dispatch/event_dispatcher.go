// Package dispatch holds the post-commit side effect strategies the
// order creation flow chooses between.
package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/infrastructure/messaging/kafka"
	"github.com/quickbite/order-service/pkg/logger"
)

// messageWriter is the slice of kafka.Writer the dispatcher needs.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// OrderPlacedMessage is the wire payload consumers of the order topic
// receive.
type OrderPlacedMessage struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
}

// EventDispatcher publishes an order placed message to the broker
// after the creation transaction commits. The writer is built on first
// use so the service starts even when the broker is still coming up.
type EventDispatcher struct {
	client *kafka.Client
	topic  string

	once    sync.Once
	writer  messageWriter
	initErr error
}

func NewEventDispatcher(client *kafka.Client, topic string) *EventDispatcher {
	return &EventDispatcher{client: client, topic: topic}
}

func (d *EventDispatcher) getWriter() (messageWriter, error) {
	d.once.Do(func() {
		if !d.client.Enabled() {
			d.initErr = kafka.ErrDisabled
			return
		}
		d.writer = d.client.NewWriter(d.topic)
	})
	return d.writer, d.initErr
}

// Dispatch publishes the placed order keyed by its id. The result is
// empty: payment happens downstream for this strategy.
func (d *EventDispatcher) Dispatch(ctx context.Context, req order.DispatchRequest) (order.DispatchResult, error) {
	writer, err := d.getWriter()
	if err != nil {
		return order.DispatchResult{}, fmt.Errorf("order topic writer: %w", err)
	}

	msg := OrderPlacedMessage{
		OrderID:     req.Order.ID(),
		TotalAmount: req.Order.TotalPrice().Float(),
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return order.DispatchResult{}, fmt.Errorf("marshal order placed message: %w", err)
	}

	if err := writer.WriteMessages(ctx, kafkago.Message{Key: []byte(msg.OrderID), Value: payload}); err != nil {
		return order.DispatchResult{}, fmt.Errorf("publish order placed message: %w", err)
	}

	logger.Info("order placed message published",
		zap.String("order_id", msg.OrderID),
		zap.Float64("total_amount", msg.TotalAmount),
		zap.String("topic", d.topic))
	return order.DispatchResult{}, nil
}

// PublishRaw republishes an already serialized outbox payload. Used by
// the outbox worker to retry messages the inline dispatch lost.
func (d *EventDispatcher) PublishRaw(ctx context.Context, key string, payload []byte) error {
	writer, err := d.getWriter()
	if err != nil {
		return fmt.Errorf("order topic writer: %w", err)
	}
	return writer.WriteMessages(ctx, kafkago.Message{Key: []byte(key), Value: payload})
}

// Close releases the broker connection if one was ever opened.
func (d *EventDispatcher) Close() error {
	if d.writer == nil {
		return nil
	}
	return d.writer.Close()
}
