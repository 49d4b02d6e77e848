package po

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
)

// OutboxEventPO maps the outbox_events table backing the transactional
// outbox: events are inserted in the same transaction as the aggregate
// and published asynchronously by the outbox worker.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string {
	return "outbox_events"
}

// EventStatus is the publish lifecycle of an outbox row.
type EventStatus string

const (
	EventStatusPending   EventStatus = "PENDING"
	EventStatusPublished EventStatus = "PUBLISHED"
	EventStatusFailed    EventStatus = "FAILED"
)

// FromDomainEvent serializes a domain event into an outbox row. The
// event id doubles as the row id so consumers can deduplicate.
func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializePayload(event)
	if err != nil {
		return nil, fmt.Errorf("serialize %s event: %w", event.EventName(), err)
	}

	now := time.Now()
	return &OutboxEventPO{
		ID:          event.EventID(),
		AggregateID: event.AggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func serializePayload(event shared.DomainEvent) (string, error) {
	data := map[string]any{
		"event_id":     event.EventID(),
		"event_name":   event.EventName(),
		"aggregate_id": event.AggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if placed, ok := event.(*order.PlacedEvent); ok {
		data["order_id"] = placed.OrderID()
		data["total_amount"] = placed.TotalAmount().Float()
		if placed.UserID() != "" {
			data["user_id"] = placed.UserID()
		}
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
