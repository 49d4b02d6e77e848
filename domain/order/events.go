package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/quickbite/order-service/domain/shared"
)

// PlacedEvent is recorded when an order aggregate is created. The unit
// of work saves it to the outbox inside the creation transaction; the
// outbox worker republishes it if the post-commit dispatch never ran.
type PlacedEvent struct {
	eventID     string
	orderID     string
	userID      string
	totalAmount shared.Money
	occurredOn  time.Time
}

// NewPlacedEvent records an order.placed occurrence.
func NewPlacedEvent(orderID, userID string, totalAmount shared.Money) *PlacedEvent {
	return &PlacedEvent{
		eventID:     uuid.New().String(),
		orderID:     orderID,
		userID:      userID,
		totalAmount: totalAmount,
		occurredOn:  time.Now(),
	}
}

func (e *PlacedEvent) EventID() string           { return e.eventID }
func (e *PlacedEvent) EventName() string         { return "order.placed" }
func (e *PlacedEvent) OccurredOn() time.Time     { return e.occurredOn }
func (e *PlacedEvent) AggregateID() string       { return e.orderID }
func (e *PlacedEvent) OrderID() string           { return e.orderID }
func (e *PlacedEvent) UserID() string            { return e.userID }
func (e *PlacedEvent) TotalAmount() shared.Money { return e.totalAmount }
