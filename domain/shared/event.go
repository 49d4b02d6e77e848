package shared

import "time"

// DomainEvent is an occurrence recorded by an aggregate. The unit of
// work collects events in PullEvents order and saves them to the outbox
// table inside the same transaction as the aggregate.
type DomainEvent interface {
	EventID() string
	EventName() string
	OccurredOn() time.Time
	AggregateID() string
}

// AggregateRoot is the entry point of a consistency boundary. All
// mutations of entities inside the boundary go through the root.
type AggregateRoot interface {
	ID() string

	// PullEvents returns the recorded events and clears the list so a
	// second save cannot duplicate them.
	PullEvents() []DomainEvent
}
