package shared

import "context"

// UnitOfWork runs business logic inside a single database transaction.
// The implementation injects the transaction handle into the context it
// passes to fn; repositories enlist in that transaction when present
// and open their own otherwise.
type UnitOfWork interface {
	// Execute begins a transaction, runs fn, persists the domain events
	// of every registered aggregate to the outbox, and commits. Any
	// error rolls the whole transaction back.
	Execute(ctx context.Context, fn func(ctx context.Context) error) error

	// RegisterNew enrolls a newly created aggregate for event collection.
	// The context must be the one Execute handed to fn; registrations are
	// scoped to that call, so concurrent units of work stay independent.
	RegisterNew(ctx context.Context, aggregate AggregateRoot)
}
