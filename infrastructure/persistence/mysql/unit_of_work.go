package mysql

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/quickbite/order-service/domain/shared"
	"github.com/quickbite/order-service/infrastructure/persistence"
	"github.com/quickbite/order-service/infrastructure/persistence/retry"
)

// UnitOfWork manages one database transaction per Execute call and
// saves the domain events of registered aggregates to the outbox table
// before commit. It keeps no per-call state, so a single instance
// serves concurrent requests.
type UnitOfWork struct {
	db          *gorm.DB
	outboxRepo  *OutboxRepository
	retryConfig retry.Config
}

// NewUnitOfWork creates a unit of work over the shared pool.
func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outboxRepo:  NewOutboxRepository(db),
		retryConfig: retry.DefaultConfig,
	}
}

// SetRetryConfig overrides the transient-failure retry policy.
func (u *UnitOfWork) SetRetryConfig(config retry.Config) {
	u.retryConfig = config
}

// collector gathers the aggregates registered during one Execute call.
// It travels through the context handed to fn, so concurrent Execute
// calls never see each other's registrations.
type collector struct {
	mu         sync.Mutex
	aggregates []shared.AggregateRoot
}

func (c *collector) add(aggregate shared.AggregateRoot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aggregates = append(c.aggregates, aggregate)
}

func (c *collector) registered() []shared.AggregateRoot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]shared.AggregateRoot(nil), c.aggregates...)
}

type collectorKey struct{}

func contextWithCollector(ctx context.Context, c *collector) context.Context {
	return context.WithValue(ctx, collectorKey{}, c)
}

func collectorFromContext(ctx context.Context) *collector {
	c, _ := ctx.Value(collectorKey{}).(*collector)
	return c
}

// eventSnapshot holds the events pulled across retry attempts of one
// Execute call. PullEvents drains the aggregate, so a retried attempt
// finds it empty; the snapshot keeps the events available for the
// attempt that finally commits.
type eventSnapshot struct {
	order  []string
	events map[string]shared.DomainEvent
}

func newEventSnapshot() *eventSnapshot {
	return &eventSnapshot{events: make(map[string]shared.DomainEvent)}
}

func (s *eventSnapshot) drain(aggregates []shared.AggregateRoot) {
	for _, agg := range aggregates {
		for _, event := range agg.PullEvents() {
			if _, seen := s.events[event.EventID()]; seen {
				continue
			}
			s.events[event.EventID()] = event
			s.order = append(s.order, event.EventID())
		}
	}
}

func (s *eventSnapshot) all() []shared.DomainEvent {
	out := make([]shared.DomainEvent, len(s.order))
	for i, id := range s.order {
		out[i] = s.events[id]
	}
	return out
}

// Execute begins a transaction, injects it into the context handed to
// fn, saves the events of registered aggregates to the outbox, and
// commits. Every error rolls the whole transaction back; transient
// storage failures retry the entire attempt with the same event
// snapshot.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := newEventSnapshot()

	executeOnce := func(ctx context.Context) error {
		c := &collector{}

		tx := u.db.WithContext(ctx).Begin()
		if tx.Error != nil {
			return fmt.Errorf("begin transaction: %w", tx.Error)
		}

		txCtx := contextWithCollector(persistence.ContextWithTx(ctx, tx), c)

		if err := fn(txCtx); err != nil {
			tx.Rollback()
			return err
		}

		snapshot.drain(c.registered())
		for _, event := range snapshot.all() {
			if err := u.outboxRepo.SaveEvent(txCtx, event); err != nil {
				tx.Rollback()
				return fmt.Errorf("save event to outbox: %w", err)
			}
		}

		if err := tx.Commit().Error; err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}

	return retry.Execute(ctx, u.retryConfig, executeOnce)
}

// RegisterNew enrolls a newly created aggregate for event collection.
// It only takes effect on the context Execute hands to fn.
func (u *UnitOfWork) RegisterNew(ctx context.Context, aggregate shared.AggregateRoot) {
	if c := collectorFromContext(ctx); c != nil {
		c.add(aggregate)
	}
}

// Compile-time check that UnitOfWork implements shared.UnitOfWork.
var _ shared.UnitOfWork = (*UnitOfWork)(nil)
