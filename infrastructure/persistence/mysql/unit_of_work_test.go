package mysql

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/order-service/domain/shared"
)

type stubEvent struct {
	id string
}

func (e stubEvent) EventID() string       { return e.id }
func (e stubEvent) EventName() string     { return "order.placed" }
func (e stubEvent) OccurredOn() time.Time { return time.Unix(0, 0) }
func (e stubEvent) AggregateID() string   { return "order-" + e.id }

type stubAggregate struct {
	id     string
	events []shared.DomainEvent
}

func (a *stubAggregate) ID() string { return a.id }

func (a *stubAggregate) PullEvents() []shared.DomainEvent {
	events := a.events
	a.events = nil
	return events
}

func TestRegisterNewScopedToExecuteContext(t *testing.T) {
	uow := &UnitOfWork{}

	collectorA := &collector{}
	collectorB := &collector{}
	ctxA := contextWithCollector(context.Background(), collectorA)
	ctxB := contextWithCollector(context.Background(), collectorB)

	uow.RegisterNew(ctxA, &stubAggregate{id: "order-a"})
	uow.RegisterNew(ctxB, &stubAggregate{id: "order-b"})

	require.Len(t, collectorA.registered(), 1)
	require.Len(t, collectorB.registered(), 1)
	assert.Equal(t, "order-a", collectorA.registered()[0].ID())
	assert.Equal(t, "order-b", collectorB.registered()[0].ID())
}

func TestRegisterNewOutsideExecuteIsNoOp(t *testing.T) {
	uow := &UnitOfWork{}

	// Must not panic; there is nothing to attach the aggregate to.
	uow.RegisterNew(context.Background(), &stubAggregate{id: "order-1"})
}

func TestConcurrentRegistrationsStayIsolated(t *testing.T) {
	uow := &UnitOfWork{}

	const workers = 16
	collectors := make([]*collector, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		collectors[i] = &collector{}
		ctx := contextWithCollector(context.Background(), collectors[i])
		wg.Add(1)
		go func(i int, ctx context.Context) {
			defer wg.Done()
			uow.RegisterNew(ctx, &stubAggregate{id: fmt.Sprintf("order-%d", i)})
		}(i, ctx)
	}
	wg.Wait()

	for i, c := range collectors {
		registered := c.registered()
		require.Len(t, registered, 1)
		assert.Equal(t, fmt.Sprintf("order-%d", i), registered[0].ID())
	}
}

func TestEventSnapshotSurvivesRetriedAttempt(t *testing.T) {
	aggregate := &stubAggregate{
		id:     "order-1",
		events: []shared.DomainEvent{stubEvent{id: "event-1"}},
	}
	snapshot := newEventSnapshot()

	// First attempt drains the aggregate.
	snapshot.drain([]shared.AggregateRoot{aggregate})
	require.Len(t, snapshot.all(), 1)
	assert.Empty(t, aggregate.PullEvents())

	// A retried attempt finds the aggregate empty; the snapshot still
	// holds the event for the outbox insert.
	snapshot.drain([]shared.AggregateRoot{aggregate})
	require.Len(t, snapshot.all(), 1)
	assert.Equal(t, "event-1", snapshot.all()[0].EventID())
}

func TestEventSnapshotDeduplicatesByEventID(t *testing.T) {
	snapshot := newEventSnapshot()

	first := &stubAggregate{id: "order-1", events: []shared.DomainEvent{stubEvent{id: "event-1"}}}
	again := &stubAggregate{id: "order-1", events: []shared.DomainEvent{stubEvent{id: "event-1"}, stubEvent{id: "event-2"}}}

	snapshot.drain([]shared.AggregateRoot{first})
	snapshot.drain([]shared.AggregateRoot{again})

	all := snapshot.all()
	require.Len(t, all, 2)
	assert.Equal(t, "event-1", all[0].EventID())
	assert.Equal(t, "event-2", all[1].EventID())
}
