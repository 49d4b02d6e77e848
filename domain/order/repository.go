package order

import (
	"context"

	"github.com/quickbite/order-service/domain/shared"
)

// Repository persists Order aggregates. Implementations enlist in the
// transaction carried by ctx when the unit of work supplies one and
// open their own transaction otherwise.
type Repository interface {
	// Create inserts the order and all of its line items atomically and
	// returns the aggregate with its display number assigned. No partial
	// order is ever observable by readers.
	Create(ctx context.Context, o *Order) (*Order, error)

	// FindByID loads the full aggregate. A missing order is reported as
	// (nil, nil), not as an error.
	FindByID(ctx context.Context, id string) (*Order, error)

	// FindMany lists orders newest-first. An empty userID means no
	// ownership filter; callers decide whether cross-user listing is
	// acceptable for their endpoint.
	FindMany(ctx context.Context, params shared.PaginationParams, userID string) (shared.Page[*Order], error)
}
