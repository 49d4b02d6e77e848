package order

import (
	"errors"

	"github.com/quickbite/order-service/domain/shared"
)

// Sentinel errors of the order subdomain, for errors.Is().
var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidQuantity    = errors.New("combo quantity must be at least 1")
	ErrNegativeTotalPrice = errors.New("order total price cannot be negative")
)

// NewOrderNotFoundError builds a not-found error carrying the order id
// and an origin stack.
func NewOrderNotFoundError(orderID string) error {
	return (&shared.DomainError{
		Err:     shared.ErrNotFound,
		Entity:  "Order",
		Message: "order not found: " + orderID,
		Cause:   ErrOrderNotFound,
	}).WithStack(4)
}
