package order

import "context"

// DispatchRequest carries what the post-commit side effect needs: the
// persisted order plus the catalog pricing gathered during creation.
type DispatchRequest struct {
	Order  *Order
	Combos []PricedCombo
}

// PricedCombo pairs a catalog combo with the quantity it was ordered
// in. Price is the catalog unit price.
type PricedCombo struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// DispatchResult reports what the strategy produced. Both fields stay
// empty for the event strategy.
type DispatchResult struct {
	PaymentID      string
	PaymentDetails string
}

// Dispatcher triggers the single irreversible side effect after the
// creation transaction commits: either an event publish to the message
// topic or a synchronous payment call followed by a status update. An
// error here is fatal to the response but the committed order is never
// rolled back.
type Dispatcher interface {
	Dispatch(ctx context.Context, req DispatchRequest) (DispatchResult, error)
}
