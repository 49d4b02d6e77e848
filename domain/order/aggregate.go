/*
Package order is the order subdomain: the Order aggregate root, its
combo line items, the repository and dispatcher contracts, and the
domain events recorded during creation.

The aggregate keeps every field private and exposes behavior through
methods, so the invariants below cannot be broken from outside:

 1. totalPrice equals the sum of the line items' totalPrice whenever the
    aggregate is handed to the repository.
 2. An order needs at least one combo item to be creatable.
 3. An order belongs to an authenticated user or carries a visitor name.
 4. Every line item quantity is at least 1.
 5. Line items are immutable after creation; there is no update path.
*/
package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/quickbite/order-service/domain/shared"
)

// Order is the aggregate root. Combo items cannot outlive it or be
// shared with another order.
type Order struct {
	id             string
	number         int64
	userID         string
	visitorName    string
	totalPrice     shared.Money
	paymentID      string
	paymentDetails string
	combos         []ComboItem
	createdAt      time.Time
	updatedAt      time.Time

	events []shared.DomainEvent
}

// ComboItem is a line item referencing a priced catalog combo. It is an
// entity inside the aggregate and is only reachable through the Order.
type ComboItem struct {
	id         string
	orderID    string
	comboID    string
	quantity   int
	totalPrice shared.Money
	annotation string
}

// ComboItemRequest carries the data needed to attach one line item.
type ComboItemRequest struct {
	ComboID    string
	Quantity   int
	UnitPrice  shared.Money
	Annotation string
}

// NewOrder is the only entry point for creating an Order. It validates
// ownership, builds the line items, computes the total and records the
// order.placed event.
func NewOrder(userID, visitorName string, items []ComboItemRequest) (*Order, error) {
	if userID == "" && visitorName == "" {
		return nil, shared.NewMinimumResourcesError("User", "userId", "visitorName")
	}
	if len(items) == 0 {
		return nil, shared.NewMinimumResourcesError("Combos", "combos")
	}

	orderID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate order id: %w", err)
	}

	o := &Order{
		id:          orderID.String(),
		userID:      userID,
		visitorName: visitorName,
		totalPrice:  shared.NewMoney(0, shared.DefaultCurrency),
		createdAt:   time.Now(),
	}
	o.updatedAt = o.createdAt

	for _, req := range items {
		if err := o.addItem(req); err != nil {
			return nil, err
		}
	}
	if o.totalPrice.IsNegative() {
		return nil, ErrNegativeTotalPrice
	}

	o.events = append(o.events, NewPlacedEvent(o.id, o.userID, o.totalPrice))
	return o, nil
}

// addItem attaches a line item and folds its total into the order
// total. Items are only added during construction.
func (o *Order) addItem(req ComboItemRequest) error {
	if req.ComboID == "" {
		return shared.NewValidationError("OrderComboItem", "comboId", "combo id is required")
	}
	if req.Quantity < 1 {
		return ErrInvalidQuantity
	}

	lineTotal, err := LineTotal(req.UnitPrice, req.Quantity)
	if err != nil {
		return err
	}

	itemID, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate combo item id: %w", err)
	}

	o.combos = append(o.combos, ComboItem{
		id:         itemID.String(),
		orderID:    o.id,
		comboID:    req.ComboID,
		quantity:   req.Quantity,
		totalPrice: lineTotal,
		annotation: req.Annotation,
	})

	newTotal, err := o.totalPrice.Add(lineTotal)
	if err != nil {
		o.combos = o.combos[:len(o.combos)-1]
		return err
	}
	o.totalPrice = newTotal
	o.updatedAt = time.Now()
	return nil
}

// AttachPayment records the payment reference obtained from the payment
// gateway after the order was persisted.
func (o *Order) AttachPayment(paymentID, paymentDetails string) {
	o.paymentID = paymentID
	o.paymentDetails = paymentDetails
	o.updatedAt = time.Now()
}

func (o *Order) ID() string               { return o.id }
func (o *Order) Number() int64            { return o.number }
func (o *Order) TotalPrice() shared.Money { return o.totalPrice }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }

// UserID reports the owning user id. ok is false for visitor orders.
func (o *Order) UserID() (id string, ok bool) {
	return o.userID, o.userID != ""
}

// VisitorName reports the free-text visitor label, when present.
func (o *Order) VisitorName() (name string, ok bool) {
	return o.visitorName, o.visitorName != ""
}

// PaymentID reports the payment reference, when one was attached.
func (o *Order) PaymentID() (id string, ok bool) {
	return o.paymentID, o.paymentID != ""
}

// PaymentDetails reports the payment details, when attached.
func (o *Order) PaymentDetails() (details string, ok bool) {
	return o.paymentDetails, o.paymentDetails != ""
}

// Combos returns a copy of the line items so callers cannot mutate the
// aggregate's internal state.
func (o *Order) Combos() []ComboItem {
	combos := make([]ComboItem, len(o.combos))
	copy(combos, o.combos)
	return combos
}

// PullEvents returns the recorded domain events and clears the list.
func (o *Order) PullEvents() []shared.DomainEvent {
	events := make([]shared.DomainEvent, len(o.events))
	copy(events, o.events)
	o.events = nil
	return events
}

func (item ComboItem) ID() string                { return item.id }
func (item ComboItem) OrderID() string           { return item.orderID }
func (item ComboItem) ComboID() string           { return item.comboID }
func (item ComboItem) Quantity() int             { return item.quantity }
func (item ComboItem) TotalPrice() shared.Money  { return item.totalPrice }
func (item ComboItem) Annotation() (string, bool) { return item.annotation, item.annotation != "" }

// LineTotal computes unit price times quantity with overflow checking.
// This is the single pricing rule of the module; the order total is the
// sum of line totals.
func LineTotal(unitPrice shared.Money, quantity int) (shared.Money, error) {
	if quantity < 1 {
		return shared.Money{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return shared.Money{}, shared.ErrNegativeAmount
	}
	return unitPrice.Multiply(quantity)
}

// ReconstructionDTO rebuilds an Order from storage. Repository use only;
// it bypasses creation validation because the persisted state was
// validated when the aggregate was first created.
type ReconstructionDTO struct {
	ID             string
	Number         int64
	UserID         string
	VisitorName    string
	TotalPrice     shared.Money
	PaymentID      string
	PaymentDetails string
	Combos         []ComboItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RebuildFromDTO reconstructs the aggregate without recording events.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:             dto.ID,
		number:         dto.Number,
		userID:         dto.UserID,
		visitorName:    dto.VisitorName,
		totalPrice:     dto.TotalPrice,
		paymentID:      dto.PaymentID,
		paymentDetails: dto.PaymentDetails,
		combos:         dto.Combos,
		createdAt:      dto.CreatedAt,
		updatedAt:      dto.UpdatedAt,
	}
}

// ItemReconstructionDTO rebuilds a ComboItem from storage.
type ItemReconstructionDTO struct {
	ID         string
	OrderID    string
	ComboID    string
	Quantity   int
	TotalPrice shared.Money
	Annotation string
}

// RebuildItemFromDTO reconstructs a line item. Repository use only.
func RebuildItemFromDTO(dto ItemReconstructionDTO) ComboItem {
	return ComboItem{
		id:         dto.ID,
		orderID:    dto.OrderID,
		comboID:    dto.ComboID,
		quantity:   dto.Quantity,
		totalPrice: dto.TotalPrice,
		annotation: dto.Annotation,
	}
}

// Compile-time check that Order implements AggregateRoot.
var _ shared.AggregateRoot = (*Order)(nil)
