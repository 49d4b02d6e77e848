// Package payment defines the contracts of the external payment and
// status services used by the synchronous dispatch strategy.
package payment

import "context"

// ComboCharge is one priced combo of a payment request. Price is in
// major currency units already rounded to 2 decimal places; that
// rounding is the only place the module leaves exact cent arithmetic.
type ComboCharge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

// CreatePaymentRequest asks the payment service to start a payment for
// an order.
type CreatePaymentRequest struct {
	OrderID string        `json:"orderId"`
	Combos  []ComboCharge `json:"combos"`
}

// CreatePaymentResponse carries the reference the client needs to
// complete the payment.
type CreatePaymentResponse struct {
	PaymentID      string `json:"paymentId"`
	PaymentDetails string `json:"paymentDetails"`
}

// Gateway starts payments with the external payment service.
type Gateway interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*CreatePaymentResponse, error)
}

// UpdateOrderStatusRequest transitions an order's external status record.
type UpdateOrderStatusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

// StatusGateway updates the order status record kept by the status
// service.
type StatusGateway interface {
	UpdateOrderStatus(ctx context.Context, req UpdateOrderStatusRequest) error
}
