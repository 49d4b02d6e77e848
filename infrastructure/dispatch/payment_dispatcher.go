package dispatch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/payment"
	"github.com/quickbite/order-service/pkg/logger"
)

// PaymentDispatcher is the synchronous strategy: start the payment with
// the payment service, then move the external status record to pending
// payment. The caller gets the payment reference back in the response.
type PaymentDispatcher struct {
	payments payment.Gateway
	statuses payment.StatusGateway
}

func NewPaymentDispatcher(payments payment.Gateway, statuses payment.StatusGateway) *PaymentDispatcher {
	return &PaymentDispatcher{payments: payments, statuses: statuses}
}

func (d *PaymentDispatcher) Dispatch(ctx context.Context, req order.DispatchRequest) (order.DispatchResult, error) {
	charges := make([]payment.ComboCharge, 0, len(req.Combos))
	for _, combo := range req.Combos {
		charges = append(charges, payment.ComboCharge{
			ID:          combo.ID,
			Name:        combo.Name,
			Description: combo.Description,
			Price:       combo.Price,
			Quantity:    combo.Quantity,
		})
	}

	resp, err := d.payments.CreatePayment(ctx, payment.CreatePaymentRequest{
		OrderID: req.Order.ID(),
		Combos:  charges,
	})
	if err != nil {
		return order.DispatchResult{}, fmt.Errorf("create payment: %w", err)
	}

	if err := d.statuses.UpdateOrderStatus(ctx, payment.UpdateOrderStatusRequest{
		OrderID: req.Order.ID(),
		Status:  string(order.StatusPendingPayment),
	}); err != nil {
		return order.DispatchResult{}, fmt.Errorf("update order status: %w", err)
	}

	logger.Info("payment created for order",
		zap.String("order_id", req.Order.ID()),
		zap.String("payment_id", resp.PaymentID))
	return order.DispatchResult{
		PaymentID:      resp.PaymentID,
		PaymentDetails: resp.PaymentDetails,
	}, nil
}
