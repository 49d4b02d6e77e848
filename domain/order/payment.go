package order

import (
	"strings"

	"github.com/quickbite/order-service/domain/shared"
)

// PaymentMethod enumerates the accepted payment options.
type PaymentMethod string

const (
	PaymentMethodQRCode     PaymentMethod = "QR_CODE"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
)

var paymentMethods = map[PaymentMethod]struct{}{
	PaymentMethodQRCode:     {},
	PaymentMethodCreditCard: {},
	PaymentMethodDebitCard:  {},
	PaymentMethodCash:       {},
}

// ParsePaymentMethod validates a raw value against the enumerated set.
// Matching is case-insensitive; the canonical upper-case form is
// returned. An empty or unknown value yields an unsupported-value error.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToUpper(raw))
	if _, ok := paymentMethods[method]; !ok {
		return "", shared.NewUnsupportedValueError("Payment Method")
	}
	return method, nil
}

// Status mirrors the order status record kept by the external status
// service. The orchestrator only ever writes StatusPendingPayment; the
// remaining values exist for the status transition contract.
type Status string

const (
	StatusPendingPayment Status = "PENDING_PAYMENT"
	StatusPayed          Status = "PAYED"
	StatusReceived       Status = "RECEIVED"
	StatusInPreparation  Status = "IN_PREPARATION"
	StatusReady          Status = "READY"
	StatusFinished       Status = "FINISHED"
)
