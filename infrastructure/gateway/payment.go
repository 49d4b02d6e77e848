package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/quickbite/order-service/domain/payment"
)

// PaymentClient starts payments with the external payment service.
type PaymentClient struct {
	rest *restClient
}

var _ payment.Gateway = (*PaymentClient)(nil)

func NewPaymentClient(cfg Config) *PaymentClient {
	return &PaymentClient{rest: newRESTClient(cfg)}
}

func (c *PaymentClient) CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.CreatePaymentResponse, error) {
	var resp payment.CreatePaymentResponse
	if err := c.rest.doJSON(ctx, http.MethodPost, "/create", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StatusClient updates the order status record kept by the status
// service.
type StatusClient struct {
	rest *restClient
}

var _ payment.StatusGateway = (*StatusClient)(nil)

func NewStatusClient(cfg Config) *StatusClient {
	return &StatusClient{rest: newRESTClient(cfg)}
}

type updateStatusBody struct {
	Status string `json:"status"`
}

func (c *StatusClient) UpdateOrderStatus(ctx context.Context, req payment.UpdateOrderStatusRequest) error {
	path := "/orders/" + url.PathEscape(req.OrderID) + "/status"
	return c.rest.doJSON(ctx, http.MethodPut, path, updateStatusBody{Status: req.Status}, nil)
}
