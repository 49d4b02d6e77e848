package order

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/order-service/api/response"
	orderapp "github.com/quickbite/order-service/application/order"
	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
)

type fakeCreation struct {
	last orderapp.CreateOrderRequest
	resp *orderapp.CreateOrderResponse
	err  error
}

func (f *fakeCreation) CreateOrder(ctx context.Context, req orderapp.CreateOrderRequest) (*orderapp.CreateOrderResponse, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fakeQueries struct {
	lastPage     int
	lastPageSize int
	list         *orderapp.OrderListResponse
	detail       *orderapp.OrderDetailResponse
	err          error
}

func (f *fakeQueries) GetOrders(ctx context.Context, page, pageSize int, userID string) (*orderapp.OrderListResponse, error) {
	f.lastPage = page
	f.lastPageSize = pageSize
	if f.err != nil {
		return nil, f.err
	}
	return f.list, nil
}

func (f *fakeQueries) GetOrderByID(ctx context.Context, id string) (*orderapp.OrderDetailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.detail, nil
}

func setupRouter(creation *fakeCreation, queries *fakeQueries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewController(creation, queries).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func TestCreateOrderReturns201(t *testing.T) {
	creation := &fakeCreation{resp: &orderapp.CreateOrderResponse{
		ID:         "order-1",
		Number:     7,
		TotalPrice: 20.0,
	}}
	engine := setupRouter(creation, &fakeQueries{})

	body, _ := json.Marshal(map[string]any{
		"paymentMethod": "QR_CODE",
		"combos": []map[string]any{
			{"sandwichId": "sandwich-1", "quantity": 2},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(UserIDHeader, "user-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "user-1", creation.last.UserID)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)

	data, _ := json.Marshal(envelope.Data)
	var resp orderapp.CreateOrderResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	assert.Equal(t, "order-1", resp.ID)
	assert.Equal(t, int64(7), resp.Number)
	assert.Equal(t, 20.0, resp.TotalPrice)
}

func TestCreateOrderMalformedBodyReturns400(t *testing.T) {
	engine := setupRouter(&fakeCreation{}, &fakeQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderValidationErrorReturns400(t *testing.T) {
	creation := &fakeCreation{err: shared.NewMinimumResourcesError("Combos", "combos")}
	engine := setupRouter(creation, &fakeQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{"paymentMethod":"QR_CODE"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "MINIMUM_RESOURCES_NOT_REACHED", envelope.Error)
}

func TestCreateOrderUnsupportedPaymentReturns400(t *testing.T) {
	creation := &fakeCreation{err: shared.NewUnsupportedValueError("Payment Method")}
	engine := setupRouter(creation, &fakeQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{"paymentMethod":"BITCOIN"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "UNSUPPORTED_ARGUMENT_VALUE", envelope.Error)
}

func TestCreateOrderDispatchFailureReturns500(t *testing.T) {
	creation := &fakeCreation{err: shared.NewIntegrationError("order dispatch", errors.New("broker unavailable"))}
	engine := setupRouter(creation, &fakeQueries{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{"paymentMethod":"QR_CODE"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "INTEGRATION_ERROR", envelope.Error)
	assert.Contains(t, envelope.Message, "broker unavailable")
}

func TestListOrdersParsesPagination(t *testing.T) {
	queries := &fakeQueries{list: &orderapp.OrderListResponse{
		Data:       []orderapp.OrderSummary{{ID: "order-1"}},
		TotalItems: 15,
		Page:       2,
		PageSize:   10,
		TotalPages: 2,
	}}
	engine := setupRouter(&fakeCreation{}, queries)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=2&pageSize=10", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, queries.lastPage)
	assert.Equal(t, 10, queries.lastPageSize)

	var envelope response.PaginatedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, int64(15), envelope.Pagination.TotalItems)
	assert.Equal(t, 2, envelope.Pagination.TotalPages)
}

func TestListOrdersIgnoresMalformedPagination(t *testing.T) {
	queries := &fakeQueries{list: &orderapp.OrderListResponse{}}
	engine := setupRouter(&fakeCreation{}, queries)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?page=abc", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, queries.lastPage)
}

func TestGetOrderNotFoundReturns404(t *testing.T) {
	queries := &fakeQueries{err: order.NewOrderNotFoundError("missing")}
	engine := setupRouter(&fakeCreation{}, queries)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/missing", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var envelope response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "RESOURCE_NOT_FOUND", envelope.Error)
}

func TestGetOrderReturnsDetail(t *testing.T) {
	queries := &fakeQueries{detail: &orderapp.OrderDetailResponse{
		OrderSummary: orderapp.OrderSummary{ID: "order-1", Number: 7},
	}}
	engine := setupRouter(&fakeCreation{}, queries)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/order-1", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
