package order

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickbite/order-service/domain/catalog"
	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
)

// fakeCatalog is hit concurrently by the pricing fan-out, so the call
// counter is guarded.
type fakeCatalog struct {
	mu        sync.Mutex
	calls     int
	createErr error
	price     float64
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeCatalog) CreateCombo(ctx context.Context, selection catalog.ComboSelection) (*catalog.Combo, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &catalog.Combo{
		ID:          "combo-1",
		Name:        "Classic Combo",
		Description: "sandwich, side and drink",
		Price:       shared.MoneyFromFloat(f.price, shared.DefaultCurrency),
	}, nil
}

func (f *fakeCatalog) GetComboByID(ctx context.Context, id string) (*catalog.Combo, error) {
	return nil, errors.New("not used in creation")
}

type fakeRepository struct {
	createCalls int
	createErr   error
	created     *order.Order
	byID        map[string]*order.Order
	page        shared.Page[*order.Order]
}

func (f *fakeRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = o
	return o, nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	return f.byID[id], nil
}

func (f *fakeRepository) FindMany(ctx context.Context, params shared.PaginationParams, userID string) (shared.Page[*order.Order], error) {
	return f.page, nil
}

type fakeDispatcher struct {
	calls  int
	result order.DispatchResult
	err    error
	last   order.DispatchRequest
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, req order.DispatchRequest) (order.DispatchResult, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return order.DispatchResult{}, f.err
	}
	return f.result, nil
}

type fakeUnitOfWork struct {
	executeErr error
	registered []shared.AggregateRoot
}

func (f *fakeUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.executeErr != nil {
		return f.executeErr
	}
	return fn(ctx)
}

func (f *fakeUnitOfWork) RegisterNew(ctx context.Context, aggregate shared.AggregateRoot) {
	f.registered = append(f.registered, aggregate)
}

type serviceFixture struct {
	service    *Service
	catalog    *fakeCatalog
	repository *fakeRepository
	dispatcher *fakeDispatcher
	uow        *fakeUnitOfWork
}

func newServiceFixture() *serviceFixture {
	f := &serviceFixture{
		catalog:    &fakeCatalog{price: 10.0},
		repository: &fakeRepository{},
		dispatcher: &fakeDispatcher{},
		uow:        &fakeUnitOfWork{},
	}
	f.service = NewService(f.repository, f.catalog, f.dispatcher, f.uow)
	return f
}

func validRequest() CreateOrderRequest {
	return CreateOrderRequest{
		UserID:        "user-1",
		PaymentMethod: "QR_CODE",
		Combos: []ComboOrderRequest{
			{SandwichID: "sandwich-1", DrinkID: "drink-1", Quantity: 2},
		},
	}
}

func TestCreateOrderHappyPath(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.service.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, 20.0, resp.TotalPrice)
	assert.Equal(t, 1, f.catalog.callCount())
	assert.Equal(t, 1, f.repository.createCalls)
	assert.Equal(t, 1, f.dispatcher.calls)
	require.Len(t, f.uow.registered, 1)
	assert.Equal(t, resp.ID, f.uow.registered[0].ID())
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.PaymentMethod = "BITCOIN"

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrUnsupportedValue)
	assert.Zero(t, f.catalog.callCount())
	assert.Zero(t, f.repository.createCalls)
	assert.Zero(t, f.dispatcher.calls)
}

func TestCreateOrderRequiresUserOrVisitor(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.UserID = ""
	req.VisitorName = ""

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrMinimumResources)
	assert.Zero(t, f.catalog.callCount())
}

func TestCreateOrderAcceptsVisitorName(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.UserID = ""
	req.VisitorName = "Maria"

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.NoError(t, err)
}

func TestCreateOrderRequiresCombos(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.Combos = nil

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, shared.ErrMinimumResources)
	assert.Zero(t, f.catalog.callCount())
}

func TestCreateOrderRejectsZeroQuantityBeforePricing(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.Combos[0].Quantity = 0

	_, err := f.service.CreateOrder(context.Background(), req)
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)
	assert.Zero(t, f.catalog.callCount())
}

func TestCreateOrderCatalogFailureAbortsBeforePersist(t *testing.T) {
	f := newServiceFixture()
	f.catalog.createErr = errors.New("catalog down")

	_, err := f.service.CreateOrder(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrIntegration)
	assert.Zero(t, f.repository.createCalls)
	assert.Zero(t, f.dispatcher.calls)
}

func TestCreateOrderPersistFailureSkipsDispatch(t *testing.T) {
	f := newServiceFixture()
	f.repository.createErr = errors.New("insert failed")

	_, err := f.service.CreateOrder(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrIntegration)
	assert.Zero(t, f.dispatcher.calls)
}

func TestCreateOrderDispatchFailureAfterCommit(t *testing.T) {
	f := newServiceFixture()
	f.dispatcher.err = errors.New("broker unavailable")

	_, err := f.service.CreateOrder(context.Background(), validRequest())
	assert.ErrorIs(t, err, shared.ErrIntegration)
	// the order was committed before the dispatch attempt
	assert.Equal(t, 1, f.repository.createCalls)
}

func TestCreateOrderSyncDispatchAttachesPayment(t *testing.T) {
	f := newServiceFixture()
	f.dispatcher.result = order.DispatchResult{
		PaymentID:      "pay-1",
		PaymentDetails: "qr-code-payload",
	}

	resp, err := f.service.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "qr-code-payload", resp.PaymentDetails)
	paymentID, ok := f.repository.created.PaymentID()
	require.True(t, ok)
	assert.Equal(t, "pay-1", paymentID)
}

func TestCreateOrderDispatchRequestCarriesPricedCombos(t *testing.T) {
	f := newServiceFixture()
	f.catalog.price = 10.55

	_, err := f.service.CreateOrder(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, f.dispatcher.last.Combos, 1)
	combo := f.dispatcher.last.Combos[0]
	assert.Equal(t, "combo-1", combo.ID)
	assert.Equal(t, 10.55, combo.Price)
	assert.Equal(t, 2, combo.Quantity)
	assert.Equal(t, 21.10, f.dispatcher.last.Order.TotalPrice().Float())
}

func TestCreateOrderFansOutPerCombo(t *testing.T) {
	f := newServiceFixture()
	req := validRequest()
	req.Combos = append(req.Combos,
		ComboOrderRequest{SandwichID: "sandwich-2", Quantity: 1},
		ComboOrderRequest{DessertID: "dessert-1", Quantity: 3},
	)

	resp, err := f.service.CreateOrder(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 3, f.catalog.callCount())
	// 2 + 1 + 3 combos at 10.00 each
	assert.Equal(t, 60.0, resp.TotalPrice)
}
