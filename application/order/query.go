package order

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quickbite/order-service/domain/catalog"
	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
	"github.com/quickbite/order-service/domain/user"
)

// QueryService is the read path: paginated listing and detail lookup
// with catalog and user enrichment. No business logic beyond pagination
// defaulting lives here.
type QueryService struct {
	orderRepo order.Repository
	catalog   catalog.Gateway
	users     user.Gateway
}

// NewQueryService wires the read path.
func NewQueryService(orderRepo order.Repository, catalogGateway catalog.Gateway, userGateway user.Gateway) *QueryService {
	return &QueryService{
		orderRepo: orderRepo,
		catalog:   catalogGateway,
		users:     userGateway,
	}
}

// GetOrders lists orders. An empty userID returns all orders; the
// endpoint currently has no tenant scoping, matching the repository
// contract.
func (s *QueryService) GetOrders(ctx context.Context, page, pageSize int, userID string) (*OrderListResponse, error) {
	params := shared.NewPaginationParams(page, pageSize)

	result, err := s.orderRepo.FindMany(ctx, params, userID)
	if err != nil {
		return nil, shared.NewIntegrationError("order repository", err)
	}

	summaries := make([]OrderSummary, len(result.Data))
	for i, o := range result.Data {
		summaries[i] = toOrderSummary(o)
	}

	return &OrderListResponse{
		Data:       summaries,
		TotalItems: result.TotalItems,
		Page:       result.Current,
		PageSize:   result.Size,
		TotalPages: result.TotalPages,
	}, nil
}

// GetOrderByID loads the full detail view. Line items are enriched with
// catalog data concurrently; the user profile is fetched when the order
// belongs to an authenticated user.
func (s *QueryService) GetOrderByID(ctx context.Context, id string) (*OrderDetailResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewIntegrationError("order repository", err)
	}
	if o == nil {
		return nil, order.NewOrderNotFoundError(id)
	}

	items := o.Combos()
	combos := make([]*catalog.Combo, len(items))
	var profile *user.User

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			combo, err := s.catalog.GetComboByID(gctx, item.ComboID())
			if err != nil {
				return shared.NewIntegrationError("catalog service", err)
			}
			combos[i] = combo
			return nil
		})
	}
	if userID, ok := o.UserID(); ok {
		g.Go(func() error {
			u, err := s.users.GetUserByID(gctx, userID)
			if err != nil {
				return shared.NewIntegrationError("user service", err)
			}
			profile = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	detail := &OrderDetailResponse{
		OrderSummary: toOrderSummary(o),
		Combos:       make([]ComboDetail, len(items)),
		User:         toUserDetail(profile),
	}
	if paymentID, ok := o.PaymentID(); ok {
		detail.PaymentID = &paymentID
	}
	if paymentDetails, ok := o.PaymentDetails(); ok {
		detail.PaymentDetails = &paymentDetails
	}
	for i, item := range items {
		detail.Combos[i] = toComboDetail(item, combos[i])
	}
	return detail, nil
}
