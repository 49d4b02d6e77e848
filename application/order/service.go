/*
Package order is the application layer of the order subdomain: the
creation orchestrator and the read-side query service.

Creation workflow:
 1. Fail-fast validation, before any I/O.
 2. Concurrent catalog pricing fan-out, all-or-nothing.
 3. Aggregate construction (total = sum of line totals).
 4. Atomic persistence through the unit of work; the order.placed event
    goes to the outbox in the same transaction.
 5. Exactly one post-commit dispatch. A dispatch failure surfaces as an
    internal error without rolling back the committed order; the outbox
    worker covers redelivery for the event strategy.
*/
package order

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quickbite/order-service/domain/catalog"
	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
)

// Service orchestrates order creation.
type Service struct {
	orderRepo  order.Repository
	catalog    catalog.Gateway
	dispatcher order.Dispatcher
	uow        shared.UnitOfWork
}

// NewService wires the creation orchestrator.
func NewService(
	orderRepo order.Repository,
	catalogGateway catalog.Gateway,
	dispatcher order.Dispatcher,
	uow shared.UnitOfWork,
) *Service {
	return &Service{
		orderRepo:  orderRepo,
		catalog:    catalogGateway,
		dispatcher: dispatcher,
		uow:        uow,
	}
}

// pricedCombo pairs the catalog's answer with the requested quantity
// and the exact line total.
type pricedCombo struct {
	combo      *catalog.Combo
	quantity   int
	annotation string
	lineTotal  shared.Money
}

// CreateOrder runs the full creation workflow and returns the persisted
// order reference.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResponse, error) {
	if _, err := order.ParsePaymentMethod(req.PaymentMethod); err != nil {
		return nil, err
	}
	if req.UserID == "" && req.VisitorName == "" {
		return nil, shared.NewMinimumResourcesError("User", "userId", "visitorName")
	}
	if len(req.Combos) == 0 {
		return nil, shared.NewMinimumResourcesError("Combos", "combos")
	}
	for _, combo := range req.Combos {
		if combo.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
	}

	priced, err := s.priceCombos(ctx, req.Combos)
	if err != nil {
		return nil, err
	}

	items := make([]order.ComboItemRequest, len(priced))
	for i, p := range priced {
		items[i] = order.ComboItemRequest{
			ComboID:    p.combo.ID,
			Quantity:   p.quantity,
			UnitPrice:  p.combo.Price,
			Annotation: p.annotation,
		}
	}

	o, err := order.NewOrder(req.UserID, req.VisitorName, items)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = s.uow.Execute(ctx, func(ctx context.Context) error {
		var createErr error
		created, createErr = s.orderRepo.Create(ctx, o)
		if createErr != nil {
			return createErr
		}
		s.uow.RegisterNew(ctx, o)
		return nil
	})
	if err != nil {
		return nil, shared.NewIntegrationError("order repository", err)
	}

	result, err := s.dispatcher.Dispatch(ctx, order.DispatchRequest{
		Order:  created,
		Combos: dispatchCombos(priced),
	})
	if err != nil {
		// The order row is already committed; this asymmetry is
		// deliberate, see the package comment.
		return nil, shared.NewIntegrationError("order dispatch", err)
	}
	if result.PaymentID != "" || result.PaymentDetails != "" {
		created.AttachPayment(result.PaymentID, result.PaymentDetails)
	}

	return &CreateOrderResponse{
		ID:             created.ID(),
		Number:         created.Number(),
		TotalPrice:     created.TotalPrice().Float(),
		PaymentDetails: result.PaymentDetails,
	}, nil
}

// priceCombos fans out one catalog call per requested combo and waits
// for all of them. Any failure cancels the group and aborts the whole
// creation with nothing persisted.
func (s *Service) priceCombos(ctx context.Context, combos []ComboOrderRequest) ([]pricedCombo, error) {
	priced := make([]pricedCombo, len(combos))

	g, gctx := errgroup.WithContext(ctx)
	for i, combo := range combos {
		i, combo := i, combo
		g.Go(func() error {
			created, err := s.catalog.CreateCombo(gctx, catalog.ComboSelection{
				SandwichID: combo.SandwichID,
				SideID:     combo.SideID,
				DrinkID:    combo.DrinkID,
				DessertID:  combo.DessertID,
			})
			if err != nil {
				return shared.NewIntegrationError("catalog service", err)
			}

			lineTotal, err := order.LineTotal(created.Price, combo.Quantity)
			if err != nil {
				return err
			}

			priced[i] = pricedCombo{
				combo:      created,
				quantity:   combo.Quantity,
				annotation: combo.Annotation,
				lineTotal:  lineTotal,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return priced, nil
}

func dispatchCombos(priced []pricedCombo) []order.PricedCombo {
	combos := make([]order.PricedCombo, len(priced))
	for i, p := range priced {
		combos[i] = order.PricedCombo{
			ID:          p.combo.ID,
			Name:        p.combo.Name,
			Description: p.combo.Description,
			Price:       p.combo.Price.Float(),
			Quantity:    p.quantity,
		}
	}
	return combos
}
