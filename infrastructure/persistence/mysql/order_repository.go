package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
	"github.com/quickbite/order-service/infrastructure/persistence"
	"github.com/quickbite/order-service/infrastructure/persistence/mysql/po"
)

// OrderRepository is the MySQL/GORM implementation of the order
// repository. It only persists aggregates; events are collected by the
// unit of work and saved to the outbox.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the repository over a shared connection
// pool.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// getDB returns the transaction from context when the call runs inside
// a unit of work, the pooled handle otherwise.
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Create inserts the order row and every line-item row atomically and
// returns the aggregate rebuilt with its database-assigned number.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return r.createWithTx(tx, o)
	}

	var created *order.Order
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var txErr error
		created, txErr = r.createWithTx(tx, o)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *OrderRepository) createWithTx(tx *gorm.DB, o *order.Order) (*order.Order, error) {
	orderPO, itemPOs := po.FromOrderDomain(o)
	// Let the database assign the sequential display number.
	orderPO.Number = 0

	if err := tx.Create(orderPO).Error; err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return nil, fmt.Errorf("insert order combo items: %w", err)
		}
	}

	// Read the row back so the returned aggregate carries the assigned
	// number.
	var saved po.OrderPO
	if err := tx.First(&saved, "id = ?", o.ID()).Error; err != nil {
		return nil, fmt.Errorf("reload created order: %w", err)
	}
	return saved.ToDomain(itemPOs), nil
}

// FindByID loads the order row and its line items, assembling the full
// aggregate. A missing order is (nil, nil).
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := r.getDB(ctx)

	var orderPO po.OrderPO
	if err := db.First(&orderPO, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query order: %w", err)
	}

	// Items are queried separately; Preload would blur the aggregate
	// boundary.
	var itemPOs []po.OrderComboItemPO
	if err := db.Where("order_id = ?", id).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, fmt.Errorf("query order combo items: %w", err)
	}

	return orderPO.ToDomain(itemPOs), nil
}

// FindMany lists orders newest-first. An empty userID applies no
// ownership filter; whether unfiltered listing is acceptable is decided
// at the endpoint.
func (r *OrderRepository) FindMany(ctx context.Context, params shared.PaginationParams, userID string) (shared.Page[*order.Order], error) {
	db := r.getDB(ctx)

	query := db.Model(&po.OrderPO{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var totalItems int64
	if err := query.Count(&totalItems).Error; err != nil {
		return shared.Page[*order.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	var orderPOs []po.OrderPO
	if err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.Size).
		Find(&orderPOs).Error; err != nil {
		return shared.Page[*order.Order]{}, fmt.Errorf("query orders: %w", err)
	}

	orders := make([]*order.Order, len(orderPOs))
	for i, orderPO := range orderPOs {
		var itemPOs []po.OrderComboItemPO
		if err := db.Where("order_id = ?", orderPO.ID).Order("id ASC").Find(&itemPOs).Error; err != nil {
			return shared.Page[*order.Order]{}, fmt.Errorf("query order combo items: %w", err)
		}
		orders[i] = orderPO.ToDomain(itemPOs)
	}

	return shared.NewPage(orders, totalItems, params), nil
}

// Compile-time interface implementation check.
var _ order.Repository = (*OrderRepository)(nil)
