// Package po holds the persistence objects of the MySQL layer. They
// only map rows; no business logic and no GORM associations live here,
// so the aggregate boundary stays with the domain.
package po

import (
	"time"

	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/shared"
)

// OrderPO maps the orders table. Number is a sequential display id
// assigned by the database on insert.
type OrderPO struct {
	ID             string    `gorm:"primaryKey;size:64"`
	Number         int64     `gorm:"column:number;autoIncrement;uniqueIndex;not null"`
	UserID         *string   `gorm:"size:64;index"`
	VisitorName    *string   `gorm:"size:255"`
	TotalPrice     int64     `gorm:"not null"`
	TotalCurrency  string    `gorm:"size:3;not null"`
	PaymentID      *string   `gorm:"size:128"`
	PaymentDetails *string   `gorm:"size:512"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (OrderPO) TableName() string {
	return "orders"
}

// OrderComboItemPO maps the order_combo_items table. OrderID is stored
// as a plain column, never as a GORM association.
type OrderComboItemPO struct {
	ID            string  `gorm:"primaryKey;size:64"`
	OrderID       string  `gorm:"size:64;index;not null"`
	ComboID       string  `gorm:"size:64;not null"`
	Quantity      int     `gorm:"not null"`
	TotalPrice    int64   `gorm:"not null"`
	TotalCurrency string  `gorm:"size:3;not null"`
	Annotation    *string `gorm:"size:512"`
}

func (OrderComboItemPO) TableName() string {
	return "order_combo_items"
}

// FromOrderDomain converts the aggregate to persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderComboItemPO) {
	orderPO := &OrderPO{
		ID:            o.ID(),
		Number:        o.Number(),
		TotalPrice:    o.TotalPrice().Amount(),
		TotalCurrency: o.TotalPrice().Currency(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	if userID, ok := o.UserID(); ok {
		orderPO.UserID = &userID
	}
	if name, ok := o.VisitorName(); ok {
		orderPO.VisitorName = &name
	}
	if paymentID, ok := o.PaymentID(); ok {
		orderPO.PaymentID = &paymentID
	}
	if details, ok := o.PaymentDetails(); ok {
		orderPO.PaymentDetails = &details
	}

	items := o.Combos()
	itemPOs := make([]OrderComboItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = OrderComboItemPO{
			ID:            item.ID(),
			OrderID:       o.ID(),
			ComboID:       item.ComboID(),
			Quantity:      item.Quantity(),
			TotalPrice:    item.TotalPrice().Amount(),
			TotalCurrency: item.TotalPrice().Currency(),
		}
		if annotation, ok := item.Annotation(); ok {
			itemPOs[i].Annotation = &annotation
		}
	}

	return orderPO, itemPOs
}

// ToDomain rebuilds the aggregate from its rows.
func (p *OrderPO) ToDomain(itemPOs []OrderComboItemPO) *order.Order {
	items := make([]order.ComboItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		items[i] = order.RebuildItemFromDTO(order.ItemReconstructionDTO{
			ID:         itemPO.ID,
			OrderID:    itemPO.OrderID,
			ComboID:    itemPO.ComboID,
			Quantity:   itemPO.Quantity,
			TotalPrice: shared.NewMoney(itemPO.TotalPrice, itemPO.TotalCurrency),
			Annotation: deref(itemPO.Annotation),
		})
	}

	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:             p.ID,
		Number:         p.Number,
		UserID:         deref(p.UserID),
		VisitorName:    deref(p.VisitorName),
		TotalPrice:     shared.NewMoney(p.TotalPrice, p.TotalCurrency),
		PaymentID:      deref(p.PaymentID),
		PaymentDetails: deref(p.PaymentDetails),
		Combos:         items,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
