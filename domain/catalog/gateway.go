// Package catalog defines the contract of the external catalog service
// that prices combos. The order orchestrator only passes product
// identifiers through; pricing stays the catalog's responsibility.
package catalog

import (
	"context"
	"time"

	"github.com/quickbite/order-service/domain/shared"
)

// ComboSelection names the products of one requested combo. Every field
// is optional; a combo may be just a sandwich or just a drink.
type ComboSelection struct {
	SandwichID string
	SideID     string
	DrinkID    string
	DessertID  string
}

// Product is a catalog product inside a combo.
type Product struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       shared.Money
}

// Combo is a priced catalog combo.
type Combo struct {
	ID          string
	Name        string
	Description string
	Price       shared.Money
	Products    []Product
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Gateway resolves combo selections into priced catalog data.
type Gateway interface {
	// CreateCombo registers the selection with the catalog and returns
	// the priced combo.
	CreateCombo(ctx context.Context, selection ComboSelection) (*Combo, error)

	// GetComboByID loads an existing combo for read-path enrichment.
	GetComboByID(ctx context.Context, id string) (*Combo, error)
}
