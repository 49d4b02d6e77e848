package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/quickbite/order-service/domain/catalog"
	"github.com/quickbite/order-service/domain/shared"
)

type createComboRequest struct {
	SandwichID string `json:"sandwichId,omitempty"`
	SideID     string `json:"sideId,omitempty"`
	DrinkID    string `json:"drinkId,omitempty"`
	DessertID  string `json:"dessertId,omitempty"`
}

type comboProductPayload struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type comboPayload struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Price       float64               `json:"price"`
	CreatedAt   string                `json:"createdAt"`
	UpdatedAt   string                `json:"updatedAt"`
	Products    []comboProductPayload `json:"products"`
}

// CatalogClient talks to the catalog service that owns combo pricing.
type CatalogClient struct {
	rest *restClient
}

var _ catalog.Gateway = (*CatalogClient)(nil)

func NewCatalogClient(cfg Config) *CatalogClient {
	return &CatalogClient{rest: newRESTClient(cfg)}
}

func (c *CatalogClient) CreateCombo(ctx context.Context, selection catalog.ComboSelection) (*catalog.Combo, error) {
	var payload comboPayload
	req := createComboRequest{
		SandwichID: selection.SandwichID,
		SideID:     selection.SideID,
		DrinkID:    selection.DrinkID,
		DessertID:  selection.DessertID,
	}
	if err := c.rest.doJSON(ctx, http.MethodPost, "/combos", req, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain()
}

func (c *CatalogClient) GetComboByID(ctx context.Context, id string) (*catalog.Combo, error) {
	var payload comboPayload
	if err := c.rest.doJSON(ctx, http.MethodGet, "/combos/"+url.PathEscape(id), nil, &payload); err != nil {
		return nil, err
	}
	return payload.toDomain()
}

func (p *comboPayload) toDomain() (*catalog.Combo, error) {
	if p.Price < 0 {
		return nil, fmt.Errorf("combo %s price: %w", p.ID, shared.ErrNegativeAmount)
	}
	price := shared.MoneyFromFloat(p.Price, shared.DefaultCurrency)

	products := make([]catalog.Product, 0, len(p.Products))
	for _, product := range p.Products {
		products = append(products, catalog.Product{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Category:    product.Category,
			Price:       shared.MoneyFromFloat(product.Price, shared.DefaultCurrency),
		})
	}

	return &catalog.Combo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		Products:    products,
		CreatedAt:   parseServiceTime(p.CreatedAt),
		UpdatedAt:   parseServiceTime(p.UpdatedAt),
	}, nil
}

// parseServiceTime tolerates the timestamp formats the collaborating
// services emit. A zero time is fine for display-only fields.
func parseServiceTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
