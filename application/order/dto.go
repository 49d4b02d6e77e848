package order

import (
	"time"

	"github.com/quickbite/order-service/domain/catalog"
	"github.com/quickbite/order-service/domain/order"
	"github.com/quickbite/order-service/domain/user"
)

// CreateOrderRequest is the inbound contract of the creation workflow.
// UserID comes from the authentication context, never from the body.
// Validation happens in the service before any external call, so the
// binding tags stay permissive on purpose.
type CreateOrderRequest struct {
	UserID         string              `json:"-"`
	VisitorName    string              `json:"visitorName"`
	PaymentMethod  string              `json:"paymentMethod"`
	PaymentDetails string              `json:"paymentDetails"`
	Combos         []ComboOrderRequest `json:"combos"`
}

// ComboOrderRequest is one requested combo. Only the product category
// identifiers are forwarded to the catalog; quantity and annotation
// stay local to the order.
type ComboOrderRequest struct {
	SandwichID string `json:"sandwichId"`
	SideID     string `json:"sideId"`
	DrinkID    string `json:"drinkId"`
	DessertID  string `json:"dessertId"`
	Quantity   int    `json:"quantity"`
	Annotation string `json:"annotation"`
}

// CreateOrderResponse is returned on 201.
type CreateOrderResponse struct {
	ID             string  `json:"id"`
	Number         int64   `json:"numberId"`
	TotalPrice     float64 `json:"totalPrice"`
	PaymentDetails string  `json:"paymentDetails,omitempty"`
}

// OrderSummary is one row of the listing endpoint.
type OrderSummary struct {
	ID          string     `json:"id"`
	Number      int64      `json:"number"`
	UserID      *string    `json:"userId,omitempty"`
	VisitorName *string    `json:"visitorName,omitempty"`
	TotalPrice  float64    `json:"totalPrice"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// OrderListResponse is the paginated listing payload.
type OrderListResponse struct {
	Data       []OrderSummary `json:"data"`
	TotalItems int64          `json:"totalItems"`
	Page       int            `json:"currentPage"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
}

// ComboProductDetail is a catalog product inside an enriched combo.
type ComboProductDetail struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

// ComboDetail joins a line item with its catalog enrichment.
type ComboDetail struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       float64              `json:"price"`
	Quantity    int                  `json:"quantity"`
	TotalPrice  float64              `json:"totalPrice"`
	Annotation  *string              `json:"annotation,omitempty"`
	Products    []ComboProductDetail `json:"products"`
}

// UserDetail is the profile enrichment on the detail view.
type UserDetail struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	TaxVat string `json:"taxVat"`
}

// OrderDetailResponse is the full detail view of one order.
type OrderDetailResponse struct {
	OrderSummary
	PaymentID      *string       `json:"paymentId,omitempty"`
	PaymentDetails *string       `json:"paymentDetails,omitempty"`
	Combos         []ComboDetail `json:"combos"`
	User           *UserDetail   `json:"user,omitempty"`
}

func toOrderSummary(o *order.Order) OrderSummary {
	summary := OrderSummary{
		ID:         o.ID(),
		Number:     o.Number(),
		TotalPrice: o.TotalPrice().Float(),
		CreatedAt:  o.CreatedAt(),
	}
	if id, ok := o.UserID(); ok {
		summary.UserID = &id
	}
	if name, ok := o.VisitorName(); ok {
		summary.VisitorName = &name
	}
	if updated := o.UpdatedAt(); !updated.Equal(o.CreatedAt()) {
		summary.UpdatedAt = &updated
	}
	return summary
}

func toComboDetail(item order.ComboItem, combo *catalog.Combo) ComboDetail {
	detail := ComboDetail{
		ID:         item.ComboID(),
		Quantity:   item.Quantity(),
		TotalPrice: item.TotalPrice().Float(),
	}
	if annotation, ok := item.Annotation(); ok {
		detail.Annotation = &annotation
	}
	if combo != nil {
		detail.Name = combo.Name
		detail.Description = combo.Description
		detail.Price = combo.Price.Float()
		detail.Products = make([]ComboProductDetail, len(combo.Products))
		for i, p := range combo.Products {
			detail.Products[i] = ComboProductDetail{
				ID:          p.ID,
				Name:        p.Name,
				Description: p.Description,
				Category:    p.Category,
				Price:       p.Price.Float(),
			}
		}
	}
	return detail
}

func toUserDetail(u *user.User) *UserDetail {
	if u == nil {
		return nil
	}
	return &UserDetail{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		TaxVat: u.TaxVat,
	}
}
