// Package order exposes the order endpoints. Controllers parse and
// bind, delegate to the application services, and leave status code
// mapping to the response package.
package order

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/order-service/api/ctxutil"
	"github.com/quickbite/order-service/api/response"
	orderapp "github.com/quickbite/order-service/application/order"
)

// UserIDHeader carries the authenticated user id set by the edge
// authentication layer.
const UserIDHeader = "X-User-ID"

// CreationService is what the controller needs from the write side.
type CreationService interface {
	CreateOrder(ctx context.Context, req orderapp.CreateOrderRequest) (*orderapp.CreateOrderResponse, error)
}

// QueryService is what the controller needs from the read side.
type QueryService interface {
	GetOrders(ctx context.Context, page, pageSize int, userID string) (*orderapp.OrderListResponse, error)
	GetOrderByID(ctx context.Context, id string) (*orderapp.OrderDetailResponse, error)
}

type Controller struct {
	creation CreationService
	queries  QueryService
}

func NewController(creation CreationService, queries QueryService) *Controller {
	return &Controller{creation: creation, queries: queries}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orderGroup := router.Group("/orders")
	{
		orderGroup.POST("", c.CreateOrder)
		orderGroup.GET("", c.ListOrders)
		orderGroup.GET("/:id", c.GetOrder)
	}
}

// CreateOrder handles POST /api/v1/orders.
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}
	req.UserID = ctx.GetHeader(UserIDHeader)

	created, err := c.creation.CreateOrder(ctxutil.WithRequestID(ctx), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleCreated(ctx, created, "order created successfully")
}

// ListOrders handles GET /api/v1/orders.
func (c *Controller) ListOrders(ctx *gin.Context) {
	page := parseIntQuery(ctx, "page", 1)
	pageSize := parseIntQuery(ctx, "pageSize", 0)
	userID := ctx.Query("userId")

	list, err := c.queries.GetOrders(ctxutil.WithRequestID(ctx), page, pageSize, userID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandlePaginated(ctx, list.Data, response.Pagination{
		Page:       list.Page,
		PageSize:   list.PageSize,
		TotalItems: list.TotalItems,
		TotalPages: list.TotalPages,
	}, "orders retrieved successfully")
}

// GetOrder handles GET /api/v1/orders/:id.
func (c *Controller) GetOrder(ctx *gin.Context) {
	orderID := ctx.Param("id")

	detail, err := c.queries.GetOrderByID(ctxutil.WithRequestID(ctx), orderID)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}

	response.HandleSuccess(ctx, detail, "order retrieved successfully")
}

// parseIntQuery ignores malformed values; the query service clamps
// out-of-range pages anyway.
func parseIntQuery(ctx *gin.Context, name string, fallback int) int {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
