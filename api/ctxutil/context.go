// Package ctxutil bridges gin's per-request state into the plain
// context the lower layers receive.
package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/order-service/api/response"
	"github.com/quickbite/order-service/infrastructure/persistence"
)

// WithRequestID returns the request context tagged with the request id
// so SQL logs correlate with the access log.
func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
