// Package ctxutil bridges gin contexts and standard contexts for request
// id propagation into lower layers.
package ctxutil

import (
	"context"

	"github.com/gin-gonic/gin"

	"shopcore/api/response"
	"shopcore/infrastructure/persistence"
)

func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
