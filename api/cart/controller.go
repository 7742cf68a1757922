// Package cart exposes the shopping cart HTTP endpoints.
package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopcore/api/ctxutil"
	"shopcore/api/middleware"
	"shopcore/api/response"
	appcart "shopcore/application/cart"
)

// Controller handles /cart routes. The session id identifies the cart; it
// arrives in the body for mutations, and as a query parameter or the
// X-Session-ID header for reads and deletes.
type Controller struct {
	service *appcart.Service
}

func NewController(service *appcart.Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/cart")
	{
		group.GET("", c.GetCart)
		group.DELETE("", c.ClearCart)
		group.POST("/items", c.AddItem)
		group.PUT("/items/:id", c.UpdateQuantity)
		group.DELETE("/items/:id", c.RemoveItem)
		group.POST("/merge", c.MergeCarts)
	}
}

// sessionID resolves the session from the query string or header.
func sessionID(ctx *gin.Context) string {
	if id := ctx.Query("session_id"); id != "" {
		return id
	}
	return ctx.GetHeader(middleware.SessionIDHeader)
}

// GetCart returns the session's cart, creating an empty one on first
// access.
// GET /api/v1/cart?session_id=...
func (c *Controller) GetCart(ctx *gin.Context) {
	id := sessionID(ctx)
	if id == "" {
		response.HandleError(ctx, nil, "session_id is required", http.StatusBadRequest)
		return
	}

	dto, err := c.service.GetCart(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "cart retrieved")
}

// AddItem adds a product to the cart.
// POST /api/v1/cart/items
func (c *Controller) AddItem(ctx *gin.Context) {
	var cmd appcart.AddItemCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}

	dto, err := c.service.AddItem(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, dto, "item added to cart")
}

type updateQuantityRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=100"`
}

// UpdateQuantity sets a new quantity on a cart item.
// PUT /api/v1/cart/items/:id
func (c *Controller) UpdateQuantity(ctx *gin.Context) {
	var req updateQuantityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}

	dto, err := c.service.UpdateQuantity(ctxutil.WithRequestID(ctx), appcart.UpdateQuantityCommand{
		SessionID: req.SessionID,
		ItemID:    ctx.Param("id"),
		Quantity:  req.Quantity,
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "quantity updated")
}

// RemoveItem removes one item from the cart.
// DELETE /api/v1/cart/items/:id?session_id=...
func (c *Controller) RemoveItem(ctx *gin.Context) {
	id := sessionID(ctx)
	if id == "" {
		response.HandleError(ctx, nil, "session_id is required", http.StatusBadRequest)
		return
	}

	dto, err := c.service.RemoveItem(ctxutil.WithRequestID(ctx), appcart.RemoveItemCommand{
		SessionID: id,
		ItemID:    ctx.Param("id"),
	})
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "item removed")
}

// ClearCart empties the cart, or deletes it outright with purge=true.
// DELETE /api/v1/cart?session_id=...[&purge=true]
func (c *Controller) ClearCart(ctx *gin.Context) {
	id := sessionID(ctx)
	if id == "" {
		response.HandleError(ctx, nil, "session_id is required", http.StatusBadRequest)
		return
	}

	if ctx.Query("purge") == "true" {
		if err := c.service.DeleteCart(ctxutil.WithRequestID(ctx), id); err != nil {
			response.HandleAppError(ctx, err)
			return
		}
		response.HandleNoContent(ctx)
		return
	}

	dto, err := c.service.ClearCart(ctxutil.WithRequestID(ctx), id)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "cart cleared")
}

// MergeCarts folds the source session's cart into the target session's.
// POST /api/v1/cart/merge
func (c *Controller) MergeCarts(ctx *gin.Context) {
	var cmd appcart.MergeCommand
	if err := ctx.ShouldBindJSON(&cmd); err != nil {
		response.HandleError(ctx, err, "invalid request body", http.StatusBadRequest)
		return
	}

	dto, err := c.service.MergeCarts(ctxutil.WithRequestID(ctx), cmd)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "carts merged")
}
