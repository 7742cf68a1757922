// Package catalog exposes the product and category HTTP endpoints.
package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopcore/api/ctxutil"
	"shopcore/api/response"
	appcatalog "shopcore/application/catalog"
)

// ProductController handles /products routes.
type ProductController struct {
	service *appcatalog.ProductService
}

func NewProductController(service *appcatalog.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/products")
	{
		group.GET("", c.ListProducts)
		group.GET("/search", c.SearchProducts)
		group.GET("/:id", c.GetProduct)
	}
}

// GetProduct returns one product.
// GET /api/v1/products/:id
func (c *ProductController) GetProduct(ctx *gin.Context) {
	dto, err := c.service.GetProduct(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "product retrieved")
}

// ListProducts returns a filtered product page.
// GET /api/v1/products?category_id=&q=&price_min=&price_max=&in_stock=&limit=&offset=
func (c *ProductController) ListProducts(ctx *gin.Context) {
	var query appcatalog.ListProductsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "invalid query parameters", http.StatusBadRequest)
		return
	}

	result, err := c.service.ListProducts(ctxutil.WithRequestID(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, result.Items, response.Pagination{
		Limit:      result.Limit,
		Offset:     result.Offset,
		TotalItems: result.Total,
	}, "products retrieved")
}

// SearchProducts runs a free-text search.
// GET /api/v1/products/search?q=...
func (c *ProductController) SearchProducts(ctx *gin.Context) {
	var query appcatalog.SearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.HandleError(ctx, err, "query parameter 'q' is required", http.StatusBadRequest)
		return
	}

	result, err := c.service.SearchProducts(ctxutil.WithRequestID(ctx), query)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandlePaginated(ctx, result.Items, response.Pagination{
		Limit:      result.Limit,
		Offset:     result.Offset,
		TotalItems: result.Total,
	}, "products retrieved")
}

// CategoryController handles /categories routes.
type CategoryController struct {
	service *appcatalog.CategoryService
}

func NewCategoryController(service *appcatalog.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

func (c *CategoryController) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/categories")
	{
		group.GET("", c.ListCategories)
		group.GET("/tree", c.GetCategoryTree)
		group.GET("/:id", c.GetCategory)
		group.GET("/:id/children", c.GetChildren)
	}
}

// GetCategory returns one category.
// GET /api/v1/categories/:id
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	dto, err := c.service.GetCategory(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dto, "category retrieved")
}

// ListCategories returns a flat category page.
// GET /api/v1/categories?limit=&offset=
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

	dtos, err := c.service.ListCategories(ctxutil.WithRequestID(ctx), limit, offset)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, dtos, "categories retrieved")
}

// GetCategoryTree returns all root categories with descendants.
// GET /api/v1/categories/tree
func (c *CategoryController) GetCategoryTree(ctx *gin.Context) {
	tree, err := c.service.GetCategoryTree(ctxutil.WithRequestID(ctx))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, tree, "category tree retrieved")
}

// GetChildren returns the direct children of a category.
// GET /api/v1/categories/:id/children
func (c *CategoryController) GetChildren(ctx *gin.Context) {
	children, err := c.service.GetChildren(ctxutil.WithRequestID(ctx), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, children, "categories retrieved")
}
