// Package api wires controllers and middleware onto the gin engine.
package api

import (
	"github.com/gin-gonic/gin"

	"shopcore/api/cart"
	"shopcore/api/catalog"
	"shopcore/api/health"
	"shopcore/api/middleware"
	"shopcore/config"
)

// Router owns the gin engine and route registration.
type Router struct {
	engine             *gin.Engine
	config             *config.Config
	healthController   *health.Controller
	cartController     *cart.Controller
	productController  *catalog.ProductController
	categoryController *catalog.CategoryController
}

func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	cartController *cart.Controller,
	productController *catalog.ProductController,
	categoryController *catalog.CategoryController,
) *Router {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: the request id must exist before anything
	// logs, and recovery must wrap everything below it.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:             engine,
		config:             cfg,
		healthController:   healthController,
		cartController:     cartController,
		productController:  productController,
		categoryController: categoryController,
	}
}

// SetupRoutes registers every controller under /api/v1.
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		r.healthController.RegisterRoutes(apiGroup)
		r.cartController.RegisterRoutes(apiGroup)
		r.productController.RegisterRoutes(apiGroup)
		r.categoryController.RegisterRoutes(apiGroup)
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine returns the underlying gin engine.
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
