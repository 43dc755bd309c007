package router

import (
	"github.com/gin-gonic/gin"

	"github.com/sobitas/backend/internal/interfaces/http/handler"
	"github.com/sobitas/backend/internal/interfaces/http/middleware"
)

// Handlers groups the handlers wired into the HTTP router
type Handlers struct {
	Documents *handler.DocumentHandler
	Products  *handler.ProductHandler
	Customers *handler.CustomerHandler
	Health    *handler.HealthHandler
}

// Config holds router configuration
type Config struct {
	CORSAllowOrigins []string
}

// Setup registers middleware and all API routes on the engine
func Setup(engine *gin.Engine, h Handlers, cfg Config, extra ...gin.HandlerFunc) {
	middleware.SetupValidator()
	engine.Use(middleware.RequestID())
	for _, mw := range extra {
		engine.Use(mw)
	}
	if len(cfg.CORSAllowOrigins) > 0 {
		engine.Use(middleware.CORSWithOrigins(cfg.CORSAllowOrigins))
	}

	engine.GET("/health", h.Health.Liveness)
	engine.GET("/ready", h.Health.Readiness)

	api := engine.Group("/api/v1")

	documents := api.Group("/documents/:type")
	{
		documents.POST("", h.Documents.Create)
		documents.GET("", h.Documents.List)
		documents.GET("/:id", h.Documents.Get)
		documents.GET("/number/:year/:seq", h.Documents.GetByNumber)
		documents.PUT("/:id", h.Documents.Update)
		documents.DELETE("/:id", h.Documents.Delete)
	}

	products := api.Group("/catalog/products")
	{
		products.POST("", h.Products.Create)
		products.GET("", h.Products.List)
		products.GET("/:id", h.Products.Get)
		products.PUT("/:id", h.Products.Update)
		products.DELETE("/:id", h.Products.Delete)
	}

	clients := api.Group("/partners/clients")
	{
		clients.POST("", h.Customers.Create)
		clients.GET("", h.Customers.List)
		clients.GET("/:id", h.Customers.Get)
		clients.PUT("/:id", h.Customers.Update)
		clients.DELETE("/:id", h.Customers.Delete)
	}
}
