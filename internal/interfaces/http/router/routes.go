package router

import (
	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/interfaces/http/handler"
)

// Handlers bundles the hub's HTTP handlers for route registration
type Handlers struct {
	Orders      *handler.OrdersHandler
	Marketplace *handler.MarketplaceHandler
	Auth        *handler.AuthHandler
	System      *handler.SystemHandler
}

// BuildRoutes assembles the hub's versioned API. protect guards the
// order and marketplace read endpoints when authentication is enabled;
// pass nil to leave them open.
func BuildRoutes(engine *gin.Engine, h Handlers, protect gin.HandlerFunc) {
	r := NewRouter(engine, WithAPIVersion("v1"))

	ordersGroup := NewDomainGroup("/orders").
		GET("/search", h.Orders.Search).
		GET("/stats", h.Orders.Stats)

	marketplacesGroup := NewDomainGroup("/marketplaces").
		GET("", h.Marketplace.List).
		GET("/:marketplace/config", h.Marketplace.GetConfig).
		GET("/:marketplace/orders", h.Orders.ListByMarketplace).
		GET("/:marketplace/auth/validate", h.Marketplace.ValidateAuth)

	if protect != nil {
		ordersGroup.Use(protect)
		marketplacesGroup.Use(protect)
	}

	// Login and verify stay open; verify authenticates explicitly
	authGroup := NewDomainGroup("/auth").
		POST("/login", h.Auth.Login).
		GET("/verify", h.Auth.Verify)

	systemGroup := NewDomainGroup("/system").
		GET("/ping", h.System.Ping)

	r.Register(ordersGroup).
		Register(marketplacesGroup).
		Register(authGroup).
		Register(systemGroup).
		Setup()

	engine.GET("/health", h.System.Health)
}
