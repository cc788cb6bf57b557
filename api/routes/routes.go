package routes

import (
	"github.com/rauf-alluviam/auto-rack-sub000/api/handlers"
	"github.com/rauf-alluviam/auto-rack-sub000/api/middleware"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/auth"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/models"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SetupRoutes sets up all the routes for the server. The order paths
// keep their legacy shapes: three creation endpoints with different
// contracts, soft-auth reads, and hard-auth seller mutations.
func SetupRoutes(r *gin.Engine, svc service.Service, tm *auth.TokenManager, log *logrus.Logger) {
	// Health check
	r.GET("/health", handlers.HealthCheck)

	optionalAuth := middleware.OptionalAuth(tm, log)
	requireAuth := middleware.RequireAuth(tm, log)

	// Order intake and listing
	orderHandler := handlers.NewOrderHandler(svc, log)
	r.POST("/order", optionalAuth, orderHandler.CreateOrder)
	r.POST("/orders/create", optionalAuth, orderHandler.CreateOrderDetailed)
	r.POST("/place_order", optionalAuth, orderHandler.PlaceOrder)
	r.GET("/orders", optionalAuth, orderHandler.ListOrders)
	r.GET("/orders/User/:userId", optionalAuth, orderHandler.ListUserOrders)

	// Acceptance and progression
	r.POST("/orders/accept", requireAuth, orderHandler.AcceptOrder)
	r.POST("/orders/update", requireAuth, orderHandler.UpdateOrderStatus)
	r.GET("/orders/status", requireAuth, orderHandler.ListTracking)

	// Seller views; only the dashboard enforces the seller role
	sellerHandler := handlers.NewSellerHandler(svc, log)
	seller := r.Group("/seller", requireAuth)
	{
		seller.GET("/dashboard", middleware.RequireRole(models.RoleSeller, log), sellerHandler.Dashboard)
		seller.GET("/history", sellerHandler.History)
		seller.GET("/status", sellerHandler.StatusBoard)
	}

	// Inventory; PUT and POST share one adjustment handler
	inventoryHandler := handlers.NewInventoryHandler(svc, log)
	r.GET("/inventory", optionalAuth, inventoryHandler.List)
	r.PUT("/inventory", requireAuth, inventoryHandler.Adjust)
	r.POST("/inventory", requireAuth, inventoryHandler.Adjust)
	r.POST("/inventory/items", requireAuth, inventoryHandler.CreateItem)
}
