package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/streetwear-admin-api/internal/application/analytics"
	"github.com/jhoicas/streetwear-admin-api/internal/application/audit"
	appinventory "github.com/jhoicas/streetwear-admin-api/internal/application/inventory"
	"github.com/jhoicas/streetwear-admin-api/internal/application/orders"
	"github.com/jhoicas/streetwear-admin-api/internal/application/usecase"
	"github.com/jhoicas/streetwear-admin-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	InvestmentUC *usecase.InvestmentUseCase
	StockUC      *appinventory.StockUseCase
	OrderUC      *orders.OrderUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	AuditUC      *audit.AuditUseCase
	JWTSecret    string
	JWTIssuer    string
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Storefront (público)
	storefront := api.Group("/storefront")
	storefrontHandler := NewStorefrontHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.StockUC)
	storefront.Get("/products", storefrontHandler.ListProducts)
	storefront.Get("/products/:id", storefrontHandler.GetProduct)
	storefront.Get("/products/:id/stock", stockHandler.ProductStock)

	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	orderHandler := NewOrderHandler(deps.OrderUC)

	// Checkout: cualquier identidad verificada
	api.Post("/orders", auth, orderHandler.Create)

	// Back-office (rol admin)
	admin := api.Group("/admin", auth, RequireRole(jwt.RoleAdmin))

	products := admin.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/stock", stockHandler.ListByProduct)
	products.Post("/:id/stock", stockHandler.Create)

	stock := admin.Group("/stock")
	stock.Get("/alerts", stockHandler.Alerts)
	stock.Patch("/:id", stockHandler.UpdateQuantity)
	stock.Patch("/:id/threshold", stockHandler.UpdateThreshold)

	ordersGroup := admin.Group("/orders")
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Patch("/:id/status", orderHandler.UpdateStatus)
	ordersGroup.Patch("/:id/tracking", orderHandler.AddTracking)
	ordersGroup.Get("/:id/packing-slip", orderHandler.PackingSlip)

	admin.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetStats)

	investments := admin.Group("/investments")
	investmentHandler := NewInvestmentHandler(deps.InvestmentUC)
	investments.Post("/", investmentHandler.Create)
	investments.Get("/", investmentHandler.List)
	investments.Get("/:id", investmentHandler.GetByID)
	investments.Put("/:id", investmentHandler.Update)
	investments.Delete("/:id", investmentHandler.Delete)

	admin.Get("/audit-logs", NewAuditHandler(deps.AuditUC).List)
}
