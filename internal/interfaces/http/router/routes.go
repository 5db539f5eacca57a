package router

import (
	"github.com/gin-gonic/gin"

	"github.com/stocktrack/backend/internal/interfaces/http/handler"
)

// CatalogRoutes registers product and package unit endpoints
type CatalogRoutes struct {
	Products *handler.ProductHandler
	Units    *handler.PackageUnitHandler
}

func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	catalog := rg.Group("/catalog")

	products := catalog.Group("/products")
	products.POST("", r.Products.Create)
	products.GET("", r.Products.List)
	products.GET("/code/:code", r.Products.GetByCode)
	products.GET("/:id", r.Products.Get)
	products.PUT("/:id", r.Products.Update)
	products.DELETE("/:id", r.Products.Delete)
	products.GET("/:id/resolve-unit", r.Products.ResolveUnit)
	products.POST("/:id/units", r.Units.Create)
	products.GET("/:id/units", r.Units.List)

	units := catalog.Group("/units")
	units.PUT("/:id", r.Units.Update)
	units.DELETE("/:id", r.Units.Delete)
}

// InventoryRoutes registers stock ledger and stock taking endpoints
type InventoryRoutes struct {
	Inventory    *handler.InventoryHandler
	StockTakings *handler.StockTakingHandler
}

func (r *InventoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	inv := rg.Group("/inventory")

	inv.POST("/adjustments", r.Inventory.Adjust)
	inv.POST("/set-quantity", r.Inventory.SetQuantity)
	inv.GET("/balances", r.Inventory.ListBalances)
	inv.GET("/balances/:id", r.Inventory.GetBalance)
	inv.GET("/balances/:id/verify", r.Inventory.VerifyBalance)
	inv.GET("/low-stock", r.Inventory.ListLowStock)
	inv.POST("/availability", r.Inventory.CheckAvailability)
	inv.POST("/availability/batch", r.Inventory.BatchCheckAvailability)
	inv.GET("/transactions", r.Inventory.ListTransactions)

	takings := inv.Group("/stock-takings")
	takings.POST("", r.StockTakings.Create)
	takings.GET("", r.StockTakings.List)
	takings.GET("/:id", r.StockTakings.Get)
	takings.DELETE("/:id", r.StockTakings.Delete)
	takings.GET("/:id/summary", r.StockTakings.GetSummary)
	takings.POST("/:id/counts", r.StockTakings.RecordCount)
	takings.POST("/:id/complete", r.StockTakings.Complete)
}

// TradeRoutes registers purchase, sales and return order endpoints.
// ConfirmMiddleware guards the confirm endpoints; typically the
// idempotency key middleware.
type TradeRoutes struct {
	PurchaseOrders    *handler.PurchaseOrderHandler
	SalesOrders       *handler.SalesOrderHandler
	ReturnOrders      *handler.ReturnOrderHandler
	ConfirmMiddleware []gin.HandlerFunc
}

func (r *TradeRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	trade := rg.Group("/trade")

	purchase := trade.Group("/purchase-orders")
	purchase.POST("", r.PurchaseOrders.Create)
	purchase.GET("", r.PurchaseOrders.List)
	purchase.GET("/:id", r.PurchaseOrders.Get)
	purchase.DELETE("/:id", r.PurchaseOrders.Delete)
	purchase.POST("/:id/confirm", r.confirmChain(r.PurchaseOrders.Confirm)...)

	sales := trade.Group("/sales-orders")
	sales.POST("", r.SalesOrders.Create)
	sales.GET("", r.SalesOrders.List)
	sales.GET("/:id", r.SalesOrders.Get)
	sales.DELETE("/:id", r.SalesOrders.Delete)
	sales.POST("/:id/confirm", r.confirmChain(r.SalesOrders.Confirm)...)

	returns := trade.Group("/return-orders")
	returns.POST("", r.ReturnOrders.Create)
	returns.GET("", r.ReturnOrders.List)
	returns.GET("/:id", r.ReturnOrders.Get)
	returns.DELETE("/:id", r.ReturnOrders.Delete)
	returns.POST("/:id/confirm", r.confirmChain(r.ReturnOrders.Confirm)...)
}

func (r *TradeRoutes) confirmChain(final gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(r.ConfirmMiddleware)+1)
	chain = append(chain, r.ConfirmMiddleware...)
	return append(chain, final)
}

// SystemRoutes registers diagnostics endpoints
type SystemRoutes struct {
	System *handler.SystemHandler
}

func (r *SystemRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	system.GET("/stats", r.System.Stats)
}
