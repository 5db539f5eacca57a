package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/stocktrack/backend/internal/application/catalog"
	inventoryapp "github.com/stocktrack/backend/internal/application/inventory"
	tradeapp "github.com/stocktrack/backend/internal/application/trade"
	"github.com/stocktrack/backend/internal/infrastructure/cache"
	"github.com/stocktrack/backend/internal/infrastructure/config"
	"github.com/stocktrack/backend/internal/infrastructure/logger"
	"github.com/stocktrack/backend/internal/infrastructure/persistence"
	"github.com/stocktrack/backend/internal/interfaces/http/handler"
	"github.com/stocktrack/backend/internal/interfaces/http/middleware"
	"github.com/stocktrack/backend/internal/interfaces/http/router"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting stocktrack server",
		zap.String("version", version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName),
	)

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	unitRepo := persistence.NewGormPackageUnitRepository(db.DB)
	recordRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	txRepo := persistence.NewGormInventoryTransactionRepository(db.DB)
	stockTakingRepo := persistence.NewGormStockTakingRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	salesRepo := persistence.NewGormSalesOrderRepository(db.DB)
	returnRepo := persistence.NewGormReturnOrderRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	productService := catalogapp.NewProductService(productRepo, unitRepo, recordRepo)
	unitService := catalogapp.NewPackageUnitService(productRepo, unitRepo)
	ledgerService := inventoryapp.NewLedgerService(txScope, productRepo, unitRepo, recordRepo, txRepo)
	stockTakingService := inventoryapp.NewStockTakingService(txScope, stockTakingRepo, ledgerService)
	purchaseService := tradeapp.NewPurchaseOrderService(txScope, purchaseRepo, returnRepo, ledgerService)
	salesService := tradeapp.NewSalesOrderService(txScope, salesRepo, returnRepo, ledgerService)
	returnService := tradeapp.NewReturnOrderService(txScope, returnRepo, purchaseRepo, salesRepo, ledgerService)

	// Idempotency store guards order confirmation against duplicate submits
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Failed to close idempotency store", zap.Error(err))
		}
	}()

	// Handlers
	productHandler := handler.NewProductHandler(productService)
	unitHandler := handler.NewPackageUnitHandler(unitService)
	inventoryHandler := handler.NewInventoryHandler(ledgerService)
	stockTakingHandler := handler.NewStockTakingHandler(stockTakingService)
	purchaseHandler := handler.NewPurchaseOrderHandler(purchaseService)
	salesHandler := handler.NewSalesOrderHandler(salesService)
	returnHandler := handler.NewReturnOrderHandler(returnService)
	systemHandler := handler.NewSystemHandler(db, version)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	// Liveness endpoint stays outside the versioned API
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine).
		Register(&router.CatalogRoutes{
			Products: productHandler,
			Units:    unitHandler,
		}).
		Register(&router.InventoryRoutes{
			Inventory:    inventoryHandler,
			StockTakings: stockTakingHandler,
		}).
		Register(&router.TradeRoutes{
			PurchaseOrders: purchaseHandler,
			SalesOrders:    salesHandler,
			ReturnOrders:   returnHandler,
			ConfirmMiddleware: []gin.HandlerFunc{
				middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL),
			},
		}).
		Register(&router.SystemRoutes{
			System: systemHandler,
		}).
		Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down server", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
