package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/floorops/backend/internal/application/catalog"
	inventoryapp "github.com/floorops/backend/internal/application/inventory"
	loyaltyapp "github.com/floorops/backend/internal/application/loyalty"
	orderapp "github.com/floorops/backend/internal/application/order"
	tableapp "github.com/floorops/backend/internal/application/table"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/infrastructure/config"
	"github.com/floorops/backend/internal/infrastructure/event"
	"github.com/floorops/backend/internal/infrastructure/logger"
	"github.com/floorops/backend/internal/infrastructure/memstore"
	"github.com/floorops/backend/internal/infrastructure/notification"
	"github.com/floorops/backend/internal/interfaces/http/handler"
	"github.com/floorops/backend/internal/interfaces/http/middleware"
	"github.com/floorops/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting floor operations engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Repositories
	menuItemRepo := memstore.NewMenuItemRepository()
	menuCategoryRepo := memstore.NewMenuCategoryRepository()
	inventoryRepo := memstore.NewInventoryRepository()
	orderRepo := memstore.NewOrderRepository()
	tableRepo := memstore.NewTableRepository()
	zoneRepo := memstore.NewZoneRepository()
	bookingRepo := memstore.NewBookingRepository()
	customerRepo := memstore.NewCustomerRepository()
	couponRepo := memstore.NewCouponRepository()

	// Event bus with the staff notification fan-out
	eventBus := event.NewInMemoryEventBus(log)
	notifier := notification.NewEventHandler(notification.NewZapSink(log), log)
	eventBus.Subscribe(notifier, notifier.EventTypes()...)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Failed to stop event bus", zap.Error(err))
		}
	}()

	// Application services
	catalogService := catalogapp.NewCatalogService(menuItemRepo, menuCategoryRepo)
	ledgerService := inventoryapp.NewLedgerService(inventoryRepo, catalogService, eventBus, log)
	loyaltyService := loyaltyapp.NewLoyaltyService(customerRepo, couponRepo, eventBus, log, cfg.Loyalty.PointsPerCurrencyUnit)
	tableService := tableapp.NewTableService(tableRepo, zoneRepo, tableRepo.Locks(), eventBus, log)
	bookingService := tableapp.NewBookingService(bookingRepo, tableRepo, tableRepo.Locks(), eventBus, log)
	orderService := orderapp.NewOrderService(orderRepo, catalogService, ledgerService, tableService, loyaltyService, eventBus, log, cfg.Pricing.TaxRate)
	tableService.SetOrderFlow(orderService)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	var gate shared.PermissionGate = shared.AllowAllGate{}

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(middleware.MutationGate(gate, "floor.write", log)),
	)
	r.Register(handler.NewMenuHandler(catalogService))
	r.Register(handler.NewInventoryHandler(ledgerService))
	r.Register(handler.NewOrderHandler(orderService))
	r.Register(handler.NewTableHandler(tableService))
	r.Register(handler.NewBookingHandler(bookingService))
	r.Register(handler.NewCustomerHandler(loyaltyService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()
	log.Info("Server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
