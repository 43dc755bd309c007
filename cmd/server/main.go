package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogapp "github.com/sobitas/backend/internal/application/catalog"
	messagingapp "github.com/sobitas/backend/internal/application/messaging"
	partnerapp "github.com/sobitas/backend/internal/application/partner"
	salesapp "github.com/sobitas/backend/internal/application/sales"
	"github.com/sobitas/backend/internal/domain/messaging"
	"github.com/sobitas/backend/internal/domain/sales"
	"github.com/sobitas/backend/internal/infrastructure/cache"
	"github.com/sobitas/backend/internal/infrastructure/config"
	"github.com/sobitas/backend/internal/infrastructure/event"
	"github.com/sobitas/backend/internal/infrastructure/logger"
	inframessaging "github.com/sobitas/backend/internal/infrastructure/messaging"
	"github.com/sobitas/backend/internal/infrastructure/persistence"
	"github.com/sobitas/backend/internal/interfaces/http/handler"
	"github.com/sobitas/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(logger.FromAppConfig(cfg.Log))
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting sales backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories and transaction scope
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB, log, cfg.Inventory.AllowNegativeStock)

	// Application services
	documentService := salesapp.NewDocumentService(documentRepo, scope, log, salesapp.Config{
		TVARatePercent: decimal.NewFromFloat(cfg.Pricing.TVARatePercent),
		VATBase:        sales.VATBase(cfg.Pricing.VATBase),
	})
	productService := catalogapp.NewProductService(productRepo, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)

	// Event bus: document and client events fan out to the notification
	// handler after the owning transaction commits.
	bus := event.NewInMemoryEventBus(log)
	documentService.SetEventPublisher(bus)
	customerService.SetEventPublisher(bus)

	if store := newIdempotencyStore(cfg, log); store != nil {
		var sender messaging.Sender
		if cfg.Messaging.Enabled {
			sender = inframessaging.NewHTTPSender(cfg.Messaging)
		} else {
			sender = inframessaging.NewLoggingSender(log)
		}
		bus.Subscribe(messagingapp.NewNotificationHandler(log, templateRepo, sender, store))
		log.Info("Notification handler subscribed", zap.Bool("messaging_enabled", cfg.Messaging.Enabled))
	}

	// HTTP server
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	router.Setup(engine, router.Handlers{
		Documents: handler.NewDocumentHandler(documentService),
		Products:  handler.NewProductHandler(productService),
		Customers: handler.NewCustomerHandler(customerService),
		Health:    handler.NewHealthHandler(db),
	}, router.Config{
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
	}, logger.GinMiddleware(log), logger.Recovery(log))

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
	<-quit
	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	// Let in-flight notification handlers finish before exit.
	bus.Wait()
	log.Info("Server stopped")
}

// newIdempotencyStore connects to Redis for notification de-duplication.
// With messaging enabled the connection is mandatory; otherwise a failure
// just disables notifications for this run.
func newIdempotencyStore(cfg *config.Config, log *zap.Logger) messagingapp.IdempotencyStore {
	store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
	if err != nil {
		if cfg.Messaging.Enabled {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Warn("Redis unavailable, notifications disabled", zap.Error(err))
		return nil
	}
	return store
}
