package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/rentflow/backend/internal/application/billing"
	"github.com/rentflow/backend/internal/application/notification"
	rentalapp "github.com/rentflow/backend/internal/application/rental"
	"github.com/rentflow/backend/internal/infrastructure/auth"
	"github.com/rentflow/backend/internal/infrastructure/config"
	"github.com/rentflow/backend/internal/infrastructure/event"
	"github.com/rentflow/backend/internal/infrastructure/logger"
	"github.com/rentflow/backend/internal/infrastructure/notify"
	"github.com/rentflow/backend/internal/infrastructure/persistence"
	"github.com/rentflow/backend/internal/infrastructure/scheduler"
	"github.com/rentflow/backend/internal/interfaces/http/handler"
	"github.com/rentflow/backend/internal/interfaces/http/middleware"
	"github.com/rentflow/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RentFlow Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection with zap-backed GORM logging
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, log, gormLogLevel)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	agreementRepo := persistence.NewGormAgreementRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)

	// Transaction scopes for the multi-aggregate transitions
	rentalScope := persistence.NewGormRentalTransactionScope(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)

	// Initialize application services
	tariff, err := cfg.Billing.Tariff()
	if err != nil {
		log.Fatal("Invalid billing configuration", zap.Error(err))
	}

	bookingService := rentalapp.NewBookingService(bookingRepo)
	agreementService := rentalapp.NewAgreementService(bookingRepo, agreementRepo, rentalScope)
	invoiceService := billingapp.NewInvoiceService(bookingRepo, agreementRepo, invoiceRepo, billingScope, tariff)

	jwtService := auth.NewJWTService(cfg.JWT)

	// Notification sink: domain events fan out to a Redis pub/sub channel
	notifier, err := notify.NewRedisNotifier(cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Error("Error closing notifier", zap.Error(err))
		}
	}()

	// Initialize event bus and notification handlers
	eventBus := event.NewInMemoryEventBus(log)

	lifecycleHandler := notification.NewLifecycleNotificationHandler(notifier, log)
	eventBus.Subscribe(lifecycleHandler)

	billingHandler := notification.NewBillingNotificationHandler(notifier, log)
	eventBus.Subscribe(billingHandler)

	log.Info("Event handlers registered",
		zap.Strings("lifecycle_events", lifecycleHandler.EventTypes()),
		zap.Strings("billing_events", billingHandler.EventTypes()),
	)

	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Inject event bus into services that publish events
	bookingService.SetEventPublisher(eventBus)
	agreementService.SetEventPublisher(eventBus)
	invoiceService.SetEventPublisher(eventBus)

	// Overdue invoice scheduler (if enabled)
	if cfg.Scheduler.Enabled {
		overdueScheduler := scheduler.NewOverdueInvoiceScheduler(invoiceService, cfg.Scheduler, log)
		if err := overdueScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start overdue scheduler", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := overdueScheduler.Stop(ctx); err != nil {
				log.Error("Error stopping overdue scheduler", zap.Error(err))
			}
		}()
		log.Info("Overdue scheduler started",
			zap.Duration("scan_interval", cfg.Scheduler.ScanInterval),
			zap.Int("batch_size", cfg.Scheduler.BatchSize),
		)
	}

	// Initialize HTTP handlers
	bookingHTTPHandler := handler.NewBookingHandler(bookingService)
	agreementHTTPHandler := handler.NewAgreementHandler(agreementService)
	invoiceHTTPHandler := handler.NewInvoiceHandler(invoiceService)
	systemHTTPHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Validation error messages use JSON field names
	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and logging carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	// System routes stay reachable without a token
	systemRouter := router.NewRouter(engine)
	systemRouter.Register(systemHTTPHandler)
	systemRouter.Setup()

	// Domain routes require an authenticated party
	apiRouter := router.NewRouter(engine, router.WithMiddleware(middleware.ActorAuth(jwtService)))
	apiRouter.Register(bookingHTTPHandler).
		Register(agreementHTTPHandler).
		Register(invoiceHTTPHandler)
	apiRouter.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
