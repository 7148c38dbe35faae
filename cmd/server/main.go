package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/rentbase/backend/internal/application/billing"
	"github.com/rentbase/backend/internal/domain/shared"
	"github.com/rentbase/backend/internal/infrastructure/auth"
	"github.com/rentbase/backend/internal/infrastructure/cache"
	"github.com/rentbase/backend/internal/infrastructure/config"
	"github.com/rentbase/backend/internal/infrastructure/logger"
	"github.com/rentbase/backend/internal/infrastructure/payment"
	"github.com/rentbase/backend/internal/infrastructure/persistence"
	"github.com/rentbase/backend/internal/interfaces/http/handler"
	"github.com/rentbase/backend/internal/interfaces/http/middleware"
	"github.com/rentbase/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.NewFromConfig(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting RentBase Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	leaseRepo := persistence.NewGormLeaseRepository(db.DB)
	paymentRepo := persistence.NewGormRentPaymentRepository(db.DB)
	standingRepo := persistence.NewGormLoyaltyStandingRepository(db.DB)

	// Idempotency store for settlement confirmations: Redis when enabled,
	// in-memory otherwise
	idemFactory := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log))
	idemStore, err := idemFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Checkout gateway (Stripe hosted checkout)
	gateway, err := payment.NewStripeCheckoutGateway(cfg.Stripe, log)
	if err != nil {
		log.Fatal("Failed to initialize checkout gateway", zap.Error(err))
	}

	// Initialize application services
	loyaltyService := billingapp.NewLoyaltyService(billingapp.LoyaltyServiceConfig{
		LeaseRepo:    leaseRepo,
		PaymentRepo:  paymentRepo,
		StandingRepo: standingRepo,
		Logger:       log,
	})
	ledgerService := billingapp.NewRentLedgerService(billingapp.RentLedgerServiceConfig{
		LeaseRepo:   leaseRepo,
		PaymentRepo: paymentRepo,
		LoyaltySvc:  loyaltyService,
		Logger:      log,
	})
	checkoutService := billingapp.NewCheckoutService(billingapp.CheckoutServiceConfig{
		LedgerSvc:   ledgerService,
		LoyaltySvc:  loyaltyService,
		LeaseRepo:   leaseRepo,
		PaymentRepo: paymentRepo,
		Gateway:     gateway,
		IdemStore:   idemStore,
		IdemConfig: shared.IdempotencyConfig{
			Enabled: cfg.Idempotency.Enabled,
			TTL:     cfg.Idempotency.TTL,
		},
		Logger: log,
	})

	// JWT validation for the tenant-facing API
	jwtService := auth.NewJWTService(cfg.JWT)

	// Initialize HTTP handlers
	paymentHandler := handler.NewPaymentHandler(ledgerService, checkoutService)
	loyaltyHandler := handler.NewLoyaltyHandler(loyaltyService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID, panic recovery, request logging,
	// security headers, CORS, then JWT validation
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/health",
			"/api/v1/health",
			"/api/v1/system/ping",
			"/api/v1/system/info",
		},
		Logger: log,
	}))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Register API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(paymentHandler).
		Register(loyaltyHandler).
		Register(systemHandler)
	r.Setup()

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
