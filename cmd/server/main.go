// Package main is the entry point for the Turk Masale storefront backend.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	catalogapp "github.com/turkmasale/backend/internal/application/catalog"
	orderapp "github.com/turkmasale/backend/internal/application/order"
	"github.com/turkmasale/backend/internal/domain/order"
	"github.com/turkmasale/backend/internal/domain/shared"
	"github.com/turkmasale/backend/internal/infrastructure/auth"
	"github.com/turkmasale/backend/internal/infrastructure/cache"
	"github.com/turkmasale/backend/internal/infrastructure/config"
	"github.com/turkmasale/backend/internal/infrastructure/logger"
	"github.com/turkmasale/backend/internal/infrastructure/mail"
	"github.com/turkmasale/backend/internal/infrastructure/notification"
	"github.com/turkmasale/backend/internal/infrastructure/persistence"
	"github.com/turkmasale/backend/internal/infrastructure/storage"
	"github.com/turkmasale/backend/internal/infrastructure/telemetry"
	"github.com/turkmasale/backend/internal/interfaces/http/handler"
	"github.com/turkmasale/backend/internal/interfaces/http/middleware"
	"github.com/turkmasale/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
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

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Warn("Failed to shut down tracer provider", zap.Error(err))
		}
	}()

	// Connect to database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
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
		zap.String("database", cfg.Database.DBName),
	)

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), log)
		if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)

	// Duplicate-submission guard for checkout
	var guard shared.SubmissionGuard
	if cfg.Checkout.GuardEnabled {
		factory := cache.NewSubmissionGuardFactory(cfg.Redis, cache.WithLogger(log))
		guard, err = factory.CreateGuard(cfg.Checkout.GuardBackend)
		if err != nil {
			log.Fatal("Failed to create submission guard", zap.Error(err))
		}
		defer func() {
			if err := guard.Close(); err != nil {
				log.Warn("Failed to close submission guard", zap.Error(err))
			}
		}()
	} else {
		log.Warn("Submission guard disabled, duplicate checkouts are not detected server-side")
	}

	// Admin sessions
	sessions := auth.NewSessionService(cfg.Admin)

	// Image storage
	var imageStorage catalogapp.ImageStorage
	if cfg.Storage.Bucket != "" {
		s3Storage, err := storage.NewS3ImageStorage(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		imageStorage = s3Storage
	} else {
		log.Warn("Object storage not configured, uploads are held in memory")
		imageStorage = storage.NewMemoryImageStorage(cfg.Storage.PublicBaseURL)
	}

	// WhatsApp hand-off
	handoff := order.HandoffConfig{
		StoreName:   cfg.Store.Name,
		StorePhone:  cfg.Store.Phone,
		CountryCode: cfg.Store.CountryCode,
	}
	notifier := notification.NewWhatsAppNotifier(handoff)

	// Contact form mail
	var mailer mail.Mailer
	if cfg.Mail.Enabled {
		mailer = mail.NewSMTPMailer(cfg.Mail)
	} else {
		log.Warn("SMTP disabled, contact form submissions will be rejected")
		mailer = mail.NewDisabledMailer()
	}

	// Application services
	productService := catalogapp.NewProductService(productRepo)
	imageService := catalogapp.NewImageService(imageStorage, cfg.Storage.MaxUploadSize)
	checkoutService := orderapp.NewCheckoutService(orderRepo, guard, cfg.Checkout.GuardTTL, handoff, log)
	adminOrderService := orderapp.NewAdminOrderService(orderRepo, notifier, log)

	// Handlers
	authHandler := handler.NewAuthHandler(sessions, cfg.Cookie, log)
	productHandler := handler.NewProductHandler(productService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	adminOrderHandler := handler.NewAdminOrderHandler(adminOrderService)
	uploadHandler := handler.NewUploadHandler(imageService)
	contactHandler := handler.NewContactHandler(mailer, cfg.Mail.To, log)
	systemHandler := handler.NewSystemHandler(db.DB)

	// Set gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware order matters: request IDs first so every later stage
	// can tag its logs and spans, recovery before request logging.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	// Health check outside API versioning for load balancers
	engine.GET("/health", systemHandler.Health)

	var loginLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimitEnabled {
		loginLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(&router.StorefrontRoutes{
		Products: productHandler,
		Checkout: checkoutHandler,
		Contact:  contactHandler,
		System:   systemHandler,
	}).Register(&router.AdminRoutes{
		Auth:         authHandler,
		Products:     productHandler,
		Orders:       adminOrderHandler,
		Uploads:      uploadHandler,
		Sessions:     sessions,
		LoginLimiter: loginLimiter,
	})
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
