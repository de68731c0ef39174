package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appevent "github.com/marketplace/backend/internal/application/event"
	apporder "github.com/marketplace/backend/internal/application/order"
	appseller "github.com/marketplace/backend/internal/application/seller"
	appshipping "github.com/marketplace/backend/internal/application/shipping"
	"github.com/marketplace/backend/internal/domain/shared"
	"github.com/marketplace/backend/internal/infrastructure/auth"
	"github.com/marketplace/backend/internal/infrastructure/cache"
	"github.com/marketplace/backend/internal/infrastructure/config"
	"github.com/marketplace/backend/internal/infrastructure/event"
	"github.com/marketplace/backend/internal/infrastructure/logger"
	"github.com/marketplace/backend/internal/infrastructure/notification"
	"github.com/marketplace/backend/internal/infrastructure/persistence"
	"github.com/marketplace/backend/internal/infrastructure/telemetry"
	"github.com/marketplace/backend/internal/interfaces/http/handler"
	"github.com/marketplace/backend/internal/interfaces/http/middleware"
	"github.com/marketplace/backend/internal/interfaces/http/router"
	"go.uber.org/zap"

	_ "github.com/marketplace/backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			Marketplace Backend API
//	@version		1.0
//	@description	Order lifecycle, order tracking and shipping quotes for the marketplace.

//	@contact.name	API Support

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}". Browsers send the token cookie instead.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}

	// Bootstrap logger, replaced below once the otel log bridge is up
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	logsProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if logsProvider.IsEnabled() {
		if log, err = logger.New(logCfg, logsProvider.ZapCore(logger.ParseLevel(cfg.Log.Level))); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting marketplace backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}
	meter := meterProvider.Meter(telemetry.MeterName)

	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeURL,
		ApplicationName: cfg.Telemetry.ServiceName,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithLogger(gormLog))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.Use(telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
		}, log)); err != nil {
			log.Fatal("Failed to install database tracing", zap.Error(err))
		}
	}
	log.Info("Database connected successfully")

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	quoteRepo := persistence.NewGormShippingQuoteRepository(db.DB)
	companyRepo := persistence.NewGormShippingCompanyRepository(db.DB)
	prefRepo := persistence.NewGormPaymentPreferenceRepository(db.DB)

	// Tracking cache: redis when enabled, in-memory otherwise
	trackingCache, err := cache.NewTrackingCacheFactory(cfg.Redis, cfg.Cache.TrackingTTL,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(!cfg.App.IsProduction()),
	).CreateCache(ctx)
	if err != nil {
		log.Fatal("Failed to create tracking cache", zap.Error(err))
	}

	// Event bus and its subscribers
	eventBus := event.NewInMemoryEventBus(log)
	orderMetrics, err := telemetry.NewOrderMetrics(meter)
	if err != nil {
		log.Fatal("Failed to register order metrics", zap.Error(err))
	}
	for _, h := range []shared.EventHandler{
		apporder.NewOrderStatusNotifier(notification.NewMailer(cfg.Mail, log), log),
		appshipping.NewDeliveryRecordedHandler(quoteRepo, companyRepo, log),
		orderMetrics,
	} {
		eventBus.Subscribe(h)
	}
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	dispatcher := appevent.NewDispatcher(eventBus, log)

	// Services
	trackingService := apporder.NewTrackingService(orderRepo, trackingCache, log)
	trackingService.SetDispatcher(dispatcher)

	orderService := apporder.NewOrderService(orderRepo, quoteRepo, companyRepo)
	orderService.SetDispatcher(dispatcher)
	orderService.SetTrackingService(trackingService)

	sellerOrderService := apporder.NewSellerOrderService(orderRepo)
	sellerOrderService.SetDispatcher(dispatcher)
	sellerOrderService.SetTrackingService(trackingService)

	quoteService := appshipping.NewQuoteService(orderRepo, quoteRepo, companyRepo, persistence.NewGormTransactionScope(db.DB))
	quoteService.SetDispatcher(dispatcher)
	quoteService.SetInvalidator(trackingService)

	companyService := appshipping.NewCompanyService(companyRepo)
	companyService.SetDispatcher(dispatcher)

	paymentPreferenceService := appseller.NewPaymentPreferenceService(prefRepo)

	jwtService := auth.NewJWTService(cfg.JWT)

	// HTTP
	middleware.SetupValidator()
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Tracing(middleware.TracingConfig{ServiceName: cfg.Telemetry.ServiceName, Enabled: tracerProvider.IsEnabled()}),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(meter, log),
		middleware.Profiling(middleware.ProfilingConfig{
			Enabled:          profiler.IsEnabled(),
			SkipPaths:        middleware.DefaultProfilingConfig().SkipPaths,
			SkipPathPrefixes: middleware.DefaultProfilingConfig().SkipPathPrefixes,
		}),
		middleware.Secure(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	checks := []handler.HealthCheck{{
		Name:     "database",
		Critical: true,
		Check:    func(context.Context) error { return db.Ping() },
	}}
	if pinger, ok := trackingCache.(interface{ Ping(context.Context) error }); ok {
		checks = append(checks, handler.HealthCheck{Name: "cache", Check: pinger.Ping})
	}
	engine.GET("/health", handler.NewHealthHandler(checks...).Health)

	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	router.NewRouter(engine, router.WithAuth(
		middleware.Authenticate(middleware.AuthConfig{
			Parser:     jwtService,
			CookieName: cfg.HTTP.TokenCookieName,
			Logger:     log,
		}),
		middleware.TraceSession(),
	)).
		Register(
			handler.NewOrderHandler(orderService),
			handler.NewTrackingHandler(trackingService),
			handler.NewSellerHandler(sellerOrderService, paymentPreferenceService),
			handler.NewQuoteHandler(quoteService),
			handler.NewCompanyHandler(companyService),
		).
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
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}
	if closer, ok := trackingCache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warn("Cache close failed", zap.Error(err))
		}
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := logsProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
