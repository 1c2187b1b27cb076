package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dashboardapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/dashboard"
	documentapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/document"
	identityapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/identity"
	maintenanceapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/maintenance"
	messagingapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/messaging"
	notificationapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/notification"
	propertyapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/property"
	tenancyapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenancy"
	tenantapp "github.com/RaymondAkiiki/property-management-webapp-sub001/internal/application/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/access"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/identity"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/property"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/tenant"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/auth"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/cache"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/config"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/event"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/logger"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/notification"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/persistence"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/printing"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/scheduler"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/storage"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/telemetry"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/handler"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/middleware"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	_ "github.com/RaymondAkiiki/property-management-webapp-sub001/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title			PropertyHub API
//	@version		1.0
//	@description	Property management backend: properties and units, tenants and leases, maintenance requests and messaging.

//	@contact.name	API Support
//	@contact.url	https://github.com/RaymondAkiiki/property-management-webapp-sub001

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const (
	shutdownTimeout = 30 * time.Second
	eventWorkers    = 4
	eventQueueSize  = 256
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
		Service:    cfg.Telemetry.ServiceName,
		Env:        cfg.App.Env,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	ctx := context.Background()
	tel := setupTelemetry(ctx, cfg, log)
	log = tel.logger

	log.Info("Starting PropertyHub",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold),
	)
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	log.Info("Database connected successfully")

	dbInstr, err := telemetry.NewDBInstrumentation(tel.meters.Meter("propertyhub/db"), telemetry.DBConfig{
		TraceEnabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log)
	if err != nil {
		log.Fatal("Failed to create database instrumentation", zap.Error(err))
	}
	if err := dbInstr.Register(db.DB); err != nil {
		log.Fatal("Failed to register database instrumentation", zap.Error(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		dbInstr.StartPoolStats(ctx, sqlDB)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	var lockClient redis.UniversalClient
	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		lockClient = redisClient
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}
	locker, err := cache.NewLocker(cfg.Lock, lockClient, log)
	if err != nil {
		log.Fatal("Failed to create unit locker", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	propertyRepo := persistence.NewGormPropertyRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	requestRepo := persistence.NewGormMaintenanceRequestRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	tenancyScope := persistence.NewGormTenancyUnitOfWork(db.DB)

	// Services
	policy := access.NewOwnershipPolicy()
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, identityapp.DefaultAuthServiceConfig(), log)
	propertyService := propertyapp.NewPropertyService(propertyRepo, tenantRepo, policy, log)
	tenancyService := tenancyapp.NewTenancyService(tenancyScope, tenantRepo, locker, policy, log)
	tenantService := tenantapp.NewTenantService(tenantRepo, tenancyScope, policy, log)
	maintenanceService := maintenanceapp.NewMaintenanceService(requestRepo, propertyRepo, tenantRepo, policy, log)
	messageService := messagingapp.NewMessageService(messageRepo, userRepo, log)
	dashboardService := dashboardapp.NewDashboardService(propertyRepo, tenantRepo, requestRepo, messageRepo, log)

	documents, err := setupDocuments(ctx, cfg, tenantRepo, propertyRepo, userRepo, policy, log)
	if err != nil {
		log.Fatal("Failed to set up document generation", zap.Error(err))
	}

	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:             tel.meters.Meter("propertyhub/business"),
		Logger:            log,
		OccupancyProvider: telemetry.NewGormOccupancyProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to create business metrics", zap.Error(err))
	}
	businessMetrics.StartPeriodicCollection(ctx, cfg.Telemetry.MetricsInterval)
	tenancyService.SetBusinessMetrics(businessMetrics)
	tenantService.SetBusinessMetrics(businessMetrics)

	// Domain events
	eventBus := event.NewInMemoryEventBus(log, event.WithWorkers(eventWorkers, eventQueueSize))
	sender := notification.NewEmailSender(&cfg.Email, log)
	tenancyNotifications := notificationapp.NewTenancyNotificationHandler(sender, log)
	if documents.service != nil {
		tenancyNotifications = tenancyNotifications.WithReceipts(documents.service)
	}
	eventBus.Subscribe(tenancyNotifications)
	eventBus.Subscribe(notificationapp.NewMaintenanceNotificationHandler(sender, tenantRepo, log))

	propertyService.SetEventPublisher(eventBus)
	tenancyService.SetEventPublisher(eventBus)
	tenantService.SetEventPublisher(eventBus)
	maintenanceService.SetEventPublisher(eventBus)
	messageService.SetEventPublisher(eventBus)

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Background jobs
	jobs := scheduler.NewScheduler(scheduler.DefaultConfig(), log)
	var reminderTrigger *scheduler.DailyTrigger
	if cfg.Reminders.Enabled {
		jobs.Register(scheduler.JobKindLeaseReminders,
			notificationapp.NewLeaseReminderService(tenantRepo, sender, cfg.Reminders.LeadDays, log))
		if err := jobs.Start(ctx); err != nil {
			log.Fatal("Failed to start job scheduler", zap.Error(err))
		}
		reminderTrigger = scheduler.NewDailyTrigger(scheduler.DailyTriggerConfig{
			Kind:       scheduler.JobKindLeaseReminders,
			Hour:       cfg.Reminders.Hour,
			Minute:     cfg.Reminders.Minute,
			Location:   cfg.Reminders.Location(),
			MaxRetries: scheduler.DefaultConfig().RetryAttempts,
		}, jobs, log)
		if err := reminderTrigger.Start(ctx); err != nil {
			log.Fatal("Failed to start lease reminder trigger", zap.Error(err))
		}
	}

	// HTTP
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		middleware.Secure(),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		}),
		middleware.SpanErrorMarker(),
		middleware.HTTPMetrics(tel.meters),
	)

	systemHandler := handler.NewSystemHandler(cfg.App.Name, cfg.Telemetry.ServiceVersion, db)
	engine.GET("/health", systemHandler.Health)

	api := router.NewRouter(engine)
	jwtMiddleware := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		SkipPaths:      router.PublicPaths(api.BasePath()),
		Logger:         log,
	})

	swaggerAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Logger:         log,
	})
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:     cfg.Swagger.Enabled,
			RequireAuth: cfg.Swagger.RequireAuth,
			AllowedIPs:  cfg.Swagger.AllowedIPs,
		}, swaggerAuth),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	profiling := middleware.DefaultProfilingConfig()
	profiling.Enabled = cfg.Telemetry.ProfilingEnabled
	api.Use(jwtMiddleware, middleware.TracingAttributeInjector(), middleware.Profiling(profiling))

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow).WithLogger(log)
		api.Use(middleware.RateLimit(limiter))
	}

	router.RegisterAPI(api, router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Property:    handler.NewPropertyHandler(propertyService),
		Tenant:      handler.NewTenantHandler(tenantService, tenancyService, documents.service),
		Maintenance: handler.NewMaintenanceHandler(maintenanceService),
		Message:     handler.NewMessageHandler(messageService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		System:      systemHandler,
	}).Setup()

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if limiter != nil {
		limiter.Stop()
	}
	if reminderTrigger != nil {
		_ = reminderTrigger.Stop(shutdownCtx)
	}
	if err := jobs.Stop(shutdownCtx); err != nil {
		log.Error("Job scheduler did not stop", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Event bus did not drain", zap.Error(err))
	}
	businessMetrics.Stop()
	documents.close(log)
	dbInstr.Stop()
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	tel.shutdown(shutdownCtx)

	log.Info("Server exited gracefully")
}

// telemetryStack bundles the OpenTelemetry providers and the profiler.
type telemetryStack struct {
	tracer   *telemetry.TracerProvider
	meters   *telemetry.MeterProvider
	logs     *telemetry.LoggerProvider
	profiler *telemetry.Profiler
	logger   *zap.Logger
	base     *zap.Logger
}

func setupTelemetry(ctx context.Context, cfg *config.Config, log *zap.Logger) *telemetryStack {
	telCfg := telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.Telemetry.ServiceVersion,
		Insecure:          cfg.Telemetry.Insecure,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}
	st := &telemetryStack{logger: log, base: log}

	var err error
	if st.tracer, err = telemetry.NewTracerProvider(ctx, telCfg, log); err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	metricsCfg := telCfg
	metricsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.MetricsEnabled
	if st.meters, err = telemetry.NewMeterProvider(ctx, metricsCfg, log); err != nil {
		log.Fatal("Failed to initialize metrics", zap.Error(err))
	}

	logsCfg := telCfg
	logsCfg.Enabled = cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled
	if st.logs, err = telemetry.NewLoggerProvider(ctx, logsCfg, log); err != nil {
		log.Fatal("Failed to initialize OTLP logs", zap.Error(err))
	}
	if logsCfg.Enabled {
		st.logger = st.logs.Bridge(log, zapcore.InfoLevel)
	}

	st.profiler, err = telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.ProfilingServer,
		ApplicationName: cfg.Telemetry.ServiceName,
		Contention:      cfg.Telemetry.ProfilingContention,
	}, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Telemetry.ProfilingEnabled {
		st.tracer.EnableSpanProfiles()
	}
	return st
}

func (st *telemetryStack) shutdown(ctx context.Context) {
	if err := st.profiler.Stop(); err != nil {
		st.base.Error("Error stopping profiler", zap.Error(err))
	}
	if err := st.tracer.Shutdown(ctx); err != nil {
		st.base.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := st.meters.Shutdown(ctx); err != nil {
		st.base.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := st.logs.Shutdown(ctx); err != nil {
		st.base.Error("Error shutting down logger provider", zap.Error(err))
	}
}

// documentStack holds the PDF pipeline. service is nil when generation is
// disabled.
type documentStack struct {
	service  *documentapp.DocumentService
	renderer *printing.ChromedpRenderer
}

func setupDocuments(
	ctx context.Context,
	cfg *config.Config,
	tenants tenant.TenantRepository,
	properties property.PropertyRepository,
	users identity.UserRepository,
	policy access.Policy,
	log *zap.Logger,
) (*documentStack, error) {
	if !cfg.Documents.Enabled {
		log.Info("Document generation disabled")
		return &documentStack{}, nil
	}

	store, err := storage.NewDocumentStore(ctx, &cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	paper, ok := printing.ParsePaperSize(cfg.Documents.PaperSize)
	if !ok {
		log.Warn("Unknown paper size, using A4", zap.String("paper_size", cfg.Documents.PaperSize))
		paper = printing.PaperSizeA4
	}
	renderer := printing.NewChromedpRenderer(printing.ChromedpConfig{
		ExecPath:       cfg.Documents.ChromePath,
		DefaultTimeout: cfg.Documents.RenderTimeout,
		NoSandbox:      true,
		Logger:         log,
	})
	service := documentapp.NewDocumentService(
		tenants,
		properties,
		users,
		policy,
		printing.NewDocumentTemplates(cfg.Documents.CompanyName),
		renderer,
		store,
		documentapp.Options{
			Enabled:         true,
			ReceiptsEnabled: cfg.Documents.ReceiptsEnabled,
			PaperSize:       paper,
			RenderTimeout:   cfg.Documents.RenderTimeout,
		},
		log,
	)
	log.Info("Document generation enabled",
		zap.String("storage", cfg.Storage.Backend),
		zap.String("paper_size", string(paper)),
	)
	return &documentStack{service: service, renderer: renderer}, nil
}

func (d *documentStack) close(log *zap.Logger) {
	if d.renderer == nil {
		return
	}
	if err := d.renderer.Close(); err != nil {
		log.Error("Error closing PDF renderer", zap.Error(err))
	}
}
