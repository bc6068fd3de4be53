package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/infrastructure/auth"
	"github.com/tablegrowth/backend/internal/infrastructure/cache"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/infrastructure/migration"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
	"github.com/tablegrowth/backend/internal/infrastructure/telemetry"
	"github.com/tablegrowth/backend/internal/interfaces/http/handler"
	"github.com/tablegrowth/backend/internal/interfaces/http/middleware"
	"github.com/tablegrowth/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

//	@title			Marketing Readiness API
//	@version		1.0
//	@description	Per-tenant marketing readiness checklist, health score and revenue estimate.

//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token carrying the tenant claim. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting readiness service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	// From here on entries also reach the collector when logs export is on
	log = telemetry.BridgeLogger(log, loggerProvider, cfg.Telemetry.ServiceName)

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}

	profiler, err := telemetry.NewProfiler(cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Profiling.SpanProfiles && profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.GormMode),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithQueryParams(cfg.Telemetry.DBLogFullSQL),
	)
	db, err := persistence.NewDatabase(&cfg.Database, persistence.WithGormLogger(gormLogger))
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver()))

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
			DBName:          db.Driver(),
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		}, log); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, meterProvider, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to register database metrics", zap.Error(err))
	}
	if dbMetrics != nil {
		defer func() { _ = dbMetrics.Stop() }()
	}

	if err := prepareSchema(db, log); err != nil {
		log.Fatal("Failed to prepare schema", zap.Error(err))
	}

	// Repositories
	gormCatalogRepo := persistence.NewGormCatalogRepository(db.DB)
	statusRepo := persistence.NewGormStatusRepository(db.DB)

	var catalogRepo checklist.CatalogRepository = gormCatalogRepo
	var catalogSeeder checklist.CatalogSeeder = gormCatalogRepo
	catalogStore, err := cache.NewCatalogStore(ctx, cfg.Readiness.CacheBackend, cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to initialize catalog cache", zap.Error(err))
	}
	if catalogStore != nil {
		defer func() { _ = catalogStore.Close() }()
		cached := cache.NewCachedCatalogRepository(gormCatalogRepo, catalogStore, cfg.Readiness.CatalogCacheTTL, log)
		catalogRepo, catalogSeeder = cached, cached
	}

	// Seeding through the cache drops entries other replicas may still hold
	if cfg.Readiness.SeedOnStart {
		if err := seedCatalog(ctx, cfg.Readiness.CatalogFile, catalogSeeder, log); err != nil {
			log.Fatal("Failed to seed checklist catalog", zap.Error(err))
		}
	}

	// Services
	meter := meterProvider.Meter(telemetry.MeterName)
	checklistMetrics, err := telemetry.NewChecklistMetrics(meter)
	if err != nil {
		log.Fatal("Failed to create checklist metrics", zap.Error(err))
	}
	checklistService := checklistapp.NewService(catalogRepo, statusRepo,
		checklistapp.WithLogger(log),
		checklistapp.WithMetrics(checklistMetrics),
		checklistapp.WithRecommendationLimit(cfg.Readiness.RecommendationLimit),
	)

	var rateLimiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer rateLimiter.Stop()
	}

	engine, err := router.NewEngine(router.Deps{
		Logger:     log,
		HTTP:       cfg.HTTP,
		Production: cfg.IsProduction(),
		Tracing: middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     cfg.Telemetry.Enabled,
		},
		Meter:       meter,
		Verifier:    auth.NewTokenVerifier(cfg.JWT),
		RateLimiter: rateLimiter,
		Profiling:   profiler.IsEnabled(),
		Readiness:   handler.NewReadinessHandler(checklistService),
		System:      handler.NewSystemHandler(cfg.App.Name, version, db),
	})
	if err != nil {
		log.Fatal("Failed to build HTTP engine", zap.Error(err))
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Meter provider shutdown failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Profiler stop failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Logger provider shutdown failed", zap.Error(err))
	}

	log.Info("Server exited")
}

// prepareSchema applies the embedded migrations on postgres. SQLite is only
// used for local runs and tests, where AutoMigrate is enough.
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver() == config.DriverSQLite {
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, "", log)
	if err != nil {
		return err
	}
	// Closing the migrator would close sqlDB, which the service keeps using.
	return m.Up()
}

func seedCatalog(ctx context.Context, catalogFile string, repo checklist.CatalogSeeder, log *zap.Logger) error {
	var catalog checklist.Catalog
	if catalogFile != "" {
		data, err := os.ReadFile(catalogFile)
		if err != nil {
			return err
		}
		catalog, err = checklistapp.ParseCatalog(data)
		if err != nil {
			return err
		}
		log.Info("Loaded catalog file", zap.String("path", catalogFile))
	}

	seedCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return checklistapp.NewCatalogSeeder(repo, log).Seed(seedCtx, catalog)
}
