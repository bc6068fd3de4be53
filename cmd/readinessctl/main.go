package main

import (
	"context"
	"fmt"
	"os"

	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/infrastructure/auth"
	"github.com/tablegrowth/backend/internal/infrastructure/cache"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
	"github.com/tablegrowth/backend/internal/interfaces/cli"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Logs go to stderr so rendered reports stay clean on stdout
	log, err := logger.New(&logger.Config{Level: "warn", Format: "console", Output: "stderr"})
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	db, err := persistence.NewDatabase(&cfg.Database,
		persistence.WithGormLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.GormMode))))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if db.Driver() == config.DriverSQLite {
		if err := db.AutoMigrate(); err != nil {
			return fmt.Errorf("migrating sqlite schema: %w", err)
		}
	}

	ctx := context.Background()
	gormCatalogRepo := persistence.NewGormCatalogRepository(db.DB)
	var catalogRepo checklist.CatalogRepository = gormCatalogRepo
	var catalogSeeder checklist.CatalogSeeder = gormCatalogRepo

	// Seeding through a shared cache invalidates what running servers hold
	store, err := cache.NewCatalogStore(ctx, cfg.Readiness.CacheBackend, cfg.Redis, log)
	if err != nil {
		log.Warn("Catalog cache unavailable", zap.Error(err))
	} else if store != nil {
		defer func() { _ = store.Close() }()
		cached := cache.NewCachedCatalogRepository(gormCatalogRepo, store, cfg.Readiness.CatalogCacheTTL, log)
		catalogRepo, catalogSeeder = cached, cached
	}

	app := &cli.App{
		Service: checklistapp.NewService(catalogRepo, persistence.NewGormStatusRepository(db.DB),
			checklistapp.WithLogger(log),
			checklistapp.WithRecommendationLimit(cfg.Readiness.RecommendationLimit),
		),
		Seeder: checklistapp.NewCatalogSeeder(catalogSeeder, log),
		Tokens: auth.NewTokenVerifier(cfg.JWT),
	}
	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
