package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig controls GORM span instrumentation
type DBTracingConfig struct {
	DBName          string               // postgresql or sqlite
	LogFullSQL      bool                 // include bound variables in db.statement
	SlowQueryThresh time.Duration        // queries above this get db.slow_query=true
	TracerProvider  trace.TracerProvider // defaults to the global provider
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin plus a timing callback
// pair that flags slow statements on the span. The timing callbacks are
// registered first so the after hook runs while the span is still open.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey{}, time.Now())
		}
	}
	after := func(tx *gorm.DB) { markSlowQuery(tx, cfg.SlowQueryThresh) }

	cb := db.Callback()
	err := errors.Join(
		cb.Create().Before("gorm:create").Register("readiness:timing_before_create", before),
		cb.Create().After("gorm:create").Register("readiness:timing_after_create", after),
		cb.Query().Before("gorm:query").Register("readiness:timing_before_query", before),
		cb.Query().After("gorm:query").Register("readiness:timing_after_query", after),
		cb.Update().Before("gorm:update").Register("readiness:timing_before_update", before),
		cb.Update().After("gorm:update").Register("readiness:timing_after_update", after),
		cb.Row().Before("gorm:row").Register("readiness:timing_before_row", before),
		cb.Row().After("gorm:row").Register("readiness:timing_after_row", after),
		cb.Raw().Before("gorm:raw").Register("readiness:timing_before_raw", before),
		cb.Raw().After("gorm:raw").Register("readiness:timing_after_raw", after),
	)
	if err != nil {
		return err
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(cfg.TracerProvider))
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBName),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil || threshold <= 0 {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	start, ok := ctx.Value(queryStartKey{}).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(start); elapsed > threshold {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
}
