package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBDurationBuckets are query latency boundaries in seconds
var DBDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

const (
	attrDBOperation = attribute.Key("db.operation")
	attrDBTable     = attribute.Key("db.table")
	attrDBState     = attribute.Key("db.pool.state")
)

const defaultSlowQueryThreshold = 200 * time.Millisecond

type dbMetricsStartKey struct{}

// DBMetrics records GORM query counts and latencies plus connection pool
// state. Pool state is observed on collection, so no goroutine is needed.
type DBMetrics struct {
	queryTotal     metric.Int64Counter
	queryErrors    metric.Int64Counter
	queryDuration  metric.Float64Histogram
	slowQueryTotal metric.Int64Counter
	registration   metric.Registration
	slowThreshold  time.Duration
	stopOnce       sync.Once
}

// NewDBMetrics creates the instruments on meter. sqlDB may be nil, in which
// case pool gauges are not registered.
func NewDBMetrics(meter metric.Meter, sqlDB *sql.DB, slowThreshold time.Duration) (*DBMetrics, error) {
	if slowThreshold <= 0 {
		slowThreshold = defaultSlowQueryThreshold
	}
	m := &DBMetrics{slowThreshold: slowThreshold}

	var err error
	if m.queryTotal, err = meter.Int64Counter("db_query_total",
		metric.WithDescription("Database queries by operation"),
		metric.WithUnit("{query}")); err != nil {
		return nil, fmt.Errorf("failed to create query counter: %w", err)
	}
	if m.queryErrors, err = meter.Int64Counter("db_query_errors_total",
		metric.WithDescription("Database queries that returned an error, not counting record-not-found"),
		metric.WithUnit("{query}")); err != nil {
		return nil, fmt.Errorf("failed to create query error counter: %w", err)
	}
	if m.queryDuration, err = meter.Float64Histogram("db_query_duration_seconds",
		metric.WithDescription("Database query latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DBDurationBuckets...)); err != nil {
		return nil, fmt.Errorf("failed to create query histogram: %w", err)
	}
	if m.slowQueryTotal, err = meter.Int64Counter("db_slow_query_total",
		metric.WithDescription("Database queries slower than the configured threshold"),
		metric.WithUnit("{query}")); err != nil {
		return nil, fmt.Errorf("failed to create slow query counter: %w", err)
	}

	if sqlDB == nil {
		return m, nil
	}

	connections, err := meter.Int64ObservableGauge("db_pool_connections",
		metric.WithDescription("Connections in the pool by state"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool gauge: %w", err)
	}
	maxConnections, err := meter.Int64ObservableGauge("db_pool_connections_max",
		metric.WithDescription("Maximum open connections"),
		metric.WithUnit("{connection}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool max gauge: %w", err)
	}

	m.registration, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := sqlDB.Stats()
		o.ObserveInt64(maxConnections, int64(stats.MaxOpenConnections))
		o.ObserveInt64(connections, int64(stats.Idle), metric.WithAttributes(attrDBState.String("idle")))
		o.ObserveInt64(connections, int64(stats.InUse), metric.WithAttributes(attrDBState.String("in_use")))
		o.ObserveInt64(connections, int64(stats.OpenConnections), metric.WithAttributes(attrDBState.String("open")))
		return nil
	}, connections, maxConnections)
	if err != nil {
		return nil, fmt.Errorf("failed to register pool callback: %w", err)
	}
	return m, nil
}

// RecordQuery records one finished statement
func (m *DBMetrics) RecordQuery(ctx context.Context, operation, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	opAttr := metric.WithAttributes(attrDBOperation.String(operation))

	m.queryTotal.Add(ctx, 1, opAttr)
	m.queryDuration.Record(ctx, duration.Seconds(), opAttr)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		m.queryErrors.Add(ctx, 1, opAttr)
	}
	if duration > m.slowThreshold {
		if table == "" {
			table = "unknown"
		}
		m.slowQueryTotal.Add(ctx, 1, metric.WithAttributes(attrDBTable.String(table)))
	}
}

// Stop unregisters the pool callback. Safe to call more than once.
func (m *DBMetrics) Stop() error {
	var err error
	m.stopOnce.Do(func() {
		if m.registration != nil {
			err = m.registration.Unregister()
		}
	})
	return err
}

// Name implements gorm.Plugin
func (m *DBMetrics) Name() string {
	return "readiness:db_metrics"
}

// Initialize implements gorm.Plugin by wrapping every statement processor
// with a timing callback pair
func (m *DBMetrics) Initialize(db *gorm.DB) error {
	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, dbMetricsStartKey{}, time.Now())
		}
	}
	after := func(operation string) func(*gorm.DB) {
		return func(tx *gorm.DB) {
			ctx := tx.Statement.Context
			if ctx == nil {
				return
			}
			start, ok := ctx.Value(dbMetricsStartKey{}).(time.Time)
			if !ok {
				return
			}
			op := operation
			if op == "" {
				op = detectOperationType(tx.Statement.SQL.String())
			}
			m.RecordQuery(ctx, op, tx.Statement.Table, time.Since(start), tx.Error)
		}
	}

	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("db_metrics:before_create", before),
		cb.Create().After("gorm:create").Register("db_metrics:after_create", after("INSERT")),
		cb.Query().Before("gorm:query").Register("db_metrics:before_query", before),
		cb.Query().After("gorm:query").Register("db_metrics:after_query", after("SELECT")),
		cb.Update().Before("gorm:update").Register("db_metrics:before_update", before),
		cb.Update().After("gorm:update").Register("db_metrics:after_update", after("UPDATE")),
		cb.Delete().Before("gorm:delete").Register("db_metrics:before_delete", before),
		cb.Delete().After("gorm:delete").Register("db_metrics:after_delete", after("DELETE")),
		cb.Row().Before("gorm:row").Register("db_metrics:before_row", before),
		cb.Row().After("gorm:row").Register("db_metrics:after_row", after("")),
		cb.Raw().Before("gorm:raw").Register("db_metrics:before_raw", before),
		cb.Raw().After("gorm:raw").Register("db_metrics:after_raw", after("")),
	)
}

func detectOperationType(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs query and pool metrics on db. It returns nil
// when the meter provider does not export.
func RegisterDBMetrics(db *gorm.DB, mp *MeterProvider, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if mp == nil || !mp.IsEnabled() {
		logger.Debug("Meter provider disabled, skipping database metrics")
		return nil, nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	m, err := NewDBMetrics(mp.Meter("db.client"), sqlDB, slowThreshold)
	if err != nil {
		return nil, err
	}
	if err := db.Use(m); err != nil {
		_ = m.Stop()
		return nil, err
	}

	logger.Info("Database metrics registered", zap.Duration("slow_query_threshold", m.slowThreshold))
	return m, nil
}
