package telemetry

import (
	"context"
	"fmt"

	"github.com/tablegrowth/backend/internal/domain/checklist"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MeterName is the instrumentation scope of the readiness metrics
const MeterName = "github.com/tablegrowth/backend/readiness"

// scoreBuckets are histogram boundaries for the 0..100 readiness score
var scoreBuckets = []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}

// ChecklistMetrics records readiness activity. It satisfies the
// application's MetricsRecorder.
type ChecklistMetrics struct {
	statusChanges metric.Int64Counter
	completions   metric.Int64Counter
	scores        metric.Int64Histogram
}

// NewChecklistMetrics registers the readiness instruments on meter
func NewChecklistMetrics(meter metric.Meter) (*ChecklistMetrics, error) {
	statusChanges, err := meter.Int64Counter(
		"readiness.status.changes",
		metric.WithDescription("Checklist item status writes by previous and new status"),
		metric.WithUnit("{change}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create status change counter: %w", err)
	}

	completions, err := meter.Int64Counter(
		"readiness.items.completed",
		metric.WithDescription("Items moved into the completed status"),
		metric.WithUnit("{item}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion counter: %w", err)
	}

	scores, err := meter.Int64Histogram(
		"readiness.score",
		metric.WithDescription("Overall readiness scores served"),
		metric.WithExplicitBucketBoundaries(scoreBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create score histogram: %w", err)
	}

	return &ChecklistMetrics{statusChanges: statusChanges, completions: completions, scores: scores}, nil
}

// RecordStatusChange counts a status write
func (m *ChecklistMetrics) RecordStatusChange(ctx context.Context, from, to checklist.ItemStatus) {
	m.statusChanges.Add(ctx, 1, metric.WithAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
	if to.IsCompleted() && !from.IsCompleted() {
		m.completions.Add(ctx, 1)
	}
}

// RecordScore observes a computed overall score
func (m *ChecklistMetrics) RecordScore(ctx context.Context, score int) {
	m.scores.Record(ctx, int64(score))
}
