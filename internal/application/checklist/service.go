package checklist

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/domain/shared"
	"github.com/tablegrowth/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// DefaultRecommendationLimit is the number of next steps shown on the dashboard
const DefaultRecommendationLimit = 5

// MetricsRecorder receives readiness events for observability. The telemetry
// package provides the OpenTelemetry implementation.
type MetricsRecorder interface {
	RecordStatusChange(ctx context.Context, from, to checklist.ItemStatus)
	RecordScore(ctx context.Context, score int)
}

type noopRecorder struct{}

func (noopRecorder) RecordStatusChange(context.Context, checklist.ItemStatus, checklist.ItemStatus) {}
func (noopRecorder) RecordScore(context.Context, int)                                               {}

// Service answers readiness queries and records status changes. The tenant
// id is always supplied by the caller; the service never derives it.
type Service struct {
	catalogRepo checklist.CatalogRepository
	statusRepo  checklist.StatusRepository
	classifier  *checklist.Classifier
	metrics     MetricsRecorder
	logger      *zap.Logger
	locks       *tenantLocks
	now         func() time.Time
	recommend   int
}

// ServiceOption is a functional option for configuring Service
type ServiceOption func(*Service)

// WithClassifier overrides the revenue classifier
func WithClassifier(c *checklist.Classifier) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.classifier = c
		}
	}
}

// WithMetrics sets the metrics recorder
func WithMetrics(m MetricsRecorder) ServiceOption {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock sets the time source used for status timestamps
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRecommendationLimit sets how many next steps the dashboard returns
func WithRecommendationLimit(n int) ServiceOption {
	return func(s *Service) {
		if n > 0 {
			s.recommend = n
		}
	}
}

// NewService creates a new readiness Service
func NewService(
	catalogRepo checklist.CatalogRepository,
	statusRepo checklist.StatusRepository,
	opts ...ServiceOption,
) *Service {
	s := &Service{
		catalogRepo: catalogRepo,
		statusRepo:  statusRepo,
		classifier:  checklist.DefaultClassifier(),
		metrics:     noopRecorder{},
		logger:      zap.NewNop(),
		locks:       newTenantLocks(),
		now:         time.Now,
		recommend:   DefaultRecommendationLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// parseTypeFilter converts an optional type query value
func parseTypeFilter(categoryType *string) (*checklist.CategoryType, error) {
	if categoryType == nil || *categoryType == "" {
		return nil, nil
	}
	t, err := checklist.ParseCategoryType(*categoryType)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListCategoriesWithItems returns the ordered catalog. When tenantID is set,
// every item carries the tenant's status and each category its progress.
func (s *Service) ListCategoriesWithItems(ctx context.Context, categoryType *string, tenantID *uuid.UUID) ([]CategoryResponse, error) {
	filter, err := parseTypeFilter(categoryType)
	if err != nil {
		return nil, err
	}

	var (
		catalog  checklist.Catalog
		statuses checklist.StatusSet
	)
	if tenantID == nil {
		catalog, err = s.catalogRepo.ListCategoriesWithItems(ctx, filter)
		if err != nil {
			return nil, err
		}
	} else {
		release := s.locks.RLock(*tenantID)
		defer release()

		catalog, err = s.catalogRepo.ListCategoriesWithItems(ctx, filter)
		if err != nil {
			return nil, err
		}
		statuses, err = s.statusRepo.ListForTenant(ctx, *tenantID)
		if err != nil {
			return nil, err
		}
	}

	out := make([]CategoryResponse, len(catalog))
	for i, cat := range catalog {
		resp := toCategoryResponse(cat)
		if tenantID != nil {
			for j, item := range cat.Items {
				rec, ok := statuses[item.ID]
				if !ok {
					rec = checklist.PendingRecord(*tenantID, item.ID)
				}
				resp.Items[j] = resp.Items[j].withStatus(rec)
			}
			progress := checklist.CategoryProgress(cat, statuses)
			resp.Progress = &progress
		}
		out[i] = resp
	}
	return out, nil
}

// ListItems returns a category's items in order
func (s *Service) ListItems(ctx context.Context, categoryID string) ([]ItemResponse, error) {
	items, err := s.catalogRepo.ListItems(ctx, categoryID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("category", categoryID)
		}
		return nil, err
	}
	return ToItemResponses(items), nil
}

// requireItem resolves an item ID against the catalog
func (s *Service) requireItem(ctx context.Context, itemID string) (*checklist.Item, error) {
	item, err := s.catalogRepo.FindItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewNotFoundError("checklist item", itemID)
		}
		return nil, err
	}
	return item, nil
}

// GetStatus returns the tenant's status for one item, pending if never set
func (s *Service) GetStatus(ctx context.Context, tenantID uuid.UUID, itemID string) (*StatusResponse, error) {
	if _, err := s.requireItem(ctx, itemID); err != nil {
		return nil, err
	}

	rec, err := s.statusRepo.Find(ctx, tenantID, itemID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			resp := ToStatusResponse(checklist.PendingRecord(tenantID, itemID))
			return &resp, nil
		}
		return nil, err
	}
	resp := ToStatusResponse(*rec)
	return &resp, nil
}

// SetStatus upserts the tenant's status for one item. The status is
// validated before anything is read or written.
func (s *Service) SetStatus(ctx context.Context, tenantID uuid.UUID, itemID string, req SetStatusRequest) (*StatusResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checklist", "set_status",
		"tenant.id", tenantID,
		"item.id", itemID,
	)
	defer span.End()

	status, err := checklist.ParseItemStatus(req.Status)
	if err != nil {
		return nil, err
	}
	if _, err := s.requireItem(ctx, itemID); err != nil {
		return nil, err
	}

	release := s.locks.Lock(tenantID)
	defer release()

	previous := checklist.StatusPending
	if existing, err := s.statusRepo.Find(ctx, tenantID, itemID); err == nil {
		previous = existing.Status
	} else if !errors.Is(err, shared.ErrNotFound) {
		telemetry.RecordError(span, err)
		return nil, err
	}

	rec, err := checklist.NewStatusRecord(tenantID, itemID, status, req.Notes, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.statusRepo.Upsert(ctx, rec); err != nil {
		telemetry.RecordError(span, err)
		s.logger.Error("failed to upsert item status",
			zap.String("tenant_id", tenantID.String()),
			zap.String("item_id", itemID),
			zap.Error(err),
		)
		return nil, err
	}

	telemetry.SetAttributes(span, "status.from", previous.String(), "status.to", status.String())
	s.metrics.RecordStatusChange(ctx, previous, status)
	s.logger.Debug("item status updated",
		zap.String("tenant_id", tenantID.String()),
		zap.String("item_id", itemID),
		zap.String("from", previous.String()),
		zap.String("to", status.String()),
	)

	resp := ToStatusResponse(*rec)
	return &resp, nil
}

// ResetStatus sets the item back to pending and clears its notes
func (s *Service) ResetStatus(ctx context.Context, tenantID uuid.UUID, itemID string) (*StatusResponse, error) {
	return s.SetStatus(ctx, tenantID, itemID, SetStatusRequest{Status: checklist.StatusPending.String()})
}

// ListStatuses returns the tenant's persisted records joined with item and
// category metadata, most recently updated first. Records for items no
// longer in the catalog are skipped.
func (s *Service) ListStatuses(ctx context.Context, tenantID uuid.UUID) ([]StatusListEntry, error) {
	catalog, statuses, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	entries := make([]StatusListEntry, 0, len(statuses))
	for itemID, rec := range statuses {
		item, cat, ok := catalog.FindItem(itemID)
		if !ok {
			continue
		}
		entries = append(entries, StatusListEntry{
			StatusResponse: ToStatusResponse(rec),
			ItemTitle:      item.Title,
			IsCritical:     item.IsCritical,
			CategoryID:     cat.ID,
			CategoryName:   cat.Name,
			CategoryType:   cat.Type.String(),
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i].UpdatedAt, entries[j].UpdatedAt
		if a != nil && b != nil && !a.Equal(*b) {
			return a.After(*b)
		}
		return entries[i].ItemID < entries[j].ItemID
	})
	return entries, nil
}

// snapshot loads the full catalog and the tenant's statuses under the
// tenant's read lock
func (s *Service) snapshot(ctx context.Context, tenantID uuid.UUID) (checklist.Catalog, checklist.StatusSet, error) {
	release := s.locks.RLock(tenantID)
	defer release()

	catalog, err := s.catalogRepo.ListCategoriesWithItems(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	statuses, err := s.statusRepo.ListForTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, statuses, nil
}

// GetProgress returns type progress for the tenant, for one type or both
func (s *Service) GetProgress(ctx context.Context, tenantID uuid.UUID, categoryType *string) (map[checklist.CategoryType]checklist.TypeProgressResult, error) {
	filter, err := parseTypeFilter(categoryType)
	if err != nil {
		return nil, err
	}

	catalog, statuses, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if filter != nil {
		return checklist.ProgressByType(catalog, statuses, *filter), nil
	}
	return checklist.ProgressByType(catalog, statuses), nil
}

func (s *Service) score(ctx context.Context, catalog checklist.Catalog, statuses checklist.StatusSet) ScoreResponse {
	foundational := checklist.TypeProgress(checklist.CategoryTypeFoundational, catalog, statuses)
	ongoing := checklist.TypeProgress(checklist.CategoryTypeOngoing, catalog, statuses)
	breakdown := checklist.Score(foundational, ongoing)

	s.metrics.RecordScore(ctx, breakdown.OverallScore)

	return ScoreResponse{
		OverallScore: breakdown.OverallScore,
		Breakdown:    breakdown,
		Foundational: foundational,
		Ongoing:      ongoing,
	}
}

// GetScore returns the tenant's overall health score
func (s *Service) GetScore(ctx context.Context, tenantID uuid.UUID) (*ScoreResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checklist", "get_score", "tenant.id", tenantID)
	defer span.End()

	catalog, statuses, err := s.snapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	resp := s.score(ctx, catalog, statuses)
	telemetry.SetAttributes(span, "score.overall", resp.OverallScore)
	return &resp, nil
}

// GetRevenueImpact returns the tenant's weekly revenue estimate
func (s *Service) GetRevenueImpact(ctx context.Context, tenantID uuid.UUID) (*checklist.RevenueImpactResult, error) {
	catalog, statuses, err := s.snapshot(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	result := s.classifier.RevenueImpact(catalog, statuses)
	return &result, nil
}

// GetDashboard returns score, progress, revenue and next recommended items
// computed from a single snapshot
func (s *Service) GetDashboard(ctx context.Context, tenantID uuid.UUID) (*DashboardResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "checklist", "get_dashboard", "tenant.id", tenantID)
	defer span.End()

	catalog, statuses, err := s.snapshot(ctx, tenantID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := &DashboardResponse{
		Score:       s.score(ctx, catalog, statuses),
		Progress:    checklist.ProgressByType(catalog, statuses),
		Revenue:     s.classifier.RevenueImpact(catalog, statuses),
		NextItems:   s.recommendations(catalog, statuses),
		GeneratedAt: s.now().UTC(),
	}
	telemetry.SetAttributes(span,
		"score.overall", resp.Score.OverallScore,
		"recommendations", len(resp.NextItems),
	)
	return resp, nil
}

// recommendations picks open items: critical foundational items first, then
// everything else, each group in catalog order. Completed and not applicable
// items are never recommended.
func (s *Service) recommendations(catalog checklist.Catalog, statuses checklist.StatusSet) []RecommendedItem {
	var first, rest []RecommendedItem

	for _, cat := range catalog {
		for _, item := range cat.Items {
			status := statuses.StatusOf(item.ID)
			if status == checklist.StatusCompleted || status == checklist.StatusNotApplicable {
				continue
			}
			bucket := s.classifier.Classify(item)
			rec := RecommendedItem{
				ItemID:       item.ID,
				Title:        item.Title,
				CategoryID:   cat.ID,
				CategoryName: cat.Name,
				IsCritical:   item.IsCritical,
				Status:       status.String(),
				Bucket:       bucket,
				WeeklyValue:  bucket.WeeklyValue(),
			}
			if item.IsCritical && cat.Type == checklist.CategoryTypeFoundational {
				first = append(first, rec)
			} else {
				rest = append(rest, rec)
			}
		}
	}

	out := append(first, rest...)
	if len(out) > s.recommend {
		out = out[:s.recommend]
	}
	if out == nil {
		out = []RecommendedItem{}
	}
	return out
}
