package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/tablegrowth/backend/internal/domain/checklist"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
)

// MockCatalogRepository is a mock implementation of checklist.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) ListCategories(ctx context.Context, t *checklist.CategoryType) ([]checklist.Category, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checklist.Category), args.Error(1)
}

func (m *MockCatalogRepository) ListItems(ctx context.Context, categoryID string) ([]checklist.Item, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]checklist.Item), args.Error(1)
}

func (m *MockCatalogRepository) ListCategoriesWithItems(ctx context.Context, t *checklist.CategoryType) (checklist.Catalog, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(checklist.Catalog), args.Error(1)
}

func (m *MockCatalogRepository) FindItem(ctx context.Context, itemID string) (*checklist.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checklist.Item), args.Error(1)
}

// MockStatusRepository is a mock implementation of checklist.StatusRepository
type MockStatusRepository struct {
	mock.Mock
}

func (m *MockStatusRepository) Find(ctx context.Context, tenantID uuid.UUID, itemID string) (*checklist.StatusRecord, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checklist.StatusRecord), args.Error(1)
}

func (m *MockStatusRepository) ListForTenant(ctx context.Context, tenantID uuid.UUID) (checklist.StatusSet, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(checklist.StatusSet), args.Error(1)
}

func (m *MockStatusRepository) Upsert(ctx context.Context, record *checklist.StatusRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockDatabase is a mock implementation of DatabaseProbe
type MockDatabase struct {
	mock.Mock
}

func (m *MockDatabase) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDatabase) Stats() (persistence.ConnectionStats, error) {
	args := m.Called()
	return args.Get(0).(persistence.ConnectionStats), args.Error(1)
}
