package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	checklistapp "github.com/tablegrowth/backend/internal/application/checklist"
	"github.com/tablegrowth/backend/internal/infrastructure/auth"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
	"github.com/tablegrowth/backend/internal/interfaces/http/dto"
	"github.com/tablegrowth/backend/internal/interfaces/http/handler"
	"github.com/tablegrowth/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

type apiFixture struct {
	engine   *gin.Engine
	verifier *auth.TokenVerifier
}

// newAPIFixture serves the built-in catalog from an in-memory sqlite store
func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.AutoMigrate())

	catalogRepo := persistence.NewGormCatalogRepository(db.DB)
	require.NoError(t, checklistapp.NewCatalogSeeder(catalogRepo, zap.NewNop()).Seed(ctx, nil))
	svc := checklistapp.NewService(catalogRepo, persistence.NewGormStatusRepository(db.DB))

	verifier := auth.NewTokenVerifier(config.JWTConfig{Secret: "engine-test-secret-of-sufficient-length", Issuer: "tablegrowth-identity"})
	limiter := middleware.NewRateLimiter(1000, time.Minute)
	t.Cleanup(limiter.Stop)

	engine, err := NewEngine(Deps{
		Logger:      zap.NewNop(),
		HTTP:        config.HTTPConfig{MaxBodySize: 1 << 10},
		Verifier:    verifier,
		RateLimiter: limiter,
		Readiness:   handler.NewReadinessHandler(svc),
		System:      handler.NewSystemHandler("readiness", "test", db),
	})
	require.NoError(t, err)
	return &apiFixture{engine: engine, verifier: verifier}
}

func (f *apiFixture) call(t *testing.T, tenantID uuid.UUID, method, path, body string) (int, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(method, "/api/v1/readiness"+path, bytes.NewBufferString(body))
	if tenantID != uuid.Nil {
		token, err := f.verifier.IssueToken(tenantID, "owner", time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func overallScore(t *testing.T, resp dto.Response) int {
	t.Helper()
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	return int(data["overall_score"].(float64))
}

func TestEngine_ReadinessFlow(t *testing.T) {
	f := newAPIFixture(t)
	tenantA, tenantB := uuid.New(), uuid.New()

	code, resp := f.call(t, tenantA, http.MethodGet, "/score", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, overallScore(t, resp))

	code, _ = f.call(t, tenantA, http.MethodPut, "/items/google-business-profile/status", `{"status":"completed","notes":"claimed"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = f.call(t, tenantA, http.MethodPut, "/items/restaurant-website/status", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, code)

	code, resp = f.call(t, tenantA, http.MethodGet, "/score", "")
	require.Equal(t, http.StatusOK, code)
	assert.Greater(t, overallScore(t, resp), 0)

	code, resp = f.call(t, tenantB, http.MethodGet, "/score", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, overallScore(t, resp), "tenants are isolated")

	code, resp = f.call(t, tenantA, http.MethodGet, "/statuses", "")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 2)

	code, resp = f.call(t, tenantA, http.MethodGet, "/items/google-business-profile/status", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "completed", resp.Data.(map[string]any)["status"])

	code, _ = f.call(t, tenantA, http.MethodDelete, "/items/google-business-profile/status", "")
	require.Equal(t, http.StatusOK, code)
	code, resp = f.call(t, tenantA, http.MethodGet, "/items/google-business-profile/status", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pending", resp.Data.(map[string]any)["status"])
	assert.Nil(t, resp.Data.(map[string]any)["notes"])

	code, resp = f.call(t, tenantA, http.MethodGet, "/dashboard", "")
	require.Equal(t, http.StatusOK, code)
	next := resp.Data.(map[string]any)["next_items"].([]any)
	assert.NotEmpty(t, next)
	assert.LessOrEqual(t, len(next), checklistapp.DefaultRecommendationLimit)
}

func TestEngine_Catalog(t *testing.T) {
	f := newAPIFixture(t)
	tenantID := uuid.New()

	code, resp := f.call(t, tenantID, http.MethodGet, "/categories?type=ongoing", "")
	require.Equal(t, http.StatusOK, code)
	for _, cat := range resp.Data.([]any) {
		assert.Equal(t, "ongoing", cat.(map[string]any)["type"])
	}

	code, resp = f.call(t, tenantID, http.MethodGet, "/categories?with_status=true", "")
	require.Equal(t, http.StatusOK, code)
	first := resp.Data.([]any)[0].(map[string]any)
	item := first["items"].([]any)[0].(map[string]any)
	assert.Equal(t, "pending", item["status"])
	assert.NotNil(t, first["progress"])

	code, resp = f.call(t, tenantID, http.MethodGet, "/categories/online-presence/items", "")
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, resp.Data)

	code, resp = f.call(t, tenantID, http.MethodGet, "/categories/unknown/items", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error.Code)
}

func TestEngine_Rejections(t *testing.T) {
	f := newAPIFixture(t)
	tenantID := uuid.New()

	code, resp := f.call(t, uuid.Nil, http.MethodGet, "/score", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)

	code, _ = f.call(t, tenantID, http.MethodPut, "/items/not-in-catalog/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = f.call(t, tenantID, http.MethodPut, "/items/google-business-profile/status", `{"status":"finished"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	big := `{"status":"completed","notes":"` + string(bytes.Repeat([]byte("x"), 2048)) + `"}`
	code, resp = f.call(t, tenantID, http.MethodPut, "/items/google-business-profile/status", big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)

	code, _ = f.call(t, tenantID, http.MethodGet, "/statuses", "")
	require.Equal(t, http.StatusOK, code)
}

func TestEngine_Health(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{"/health", "/api/v1/readiness/health"} {
		w := httptest.NewRecorder()
		f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	}
}
