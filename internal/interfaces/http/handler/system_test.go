package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
	"github.com/tablegrowth/backend/internal/interfaces/http/dto"
)

func TestSystemHandler_Health(t *testing.T) {
	t.Run("database up", func(t *testing.T) {
		db := new(MockDatabase)
		db.On("Ping", mock.Anything).Return(nil)
		h := NewSystemHandler("readiness", "1.0.0", db)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		h.Health(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		data := resp.Data.(map[string]any)
		assert.Equal(t, "ok", data["status"])
		assert.Equal(t, "up", data["database"])
	})

	t.Run("database down", func(t *testing.T) {
		db := new(MockDatabase)
		db.On("Ping", mock.Anything).Return(errors.New("dial tcp: connection refused"))
		h := NewSystemHandler("readiness", "1.0.0", db)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		h.Health(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeUnavailable, resp.Error.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestSystemHandler_GetSystemInfo(t *testing.T) {
	getInfo := func(t *testing.T, db *MockDatabase) map[string]any {
		h := NewSystemHandler("readiness", "1.2.3", db)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/system/info", nil)
		h.GetSystemInfo(c)

		require.Equal(t, http.StatusOK, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		return resp.Data.(map[string]any)
	}

	t.Run("with pool stats", func(t *testing.T) {
		db := new(MockDatabase)
		db.On("Stats").Return(persistence.ConnectionStats{MaxOpenConnections: 25, OpenConnections: 3, InUse: 1, Idle: 2}, nil)

		data := getInfo(t, db)
		assert.Equal(t, "readiness", data["name"])
		assert.Equal(t, "1.2.3", data["version"])
		assert.NotEmpty(t, data["go_version"])
		pool := data["database"].(map[string]any)
		assert.Equal(t, float64(25), pool["max_open_connections"])
		assert.Equal(t, float64(1), pool["in_use"])
	})

	t.Run("stats unavailable", func(t *testing.T) {
		db := new(MockDatabase)
		db.On("Stats").Return(persistence.ConnectionStats{}, errors.New("sql: database is closed"))

		data := getInfo(t, db)
		assert.NotContains(t, data, "database")
	})
}
