package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func findEntry(entries []observer.LoggedEntry, msg string) *observer.LoggedEntry {
	for i := range entries {
		if entries[i].Message == msg {
			return &entries[i]
		}
	}
	return nil
}

func TestGinMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.DebugLevel)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(GinRequestIDKey, "req-123")
		c.Next()
	})
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/score", func(c *gin.Context) {
		c.Set(GinTenantIDKey, "tenant-1")
		// request context carries the scoped logger and request id
		assert.Equal(t, "req-123", GetRequestID(c.Request.Context()))
		GetGinLogger(c).Debug("handler ran")
		c.Status(http.StatusOK)
	})
	router.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	router.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	for path, level := range map[string]zapcore.Level{
		"/score":   zapcore.InfoLevel,
		"/missing": zapcore.WarnLevel,
		"/broken":  zapcore.ErrorLevel,
	} {
		recorded.TakeAll()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path+"?type=ongoing", nil))

		entry := findEntry(recorded.All(), "HTTP Request")
		require.NotNil(t, entry, path)
		assert.Equal(t, level, entry.Level, path)
		fields := entry.ContextMap()
		assert.Equal(t, "req-123", fields["request_id"])
		assert.Equal(t, path, fields["path"])
		assert.Equal(t, "type=ongoing", fields["query"])
		if path == "/score" {
			assert.Equal(t, "tenant-1", fields["tenant_id"])
			assert.NotNil(t, findEntry(recorded.All(), "handler ran"))
		}
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.ErrorLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotNil(t, findEntry(recorded.All(), "Panic recovered"))
}

func TestGetGinLogger_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.NotNil(t, GetGinLogger(c))
}
