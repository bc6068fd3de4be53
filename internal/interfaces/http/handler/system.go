package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/infrastructure/persistence"
	"github.com/tablegrowth/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const healthCheckTimeout = 2 * time.Second

// DatabaseProbe reports database reachability and pool usage
type DatabaseProbe interface {
	Ping(ctx context.Context) error
	Stats() (persistence.ConnectionStats, error)
}

// SystemHandler serves unauthenticated health and build information
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	db        DatabaseProbe
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(name, version string, db DatabaseProbe) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		db:        db,
		startTime: time.Now(),
	}
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`

	Database *persistence.ConnectionStats `json:"database,omitempty"`
}

func (h *SystemHandler) uptime() string {
	return time.Since(h.startTime).Round(time.Second).String()
}

// Health pings the database. 503 means the service cannot answer readiness
// queries. Also mounted at /health outside the versioned API.
//
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=HealthResponse}
// @Failure      503 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /readiness/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		logger.GetGinLogger(c).Warn("Health check failed", zap.Error(err))
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Database unavailable")
		return
	}

	h.Success(c, HealthResponse{
		Status:   "ok",
		Database: "up",
		Uptime:   h.uptime(),
	})
}

// GetSystemInfo returns name, version, uptime and pool statistics. Pool
// statistics are omitted when unavailable.
//
// @Summary      System information
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	resp := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    h.uptime(),
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Database = &stats
	} else {
		logger.GetGinLogger(c).Debug("Pool stats unavailable", zap.Error(err))
	}
	h.Success(c, resp)
}
