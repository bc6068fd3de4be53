package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/infrastructure/telemetry"
)

// Profiling attaches route, method and tenant pprof labels to the rest of
// the chain so continuous profiles can be filtered per endpoint. Mount it
// after Authenticate so the tenant is known. It is a pass-through when
// disabled.
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		labels := map[string]string{
			telemetry.ProfilingLabelMethod:   c.Request.Method,
			telemetry.ProfilingLabelRoute:    c.FullPath(),
			telemetry.ProfilingLabelTenantID: c.GetString(logger.GinTenantIDKey),
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
