package router

import (
	"github.com/gin-gonic/gin"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/interfaces/http/handler"
	"github.com/tablegrowth/backend/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	Logger      *zap.Logger
	HTTP        config.HTTPConfig
	Production  bool
	Tracing     middleware.TracingConfig
	Meter       metric.Meter // nil disables HTTP metrics
	Verifier    middleware.TokenVerifier
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
	Profiling   bool                    // pprof labels per route and tenant
	Readiness   *handler.ReadinessHandler
	System      *handler.SystemHandler
}

// NewEngine builds the gin engine with the global middleware chain, the
// unauthenticated health routes and the authenticated readiness API
func NewEngine(deps Deps) (*gin.Engine, error) {
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(deps.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	security := middleware.DefaultSecurityConfig()
	security.HSTSEnabled = deps.Production

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = deps.HTTP.CORSAllowOrigins
	if len(deps.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = deps.HTTP.CORSAllowMethods
	}
	if len(deps.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = deps.HTTP.CORSAllowHeaders
	}

	engine.Use(
		logger.Recovery(deps.Logger),
		middleware.RequestID(),
		logger.GinMiddleware(deps.Logger),
		middleware.Tracing(deps.Tracing),
		middleware.HTTPMetrics(deps.Meter, deps.Logger),
		middleware.SecureWithConfig(security),
		middleware.CORSWithConfig(cors),
	)
	if deps.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(deps.HTTP.MaxBodySize))
	}

	engine.GET("/health", deps.System.Health)

	r := NewRouter(engine)
	r.Register(systemRoutes(deps.System))
	r.Register(readinessRoutes(deps))
	r.Setup()

	return engine, nil
}

func systemRoutes(h *handler.SystemHandler) *DomainGroup {
	return NewDomainGroup("system", "/system").
		GET("/info", h.GetSystemInfo)
}

// readinessRoutes mounts the checklist API under /readiness. Every route
// except /health requires a bearer token scoped to a tenant.
func readinessRoutes(deps Deps) *DomainGroup {
	h := deps.Readiness

	group := NewDomainGroup("readiness", "/readiness").
		GET("/health", deps.System.Health)

	authed := group.Group("readiness-api", "").
		Use(
			middleware.Authenticate(deps.Verifier, deps.Logger),
			middleware.SpanAttributes(),
			middleware.Profiling(deps.Profiling),
		)
	if deps.RateLimiter != nil {
		authed.Use(middleware.RateLimit(deps.RateLimiter))
	}

	authed.
		GET("/categories", h.ListCategories).
		GET("/categories/:id/items", h.ListCategoryItems).
		GET("/items/:id/status", h.GetItemStatus).
		PUT("/items/:id/status", h.SetItemStatus).
		DELETE("/items/:id/status", h.ResetItemStatus).
		GET("/statuses", h.ListStatuses).
		GET("/progress", h.GetProgress).
		GET("/score", h.GetScore).
		GET("/revenue", h.GetRevenue).
		GET("/dashboard", h.GetDashboard)

	return group
}
