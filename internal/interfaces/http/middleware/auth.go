package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/infrastructure/auth"
	"github.com/tablegrowth/backend/internal/infrastructure/logger"
	"github.com/tablegrowth/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

const (
	// AuthHeaderKey is the header carrying the bearer token
	AuthHeaderKey = "Authorization"
	// BearerPrefix is the scheme prefix of AuthHeaderKey
	BearerPrefix = "Bearer "

	principalKey = "auth_principal"
)

var errMissingCredentials = errors.New("missing bearer token")

// TokenVerifier turns a bearer token into the calling tenant
type TokenVerifier interface {
	Verify(token string) (*auth.Principal, error)
}

// Authenticate requires a valid bearer token and stores the tenant it is
// scoped to. Tenants never come from headers or query parameters.
func Authenticate(verifier TokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, log, errMissingCredentials, "Missing authorization header")
			return
		}
		token, ok := strings.CutPrefix(header, BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, log, errMissingCredentials, "Invalid authorization header format")
			return
		}

		principal, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, log, err, "Token validation failed")
			return
		}

		c.Set(principalKey, principal)
		c.Set(logger.GinTenantIDKey, principal.TenantID.String())
		c.Request = c.Request.WithContext(logger.WithTenantID(c.Request.Context(), principal.TenantID.String()))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, log *zap.Logger, err error, reason string) {
	log.Warn("Authentication failed",
		zap.Error(err),
		zap.String("reason", reason),
		zap.String("path", c.Request.URL.Path),
	)

	code, message := dto.ErrCodeUnauthorized, "Authentication required"
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		code, message = dto.ErrCodeTokenExpired, "Token has expired"
	case errors.Is(err, auth.ErrMissingTenantID), errors.Is(err, auth.ErrInvalidTenantID):
		code, message = dto.ErrCodeTokenInvalid, "Token is not scoped to a tenant"
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
		code, message = dto.ErrCodeTokenInvalid, "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetPrincipal returns the authenticated caller, if any
func GetPrincipal(c *gin.Context) (*auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*auth.Principal)
	return p, ok && p != nil
}

// GetTenantID returns the authenticated tenant, if any
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return uuid.Nil, false
	}
	return p.TenantID, true
}
