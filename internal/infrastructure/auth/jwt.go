package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/tablegrowth/backend/internal/infrastructure/config"
)

// Verification errors. All of them map to 401 at the HTTP layer.
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrMissingTenantID  = errors.New("missing tenant id in claims")
	ErrInvalidTenantID  = errors.New("tenant id in claims is not a uuid")
)

const leeway = 30 * time.Second

// Principal is the authenticated caller extracted from a bearer token
type Principal struct {
	TenantID  uuid.UUID
	Subject   string
	ExpiresAt time.Time
}

// TokenVerifier validates HS256 bearer tokens minted by the identity
// service and extracts the tenant they are scoped to
type TokenVerifier struct {
	secret      []byte
	issuer      string
	tenantClaim string
	parser      *jwt.Parser
}

// NewTokenVerifier creates a verifier from config
func NewTokenVerifier(cfg config.JWTConfig) *TokenVerifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	tenantClaim := cfg.TenantClaim
	if tenantClaim == "" {
		tenantClaim = "tenant_id"
	}
	return &TokenVerifier{
		secret:      []byte(cfg.Secret),
		issuer:      cfg.Issuer,
		tenantClaim: tenantClaim,
		parser:      jwt.NewParser(opts...),
	}
}

// Verify parses and validates tokenString
func (v *TokenVerifier) Verify(tokenString string) (*Principal, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		default:
			return nil, ErrInvalidToken
		}
	}

	raw, ok := claims[v.tenantClaim].(string)
	if !ok || raw == "" {
		return nil, ErrMissingTenantID
	}
	tenantID, err := uuid.Parse(raw)
	if err != nil || tenantID == uuid.Nil {
		return nil, ErrInvalidTenantID
	}

	p := &Principal{TenantID: tenantID}
	if sub, err := claims.GetSubject(); err == nil {
		p.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		p.ExpiresAt = exp.Time
	}
	return p, nil
}

// IssueToken signs a token the verifier will accept. The identity service
// owns real issuance; this serves local tooling and tests.
func (v *TokenVerifier) IssueToken(tenantID uuid.UUID, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		v.tenantClaim: tenantID.String(),
		"sub":         subject,
		"iat":         now.Unix(),
		"nbf":         now.Unix(),
		"exp":         now.Add(ttl).Unix(),
		"jti":         uuid.NewString(),
	}
	if v.issuer != "" {
		claims["iss"] = v.issuer
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
