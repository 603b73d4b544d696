package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the access tokens issued to the
// HTTP surface. The registered claims carry the timing fields; the custom
// fields carry identity and role for stateless authorization.
type Claims struct {
	UserID uuid.UUID `json:"uid"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating the
// access tokens used by the HTTP delivery layer. Session semantics live in
// the session store; tokens only carry identity across requests.
type TokenService interface {
	// GenerateToken creates a signed access token for an account.
	GenerateToken(userID uuid.UUID, role string) (string, error)

	// ValidateToken checks the validity of a token string and returns its claims.
	ValidateToken(tokenString string) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration
}
