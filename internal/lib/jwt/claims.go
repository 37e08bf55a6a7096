// Package jwt issues and parses the gateway's own session tokens. The token
// carries the session id plus the username and role so route guards can make
// decisions without a round-trip; the upstream bearer token itself never
// leaves the server side.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the custom claims embedded in a gateway token.
type SessionClaims struct {
	SessionID string `json:"sid"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Maker generates and parses gateway session tokens.
type Maker interface {
	GenerateToken(sessionID, username, role string) (string, error)
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl implements Maker with an HMAC secret and a fixed TTL.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker creates a MakerImpl from the signing secret and token TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
