package auth

import (
	"time"

	"github.com/banglakobita/kobita-server/internal/domain"
)

// Claims represents the claims stored in a PASETO bearer token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type Claims struct {
	UserID   string      `json:"user_id"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// IsAdmin reports whether the token belongs to an admin user.
func (c *Claims) IsAdmin() bool {
	return c.Role == domain.RoleAdmin
}
