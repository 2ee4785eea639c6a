package auth

import (
	"slices"
	"time"
)

// AdminClaims are the claims inside an admin token.
type AdminClaims struct {
	Scopes []string `json:"scopes"`

	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// HasScope reports whether the token was granted scope.
func (c *AdminClaims) HasScope(scope string) bool {
	return slices.Contains(c.Scopes, scope)
}
