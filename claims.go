package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the recognized fields of a decoded token payload. The decode
// is unverified by contract: it is a client convenience, never a trust
// boundary, and the backend re-validates every request.
type Claims struct {
	jwt.RegisteredClaims
	RawRoles []string `json:"roles,omitempty"`
}

// UserID returns the subject claim
func (c *Claims) UserID() string {
	return c.RegisteredClaims.Subject
}

// Roles returns the recognized roles, unknown entries dropped
func (c *Claims) Roles() []Role {
	return FilterRoles(c.RawRoles)
}

// Expires returns the absolute expiry, nil when the token carries no exp claim
func (c *Claims) Expires() *time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return nil
	}
	t := c.RegisteredClaims.ExpiresAt.Time
	return &t
}

// DecodeClaims decodes the payload segment of a bearer token without
// verifying its signature. The token must have exactly three dot-separated
// segments and a base64url JSON payload; anything else returns nil. It
// never panics and never returns an error to the caller.
func DecodeClaims(token string) *Claims {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	return claims
}
