package auth

import (
	"fmt"
	"time"
)

// Session is the immutable, decoded view of the current bearer credential.
// It is derived from the persisted raw token and recomputed on every read;
// state transitions replace the value, they never mutate it.
type Session struct {
	Token     string     `json:"token"`
	UserID    string     `json:"user_id,omitempty"`
	Roles     []Role     `json:"roles,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewSession builds a Session by decoding the raw token. Undecodable tokens
// yield the fallback session {token, no subject, no roles, no expiry} so
// callers never have to branch on decode failure.
func NewSession(token string) Session {
	claims := DecodeClaims(token)
	if claims == nil {
		return Session{Token: token}
	}

	return Session{
		Token:     token,
		UserID:    claims.UserID(),
		Roles:     claims.Roles(),
		ExpiresAt: claims.Expires(),
	}
}

// HasCredential reports whether the session carries a token at all.
// An empty token string means "no credential".
func (s Session) HasCredential() bool {
	return s.Token != ""
}

// Expired checks the session against the given instant. A nil expiry means
// the token does not expire and is never treated as expired.
func (s Session) Expired(now time.Time) bool {
	if s.ExpiresAt == nil {
		return false
	}
	return !now.Before(*s.ExpiresAt)
}

// Authenticated reports whether the session holds a non-expired credential
func (s Session) Authenticated(now time.Time) bool {
	return s.HasCredential() && !s.Expired(now)
}

// HasRole checks if the session's claims carry a specific role
func (s Session) HasRole(role Role) bool {
	return ContainsRole(s.Roles, role)
}

// AuthorizationHeader returns the bearer header value for the session,
// empty when there is no credential.
func (s Session) AuthorizationHeader() string {
	if !s.HasCredential() {
		return ""
	}
	return "Bearer " + s.Token
}

func (s Session) String() string {
	expiresAt := "<nil>"
	if s.ExpiresAt != nil {
		expiresAt = s.ExpiresAt.Format(time.RFC1123)
	}
	return fmt.Sprintf("user=%s roles=%v exp=%s", s.UserID, s.Roles, expiresAt)
}
