package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session describes the authenticated user.
type Session struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
	// Token is the opaque session token issued by the identity service.
	Token string `json:"-"`
}

// Expired reports whether the session has an expiry that is not after now.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The client cannot verify tokens; the expiry is only used for lifetime
// bookkeeping. ok is false when token is not a JWT or carries no exp.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// WithDerivedExpiry fills ExpiresAt from the token's exp claim when the
// session has no explicit expiry.
func (s Session) WithDerivedExpiry() Session {
	if !s.ExpiresAt.IsZero() {
		return s
	}
	if exp, ok := TokenExpiry(s.Token); ok {
		s.ExpiresAt = exp
	}
	return s
}
