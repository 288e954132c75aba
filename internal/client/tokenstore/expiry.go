package tokenstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Expired reports whether token is a JWT whose exp claim lies at or before
// now. The signature is not checked: only the backend can do that, this is
// just a shortcut to skip a profile request that is bound to fail with 401.
// Opaque (non-JWT) tokens and JWTs without exp never count as expired.
func Expired(token string, now time.Time) bool {
	if token == "" {
		return false
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !claims.ExpiresAt.Time.After(now)
}
