// ABOUTME: Client-side bearer token inspection
// ABOUTME: Reads exp without verifying; the backend remains the authority

package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether a JWT bearer token carries an exp claim in
// the past. Tokens that do not parse as JWTs are treated as opaque and not
// expired: the backend will reject them with a 401 if they are stale, and
// the session-invalid path handles that.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
