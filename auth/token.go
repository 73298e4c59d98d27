package auth

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// TokenExpired reports whether the bearer token's exp claim is in the past.
// The payload segment is decoded without signature verification; only the
// issuing backend can verify, the client just needs a cheap local check.
// Any decode or parse failure counts as expired.
func TokenExpired(rawToken string, now time.Time) bool {
	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Unix() < now.Unix()
}
