package auth_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"github.com/vendaro/admin-console/auth"
)

func mintToken(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("exp in the past", func(t *testing.T) {
		token := mintToken(t, jwtlib.MapClaims{"exp": now.Add(-time.Hour).Unix()})
		require.True(t, auth.TokenExpired(token, now))
	})

	t.Run("exp in the future", func(t *testing.T) {
		token := mintToken(t, jwtlib.MapClaims{"exp": now.Add(time.Hour).Unix()})
		require.False(t, auth.TokenExpired(token, now))
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token := mintToken(t, jwtlib.MapClaims{"sub": "u1"})
		require.True(t, auth.TokenExpired(token, now))
	})

	t.Run("payload segment is not a token", func(t *testing.T) {
		require.True(t, auth.TokenExpired("header.!!!not-base64!!!.sig", now))
	})

	t.Run("not a three segment token", func(t *testing.T) {
		require.True(t, auth.TokenExpired("just-a-string", now))
	})

	t.Run("empty token", func(t *testing.T) {
		require.True(t, auth.TokenExpired("", now))
	})
}
