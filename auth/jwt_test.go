package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestJWTTokenValid(t *testing.T) {
	token := sign(t, "s3cret", jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()})

	assert.True(t, JWTTokenValid("s3cret", token))
	assert.False(t, JWTTokenValid("other", token))
}

func TestJWTTokenValid_Expired(t *testing.T) {
	token := sign(t, "s3cret", jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})

	assert.False(t, JWTTokenValid("s3cret", token))
}

func TestJWTTokenValid_Empty(t *testing.T) {
	assert.False(t, JWTTokenValid("s3cret", ""))
	assert.False(t, JWTTokenValid("s3cret", "not-a-jwt"))
}
