// internal/utils/jwt_test.go
package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(42, "Alice", "alice@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidateJWTExpired(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateJWT(1, "Bob", "bob@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTWrongSecret(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateJWT(1, "Bob", "bob@example.com", time.Hour)
	require.NoError(t, err)

	SetJWTSecret("another-secret")
	_, err = ValidateJWT(token)
	assert.Error(t, err)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")

	token, err := GenerateRefreshToken(7, time.Hour)
	require.NoError(t, err)

	userID, err := ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
}
