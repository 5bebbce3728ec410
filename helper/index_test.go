package helper

import (
	"testing"

	"restaurant_manager/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pw")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pw", hash)

	assert.True(t, CheckPasswordHash("s3cret-pw", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestAccessTokenCarriesVersion(t *testing.T) {
	token, err := GenerateAccessToken(model.TokenClaim{
		UserId:       12,
		Username:     "cashier1",
		Role:         "cashier",
		TokenVersion: 3,
	})
	require.NoError(t, err)

	parsed, err := ParseToken(token)
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(12), claims["userId"])
	assert.Equal(t, "cashier1", claims["username"])
	assert.Equal(t, "cashier", claims["role"])
	assert.Equal(t, float64(3), claims["tokenVersion"])
	assert.NotNil(t, claims["exp"])
}
