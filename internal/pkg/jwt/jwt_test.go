package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt"

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "factory-1", auth.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "factory-1", claims["factory_id"])
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateRefreshToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refresh", claims["type"])
	assert.Equal(t, "user-1", claims["user_id"])
	assert.NotContains(t, claims, "factory_id")
}

func TestGenerateAccessToken_BadExpiration(t *testing.T) {
	svc := NewJWTService(testSecret, "not-a-duration", "24h")

	_, _, err := svc.GenerateAccessToken("user-1", "factory-1", auth.RoleKiosk)
	assert.Error(t, err)
}

func TestTokenRevocation(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	tokenString, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(tokenString))
	svc.RevokeToken(tokenString)
	assert.True(t, svc.IsTokenRevoked(tokenString))
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h")

	exp := time.Now().Add(24 * time.Hour).Unix()
	cookie := svc.RefreshTokenCookie("tok", exp)

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
}
