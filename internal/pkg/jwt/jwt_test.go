package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terceiro-labs/provision-backend/internal/domain/user"
)

func TestAccessTokenClaimsRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour, 24*time.Hour, false)

	employeeID := "0b6c3f1e-2a55-4a4e-9d3c-111111111111"
	token, expiresAt, err := svc.GenerateAccessToken(Subject{
		UserID:     "user-1",
		Username:   "maria",
		Role:       user.RoleEmployee,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := jwtauth.VerifyToken(svc.JWTAuth(), token)
	require.NoError(t, err)

	ctx := jwtauth.NewContext(context.Background(), decoded, nil)
	claims, err := FromContext(ctx)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, user.RoleEmployee, claims.Role)
	assert.Equal(t, employeeID, claims.EmployeeID)
	assert.Empty(t, claims.ManagerID)
	assert.False(t, claims.IsManager())

	tokenType, _ := decoded.Get("type")
	assert.Equal(t, "access", tokenType)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour, 24*time.Hour, false)

	first, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	second, _, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestFromContextWithoutToken(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, ErrMissingClaims)
}

func TestClaimsRoles(t *testing.T) {
	assert.True(t, Claims{Role: user.RoleAdmin}.IsManager())
	assert.True(t, Claims{Role: user.RoleAdmin}.IsAdmin())
	assert.True(t, Claims{Role: user.RoleManager}.IsManager())
	assert.False(t, Claims{Role: user.RoleManager}.IsAdmin())
	assert.False(t, Claims{Role: user.RoleUser}.IsManager())
}

func TestRefreshCookie(t *testing.T) {
	svc := NewJWTService("secret", time.Hour, time.Hour, true)
	cookie := svc.RefreshTokenCookie("abc", time.Now().Add(time.Hour).Unix())

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, -1, svc.ExpiredRefreshTokenCookie().MaxAge)
}
