package service

import (
	"testing"
	"time"

	apperrors "maintenance-system/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() JWTService {
	return NewJWTService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()

	access, refresh, refreshJTI, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotEmpty(t, refreshJTI)

	accessClaims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.False(t, accessClaims.IsRefreshToken)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), refreshClaims.UserID)
	assert.True(t, refreshClaims.IsRefreshToken)
	assert.Equal(t, refreshJTI, refreshClaims.ID)
}

// Токены подписаны разными секретами, подмена одного другим недопустима.
func TestJWTService_CrossTokenRejected(t *testing.T) {
	svc := newTestJWTService()

	access, refresh, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := NewJWTService("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	access, refresh, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService("other-access", "other-refresh", 15*time.Minute, 24*time.Hour)

	access, _, _, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_GarbageToken(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("не-токен-вовсе")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestJWTService_RefreshJTIUniquePerIssue(t *testing.T) {
	svc := newTestJWTService()

	_, _, jti1, err := svc.GenerateTokens(42)
	require.NoError(t, err)
	_, _, jti2, err := svc.GenerateTokens(42)
	require.NoError(t, err)

	assert.NotEqual(t, jti1, jti2)
}
