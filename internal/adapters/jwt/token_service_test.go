package token_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortunatoman/Real-estate-AI-backend/internal/core/domain"
)

func testUser() *domain.User {
	user, _ := domain.NewUser("Jane Roe", "jane@example.com", "+15550100", "s3cret")
	return user
}

func TestNewTokenService(t *testing.T) {
	_, err := NewTokenService("")
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	service, err := NewTokenService("test-signing-key")
	require.NoError(t, err)
	user := testUser()

	token, err := service.GenerateToken(context.Background(), user, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestValidateToken(t *testing.T) {
	service, err := NewTokenService("test-signing-key")
	require.NoError(t, err)
	user := testUser()

	t.Run("expired token", func(t *testing.T) {
		token, err := service.GenerateToken(context.Background(), user, -time.Minute)
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrTokenExpired)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		other, err := NewTokenService("another-key")
		require.NoError(t, err)
		token, err := other.GenerateToken(context.Background(), user, time.Hour)
		require.NoError(t, err)

		_, err = service.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := service.ValidateToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, domain.ErrTokenInvalid)
	})
}
