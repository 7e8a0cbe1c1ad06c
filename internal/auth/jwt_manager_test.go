package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key-for-unit-tests"

func TestNewJWTManager(t *testing.T) {
	t.Run("creates manager with signing key", func(t *testing.T) {
		jm, err := NewJWTManager(testSigningKey)
		require.NoError(t, err)
		assert.NotNil(t, jm)
	})

	t.Run("refuses empty signing key", func(t *testing.T) {
		_, err := NewJWTManager("")
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	ctx := context.Background()
	jm, err := NewJWTManager(testSigningKey)
	require.NoError(t, err)

	t.Run("round trip returns the bound user ID", func(t *testing.T) {
		token, err := jm.GenerateToken(ctx, "user-123", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		userID, err := jm.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", userID)
	})

	t.Run("expired token returns ErrTokenExpired", func(t *testing.T) {
		token, err := jm.GenerateToken(ctx, "user-123", -time.Minute)
		require.NoError(t, err)

		_, err = jm.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token signed with different key returns ErrTokenInvalid", func(t *testing.T) {
		other, err := NewJWTManager("a-completely-different-key")
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, "user-123", time.Hour)
		require.NoError(t, err)

		_, err = jm.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("malformed token returns ErrTokenInvalid", func(t *testing.T) {
		_, err := jm.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("tampered token returns ErrTokenInvalid", func(t *testing.T) {
		token, err := jm.GenerateToken(ctx, "user-123", time.Hour)
		require.NoError(t, err)

		tampered := token[:len(token)-4] + "xxxx"
		_, err = jm.ValidateToken(ctx, tampered)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
