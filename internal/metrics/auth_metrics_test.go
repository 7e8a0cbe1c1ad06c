package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMetrics_Creation(t *testing.T) {
	t.Run("successfully create auth metrics", func(t *testing.T) {
		metrics, err := NewAuthMetrics()
		require.NoError(t, err)
		assert.NotNil(t, metrics)
		assert.NotNil(t, metrics.signupsCounter)
		assert.NotNil(t, metrics.loginsCounter)
		assert.NotNil(t, metrics.loginFailuresCounter)
		assert.NotNil(t, metrics.tokenRejectionsCounter)
	})
}

func TestAuthMetrics_Record(t *testing.T) {
	metrics, err := NewAuthMetrics()
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("record signup", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordSignup(ctx)
		})
	})

	t.Run("record login", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordLogin(ctx)
		})
	})

	t.Run("record login failures with reasons", func(t *testing.T) {
		for _, reason := range []string{"unknown_email", "wrong_password"} {
			assert.NotPanics(t, func() {
				metrics.RecordLoginFailure(ctx, reason)
			})
		}
	})

	t.Run("record token rejection", func(t *testing.T) {
		assert.NotPanics(t, func() {
			metrics.RecordTokenRejection(ctx, "expired")
		})
	})
}
