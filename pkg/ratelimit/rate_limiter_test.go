package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mulnori/pkg/ratelimit"
)

func newTestLimiter(t *testing.T, cfg *ratelimit.Config) *ratelimit.RateLimiter {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return ratelimit.NewRateLimiter(client, cfg)
}

func baseConfig() *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:            true,
		WindowDuration:     time.Minute,
		DefaultRequests:    3,
		PublicRequests:     5,
		GovernanceRequests: 2,
		AdminRequests:      10,
		HealthRequests:     100,
	}
}

func TestIsAllowed(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		limiter := newTestLimiter(t, baseConfig())

		for i := 0; i < 2; i++ {
			result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
			assert.True(t, result.Allowed, "request %d should pass", i+1)
		}

		result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
		require.NoError(t, err)
		assert.False(t, result.Allowed)
		assert.Equal(t, 0, result.Remaining)
	})

	t.Run("saturated window keeps blocking", func(t *testing.T) {
		limiter := newTestLimiter(t, baseConfig())

		blocked := 0
		for i := 0; i < 50; i++ {
			result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
			if !result.Allowed {
				blocked++
			}
		}
		assert.Equal(t, 48, blocked)
	})

	t.Run("limits are tracked per client", func(t *testing.T) {
		limiter := newTestLimiter(t, baseConfig())

		for i := 0; i < 2; i++ {
			_, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
		}

		result, err := limiter.IsAllowed(ctx, "10.0.0.2", ratelimit.RateLimitTypeGovernance)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
	})

	t.Run("limits are tracked per type", func(t *testing.T) {
		limiter := newTestLimiter(t, baseConfig())

		for i := 0; i < 2; i++ {
			_, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
		}

		result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypePublic)
		require.NoError(t, err)
		assert.True(t, result.Allowed)
		assert.Equal(t, 5, result.Limit)
	})

	t.Run("whitelisted clients always pass", func(t *testing.T) {
		cfg := baseConfig()
		cfg.WhitelistedIPs = []string{"192.168.1.10"}
		limiter := newTestLimiter(t, cfg)

		for i := 0; i < 10; i++ {
			result, err := limiter.IsAllowed(ctx, "192.168.1.10", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
			assert.True(t, result.Allowed)
		}
	})

	t.Run("disabled limiter always passes", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Enabled = false
		limiter := newTestLimiter(t, cfg)

		for i := 0; i < 10; i++ {
			result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitTypeGovernance)
			require.NoError(t, err)
			assert.True(t, result.Allowed)
		}
	})

	t.Run("unknown type falls back to the default limit", func(t *testing.T) {
		limiter := newTestLimiter(t, baseConfig())

		result, err := limiter.IsAllowed(ctx, "10.0.0.1", ratelimit.RateLimitType("other"))
		require.NoError(t, err)
		assert.Equal(t, 3, result.Limit)
	})
}
