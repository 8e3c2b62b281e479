package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitType string

const (
	RateLimitTypeDefault    RateLimitType = "default"
	RateLimitTypePublic     RateLimitType = "public"
	RateLimitTypeGovernance RateLimitType = "governance"
	RateLimitTypeAdmin      RateLimitType = "admin"
	RateLimitTypeHealth     RateLimitType = "health"
)

type Config struct {
	Enabled            bool          `json:"enabled"`
	WindowDuration     time.Duration `json:"window_duration"`
	DefaultRequests    int           `json:"default_requests"`
	PublicRequests     int           `json:"public_requests"`
	GovernanceRequests int           `json:"governance_requests"`
	AdminRequests      int           `json:"admin_requests"`
	HealthRequests     int           `json:"health_requests"`
	WhitelistedIPs     []string      `json:"whitelisted_ips"`
}

// Result represents rate limit check result
type Result struct {
	Allowed   bool  `json:"allowed"`
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimiter handles rate limiting using Redis
type RateLimiter struct {
	client *redis.Client
	config *Config
}

func NewRateLimiter(client *redis.Client, config *Config) *RateLimiter {
	return &RateLimiter{
		client: client,
		config: config,
	}
}

// IsAllowed checks if a request from clientIP is within its limit.
func (r *RateLimiter) IsAllowed(ctx context.Context, clientIP string, limitType RateLimitType) (*Result, error) {
	limit := r.getLimit(limitType)

	if !r.config.Enabled || r.isWhitelisted(clientIP) {
		return &Result{
			Allowed:   true,
			Limit:     limit,
			Remaining: limit,
			ResetTime: time.Now().Add(r.config.WindowDuration).Unix(),
		}, nil
	}

	key := fmt.Sprintf("mulnori:ratelimit:%s:%s", clientIP, limitType)
	return r.checkLimit(ctx, key, limit)
}

// checkLimit performs the actual rate limit check using a sliding window.
func (r *RateLimiter) checkLimit(ctx context.Context, key string, limit int) (*Result, error) {
	now := time.Now()
	windowStart := now.Add(-r.config.WindowDuration)

	// Lua script for atomic sliding window rate limiting
	luaScript := `
		local key = KEYS[1]
		local window_start = tonumber(ARGV[1])
		local now = tonumber(ARGV[2])
		local limit = tonumber(ARGV[3])
		local window_seconds = tonumber(ARGV[4])

		-- Remove old entries
		redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

		-- Count current requests
		local current_count = redis.call('ZCARD', key)

		-- Check if limit exceeded. The count alone cannot signal the
		-- decision (a full window reports exactly the limit either way),
		-- so an explicit allowed flag comes back as the third element.
		if current_count >= limit then
			redis.call('EXPIRE', key, window_seconds)
			return {current_count, limit - current_count, 0}
		end

		-- Add current request
		redis.call('ZADD', key, now, ARGV[2])
		redis.call('EXPIRE', key, window_seconds)

		return {current_count + 1, limit - current_count - 1, 1}
	`

	// Nanosecond timestamps keep same-second requests as distinct
	// sorted-set members.
	result, err := r.client.Eval(ctx, luaScript, []string{key},
		windowStart.UnixNano(),
		now.UnixNano(),
		limit,
		int(r.config.WindowDuration.Seconds())).Result()

	if err != nil {
		return nil, fmt.Errorf("redis eval failed: %w", err)
	}

	values, ok := result.([]interface{})
	if !ok || len(values) != 3 {
		return nil, fmt.Errorf("unexpected redis response")
	}

	remaining, _ := strconv.Atoi(fmt.Sprintf("%v", values[1]))
	if remaining < 0 {
		remaining = 0
	}
	allowed, _ := strconv.Atoi(fmt.Sprintf("%v", values[2]))

	return &Result{
		Allowed:   allowed == 1,
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(r.config.WindowDuration).Unix(),
	}, nil
}

func (r *RateLimiter) getLimit(limitType RateLimitType) int {
	switch limitType {
	case RateLimitTypePublic:
		return r.config.PublicRequests
	case RateLimitTypeGovernance:
		return r.config.GovernanceRequests
	case RateLimitTypeAdmin:
		return r.config.AdminRequests
	case RateLimitTypeHealth:
		return r.config.HealthRequests
	default:
		return r.config.DefaultRequests
	}
}

func (r *RateLimiter) isWhitelisted(ip string) bool {
	for _, whitelistedIP := range r.config.WhitelistedIPs {
		if ip == whitelistedIP {
			return true
		}
	}
	return false
}
