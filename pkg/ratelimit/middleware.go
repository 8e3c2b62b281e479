package ratelimit

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"mulnori/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

// Middleware applies the rate limiter to every request.
func Middleware(rateLimiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := getClientIP(c)
		limitType := getRateLimitType(c.Request.Method, c.FullPath())

		result, err := rateLimiter.IsAllowed(c.Request.Context(), clientIP, limitType)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusInternalServerError,
				"Rate limit check failed", nil, nil)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", result.ResetTime))

		if !result.Allowed {
			response.RespondJSON(c, "error", http.StatusTooManyRequests,
				"Rate limit exceeded", nil, map[string]interface{}{
					"limit":      result.Limit,
					"reset_time": result.ResetTime,
				})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getRateLimitType classifies a route into a limiter tier. Governance
// writes (tag requests, site registration, status changes) get the
// strictest tier since they mutate crowd-visible state.
func getRateLimitType(method, path string) RateLimitType {
	switch {
	// Health/monitoring endpoints
	case strings.HasPrefix(path, "/health"),
		strings.HasPrefix(path, "/ping"),
		strings.HasPrefix(path, "/status"):
		return RateLimitTypeHealth

	// Admin endpoints (hidden-request review, purges, status changes)
	case strings.Contains(path, "/admin/"):
		return RateLimitTypeAdmin

	// Governance writes
	case strings.Contains(path, "/tags/request"),
		method != http.MethodGet && strings.Contains(path, "/sites"),
		strings.Contains(path, "/upload"):
		return RateLimitTypeGovernance

	// Public browsing endpoints
	case strings.Contains(path, "/sites"),
		strings.Contains(path, "/boards"):
		return RateLimitTypePublic

	default:
		return RateLimitTypeDefault
	}
}

// getClientIP extracts the real client IP.
func getClientIP(c *gin.Context) string {
	xForwardedFor := c.GetHeader("X-Forwarded-For")
	if xForwardedFor != "" {
		ips := strings.Split(xForwardedFor, ",")
		if len(ips) > 0 {
			ip := strings.TrimSpace(ips[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}

	xRealIP := c.GetHeader("X-Real-IP")
	if xRealIP != "" {
		if net.ParseIP(xRealIP) != nil {
			return xRealIP
		}
	}

	return c.ClientIP()
}
