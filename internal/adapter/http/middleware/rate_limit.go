package middleware

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/helper"
	"tasktracker/pkg/ratelimit"
	"tasktracker/pkg/tracing"
)

// RateLimitMiddleware keys on the authenticated user when there is one and
// on the client IP otherwise. Store failures let the request through.
func RateLimitMiddleware(limiter *ratelimit.Limiter, metrics *tracing.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		endpoint := c.Request.Method + " " + path
		identifier, keyType := "ip_"+c.ClientIP(), "ip"

		if userID, ok := CallerID(c); ok {
			identifier, keyType = fmt.Sprintf("user_%d", userID), "user"
		}

		decision, err := limiter.Allow(c.Request.Context(), endpoint, identifier)

		if err != nil {
			otelzap.Ctx(c.Request.Context()).Error("rate limit check failed",
				zap.String("endpoint", endpoint),
				zap.Error(err))
			c.Next()
			return
		}

		if decision.Limit > 0 {
			c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
			c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(decision.ResetAt.Unix(), 10))
		}

		if !decision.Allowed {
			if metrics != nil {
				metrics.RecordRateLimitHit(c.Request.Context(), path, keyType)
			}

			otelzap.Ctx(c.Request.Context()).Warn("rate limit exceeded",
				zap.String("endpoint", endpoint),
				zap.String("key_type", keyType),
				zap.Int("limit", decision.Limit))

			retryAfter := decision.RetryAfter(time.Now())
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			helper.SendTooManyRequests(c, fmt.Sprintf("too many requests, limit is %d", decision.Limit), retryAfter)
			return
		}

		if metrics != nil {
			metrics.RecordRateLimitAllowed(c.Request.Context(), path, keyType)
		}

		c.Next()
	}
}
