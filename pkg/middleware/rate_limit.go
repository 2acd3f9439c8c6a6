package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mo-amir99/premium-video-server/pkg/apperrors"
	"github.com/mo-amir99/premium-video-server/pkg/cache"
	"github.com/mo-amir99/premium-video-server/pkg/response"
)

// RateLimiter caps requests per client IP in fixed windows.
type RateLimiter struct {
	counter cache.Counter
	limit   int
	window  time.Duration
	logger  *slog.Logger
}

// NewRateLimiter creates a limiter allowing limit requests per window.
// A non-positive limit disables limiting.
func NewRateLimiter(counter cache.Counter, limit int, window time.Duration, logger *slog.Logger) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		logger:  logger,
	}
}

// Middleware returns a Gin middleware that enforces rate limiting.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.limit <= 0 {
			c.Next()
			return
		}

		key := "ratelimit:" + c.ClientIP()
		count, err := rl.counter.Incr(c.Request.Context(), key, rl.window)
		if err != nil {
			// Fail open; a counter outage must not take the API down.
			rl.logger.WarnContext(c.Request.Context(), "rate limiter unavailable", slog.String("error", err.Error()))
			c.Next()
			return
		}

		remaining := int64(rl.limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(rl.limit) {
			c.Header("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			appErr := apperrors.New("Too many requests. Please try again later.", http.StatusTooManyRequests, apperrors.ErrTooMany, nil)
			response.Error(c, appErr.StatusCode(), appErr.Message())
			c.Abort()
			return
		}

		c.Next()
	}
}
