package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/CopperGroup/JoyFer/models"
	"github.com/CopperGroup/JoyFer/utils"
)

// RateLimiter is a fixed-window counter per IP, method and route kept in Redis.
// The window starts with the first request and its remaining time is the key's TTL.
func RateLimiter(rdb *redis.Client, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := "rl:" + c.ClientIP() + ":" + c.Request.Method + ":" + c.FullPath()

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// fail open
			utils.Log.Warnf("⚠️ Rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		// First request → start the window
		if count == 1 {
			rdb.Expire(ctx, key, window)
		}

		ttl, err := rdb.PTTL(ctx, key).Result()
		if err != nil || ttl < 0 {
			ttl = window
			if err == nil {
				// a crash between INCR and EXPIRE leaves a key without TTL
				rdb.Expire(ctx, key, window)
			}
		}
		resetAt := time.Now().Add(ttl)

		remaining := maxRequests - int(count)
		if remaining < 0 {
			remaining = 0
		}

		rate := &models.RateLimiter{
			Limit:          maxRequests,
			Remaining:      remaining,
			ResetAt:        resetAt,
			ResetInSeconds: int(ttl.Seconds()),
		}
		c.Set(models.RateLimiterContextKey, rate)

		if int(count) > maxRequests {
			c.Header("Retry-After", strconv.Itoa(int(ttl.Seconds())+1))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ApiResponse{
				Message: "Too many requests",
				Error:   true,
				Rate:    rate,
			})
			return
		}

		c.Next()
	}
}
