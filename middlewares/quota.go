package middlewares

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type QuotaRule struct {
	Limit  int
	Window time.Duration
	KeyFn  func(*gin.Context) string // empty key skips the check
}

// Quota enforces a fixed-window request budget per key via Redis INCR.
// A Redis outage degrades to letting requests through.
func Quota(rdb *redis.Client, rule QuotaRule) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rule.KeyFn(c)
		if key == "" {
			c.Next()
			return
		}
		ctx := context.Background()

		n, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			c.Next()
			return
		}
		if n == 1 {
			_ = rdb.Expire(ctx, key, rule.Window).Err()
		}
		if int(n) > rule.Limit {
			c.AbortWithStatusJSON(429, gin.H{
				"message": "Usage quota exceeded. Please try again later.",
			})
			return
		}
		c.Header("X-Quota-Used", fmt.Sprintf("%d/%d", n, rule.Limit))
		c.Next()
	}
}
