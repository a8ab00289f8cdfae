package middleware

import (
	"fmt"
	"time"

	"github.com/biulino/ai-summary-plugin/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	generationBudget = 50
	budgetWindow     = time.Hour
)

// GenerationRateLimit caps metered provider calls at a fixed per-subject
// hourly budget. The decision is made before any generation is attempted;
// exceeding the budget is a plain reject, never a retry signal.
func GenerationRateLimit(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := Subject(c)
		if subject == "" {
			subject = c.ClientIP()
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("ai_summary:rate_limit:%s", subject)

		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			// Redis being down must not block generation.
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(ctx, key, budgetWindow)
		}

		if count > generationBudget {
			response.TooManyRequests(c, fmt.Sprintf("Generation budget of %d calls per hour exhausted.", generationBudget))
			return
		}

		c.Next()
	}
}
