package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocktrack/backend/internal/domain/shared"
	"github.com/stocktrack/backend/internal/infrastructure/logger"
)

// IdempotencyKeyHeader carries the client-chosen idempotency key
const IdempotencyKeyHeader = "X-Idempotency-Key"

// Idempotency rejects repeated requests carrying the same idempotency key.
// Intended for confirm endpoints, where a retried request must not move
// stock twice. Requests without the header pass through unchanged.
//
// The key is scoped to method and path, so one key can safely be reused
// across different endpoints. If the store is unreachable the request is
// let through; a duplicate movement is preferable to rejecting every
// confirm while Redis is down.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		scopedKey := fmt.Sprintf("%s:%s:%s", c.Request.Method, c.FullPath(), key)
		newlyMarked, err := store.MarkProcessed(c.Request.Context(), scopedKey, ttl)
		if err != nil {
			logger.L(c.Request.Context()).Warn("Idempotency store unavailable, letting request through",
				zap.Error(err))
			c.Next()
			return
		}

		if !newlyMarked {
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DUPLICATE_REQUEST",
					"message": "A request with this idempotency key was already processed",
				},
			})
			return
		}

		c.Next()
	}
}
