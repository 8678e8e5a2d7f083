package handler

import (
	"context"
	"net/http"
	"time"

	"farmavita/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports connectivity of the backing stores plus the depth of the
// email dead letter queue, so a stuck notification pipeline shows up on the
// endpoint operators already poll. Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "error"
		}

		estadoRedis := "connected"
		var dlqEmail int64
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "error"
		} else if n, err := worker.DLQLength(ctx, rdb, worker.QueueEmail); err == nil {
			dlqEmail = n
		}

		status := http.StatusOK
		if estadoDB != "connected" || estadoRedis != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":        status == http.StatusOK,
			"db":        estadoDB,
			"redis":     estadoRedis,
			"dlq_email": dlqEmail,
		})
	}
}
