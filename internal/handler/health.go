package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings both backing stores and reports per-component state. The
// endpoint is public: terminals poll it before opening a till.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		postgres := "up"
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			postgres = "down"
		}

		cache := "up"
		if rdb.Ping(ctx).Err() != nil {
			cache = "down"
		}

		code := http.StatusOK
		if postgres == "down" || cache == "down" {
			code = http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"ok":       code == http.StatusOK,
			"postgres": postgres,
			"redis":    cache,
		})
	}
}
