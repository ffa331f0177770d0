package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"recipe-be/internal/metrics"
)

// Metrics records request counts and latency by route template, so
// /recipes/1 and /recipes/2 share a series
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordAPIRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
