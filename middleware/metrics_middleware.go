package middleware

import (
	"strconv"
	"time"

	"dueday/dueday/metrics"

	gin "github.com/gin-gonic/gin"
)

// MetricsMiddleware records request durations labeled by route template, so
// path parameters do not explode the label cardinality.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.RecordHTTPRequestDuration(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
			time.Since(start),
		)
	}
}
