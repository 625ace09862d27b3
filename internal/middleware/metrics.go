package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/snnyvrz/library-api/internal/metrics"
)

// Metrics records request counts and latency labelled by route template.
// Unmatched routes share the "unmatched" label.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
