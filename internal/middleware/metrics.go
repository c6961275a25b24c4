package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/medikids/clinic-api/pkg/metrics"
)

// Metrics records per-request duration and counts. The route template
// (e.g. /api/v1/parents/:id) is used as the path label to keep
// cardinality bounded.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.RequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		m.RequestTotal.WithLabelValues(method, path, status).Inc()
		switch {
		case c.Writer.Status() >= 500:
			m.ErrorTotal.WithLabelValues(method, path, "server").Inc()
		case c.Writer.Status() >= 400:
			m.ErrorTotal.WithLabelValues(method, path, "client").Inc()
		}
	}
}
