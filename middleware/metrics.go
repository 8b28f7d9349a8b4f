package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	awspkg "github.com/joanie-store/storefront/pkg/aws"
)

// HTTPMetrics is the part of the CloudWatch client the metrics middleware needs.
type HTTPMetrics interface {
	IsEnabled() bool
	RecordCount(ctx context.Context, metricName string, dimensions map[string]string) error
	RecordLatency(ctx context.Context, metricName string, d time.Duration, dimensions map[string]string) error
}

// Metrics records request count, latency and error class per route. Metrics
// are sent off the request path.
func Metrics(client HTTPMetrics, serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !client.IsEnabled() {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		dims := map[string]string{
			"Service": serviceName,
			"Method":  c.Request.Method,
			"Route":   route,
		}
		elapsed := time.Since(start)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.RecordCount(ctx, awspkg.MetricHTTPRequests, dims)
			_ = client.RecordLatency(ctx, awspkg.MetricHTTPLatency, elapsed, dims)
			switch {
			case status >= 500:
				_ = client.RecordCount(ctx, awspkg.MetricHTTP5xx, dims)
			case status >= 400:
				_ = client.RecordCount(ctx, awspkg.MetricHTTP4xx, dims)
			}
		}()
	}
}
