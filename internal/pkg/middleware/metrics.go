package middleware

import (
	"time"

	"affiliate_coupons/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// MetricsMiddleware HTTP请求指标采集中间件
func MetricsMiddleware() gin.HandlerFunc {
	collector := metrics.GetGlobalCollector()

	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 使用路由模板而不是真实路径，避免指标维度爆炸
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}

		collector.RecordHTTPRequest(
			c.Request.Method,
			endpoint,
			c.Writer.Status(),
			time.Since(start),
		)
	}
}
