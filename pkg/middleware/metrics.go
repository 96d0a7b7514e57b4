package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 依路由記錄請求次數與耗時，reg 為 nil 時不記錄
func Metrics(reg prometheus.Registerer) gin.HandlerFunc {
	if reg == nil {
		return func(c *gin.Context) { c.Next() }
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "placement",
		Subsystem: "mockapi",
		Name:      "http_requests_total",
		Help:      "Mock API requests by route, method and status.",
	}, []string{"route", "method", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "placement",
		Subsystem: "mockapi",
		Name:      "http_request_duration_seconds",
		Help:      "Mock API request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})
	reg.MustRegister(requests, duration)

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// 未匹配的路由共用一個標籤，避免標籤數量無限成長
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		duration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
