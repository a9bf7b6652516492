package httpserver

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"media-registry/internal/infrastructure/metrics"
)

// requestIDHeader carries the request ID back to the caller.
const requestIDHeader = "X-Request-ID"

// requestIDMiddleware assigns every request an ID and stores it where
// platformerrors can pick it up.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := context.WithValue(c.Request.Context(), "requestID", requestID) //nolint:staticcheck // key matches platformerrors
		c.Request = c.Request.WithContext(ctx)
		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

// metricsMiddleware records request counts and latencies.
func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(
			c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(
			c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
