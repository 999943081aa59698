package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// Gin context keys
const (
	ContextKeyRequestID     = "requestId"
	ContextKeyCorrelationID = "correlationId"
	ContextKeyTraceID       = "traceId"
)

const (
	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RequestContext assigns the request ID and correlation ID and stores both
// in the gin and request contexts. A missing correlation ID falls back to the
// request ID so events emitted by the request can be traced back to it.
func RequestContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := headerOr(c, HeaderRequestID, uuid.NewString)
		correlationID := headerOr(c, HeaderCorrelationID, func() string { return requestID })

		c.Set(ContextKeyRequestID, requestID)
		c.Set(ContextKeyCorrelationID, correlationID)
		c.Header(HeaderRequestID, requestID)
		c.Header(HeaderCorrelationID, correlationID)

		ctx := logging.ContextWithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(logging.ContextWithCorrelationID(ctx, correlationID))

		c.Next()
	}
}

func headerOr(c *gin.Context, header string, fallback func() string) string {
	if v := c.GetHeader(header); v != "" {
		return v
	}
	return fallback()
}

// GetRequestID returns the request ID set by RequestContext
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID set by RequestContext
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
