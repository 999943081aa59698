package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// probePaths are polled by orchestrators and scrapers and stay out of request logs and traces
var probePaths = map[string]bool{"/health": true, "/ready": true, "/metrics": true}

// Config holds middleware configuration
type Config struct {
	Logger         *logging.Logger
	ServiceName    string
	TrustedProxies []string
}

// DefaultConfig returns a default middleware configuration
func DefaultConfig(serviceName string, logger *logging.Logger) *Config {
	return &Config{
		Logger:      logger,
		ServiceName: serviceName,
	}
}

// Setup installs the scheduler API middleware chain and JSON 404/405 handlers
func Setup(router *gin.Engine, config *Config) {
	InitValidator()

	if len(config.TrustedProxies) > 0 {
		_ = router.SetTrustedProxies(config.TrustedProxies)
	}

	router.Use(
		RequestContext(),
		Recovery(config.Logger),
		RequestLogger(config.Logger),
		ContentType(),
		ErrorHandler(config.Logger),
	)

	router.HandleMethodNotAllowed = true
	router.NoRoute(routeError(http.StatusNotFound, "ROUTE_NOT_FOUND", "The requested resource was not found"))
	router.NoMethod(routeError(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The request method is not supported for this resource"))
}

func routeError(status int, code, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(status, APIErrorResponse{
			Code:      code,
			Message:   message,
			RequestID: GetRequestID(c),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Request.URL.Path,
		})
	}
}

// RequestLogger logs every non-probe request through the service logger
func RequestLogger(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if probePaths[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		logger.HTTPRequest(c.Request.Context(), c.Request.Method, c.Request.URL.Path,
			c.Writer.Status(), time.Since(start), c.ClientIP(), c.Request.UserAgent())
	}
}

// Recovery turns panics into a 500 with the standard error body
func Recovery(logger *logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.WithContext(c.Request.Context()).Error("Panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		AbortWithAppError(c, apperrors.ErrInternal("An unexpected error occurred"))
	})
}

// HealthCheck reports liveness
func HealthCheck(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	}
}

// ReadinessCheck runs every named dependency check and reports each one.
// Any failure makes the service not ready.
func ReadinessCheck(serviceName string, checks map[string]func(context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not ready"
		}
		c.JSON(status, gin.H{"status": state, "service": serviceName, "checks": results})
	}
}
