package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
	"github.com/dallyp22/Scheduler-VS/pkg/logging"
)

// APIErrorResponse is the body of every non-2xx API response
type APIErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
}

func errorBody(c *gin.Context, appErr *apperrors.AppError) APIErrorResponse {
	return APIErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	}
}

// ErrorHandler renders the last error attached with c.Error when the handler
// wrote nothing
func ErrorHandler(logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		NewErrorResponder(c, logger).RespondWithError(c.Errors.Last().Err)
	}
}

// ErrorResponder writes AppErrors for a single request
type ErrorResponder struct {
	ctx    *gin.Context
	logger *logging.Logger
}

func NewErrorResponder(ctx *gin.Context, logger *logging.Logger) *ErrorResponder {
	return &ErrorResponder{ctx: ctx, logger: logger}
}

// RespondWithError maps err through the registered sentinels and sends it
func (r *ErrorResponder) RespondWithError(err error) {
	r.RespondWithAppError(apperrors.MapError(err))
}

// RespondWithAppError logs appErr (warn for 4xx, error for 5xx) and sends it
func (r *ErrorResponder) RespondWithAppError(appErr *apperrors.AppError) {
	level := slog.LevelWarn
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	attrs := []any{"code", appErr.Code, "status", appErr.HTTPStatus, "path", r.ctx.Request.URL.Path}
	if appErr.Err != nil {
		attrs = append(attrs, "cause", appErr.Err.Error())
	}
	if len(appErr.Details) > 0 {
		attrs = append(attrs, "details", appErr.Details)
	}
	ctx := r.ctx.Request.Context()
	r.logger.WithContext(ctx).Log(ctx, level, appErr.Message, attrs...)

	r.ctx.JSON(appErr.HTTPStatus, errorBody(r.ctx, appErr))
}

// AbortWithAppError aborts the chain with appErr
func AbortWithAppError(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, errorBody(c, appErr))
}
