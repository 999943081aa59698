package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned in API error bodies
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeNotFound           = "RESOURCE_NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeInternalError      = "INTERNAL_ERROR"
	CodeBadRequest         = "BAD_REQUEST"
	CodeUnsupportedMedia   = "UNSUPPORTED_MEDIA_TYPE"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeTimeout            = "TIMEOUT"
)

var statusByCode = map[string]int{
	CodeValidationError:    http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeInternalError:      http.StatusInternalServerError,
	CodeBadRequest:         http.StatusBadRequest,
	CodeUnsupportedMedia:   http.StatusUnsupportedMediaType,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeTimeout:            http.StatusGatewayTimeout,
}

// AppError is an error with an API code and HTTP status
type AppError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
	HTTPStatus int               `json:"-"`
	Err        error             `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails replaces the error details
func (e *AppError) WithDetails(details map[string]string) *AppError {
	e.Details = details
	return e
}

// WithDetail adds a single detail
func (e *AppError) WithDetail(key, value string) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// Wrap records the underlying cause
func (e *AppError) Wrap(err error) *AppError {
	e.Err = err
	return e
}

// New creates an AppError whose status follows from code. Unknown codes are 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

func ErrValidation(message string) *AppError {
	return New(CodeValidationError, message)
}

// ErrValidationWithFields creates a validation error with per-field messages
func ErrValidationWithFields(message string, fields map[string]string) *AppError {
	return ErrValidation(message).WithDetails(fields)
}

func ErrNotFound(resource string) *AppError {
	return New(CodeNotFound, resource+" not found")
}

// ErrNotFoundWithID creates a not found error carrying the missing ID
func ErrNotFoundWithID(resource, id string) *AppError {
	return ErrNotFound(resource).WithDetail("id", id)
}

func ErrConflict(message string) *AppError {
	return New(CodeConflict, message)
}

// ErrInternal hides the cause behind a generic message when message is empty
func ErrInternal(message string) *AppError {
	if message == "" {
		message = "an internal error occurred"
	}
	return New(CodeInternalError, message)
}

func ErrBadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func ErrServiceUnavailable(service string) *AppError {
	return New(CodeServiceUnavailable, service+" is temporarily unavailable")
}

func ErrTimeout(operation string) *AppError {
	return New(CodeTimeout, operation+" timed out")
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// sentinels maps package sentinel errors to API codes. Populated at init.
var sentinels []sentinel

type sentinel struct {
	target error
	code   string
}

// RegisterSentinel makes MapError translate errors matching target to code.
// It must be called from package init.
func RegisterSentinel(target error, code string) {
	sentinels = append(sentinels, sentinel{target: target, code: code})
}

// MapError converts any error to an AppError. AppErrors in the chain win,
// then registered sentinels, then deadline errors. Everything else is internal.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	for _, s := range sentinels {
		if errors.Is(err, s.target) {
			return New(s.code, s.target.Error()).Wrap(err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout("operation").Wrap(err)
	}
	return ErrInternal("").Wrap(err)
}
