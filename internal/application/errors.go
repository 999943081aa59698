package application

import (
	"github.com/dallyp22/Scheduler-VS/internal/domain"
	apperrors "github.com/dallyp22/Scheduler-VS/pkg/errors"
)

func init() {
	apperrors.RegisterSentinel(domain.ErrSKUNotFound, apperrors.CodeNotFound)
	apperrors.RegisterSentinel(domain.ErrScheduleNotFound, apperrors.CodeNotFound)
	apperrors.RegisterSentinel(domain.ErrInvalidSKU, apperrors.CodeValidationError)
	apperrors.RegisterSentinel(domain.ErrInvalidWindow, apperrors.CodeValidationError)
	apperrors.RegisterSentinel(domain.ErrInvalidActual, apperrors.CodeValidationError)
	apperrors.RegisterSentinel(domain.ErrEmptySequence, apperrors.CodeValidationError)
}
