package domain

import "errors"

// Domain errors
var (
	ErrSKUNotFound      = errors.New("sku not found")
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrInvalidSKU       = errors.New("invalid sku")
	ErrInvalidWindow    = errors.New("invalid schedule window")
	ErrInvalidActual    = errors.New("invalid actual")
	ErrEmptySequence    = errors.New("sequence requires at least one sku")
)
