package models

import "errors"

var (
	ErrNotFound      = errors.New("service request not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrValidation    = errors.New("validation error")
	ErrInvalidStatus = errors.New("invalid status")
)
