package models

import "errors"

var (
	ErrNotFound    = errors.New("chat session not found")
	ErrInvalidRole = errors.New("invalid message role")
)
