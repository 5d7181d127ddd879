package service

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrJobUnavailable    = errors.New("job is not available")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicateClaim    = errors.New("job already claimed by this vendor")
)
