package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrMissingInput          = errors.New("missing input file")
	ErrSchema                = errors.New("schema error")
	ErrModelFit              = errors.New("model fit failed")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
