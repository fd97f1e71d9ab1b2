package errors

import "errors"

var (
	ErrInvalidMultiplier = errors.New("multiplier must be greater than 0 and at most 10")

	ErrInvalidTenant = errors.New("tenant ID cannot be empty")
)
