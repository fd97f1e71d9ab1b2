package errors

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")

	ErrInvalidPropertyID = errors.New("invalid property ID format")
)
