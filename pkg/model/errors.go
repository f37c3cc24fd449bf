package model

import "errors"

var (
	// ErrFieldNotFound is returned when a form lookup names a missing field.
	ErrFieldNotFound = errors.New("model: field not found")
	// ErrDuplicateField is returned when a form declares a field name twice.
	ErrDuplicateField = errors.New("model: duplicate field")
	// ErrInvalidPattern is returned for regex patterns that do not compile.
	ErrInvalidPattern = errors.New("model: invalid pattern")
)
