package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange is returned when reading a card past the end of a session.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidState is returned when mutating a session that is already complete.
	ErrInvalidState = errors.New("invalid state")
	// ErrMalformedState is returned when a persisted snapshot does not match the expected shape.
	ErrMalformedState = errors.New("malformed state")
)
