package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidID is returned for identifiers that are not 24-character lowercase hex.
	ErrInvalidID = errors.New("invalid id")

	// ErrSlugConflict is returned when a unique slug could not be committed
	// within the store's retry budget.
	ErrSlugConflict = errors.New("slug conflict")
)
