package binomial

import "errors"

var (
	// ErrOutOfRange is returned when a coefficient lies outside the table.
	ErrOutOfRange = errors.New("binomial coefficient out of table range")
	// ErrInvalidBound is returned when a table is requested with fewer than one row.
	ErrInvalidBound = errors.New("table bound must be a positive integer")
)
