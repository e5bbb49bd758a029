package search

import "errors"

var (
	// ErrEmptyQuery is returned when the query is empty or whitespace only.
	ErrEmptyQuery = errors.New("empty search term")

	// ErrInvalidQuery is returned when the query normalizes to the empty
	// string, e.g. pure punctuation or digits.
	ErrInvalidQuery = errors.New("invalid search term")
)
