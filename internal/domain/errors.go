package domain

import "errors"

var (
	// No candidates remain after applying the artist filter.
	ErrEmptyCatalog = errors.New("no art pieces found matching the criteria")

	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
