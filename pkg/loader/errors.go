package loader

import "errors"

var (
	// ErrDuplicateID is returned when two documents declare the same id in one collection
	ErrDuplicateID = errors.New("loader: duplicate id")

	// ErrUnknownReference is returned when a relationship, device link,
	// deployment or script reference names an id that was never declared
	ErrUnknownReference = errors.New("loader: unknown reference")
)

// ErrMissingID is returned for a declaration without an id
var ErrMissingID = errors.New("loader: missing id")
