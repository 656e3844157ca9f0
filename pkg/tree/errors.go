package tree

import "errors"

var (
	// ErrNoTreeinfo is returned when neither .treeinfo nor treeinfo exists
	ErrNoTreeinfo = errors.New("tree: no treeinfo file")

	// ErrMalformedTreeinfo is returned when the key-file cannot be parsed
	ErrMalformedTreeinfo = errors.New("tree: malformed treeinfo")
)
