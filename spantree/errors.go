package spantree

import "errors"

var (
	// ErrIndexOutOfBounds signals an invalid span index or count.
	ErrIndexOutOfBounds = errors.New("spantree: index out of bounds")
	// ErrLocationOutOfBounds signals a character location beyond the total length.
	ErrLocationOutOfBounds = errors.New("spantree: location out of bounds")
	// ErrEmptyTree signals a location lookup on a tree without spans.
	ErrEmptyTree = errors.New("spantree: tree has no spans")
	// ErrNilSpan signals a nil span argument.
	ErrNilSpan = errors.New("spantree: nil span")
	// ErrEmptySpan signals an attempt to store a zero-length span.
	ErrEmptySpan = errors.New("spantree: zero-length span")
	// ErrSpanAttached signals a span that is already owned by a container.
	ErrSpanAttached = errors.New("spantree: span is attached to a container")
	// ErrInvariant marks a failed structural invariant check.
	ErrInvariant = errors.New("spantree: invariant violation")
)
