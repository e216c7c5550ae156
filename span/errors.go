package span

import "errors"

var (
	// ErrIndexOutOfBounds signals invalid character offsets for editing/splitting.
	ErrIndexOutOfBounds = errors.New("span: index out of bounds")
	// ErrSpanAttached signals that a span is already owned by another container.
	ErrSpanAttached = errors.New("span: span is attached to another container")
	// ErrNilParent signals an attempt to attach a span to a nil container.
	ErrNilParent = errors.New("span: nil parent container")
)
