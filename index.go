package spans

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file in the repository root.

*/

import (
	"errors"
	"strings"

	"github.com/npillmayer/spans/span"
	"github.com/npillmayer/spans/spantree"
)

// NewSpan creates a detached span from a plain string.
//
// This is the factory used by callers that build replacement content before
// calling InsertSpans or ReplaceSpansFromLocation.
func NewSpan(content string) *span.Span {
	return span.New(content)
}

// SpanInfo describes the span owning a character location within a buffer.
type SpanInfo struct {
	Span   *span.Span
	Index  int // span index within the buffer
	Start  int // character offset of the span's first character
	Offset int // character offset of the location within the span
}

// SpanIndex is an ordered collection of spans indexed by character location.
//
// It is the notification-free sibling of SpanBuffer: the same summarized
// tree and the same positional operations, but no change events and no
// character-level editing surface. Use it where a lighter-weight span
// collection is sufficient.
type SpanIndex struct {
	tree *spantree.Tree
}

// NewIndex creates a span index holding the given spans.
//
// The spans must be detached and non-empty; the index takes exclusive
// ownership of them.
func NewIndex(spans ...*span.Span) (*SpanIndex, error) {
	idx := &SpanIndex{tree: spantree.New()}
	if len(spans) > 0 {
		if err := idx.tree.InsertSpansAt(0, spans...); err != nil {
			return nil, ErrIllegalArguments
		}
	}
	return idx, nil
}

// Len returns the total number of characters in the index.
func (idx *SpanIndex) Len() int {
	return idx.tree.Len()
}

// SpanCount returns the number of spans in the index.
func (idx *SpanIndex) SpanCount() int {
	return idx.tree.SpanCount()
}

// IsVoid reports whether the index holds no spans.
func (idx *SpanIndex) IsVoid() bool {
	return idx.tree.IsEmpty()
}

// SpanAt returns the span at span index i.
func (idx *SpanIndex) SpanAt(i int) (*span.Span, error) {
	sp, err := idx.tree.SpanAt(i)
	if err != nil {
		return nil, ErrIndexOutOfBounds
	}
	return sp, nil
}

// Spans returns count spans starting at span index i, in order.
func (idx *SpanIndex) Spans(i, count int) ([]*span.Span, error) {
	out, err := idx.tree.Spans(i, count)
	if err != nil {
		return nil, ErrIndexOutOfBounds
	}
	return out, nil
}

// EachSpan visits count spans starting at span index i, in order.
//
// The visitor receives each span's absolute index; iteration stops at the
// first visitor error and returns that error to the caller.
func (idx *SpanIndex) EachSpan(i, count int, visit func(int, *span.Span) error) error {
	err := idx.tree.EachSpan(i, count, visit)
	if errors.Is(err, spantree.ErrIndexOutOfBounds) {
		return ErrIndexOutOfBounds
	}
	return err
}

// InsertSpans inserts spans before span index i.
//
// The spans must be detached and non-empty; the index takes exclusive
// ownership. A no-op when spans is empty.
func (idx *SpanIndex) InsertSpans(i int, spans ...*span.Span) error {
	if i < 0 || i > idx.SpanCount() {
		return ErrIndexOutOfBounds
	}
	if len(spans) == 0 {
		return nil
	}
	if err := idx.tree.InsertSpansAt(i, spans...); err != nil {
		return ErrIllegalArguments
	}
	return nil
}

// RemoveSpans removes count spans starting at span index i.
//
// Removed spans are detached, their parent link is cleared. A no-op when
// count is 0.
func (idx *SpanIndex) RemoveSpans(i, count int) error {
	if i < 0 || count < 0 || i+count > idx.SpanCount() {
		return ErrIndexOutOfBounds
	}
	_, err := idx.tree.RemoveSpansAt(i, count)
	assert(err == nil, "index: validated removal cannot fail")
	return nil
}

// SpanAtLocation resolves a character location to its owning span.
//
// At a boundary between two spans the tie-break is controlled by chooseRight:
// false prefers the end of the left span, true the start of the right span,
// except when location equals the total length, in which case the rightmost
// span is chosen with Offset equal to its length.
func (idx *SpanIndex) SpanAtLocation(location int, chooseRight bool) (SpanInfo, error) {
	info, err := idx.tree.Locate(location, chooseRight)
	if err != nil {
		return SpanInfo{}, ErrLocationOutOfBounds
	}
	return SpanInfo(info), nil
}

// OffsetOfSpan returns the character offset of the first character of the
// span at index i; i may equal SpanCount, yielding the total length.
func (idx *SpanIndex) OffsetOfSpan(i int) (int, error) {
	off, err := idx.tree.OffsetOfSpan(i)
	if err != nil {
		return 0, ErrIndexOutOfBounds
	}
	return off, nil
}

// String returns the concatenation of all span contents in order. This may be
// an expensive operation, as it allocates a buffer for the complete content.
func (idx *SpanIndex) String() string {
	var bf strings.Builder
	bf.Grow(int(idx.tree.Summary().Bytes))
	err := idx.tree.EachSpan(0, idx.SpanCount(), func(_ int, sp *span.Span) error {
		bf.WriteString(sp.String())
		return nil
	})
	assert(err == nil, "index.String: full iteration cannot fail")
	return bf.String()
}

// Clone returns an independent index with independently owned span copies.
func (idx *SpanIndex) Clone() *SpanIndex {
	return &SpanIndex{tree: idx.tree.Clone()}
}
