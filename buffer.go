package spans

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file in the repository root.

*/

import (
	"strings"

	"github.com/npillmayer/spans/span"
	"github.com/npillmayer/spans/spantree"
)

// SpanBuffer is a character-oriented editing surface over an ordered
// collection of spans, with change notification.
//
// Clients edit the buffer in terms of character locations (InsertString,
// DeleteRange, ReplaceRange) or span indices (InsertSpans, RemoveSpans).
// Every outermost mutation is bracketed by a will-change/did-change pair,
// delivered synchronously to registered listeners (see OnWillChange).
//
// Buffers are not safe for concurrent use. Callers sharing a buffer across
// goroutines must serialize access themselves.
type SpanBuffer struct {
	tree       *spantree.Tree
	willChange []ChangeListener
	didChange  []ChangeListener
	didDestroy []DestroyListener
	changing   int // re-entrancy counter, outermost mutation is at 0
	destroyed  bool
}

// NewBuffer creates a buffer holding the given spans, which must be
// detached and non-empty. The buffer takes exclusive ownership of them.
// A buffer created without spans is void, with length 0.
func NewBuffer(spans ...*span.Span) (*SpanBuffer, error) {
	buf := &SpanBuffer{tree: spantree.New()}
	if len(spans) > 0 {
		if err := validateSpans(spans); err != nil {
			return nil, err
		}
		err := buf.tree.InsertSpansAt(0, spans...)
		assert(err == nil, "buffer: validated construction cannot fail")
	}
	return buf, nil
}

// BufferFromString creates a buffer holding text as a single span.
// An empty text yields a void buffer.
func BufferFromString(text string) *SpanBuffer {
	if text == "" {
		buf, _ := NewBuffer()
		return buf
	}
	buf, err := NewBuffer(span.New(text))
	assert(err == nil, "buffer: single fresh span cannot be invalid")
	return buf
}

// Len returns the total number of characters in the buffer.
func (buf *SpanBuffer) Len() int {
	return buf.tree.Len()
}

// SpanCount returns the number of spans in the buffer.
func (buf *SpanBuffer) SpanCount() int {
	return buf.tree.SpanCount()
}

// IsVoid reports whether the buffer holds no spans.
func (buf *SpanBuffer) IsVoid() bool {
	return buf.tree.IsEmpty()
}

// IsDestroyed reports whether Destroy has been called on the buffer.
func (buf *SpanBuffer) IsDestroyed() bool {
	return buf.destroyed
}

// SpanAt returns the span at span index i.
func (buf *SpanBuffer) SpanAt(i int) (*span.Span, error) {
	sp, err := buf.tree.SpanAt(i)
	if err != nil {
		return nil, ErrIndexOutOfBounds
	}
	return sp, nil
}

// Spans returns count spans starting at span index i, in order.
func (buf *SpanBuffer) Spans(i, count int) ([]*span.Span, error) {
	out, err := buf.tree.Spans(i, count)
	if err != nil {
		return nil, ErrIndexOutOfBounds
	}
	return out, nil
}

// EachSpan visits count spans starting at span index i, in order. Iteration
// stops at the first visitor error, which is returned to the caller.
func (buf *SpanBuffer) EachSpan(i, count int, visit func(int, *span.Span) error) error {
	if i < 0 || count < 0 || i+count > buf.SpanCount() {
		return ErrIndexOutOfBounds
	}
	return buf.tree.EachSpan(i, count, visit)
}

// OffsetOfSpan returns the character offset of the first character of the
// span at index i; i may equal SpanCount, yielding the total length.
func (buf *SpanBuffer) OffsetOfSpan(i int) (int, error) {
	off, err := buf.tree.OffsetOfSpan(i)
	if err != nil {
		return 0, ErrIndexOutOfBounds
	}
	return off, nil
}

// SpanAtLocation resolves a character location to its owning span, with the
// boundary tie-break described for SpanIndex.SpanAtLocation.
func (buf *SpanBuffer) SpanAtLocation(location int, chooseRight bool) (SpanInfo, error) {
	info, err := buf.tree.Locate(location, chooseRight)
	if err != nil {
		return SpanInfo{}, ErrLocationOutOfBounds
	}
	return SpanInfo(info), nil
}

// InsertString inserts text at the given character location. A no-op when
// text is empty.
func (buf *SpanBuffer) InsertString(location int, text string) error {
	return buf.ReplaceRange(location, 0, text)
}

// DeleteRange deletes length characters starting at location. A no-op when
// length is 0.
func (buf *SpanBuffer) DeleteRange(location, length int) error {
	return buf.ReplaceRange(location, length, "")
}

// ReplaceRange replaces the characters in [location, location+length) with
// text.
//
// Edits confined to the interior of a single span mutate that span in
// place. Edits crossing span boundaries, or replacing a span entirely,
// first slice the affected range onto span boundaries and then splice
// whole spans. Deleting every character leaves a void buffer.
func (buf *SpanBuffer) ReplaceRange(location, length int, text string) error {
	if buf.destroyed {
		return ErrBufferDestroyed
	}
	if location < 0 || length < 0 || location+length > buf.Len() {
		return ErrLocationOutOfBounds
	}
	if length == 0 && text == "" {
		return nil
	}
	return buf.change(Change{location, length, text}, func() error {
		return buf.replaceRange(location, length, text)
	})
}

// replaceRange performs the mutation for ReplaceRange; arguments have been
// validated and the change bracket is already open.
func (buf *SpanBuffer) replaceRange(location, length int, text string) error {
	if buf.IsVoid() {
		err := buf.tree.InsertSpansAt(0, span.New(text))
		assert(err == nil, "buffer: insert into void buffer cannot fail")
		return nil
	}
	info, err := buf.tree.Locate(location, false)
	assert(err == nil, "buffer: validated location cannot fail")
	if info.Offset+length <= info.Span.Len() && !(info.Offset == 0 && length == info.Span.Len()) {
		// Cheap path: the range is confined to a single span and does not
		// replace the complete span, so editing in place keeps the span
		// non-empty.
		return buf.tree.EditSpanAt(info.Index, func(sp *span.Span) error {
			return sp.ReplaceRange(info.Offset, length, text)
		})
	}
	index, count, err := buf.SliceSpansToRange(location, length)
	if err != nil {
		return err
	}
	if text == "" {
		return buf.RemoveSpans(index, count)
	}
	err = buf.tree.EditSpanAt(index, func(sp *span.Span) error {
		return sp.ReplaceRange(0, sp.Len(), text)
	})
	if err != nil {
		return err
	}
	return buf.RemoveSpans(index+1, count-1)
}

// InsertSpans inserts spans before span index i. The spans must be detached
// and non-empty; the buffer takes exclusive ownership. A no-op when spans is
// empty.
//
// The notification payload carries the concatenated content of the inserted
// spans as inserted text.
func (buf *SpanBuffer) InsertSpans(i int, spans ...*span.Span) error {
	if buf.destroyed {
		return ErrBufferDestroyed
	}
	if i < 0 || i > buf.SpanCount() {
		return ErrIndexOutOfBounds
	}
	if len(spans) == 0 {
		return nil
	}
	if err := validateSpans(spans); err != nil {
		return err
	}
	location, err := buf.tree.OffsetOfSpan(i)
	assert(err == nil, "buffer: validated span index cannot fail")
	return buf.change(Change{location, 0, contentOfSpans(spans)}, func() error {
		err := buf.tree.InsertSpansAt(i, spans...)
		assert(err == nil, "buffer: validated insertion cannot fail")
		return nil
	})
}

// RemoveSpans removes count spans starting at span index i, detaching them.
// A no-op when count is 0.
//
// The notification payload carries the summed length of the removed spans
// as replaced length.
func (buf *SpanBuffer) RemoveSpans(i, count int) error {
	if buf.destroyed {
		return ErrBufferDestroyed
	}
	if i < 0 || count < 0 || i+count > buf.SpanCount() {
		return ErrIndexOutOfBounds
	}
	if count == 0 {
		return nil
	}
	location, err := buf.tree.OffsetOfSpan(i)
	assert(err == nil, "buffer: validated span index cannot fail")
	end, err := buf.tree.OffsetOfSpan(i + count)
	assert(err == nil, "buffer: validated span index cannot fail")
	return buf.change(Change{location, end - location, ""}, func() error {
		_, err := buf.tree.RemoveSpansAt(i, count)
		assert(err == nil, "buffer: validated removal cannot fail")
		return nil
	})
}

// SpansInRange translates the character range [location, location+length)
// to a span-index range, returning the index of the first span and the
// number of spans covered.
//
// chooseRight controls the tie-break at the left boundary, as in
// SpanAtLocation. When the right boundary falls exactly on the start of a
// span, that span contributes nothing to the range and is excluded.
func (buf *SpanBuffer) SpansInRange(location, length int, chooseRight bool) (index, count int, err error) {
	if location < 0 || length < 0 || location+length > buf.Len() {
		return 0, 0, ErrLocationOutOfBounds
	}
	if buf.IsVoid() {
		return 0, 0, nil
	}
	left, err := buf.tree.Locate(location, chooseRight)
	assert(err == nil, "buffer: validated location cannot fail")
	right, err := buf.tree.Locate(location+length, true)
	assert(err == nil, "buffer: validated location cannot fail")
	count = right.Index - left.Index + 1
	if right.Offset == 0 && right.Index != left.Index {
		count--
	}
	return left.Index, count, nil
}

// SliceSpanAtLocation ensures that a span boundary exists exactly at the
// given character location, splitting the owning span when the location is
// strictly in its interior. Idempotent.
func (buf *SpanBuffer) SliceSpanAtLocation(location int) error {
	if buf.destroyed {
		return ErrBufferDestroyed
	}
	if location < 0 || location > buf.Len() {
		return ErrLocationOutOfBounds
	}
	if buf.IsVoid() {
		return nil
	}
	info, err := buf.tree.Locate(location, false)
	assert(err == nil, "buffer: validated location cannot fail")
	if info.Offset == 0 || info.Offset == info.Span.Len() {
		return nil // already on a boundary
	}
	return buf.change(Change{location, 0, ""}, func() error {
		var tail *span.Span
		err := buf.tree.EditSpanAt(info.Index, func(sp *span.Span) error {
			var serr error
			tail, serr = sp.Split(info.Offset)
			return serr
		})
		assert(err == nil, "buffer: interior split cannot fail")
		assert(tail != nil, "buffer: interior split must produce a tail")
		err = buf.tree.InsertSpansAt(info.Index+1, tail)
		assert(err == nil, "buffer: inserting fresh tail span cannot fail")
		return nil
	})
}

// SliceSpansToRange slices both boundaries of [location, location+length)
// onto span boundaries and returns the resulting span-index range. length
// must be positive.
func (buf *SpanBuffer) SliceSpansToRange(location, length int) (index, count int, err error) {
	if buf.destroyed {
		return 0, 0, ErrBufferDestroyed
	}
	if length <= 0 {
		return 0, 0, ErrIllegalArguments
	}
	if location < 0 || location+length > buf.Len() {
		return 0, 0, ErrLocationOutOfBounds
	}
	if err = buf.SliceSpanAtLocation(location); err != nil {
		return 0, 0, err
	}
	if err = buf.SliceSpanAtLocation(location + length); err != nil {
		return 0, 0, err
	}
	return buf.SpansInRange(location, length, true)
}

// ReplaceSpansFromLocation replaces the character range starting at
// location and extending over the total length of the replacement spans
// with those spans. A no-op when spans is empty.
//
// This is the generalized splice building block: the replaced range is
// sliced onto span boundaries, removed, and the replacement spans are
// inserted in its place.
func (buf *SpanBuffer) ReplaceSpansFromLocation(location int, spans ...*span.Span) error {
	if buf.destroyed {
		return ErrBufferDestroyed
	}
	if len(spans) == 0 {
		return nil
	}
	if err := validateSpans(spans); err != nil {
		return err
	}
	total := 0
	for _, sp := range spans {
		total += sp.Len()
	}
	if location < 0 || location+total > buf.Len() {
		return ErrLocationOutOfBounds
	}
	return buf.change(Change{location, total, contentOfSpans(spans)}, func() error {
		index, count, err := buf.SliceSpansToRange(location, total)
		if err != nil {
			return err
		}
		if err = buf.RemoveSpans(index, count); err != nil {
			return err
		}
		return buf.InsertSpans(index, spans...)
	})
}

// String returns the concatenation of all span contents in order,
// primarily for diagnostics and testing.
func (buf *SpanBuffer) String() string {
	var bf strings.Builder
	bf.Grow(int(buf.tree.Summary().Bytes))
	err := buf.tree.EachSpan(0, buf.SpanCount(), func(_ int, sp *span.Span) error {
		bf.WriteString(sp.String())
		return nil
	})
	assert(err == nil, "buffer.String: full iteration cannot fail")
	return bf.String()
}

// Clone returns an independent buffer with independently owned span copies.
// Listeners are not carried over to the clone.
func (buf *SpanBuffer) Clone() *SpanBuffer {
	return &SpanBuffer{tree: buf.tree.Clone()}
}

// Destroy marks the buffer inert and emits a single did-destroy
// notification. Subsequent mutations fail with ErrBufferDestroyed; calling
// Destroy again is a no-op.
func (buf *SpanBuffer) Destroy() {
	if buf.destroyed {
		return
	}
	buf.destroyed = true
	for _, listener := range buf.didDestroy {
		listener()
	}
}

// validateSpans checks that every span in the batch may be handed to the
// tree: non-nil, non-empty, detached, and not listed twice.
func validateSpans(spans []*span.Span) error {
	seen := make(map[*span.Span]struct{}, len(spans))
	for _, sp := range spans {
		if sp == nil || sp.Len() == 0 || sp.IsAttached() {
			return ErrIllegalArguments
		}
		if _, dup := seen[sp]; dup {
			return ErrIllegalArguments
		}
		seen[sp] = struct{}{}
	}
	return nil
}

func contentOfSpans(spans []*span.Span) string {
	var bf strings.Builder
	for _, sp := range spans {
		bf.WriteString(sp.String())
	}
	return bf.String()
}
