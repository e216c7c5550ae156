package spans

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file in the repository root.

*/

import (
	"unicode/utf8"

	"github.com/npillmayer/spans/span"
	"github.com/npillmayer/spans/spantree"
)

// Builder incrementally stages spans and finalizes them into a buffer.
//
// Builder collects spans at the front and back of the staged sequence and
// materializes the buffer only when Buffer() is called. This keeps bulk
// construction off the notification path: assembling a document span by
// span through SpanBuffer.InsertSpans would emit a change pair per call.
//
// The empty instance is a valid builder, but clients may use NewBuilder.
type Builder struct {
	// front keeps prepended spans in reverse logical order.
	front []*span.Span
	// back keeps appended spans in logical order.
	back []*span.Span

	done bool
}

// NewBuilder creates a new and empty span builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AppendString appends UTF-8 text as a new span to the staged build.
// Empty text is ignored.
func (b *Builder) AppendString(text string) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if !utf8.ValidString(text) {
		return ErrIllegalArguments
	}
	if text == "" {
		return b.guard()
	}
	return b.AppendSpan(span.New(text))
}

// PrependString prepends UTF-8 text as a new span to the staged build.
// Empty text is ignored.
func (b *Builder) PrependString(text string) error {
	if b == nil {
		return ErrIllegalArguments
	}
	if !utf8.ValidString(text) {
		return ErrIllegalArguments
	}
	if text == "" {
		return b.guard()
	}
	return b.PrependSpan(span.New(text))
}

// AppendSpan appends a pre-built span, which must be detached and
// non-empty. The builder takes exclusive ownership of it.
func (b *Builder) AppendSpan(sp *span.Span) error {
	if err := b.check(sp); err != nil {
		return err
	}
	b.back = append(b.back, sp)
	return nil
}

// PrependSpan prepends a pre-built span, which must be detached and
// non-empty. The builder takes exclusive ownership of it.
func (b *Builder) PrependSpan(sp *span.Span) error {
	if err := b.check(sp); err != nil {
		return err
	}
	b.front = append(b.front, sp)
	return nil
}

// Buffer returns the span buffer built from all staged spans.
//
// It is illegal to continue adding spans after Buffer or Index has been
// called.
func (b *Builder) Buffer() *SpanBuffer {
	if b == nil {
		return &SpanBuffer{tree: spantree.New()}
	}
	b.done = true
	spans := b.orderedSpans()
	buf, err := NewBuffer(spans...)
	assert(err == nil, "builder: staged spans cannot be invalid")
	if buf.IsVoid() {
		tracer().Debugf("span builder: buffer is void")
	}
	return buf
}

// Index returns the span index built from all staged spans.
//
// It is illegal to continue adding spans after Index or Buffer has been
// called.
func (b *Builder) Index() *SpanIndex {
	if b == nil {
		return &SpanIndex{tree: spantree.New()}
	}
	b.done = true
	idx, err := NewIndex(b.orderedSpans()...)
	assert(err == nil, "builder: staged spans cannot be invalid")
	return idx
}

// Reset drops the staged build and prepares the builder for a fresh build.
// Staged spans are discarded, not detached; they were never attached.
func (b *Builder) Reset() {
	b.front = nil
	b.back = nil
	b.done = false
}

func (b *Builder) guard() error {
	if b.done {
		return ErrBuilderCompleted
	}
	return nil
}

func (b *Builder) check(sp *span.Span) error {
	if b == nil || sp == nil || sp.Len() == 0 || sp.IsAttached() {
		return ErrIllegalArguments
	}
	return b.guard()
}

func (b *Builder) orderedSpans() []*span.Span {
	total := len(b.front) + len(b.back)
	if total == 0 {
		return nil
	}
	out := make([]*span.Span, 0, total)
	for i := len(b.front) - 1; i >= 0; i-- {
		out = append(out, b.front[i])
	}
	out = append(out, b.back...)
	return out
}
