package spans

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file in the repository root.

*/

// Change is the payload of will-change and did-change notifications.
//
// It describes a character-level edit: the text occupying
// [Location, Location+ReplacedLength) is replaced by InsertedText.
// Span-level operations report the concatenated content of the affected
// spans.
type Change struct {
	Location       int
	ReplacedLength int
	InsertedText   string
}

// ChangeListener receives change notifications from a SpanBuffer.
type ChangeListener func(Change)

// DestroyListener receives the did-destroy notification from a SpanBuffer.
type DestroyListener func()

// OnWillChange registers a listener invoked before each outermost mutation.
// Listeners are invoked synchronously in registration order.
func (buf *SpanBuffer) OnWillChange(listener ChangeListener) {
	if listener == nil {
		return
	}
	buf.willChange = append(buf.willChange, listener)
}

// OnDidChange registers a listener invoked after each outermost mutation,
// with the same payload as the preceding will-change.
func (buf *SpanBuffer) OnDidChange(listener ChangeListener) {
	if listener == nil {
		return
	}
	buf.didChange = append(buf.didChange, listener)
}

// OnDidDestroy registers a listener invoked when the buffer is destroyed.
func (buf *SpanBuffer) OnDidDestroy(listener DestroyListener) {
	if listener == nil {
		return
	}
	buf.didDestroy = append(buf.didDestroy, listener)
}

// change brackets a mutation with the will-change/did-change pair.
//
// Only the outermost mutating call emits notifications; nested calls run
// with the changing counter raised and stay silent. The counter is
// decremented on every exit path, even a panicking mutation must not leak
// suppressed-notification state. No pair is emitted for a no-op change
// (nothing replaced, nothing inserted).
func (buf *SpanBuffer) change(ch Change, mutate func() error) error {
	emit := buf.changing == 0 && !(ch.ReplacedLength == 0 && ch.InsertedText == "")
	if emit {
		for _, listener := range buf.willChange {
			listener(ch)
		}
	}
	err := func() error {
		buf.changing++
		defer func() {
			buf.changing--
		}()
		return mutate()
	}()
	if err != nil {
		return err
	}
	if emit {
		for _, listener := range buf.didChange {
			listener(ch)
		}
	}
	return nil
}
