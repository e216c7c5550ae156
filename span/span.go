package span

// Span is a mutable atomic fragment of UTF-8 text.
//
// All positions taken and returned by span methods are character (rune)
// offsets into the span's content, not byte offsets. The character length is
// cached together with the other summary metrics, so Len is O(1).
//
// A span is exclusively owned: it may be attached to at most one container at
// a time. The parent link is a non-owning back-reference used solely to check
// attachment; it never keeps a detached container alive.
type Span struct {
	content string
	summary Summary
	parent  any
}

// New creates a detached span holding content.
func New(content string) *Span {
	s := &Span{}
	s.setContent(content)
	return s
}

func (s *Span) setContent(content string) {
	s.content = content
	s.summary = summarize(content)
}

// String returns the span's content.
func (s *Span) String() string {
	return s.content
}

// Len returns the number of characters in the span.
func (s *Span) Len() int {
	return int(s.summary.Chars)
}

// ByteLen returns the content length in bytes.
func (s *Span) ByteLen() int {
	return len(s.content)
}

// IsEmpty reports whether the span has no characters.
func (s *Span) IsEmpty() bool {
	return len(s.content) == 0
}

// Summary returns aggregate metrics for this span.
func (s *Span) Summary() Summary {
	return s.summary
}

// ReplaceRange replaces length characters starting at location with text.
//
// The mutation is purely local; containers holding the span are responsible
// for refreshing any cached aggregates.
func (s *Span) ReplaceRange(location, length int, text string) error {
	if location < 0 || length < 0 || location+length > s.Len() {
		return ErrIndexOutOfBounds
	}
	start := s.byteOffset(location)
	end := s.byteOffset(location + length)
	s.setContent(s.content[:start] + text + s.content[end:])
	return nil
}

// AppendString appends text to the span's content.
func (s *Span) AppendString(text string) {
	err := s.ReplaceRange(s.Len(), 0, text)
	assert(err == nil, "span append: replace at end cannot be out of bounds")
}

// Split truncates the span to [0,location) and returns a new detached span
// holding [location,Len()).
//
// When location is 0 or Len(), no split is needed and Split returns nil.
// This tie-break guarantees that splitting never produces a zero-length span.
func (s *Span) Split(location int) (*Span, error) {
	if location < 0 || location > s.Len() {
		return nil, ErrIndexOutOfBounds
	}
	if location == 0 || location == s.Len() {
		return nil, nil
	}
	cut := s.byteOffset(location)
	tail := New(s.content[cut:])
	s.setContent(s.content[:cut])
	return tail, nil
}

// Clone returns an independent, detached copy of the span.
func (s *Span) Clone() *Span {
	return New(s.content)
}

// Parent returns the container the span is currently attached to, or nil.
func (s *Span) Parent() any {
	return s.parent
}

// IsAttached reports whether the span is held by a container.
func (s *Span) IsAttached() bool {
	return s.parent != nil
}

// Attach records parent as the owning container.
//
// A span attached to a different container cannot be attached again; the
// previous owner has to detach it first.
func (s *Span) Attach(parent any) error {
	if parent == nil {
		return ErrNilParent
	}
	if s.parent != nil && s.parent != parent {
		return ErrSpanAttached
	}
	s.parent = parent
	return nil
}

// Detach clears the parent link.
func (s *Span) Detach() {
	s.parent = nil
}

// byteOffset maps a character offset to a byte offset into content.
func (s *Span) byteOffset(chars int) int {
	if chars <= 0 {
		return 0
	}
	seen := 0
	for pos := range s.content {
		if seen == chars {
			return pos
		}
		seen++
	}
	return len(s.content)
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
