package span

import (
	"errors"
	"testing"
)

func TestNewComputesSummary(t *testing.T) {
	s := New("a\n😀b")
	if s.Len() != 4 {
		t.Fatalf("unexpected char length: %d", s.Len())
	}
	if s.ByteLen() != 7 {
		t.Fatalf("unexpected byte length: %d", s.ByteLen())
	}
	sum := s.Summary()
	if sum.Spans != 1 || sum.Chars != 4 || sum.Bytes != 7 || sum.Lines != 1 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
}

func TestReplaceRange(t *testing.T) {
	s := New("hello world")
	if err := s.ReplaceRange(6, 5, "there"); err != nil {
		t.Fatalf("unexpected ReplaceRange error: %v", err)
	}
	if s.String() != "hello there" {
		t.Fatalf("unexpected content %q", s.String())
	}
	if err := s.ReplaceRange(5, 6, ""); err != nil {
		t.Fatalf("unexpected ReplaceRange error: %v", err)
	}
	if s.String() != "hello" || s.Len() != 5 {
		t.Fatalf("unexpected content %q (len %d)", s.String(), s.Len())
	}
}

func TestReplaceRangeCharOffsets(t *testing.T) {
	s := New("😀😀😀")
	if err := s.ReplaceRange(1, 1, "x"); err != nil {
		t.Fatalf("unexpected ReplaceRange error: %v", err)
	}
	if s.String() != "😀x😀" {
		t.Fatalf("unexpected content %q", s.String())
	}
	if s.Len() != 3 {
		t.Fatalf("unexpected char length: %d", s.Len())
	}
}

func TestReplaceRangeRejectsBadRanges(t *testing.T) {
	s := New("abc")
	for _, c := range []struct{ loc, length int }{
		{-1, 0}, {0, -1}, {0, 4}, {3, 1}, {4, 0},
	} {
		if err := s.ReplaceRange(c.loc, c.length, "x"); !errors.Is(err, ErrIndexOutOfBounds) {
			t.Fatalf("expected ErrIndexOutOfBounds for (%d,%d), got %v", c.loc, c.length, err)
		}
	}
	if s.String() != "abc" {
		t.Fatalf("failed replace mutated the span: %q", s.String())
	}
}

func TestAppendString(t *testing.T) {
	s := New("one")
	s.AppendString("two")
	if s.String() != "onetwo" {
		t.Fatalf("unexpected content %q", s.String())
	}
}

func TestSplitInterior(t *testing.T) {
	s := New("onetwo")
	tail, err := s.Split(3)
	if err != nil {
		t.Fatalf("unexpected Split error: %v", err)
	}
	if s.String() != "one" || tail.String() != "two" {
		t.Fatalf("unexpected split result %q / %q", s.String(), tail.String())
	}
	if tail.IsAttached() {
		t.Fatalf("split tail must start detached")
	}
}

func TestSplitBoundaryIsNoop(t *testing.T) {
	s := New("abc")
	for _, loc := range []int{0, 3} {
		tail, err := s.Split(loc)
		if err != nil {
			t.Fatalf("unexpected Split error at %d: %v", loc, err)
		}
		if tail != nil {
			t.Fatalf("expected no split at boundary %d", loc)
		}
	}
	if s.String() != "abc" {
		t.Fatalf("boundary split mutated the span: %q", s.String())
	}
	if _, err := s.Split(4); !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected ErrIndexOutOfBounds, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := New("abc")
	if err := s.Attach("container"); err != nil {
		t.Fatalf("unexpected Attach error: %v", err)
	}
	c := s.Clone()
	if c.IsAttached() {
		t.Fatalf("clone must be detached")
	}
	c.AppendString("def")
	if s.String() != "abc" {
		t.Fatalf("clone aliases original: %q", s.String())
	}
}

func TestAttachDetach(t *testing.T) {
	s := New("abc")
	if s.Parent() != nil || s.IsAttached() {
		t.Fatalf("new span must be detached")
	}
	owner := New("owner")
	if err := s.Attach(owner); err != nil {
		t.Fatalf("unexpected Attach error: %v", err)
	}
	if s.Parent() != any(owner) {
		t.Fatalf("unexpected parent: %v", s.Parent())
	}
	// re-attaching to the same owner is fine
	if err := s.Attach(owner); err != nil {
		t.Fatalf("unexpected re-Attach error: %v", err)
	}
	other := New("other")
	if err := s.Attach(other); !errors.Is(err, ErrSpanAttached) {
		t.Fatalf("expected ErrSpanAttached, got %v", err)
	}
	if err := s.Attach(nil); !errors.Is(err, ErrNilParent) {
		t.Fatalf("expected ErrNilParent, got %v", err)
	}
	s.Detach()
	if s.Parent() != nil {
		t.Fatalf("detached span must have nil parent")
	}
}
