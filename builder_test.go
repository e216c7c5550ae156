package spans

import (
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestBuilderEmpty(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	b := NewBuilder()
	buf := b.Buffer()
	if !buf.IsVoid() {
		t.Errorf("expected buffer from empty builder to be void, is not")
	}
}

func TestBuilderAppendPrepend(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	b := NewBuilder()
	if err := b.AppendString("World"); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.PrependString("Hello "); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.AppendString("!"); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.PrependString(">> "); err != nil {
		t.Fatal(err.Error())
	}
	buf := b.Buffer()
	if buf.String() != ">> Hello World!" {
		t.Errorf("expected '>> Hello World!', have '%s'", buf.String())
	}
	if buf.SpanCount() != 4 {
		t.Errorf("expected 4 spans, have %d", buf.SpanCount())
	}
}

func TestBuilderCompleted(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	b := NewBuilder()
	if err := b.AppendString("text"); err != nil {
		t.Fatal(err.Error())
	}
	_ = b.Buffer()
	if err := b.AppendString("more"); err != ErrBuilderCompleted {
		t.Errorf("expected completion error after Buffer(), have %v", err)
	}
	b.Reset()
	if err := b.AppendString("fresh"); err != nil {
		t.Errorf("expected builder to accept fragments after Reset, have %v", err)
	}
}

func TestBuilderIndex(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	b := NewBuilder()
	if err := b.AppendSpan(NewSpan("left")); err != nil {
		t.Fatal(err.Error())
	}
	if err := b.AppendSpan(NewSpan("right")); err != nil {
		t.Fatal(err.Error())
	}
	idx := b.Index()
	if idx.String() != "leftright" || idx.SpanCount() != 2 {
		t.Errorf("expected index 'leftright' in 2 spans, have '%s' in %d",
			idx.String(), idx.SpanCount())
	}
}

func TestBuilderRejectsInvalidSpans(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	b := NewBuilder()
	if err := b.AppendSpan(nil); err != ErrIllegalArguments {
		t.Errorf("expected argument error for nil span, have %v", err)
	}
	if err := b.AppendString("\xff\xfe"); err != ErrIllegalArguments {
		t.Errorf("expected argument error for invalid UTF-8, have %v", err)
	}
	if err := b.AppendString(""); err != nil {
		t.Errorf("empty text should be ignored, have %v", err)
	}
	buf := b.Buffer()
	if !buf.IsVoid() {
		t.Errorf("expected void buffer, rejected fragments must not be staged")
	}
}
