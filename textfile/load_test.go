package textfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func writeTestFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "text.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err.Error())
	}
	return path
}

func TestLoadSmall(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	content := "Lorem ipsum dolor sit amet, consectetur adipiscing elit.\n"
	path := writeTestFile(t, content)
	buf, err := Load(path, 0)
	if err != nil {
		t.Fatal(err.Error())
	}
	if buf.IsVoid() {
		t.Errorf("buffer is void, should not be")
	}
	if buf.String() != content {
		t.Errorf("loaded content differs from file content")
	}
}

func TestLoadFragments(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	content := strings.Repeat("0123456789", 100)
	path := writeTestFile(t, content)
	buf, err := Load(path, 64)
	if err != nil {
		t.Fatal(err.Error())
	}
	if buf.String() != content {
		t.Errorf("loaded content differs from file content")
	}
	if buf.SpanCount() != 16 { // ceil(1000 / 64)
		t.Errorf("expected 16 spans of 64 bytes, have %d", buf.SpanCount())
	}
}

func TestLoadRuneBoundary(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	// 3-byte runes, fragment size 4: every fragment boundary falls into a rune
	content := strings.Repeat("€", 20)
	path := writeTestFile(t, content)
	buf, err := Load(path, 4)
	if err != nil {
		t.Fatal(err.Error())
	}
	if buf.String() != content {
		t.Errorf("loaded content differs from file content")
	}
	if buf.Len() != 20 {
		t.Errorf("expected 20 characters, have %d", buf.Len())
	}
}

func TestLoadProgress(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	content := strings.Repeat("x", 512)
	path := writeTestFile(t, content)
	loader, err := Open(path, 128)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer loader.Close()
	ch := loader.Subscribe(nil)
	done := make(chan int)
	go func() {
		loaded := 0
		for m := range ch {
			frag, ok := m.(Fragment)
			if !ok {
				continue
			}
			loaded += frag.Len
		}
		done <- loaded
	}()
	buf, err := loader.Load()
	if err != nil {
		t.Fatal(err.Error())
	}
	if loaded := <-done; loaded != 512 {
		t.Errorf("expected 512 bytes announced to subscriber, have %d", loaded)
	}
	if buf.Len() != 512 {
		t.Errorf("expected buffer length 512, have %d", buf.Len())
	}
}

func TestLoadDrainAfterLoad(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	// no concurrent reader: Load must not block on full subscriber channels
	content := strings.Repeat("y", 256)
	path := writeTestFile(t, content)
	loader, err := Open(path, 64)
	if err != nil {
		t.Fatal(err.Error())
	}
	defer loader.Close()
	ch := loader.Subscribe(nil)
	buf, err := loader.Load()
	if err != nil {
		t.Fatal(err.Error())
	}
	fragments, loaded := 0, 0
	for m := range ch {
		frag, ok := m.(Fragment)
		if !ok {
			continue
		}
		fragments++
		loaded += frag.Len
	}
	if fragments != 4 {
		t.Errorf("expected 4 fragment messages, have %d", fragments)
	}
	if loaded != 256 {
		t.Errorf("expected 256 bytes announced to subscriber, have %d", loaded)
	}
	if buf.Len() != 256 {
		t.Errorf("expected buffer length 256, have %d", buf.Len())
	}
}

func TestLoadRejectsBinary(t *testing.T) {
	gtrace.CoreTracer = gotestingadapter.New(t)
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	gtrace.CoreTracer.SetTraceLevel(tracing.LevelDebug)
	//
	path := filepath.Join(t.TempDir(), "binary.dat")
	if err := os.WriteFile(path, []byte{0xff, 0xfe, 0x00, 0x81}, 0644); err != nil {
		t.Fatal(err.Error())
	}
	if _, err := Load(path, 0); err == nil {
		t.Errorf("expected loading a non-UTF-8 file to fail, did not")
	}
}
