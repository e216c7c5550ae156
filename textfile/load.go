package textfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/guiguan/caster"
	"github.com/npillmayer/spans"
)

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.
*/

// Some constants for fragment size defaults
const (
	twoKb     = 2048
	sixKb     = 6144
	tenKb     = 10240
	hundredKb = 1024000
	oneMb     = 1048576
)

// Fragment is the progress message published for every loaded file
// fragment.
type Fragment struct {
	Pos int64 // byte position of the fragment within the file
	Len int   // length of the fragment in bytes
}

// Loader reads an OS file fragment by fragment and assembles the fragments
// into a span buffer.
type Loader struct {
	path      string
	info      os.FileInfo
	file      *os.File
	fragSize  int64
	cast      *caster.Caster // broadcaster for load progress
	lastError error
}

// Load reads a file, which must be a UTF-8 text file, and loads it as a
// span buffer, one span per fragment.
//
// Clients may indicate a recommended fragment length in bytes; a fragSize
// of 0 lets Load choose a sensible default from the file size. Fragment
// boundaries are adjusted so no span starts or ends in the middle of a
// UTF-8 rune.
func Load(name string, fragSize int64) (*spans.SpanBuffer, error) {
	loader, err := Open(name, fragSize)
	if err != nil {
		return nil, err
	}
	defer loader.Close()
	return loader.Load()
}

// Open opens a file for loading but does not read it yet. Clients wanting
// load progress subscribe before calling Load.
func Open(name string, fragSize int64) (*Loader, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file is not a regular file")
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	if fragSize <= 0 || fragSize > tenKb {
		fragSize = defaultFragSize(fi.Size())
	}
	loader := &Loader{
		path:     name,
		info:     fi,
		file:     file,
		fragSize: fragSize,
		cast:     caster.New(nil), // we will broadcast messages when fragments are loaded
	}
	return loader, nil
}

// defaultFragSize picks a fragment size from the file size: small files
// become a single span, large files are cut into chunks of a few Kb.
func defaultFragSize(size int64) int64 {
	switch {
	case size < 64:
		return max(size, 1)
	case size < 1024:
		return 64
	case size < tenKb:
		return 256
	case size < hundredKb:
		return 512
	case size < oneMb:
		return twoKb
	default:
		return sixKb
	}
}

// Subscribe registers a progress listener. The returned channel receives a
// Fragment message for every loaded fragment and is closed when loading
// finishes. ctx may be nil.
//
// The channel is buffered to hold the messages for a complete load, so
// clients may subscribe, call Load, and drain the channel afterwards.
func (loader *Loader) Subscribe(ctx context.Context) <-chan interface{} {
	capacity := uint(1)
	if loader.fragSize > 0 {
		capacity = uint((loader.info.Size() + loader.fragSize - 1) / loader.fragSize)
		if capacity == 0 {
			capacity = 1
		}
	}
	ch, ok := loader.cast.Sub(ctx, capacity)
	if !ok {
		tracer().Infof("textfile: subscription to completed load of %q", loader.path)
	}
	return ch
}

// Load reads the complete file and returns it as a span buffer.
//
// Load runs synchronously; progress is published to subscribers while
// fragments come in, and the broadcaster is closed when the last fragment
// has been read. Load may be called once per Loader.
func (loader *Loader) Load() (*spans.SpanBuffer, error) {
	defer loader.cast.Close()
	builder := spans.NewBuilder()
	buf := make([]byte, loader.fragSize)
	carry := make([]byte, 0, utf8.UTFMax) // rune bytes cut off at a fragment boundary
	var pos int64
	for pos < loader.info.Size() {
		cnt, err := loader.file.ReadAt(buf, pos)
		if err != nil && err != io.EOF {
			loader.lastError = fmt.Errorf("error loading text fragment: %w", err)
			return nil, loader.lastError
		}
		if cnt == 0 {
			break
		}
		frag := append(carry, buf[:cnt]...)
		cut := len(frag)
		if pos+int64(cnt) < loader.info.Size() {
			// do not cut a rune in half, carry trailing partial bytes over
			cut = lastRuneBoundary(frag)
		}
		if !utf8.Valid(frag[:cut]) {
			loader.lastError = fmt.Errorf("file %q is not valid UTF-8 text", loader.path)
			return nil, loader.lastError
		}
		if err := builder.AppendString(string(frag[:cut])); err != nil {
			return nil, err
		}
		loader.cast.Pub(Fragment{Pos: pos - int64(len(carry)), Len: cut})
		carry = append(carry[:0], frag[cut:]...)
		pos += int64(cnt)
	}
	if len(carry) > 0 {
		loader.lastError = fmt.Errorf("file %q is not valid UTF-8 text", loader.path)
		return nil, loader.lastError
	}
	buffer := builder.Buffer()
	tracer().Debugf("textfile: loaded %q as %d spans", loader.path, buffer.SpanCount())
	return buffer, nil
}

// LastError returns the last I/O error encountered while loading, or nil.
func (loader *Loader) LastError() error {
	return loader.lastError
}

// Close releases the underlying OS file. Loaders given out by Open must be
// closed by the client; Load does not close the file.
func (loader *Loader) Close() error {
	return loader.file.Close()
}

// lastRuneBoundary returns the length of the longest prefix of frag that
// does not end in the middle of a UTF-8 rune.
func lastRuneBoundary(frag []byte) int {
	cut := len(frag)
	for cut > 0 && !utf8.RuneStart(frag[cut-1]) {
		cut--
	}
	if cut == 0 {
		return len(frag)
	}
	// frag[cut-1] starts the trailing rune; keep it only if it is complete
	if utf8.FullRune(frag[cut-1:]) {
		return len(frag)
	}
	return cut - 1
}
