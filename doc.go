/*
Package spans implements a character-indexed buffer of mutable text spans.

Spans

A span is an atomic fragment of text. A span buffer keeps an ordered sequence
of spans, indexed by a summarized tree so that locating the span owning a
given character offset, as well as inserting, deleting and splitting spans,
stays sub-linear in the number of spans. The buffer is the text engine
underneath an outline/document model: the document layer stores attributed
runs as spans and edits them through character-range operations.

Every mutation keeps the tree's cached lengths exactly in sync with the
concatenation of its spans, under arbitrary insert/delete/slice/split
patterns. Mutating operations emit paired will-change/did-change
notifications; composite operations that internally call other mutating
operations collapse into a single outward-visible pair.

Due to their internal structure span buffers have performance characteristics
differing from Go strings or byte arrays:

	Operation     |   Buffer        |  String
	--------------+-----------------+--------
	Index         |   O(log n)      |   O(1)
	Split         |   O(log n)      |   O(1)
	Iterate       |   O(n)          |   O(n)

	Insert        |   O(log n)      |   O(n)
	Delete        |   O(log n)      |   O(n)

For use cases with many editing operations on large texts, span buffers have
stable performance and space characteristics.

All operations are single-threaded and synchronous; concurrent callers must
serialize access externally.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

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
package spans

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// tracer writes to the tracer with key 'spans'.
func tracer() tracing.Trace {
	return tracing.Select("spans")
}

// SpanError is an error type for the spans module
type SpanError string

func (e SpanError) Error() string {
	return string(e)
}

// ErrIndexOutOfBounds is flagged whenever a span index or count falls outside
// the valid range of a buffer.
const ErrIndexOutOfBounds = SpanError("index out of bounds")

// ErrLocationOutOfBounds is flagged whenever a character location or range is
// negative or exceeds the length of the buffer.
const ErrLocationOutOfBounds = SpanError("location out of bounds")

// ErrIllegalArguments is flagged whenever function parameters are invalid.
const ErrIllegalArguments = SpanError("illegal arguments")

// ErrBufferDestroyed is flagged when a mutating operation is called on a
// buffer after Destroy.
const ErrBufferDestroyed = SpanError("buffer has been destroyed")

// ErrBuilderCompleted signals that a builder has already completed a buffer
// and it's illegal to further add fragments.
const ErrBuilderCompleted = SpanError("forbidden to add fragments; buffer has been completed")

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
