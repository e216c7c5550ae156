/*
Package textfile provides API helpers to load UTF-8 text files as span
buffers.

Files are read in bounded fragments, one span per fragment, so editors get
a span structure that reflects on-disk locality. Loading publishes progress
through a broadcaster, which clients may subscribe to before starting the
load.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the LICENSE file for details.
*/
package textfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'spans'
func tracer() tracing.Trace {
	return tracing.Select("spans")
}
