// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agp

import (
	"bufio"
	"io"
	"strings"
)

// Reader reads validated records from an AGP stream. Comment lines are
// permitted only before the first body line; a comment appearing after the
// body has started is an error.
type Reader struct {
	sc     *bufio.Scanner
	line   int
	inBody bool
}

// NewReader returns a Reader reading AGP records from r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 1<<16), 1<<22)
	return &Reader{sc: sc}
}

// Next returns the next record of the stream. It returns io.EOF at a clean
// end of input, and a *Error for any validation failure; no further records
// can be read after a validation failure.
func (r *Reader) Next() (*Record, error) {
	for r.sc.Scan() {
		r.line++
		line := r.sc.Text()
		if strings.HasPrefix(line, "#") {
			if r.inBody {
				return nil, &Error{Line: r.line, Kind: Structural, Reason: "illegal comment in AGP body"}
			}
			continue
		}
		r.inBody = true
		return ParseRecord(line, r.line)
	}
	if err := r.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Line returns the number of the last line read.
func (r *Reader) Line() int { return r.line }
