// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package agp

import "fmt"

// ErrorKind classifies validation failures so that callers can match on
// the class of violation without inspecting message text.
type ErrorKind int

const (
	Structural  ErrorKind = iota // malformed line shape
	Coordinate                   // non-positive, inverted or non-integer coordinates
	Enum                         // token outside a fixed vocabulary
	Ordering                     // object or part number out of order
	Coverage                     // object positions unaccounted for or overlapping
	Consistency                  // object and component lengths disagree
)

var kindNames = [...]string{
	Structural:  "structural",
	Coordinate:  "coordinate",
	Enum:        "enum",
	Ordering:    "ordering",
	Coverage:    "coverage",
	Consistency: "consistency",
}

func (k ErrorKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
	return kindNames[k]
}

// Error is a fatal AGP validation failure. Line is the 1-based number of
// the offending input line.
type Error struct {
	Line   int
	Kind   ErrorKind
	Reason string
}

func (e *Error) Error() string { return fmt.Sprintf("line %d: %s", e.Line, e.Reason) }
