// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scaffold builds assembled object sequences from an ordered
// stream of AGP records, writing the result as FASTA text. Records are
// folded into the builder one at a time; object blocks must be contiguous,
// part numbers sequential, and each object's records must tile its length
// exactly once.
package scaffold

import (
	"fmt"
	"io"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kdbrumfield/RagTag/agp"
)

// Fetcher is the source of component sequences referenced by AGP records.
// Fetch may return a sequence shared with the underlying store; FetchRevComp
// and FetchRange return copies owned by the caller.
type Fetcher interface {
	Fetch(id string) (*linear.Seq, error)
	FetchRevComp(id string) (*linear.Seq, error)
	FetchRange(id string, start, end int) (*linear.Seq, error)
}

type interval struct {
	start, end int // 0-based half-open within the object
}

// Builder folds AGP records into FASTA output on w. Records must be added
// in file order; Flush must be called after the last record.
type Builder struct {
	w io.Writer
	f Fetcher

	strict bool
	wrap   int
	col    int

	started   bool
	cur       string
	prevPart  int
	intervals []interval
	seen      map[string]bool
	lastLine  int
}

// NewBuilder returns a Builder writing FASTA text for records resolved
// against f to w.
func NewBuilder(w io.Writer, f Fetcher) *Builder {
	return &Builder{w: w, f: f, seen: make(map[string]bool)}
}

// Strict sets whether component sequences are sliced to the record's
// declared component coordinates. The default emits each referenced
// sequence whole, matching the historical behaviour of agp2fasta.
func (b *Builder) Strict(s bool) { b.strict = s }

// Wrap sets the output sequence line width. Zero, the default, emits each
// object's sequence as a single line.
func (b *Builder) Wrap(n int) { b.wrap = n }

// Add folds one record into the builder, writing its sequence text.
// Ordering and coverage failures are returned as *agp.Error.
func (b *Builder) Add(rec *agp.Record) error {
	b.lastLine = rec.Line
	if !b.started || rec.Object != b.cur {
		if err := b.transition(rec); err != nil {
			return err
		}
	}
	if rec.Part-b.prevPart != 1 {
		return &agp.Error{Line: rec.Line, Kind: agp.Ordering, Reason: "non-sequential part_numbers"}
	}
	b.prevPart = rec.Part
	start, end := rec.Span()
	b.intervals = append(b.intervals, interval{start, end})

	if rec.IsGap() {
		return b.writeSeq([]byte(strings.Repeat("N", rec.Gap.Length)))
	}
	s, err := b.fetch(rec.Comp)
	if err != nil {
		return fmt.Errorf("line %d: %v", rec.Line, err)
	}
	return b.writeSeq(alphabet.LettersToBytes(s.Seq))
}

// transition begins a new object block, first checking that the previous
// object, if any, was completely covered.
func (b *Builder) transition(rec *agp.Record) error {
	if rec.ObjBeg != 1 {
		return &agp.Error{Line: rec.Line, Kind: agp.Ordering, Reason: "all objects should start with '1'"}
	}
	if b.seen[rec.Object] {
		return &agp.Error{Line: rec.Line, Kind: agp.Ordering, Reason: "object identifier out of order"}
	}
	if b.started {
		if err := b.checkCovered(rec.Line); err != nil {
			return err
		}
		if b.col > 0 {
			if err := b.newline(); err != nil {
				return err
			}
		}
	}
	if _, err := fmt.Fprintf(b.w, ">%s\n", rec.Object); err != nil {
		return err
	}
	b.started = true
	b.cur = rec.Object
	b.seen[rec.Object] = true
	b.prevPart = 0
	b.intervals = b.intervals[:0]
	return nil
}

func (b *Builder) fetch(comp *agp.Component) (*linear.Seq, error) {
	if b.strict {
		s, err := b.f.FetchRange(comp.ID, comp.Beg-1, comp.End)
		if err != nil {
			return nil, err
		}
		if comp.Orient == agp.Minus {
			s.RevComp()
		}
		return s, nil
	}
	if comp.Orient == agp.Minus {
		return b.f.FetchRevComp(comp.ID)
	}
	return b.f.Fetch(comp.ID)
}

// Flush checks coverage of the final object and terminates the output.
func (b *Builder) Flush() error {
	if b.started {
		if err := b.checkCovered(b.lastLine); err != nil {
			return err
		}
	}
	if b.col > 0 || !b.started {
		return b.newline()
	}
	return nil
}

func (b *Builder) checkCovered(line int) error {
	if !covered(b.intervals) {
		return &agp.Error{
			Line:   line,
			Kind:   agp.Coverage,
			Reason: fmt.Sprintf("some positions in %s are not accounted for or overlap", b.cur),
		}
	}
	return nil
}

func (b *Builder) writeSeq(p []byte) error {
	if b.wrap <= 0 {
		b.col += len(p)
		_, err := b.w.Write(p)
		return err
	}
	for len(p) > 0 {
		n := b.wrap - b.col
		if n > len(p) {
			n = len(p)
		}
		if _, err := b.w.Write(p[:n]); err != nil {
			return err
		}
		p = p[n:]
		b.col += n
		if b.col == b.wrap {
			if err := b.newline(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) newline() error {
	b.col = 0
	_, err := b.w.Write([]byte{'\n'})
	return err
}
