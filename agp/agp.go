// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package agp provides parsing and validation of AGP v2.1 assembly
// descriptions. An AGP file describes how component sequences are placed,
// in order, to form larger assembled objects; this package turns its
// tab-delimited body lines into typed records, enforcing the per-line
// grammar of the format. Cross-line ordering and coverage rules are the
// concern of the consumer of the records.
package agp

import (
	"fmt"
	"strconv"
	"strings"
)

// Orientation is the orientation of a component relative to its object.
type Orientation int8

const (
	Minus         Orientation = iota - 1 // "-"
	None                                 // "0"
	Plus                                 // "+"
	Unknown                              // "?"
	NotApplicable                        // "na"
)

func (o Orientation) String() string {
	switch o {
	case Minus:
		return "-"
	case None:
		return "0"
	case Plus:
		return "+"
	case Unknown:
		return "?"
	case NotApplicable:
		return "na"
	}
	return fmt.Sprintf("Orientation(%d)", int8(o))
}

// Component holds the fields specific to a sequence component record.
// Beg and End are 1-based inclusive coordinates within the component.
type Component struct {
	ID     string
	Beg    int
	End    int
	Orient Orientation
}

// Gap holds the fields specific to a gap record.
type Gap struct {
	Length   int
	GapType  string
	Linkage  bool
	Evidence []string
}

// Record is a validated AGP body line. ObjBeg and ObjEnd are 1-based
// inclusive coordinates within the object. Exactly one of Comp and Gap is
// non-nil, according to whether Type is a gap type.
type Record struct {
	Line   int // 1-based input line number
	Object string
	ObjBeg int
	ObjEnd int
	Part   int
	Type   byte

	Comp *Component
	Gap  *Gap
}

// IsGap returns whether r describes a gap.
func (r *Record) IsGap() bool { return r.Gap != nil }

// Span returns the 0-based half-open interval the record occupies within
// its object.
func (r *Record) Span() (start, end int) { return r.ObjBeg - 1, r.ObjEnd }

// Len returns the length of the record's object interval.
func (r *Record) Len() int { return r.ObjEnd - r.ObjBeg + 1 }

// ParseRecord parses a single AGP body line, validating it against the
// v2.1 grammar. The returned error is always a *Error tagged with number,
// the line's position in the input.
func ParseRecord(line string, number int) (*Record, error) {
	fields := strings.Split(strings.TrimRight(line, " \t\r\n"), "\t")
	if len(fields) != 9 {
		return nil, &Error{Line: number, Kind: Structural, Reason: "lines should have 9 tab delimited fields"}
	}
	for _, f := range fields {
		if f == "" {
			return nil, &Error{Line: number, Kind: Structural, Reason: "detected empty field"}
		}
	}

	rec := &Record{Line: number, Object: fields[0]}
	var err error
	rec.ObjBeg, err = strconv.Atoi(fields[1])
	if err == nil {
		rec.ObjEnd, err = strconv.Atoi(fields[2])
	}
	if err != nil {
		return nil, &Error{Line: number, Kind: Coordinate, Reason: "object coordinates should be integers"}
	}
	if rec.ObjBeg < 1 || rec.ObjEnd < 1 {
		return nil, &Error{Line: number, Kind: Coordinate, Reason: "object coordinates should be 1-indexed and positive"}
	}
	if rec.ObjBeg > rec.ObjEnd {
		return nil, &Error{Line: number, Kind: Coordinate, Reason: "beginning object coordinate should be <= the end coordinate"}
	}
	rec.Part, err = strconv.Atoi(fields[3])
	if err != nil {
		return nil, &Error{Line: number, Kind: Coordinate, Reason: fmt.Sprintf("invalid part_number %q", fields[3])}
	}

	if !ComponentTypes[fields[4]] {
		return nil, &Error{Line: number, Kind: Enum, Reason: fmt.Sprintf("invalid component type: %s", fields[4])}
	}
	rec.Type = fields[4][0]

	var compLen int
	if rec.Type != 'N' && rec.Type != 'U' {
		compLen, err = parseComponent(rec, fields, number)
	} else {
		compLen, err = parseGap(rec, fields, number)
	}
	if err != nil {
		return nil, err
	}

	if compLen != rec.Len() {
		return nil, &Error{Line: number, Kind: Consistency, Reason: "object and component coordinates have inconsistent lengths"}
	}
	return rec, nil
}

func parseComponent(rec *Record, fields []string, number int) (compLen int, err error) {
	comp := &Component{ID: fields[5]}
	comp.Beg, err = strconv.Atoi(fields[6])
	if err == nil {
		comp.End, err = strconv.Atoi(fields[7])
	}
	if err != nil {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: "component coordinates should be integers"}
	}
	if comp.Beg < 1 || comp.End < 1 {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: "component coordinates should be 1-indexed and positive"}
	}
	if comp.Beg > comp.End {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: "beginning component coordinate should be less than or equal to the end coordinate"}
	}
	var ok bool
	comp.Orient, ok = Orientations[fields[8]]
	if !ok {
		return 0, &Error{Line: number, Kind: Enum, Reason: "invalid orientation"}
	}
	rec.Comp = comp
	return comp.End - comp.Beg + 1, nil
}

func parseGap(rec *Record, fields []string, number int) (compLen int, err error) {
	gap := &Gap{GapType: fields[6]}
	gap.Length, err = strconv.Atoi(fields[5])
	if err != nil {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: fmt.Sprintf("invalid gap length %q", fields[5])}
	}
	if !GapTypes[gap.GapType] {
		return 0, &Error{Line: number, Kind: Enum, Reason: "invalid gap type"}
	}
	if !LinkageTypes[fields[7]] {
		return 0, &Error{Line: number, Kind: Enum, Reason: "invalid linkage field"}
	}
	gap.Linkage = fields[7] == "yes"
	if gap.Length < 1 {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: "gap length must be >0"}
	}
	if rec.Type == 'U' && gap.Length != uGapLength {
		return 0, &Error{Line: number, Kind: Coordinate, Reason: "gaps of type 'U' must be 100 bp"}
	}
	gap.Evidence = strings.Split(fields[8], ";")
	for _, e := range gap.Evidence {
		if !EvidenceTypes[e] {
			return 0, &Error{Line: number, Kind: Enum, Reason: "invalid linkage evidence"}
		}
	}
	rec.Gap = gap
	return gap.Length, nil
}
