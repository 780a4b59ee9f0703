// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package seqdb provides in-memory random access to the sequences of a
// FASTA component file, keyed by sequence identifier.
package seqdb

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/biogo/biogo/seq/sequtils"
)

// DB is a collection of DNA sequences supporting retrieval by identifier.
type DB struct {
	seqs map[string]*linear.Seq
}

// Open reads the FASTA file at path into a DB. Compressed input is
// rejected; the file must be plain text.
func Open(path string) (*DB, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	br := bufio.NewReader(f)
	if magic, err := br.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		return nil, fmt.Errorf("seqdb: %s appears to be gzip compressed", path)
	}
	db, err := Read(br)
	if err != nil {
		return nil, fmt.Errorf("seqdb: failed to read %s: %v", path, err)
	}
	return db, nil
}

// Read reads FASTA formatted sequences from r into a DB. Sequence
// identifiers must be unique.
func Read(r io.Reader) (*DB, error) {
	db := &DB{seqs: make(map[string]*linear.Seq)}
	sc := seqio.NewScanner(fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA)))
	for sc.Next() {
		s := sc.Seq().(*linear.Seq)
		if _, ok := db.seqs[s.Name()]; ok {
			return nil, fmt.Errorf("seqdb: duplicate sequence identifier %q", s.Name())
		}
		db.seqs[s.Name()] = s
	}
	if err := sc.Error(); err != nil {
		return nil, err
	}
	return db, nil
}

// Len returns the number of sequences held by the DB.
func (db *DB) Len() int { return len(db.seqs) }

// Has returns whether the DB holds a sequence named id.
func (db *DB) Has(id string) bool { _, ok := db.seqs[id]; return ok }

// Fetch returns the full sequence named id. The returned sequence is
// shared with the DB and must not be modified by the caller.
func (db *DB) Fetch(id string) (*linear.Seq, error) {
	s, ok := db.seqs[id]
	if !ok {
		return nil, fmt.Errorf("seqdb: no sequence %q", id)
	}
	return s, nil
}

// FetchRevComp returns the reverse complement of the sequence named id.
// The returned sequence is a copy owned by the caller.
func (db *DB) FetchRevComp(id string) (*linear.Seq, error) {
	s, err := db.Fetch(id)
	if err != nil {
		return nil, err
	}
	return RevComp(s), nil
}

// FetchRange returns the 0-based half-open subsequence [start,end) of the
// sequence named id. The returned sequence is a copy owned by the caller.
func (db *DB) FetchRange(id string, start, end int) (*linear.Seq, error) {
	s, err := db.Fetch(id)
	if err != nil {
		return nil, err
	}
	if start < 0 || end > s.Len() || start >= end {
		return nil, fmt.Errorf("seqdb: range [%d,%d) outside %q (length %d)", start, end, id, s.Len())
	}
	ss := *s
	if err := sequtils.Truncate(&ss, s, start, end); err != nil {
		return nil, err
	}
	ss.Seq = append(alphabet.Letters(nil), ss.Seq...)
	return &ss, nil
}

// RevComp returns the reverse complement of s, leaving s unmodified.
func RevComp(s *linear.Seq) *linear.Seq {
	c := *s
	c.Seq = append(alphabet.Letters(nil), s.Seq...)
	c.RevComp()
	return &c
}
