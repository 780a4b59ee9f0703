// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scaffold

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
	check "gopkg.in/check.v1"

	"github.com/kdbrumfield/RagTag/agp"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// mapFetcher is a Fetcher backed by a map of sequence strings.
type mapFetcher map[string]string

func (m mapFetcher) Fetch(id string) (*linear.Seq, error) {
	s, ok := m[id]
	if !ok {
		return nil, fmt.Errorf("no sequence %q", id)
	}
	return linear.NewSeq(id, alphabet.BytesToLetters([]byte(s)), alphabet.DNA), nil
}

func (m mapFetcher) FetchRevComp(id string) (*linear.Seq, error) {
	s, err := m.Fetch(id)
	if err != nil {
		return nil, err
	}
	s.RevComp()
	return s, nil
}

func (m mapFetcher) FetchRange(id string, start, end int) (*linear.Seq, error) {
	s, err := m.Fetch(id)
	if err != nil {
		return nil, err
	}
	if start < 0 || end > s.Len() || start >= end {
		return nil, fmt.Errorf("range [%d,%d) outside %q", start, end, id)
	}
	s.Seq = s.Seq[start:end]
	return s, nil
}

var components = mapFetcher{
	"ctg1": "ACGTACGTAC",
	"ctg2": "TTTTTGGGGG",
}

// run feeds the AGP text through a Reader into a Builder and returns the
// output written and the first error.
func run(agpText string, config func(*Builder)) (string, error) {
	var buf bytes.Buffer
	b := NewBuilder(&buf, components)
	if config != nil {
		config(b)
	}
	r := agp.NewReader(strings.NewReader(agpText))
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return buf.String(), err
		}
		if err := b.Add(rec); err != nil {
			return buf.String(), err
		}
	}
	err := b.Flush()
	return buf.String(), err
}

func (s *S) TestSingleComponent(c *check.C) {
	got, err := run("scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nACGTACGTAC\n")
}

func (s *S) TestComponentAndGap(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t11\t60\t2\tN\t50\tcontig\tno\tna\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nACGTACGTAC"+strings.Repeat("N", 50)+"\n")
}

func (s *S) TestReverseComplement(c *check.C) {
	got, err := run("scaf1\t1\t10\t1\tW\tctg1\t1\t10\t-\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nGTACGTACGT\n")
}

// Reverse complementing the reverse complement restores the original.
func (s *S) TestReverseComplementRoundTrip(c *check.C) {
	rc, err := components.FetchRevComp("ctg1")
	c.Assert(err, check.Equals, nil)
	rc.RevComp()
	fwd, err := components.Fetch("ctg1")
	c.Assert(err, check.Equals, nil)
	c.Check(rc.Seq, check.DeepEquals, fwd.Seq)
}

func (s *S) TestTwoObjects(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf2\t1\t10\t1\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nACGTACGTAC\n>scaf2\nTTTTTGGGGG\n")
}

// Per-object output length equals the object's final end coordinate.
func (s *S) TestOutputLengths(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t11\t60\t2\tN\t50\tscaffold\tyes\tna\n"+
		"scaf1\t61\t70\t3\tW\tctg2\t1\t10\t-\n"+
		"scaf2\t1\t10\t1\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.Equals, nil)
	want := map[string]int{"scaf1": 70, "scaf2": 10}
	for _, block := range strings.Split(strings.TrimSuffix(got, "\n"), "\n>") {
		block = strings.TrimPrefix(block, ">")
		lines := strings.SplitN(block, "\n", 2)
		c.Assert(lines, check.HasLen, 2)
		c.Check(len(lines[1]), check.Equals, want[lines[0]], check.Commentf("object %s", lines[0]))
	}
}

func (s *S) TestNonSequentialParts(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t11\t20\t3\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e, ok := err.(*agp.Error)
	c.Assert(ok, check.Equals, true)
	c.Check(e.Kind, check.Equals, agp.Ordering)
	c.Check(err, check.ErrorMatches, `line 2: non-sequential part_numbers`)
	// The first record's sequence was already written.
	c.Check(got, check.Equals, ">scaf1\nACGTACGTAC")
}

func (s *S) TestPartNumberRestart(c *check.C) {
	_, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t11\t20\t2\tW\tctg2\t1\t10\t+\n"+
		"scaf1\t21\t30\t1\tW\tctg1\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Ordering)
	c.Check(e.Line, check.Equals, 3)
}

func (s *S) TestObjectNotStartingAtOne(c *check.C) {
	_, err := run("scaf1\t5\t14\t1\tW\tctg1\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Ordering)
	c.Check(err, check.ErrorMatches, `line 1: all objects should start with '1'`)
}

func (s *S) TestObjectOutOfOrder(c *check.C) {
	_, err := run(""+
		"scafA\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scafA\t11\t20\t2\tW\tctg2\t1\t10\t+\n"+
		"scafB\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scafA\t1\t10\t1\tW\tctg1\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Ordering)
	c.Check(err, check.ErrorMatches, `line 4: object identifier out of order`)
}

// A hole in an object's intervals is reported when the next object begins.
func (s *S) TestUncoveredAtTransition(c *check.C) {
	_, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t21\t30\t2\tW\tctg2\t1\t10\t+\n"+
		"scaf2\t1\t10\t1\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Coverage)
	c.Check(err, check.ErrorMatches, `line 3: some positions in scaf1 are not accounted for or overlap`)
}

// No header for the following object is written when coverage fails.
func (s *S) TestUncoveredWritesNoNextHeader(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t21\t30\t2\tW\tctg2\t1\t10\t+\n"+
		"scaf2\t1\t10\t1\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	c.Check(strings.Contains(got, ">scaf2"), check.Equals, false)
}

func (s *S) TestOverlapAtFlush(c *check.C) {
	_, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t6\t15\t2\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Coverage)
	c.Check(e.Line, check.Equals, 2)
}

func (s *S) TestUncoveredAtFlush(c *check.C) {
	_, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t21\t30\t2\tW\tctg2\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	e := err.(*agp.Error)
	c.Check(e.Kind, check.Equals, agp.Coverage)
}

func (s *S) TestMissingComponent(c *check.C) {
	_, err := run("scaf1\t1\t10\t1\tW\tnosuch\t1\t10\t+\n", nil)
	c.Assert(err, check.NotNil)
	c.Check(err, check.ErrorMatches, `line 1: no sequence "nosuch"`)
}

func (s *S) TestWrap(c *check.C) {
	got, err := run(""+
		"scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n"+
		"scaf1\t11\t15\t2\tN\t5\tcontig\tno\tna\n"+
		"scaf2\t1\t10\t1\tW\tctg2\t1\t10\t+\n",
		func(b *Builder) { b.Wrap(4) })
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ""+
		">scaf1\n"+
		"ACGT\nACGT\nACNN\nNNN\n"+
		">scaf2\n"+
		"TTTT\nTGGG\nGG\n")
}

// Wrapped output with a sequence length that is a multiple of the width
// does not gain a trailing blank line.
func (s *S) TestWrapExactMultiple(c *check.C) {
	got, err := run("scaf1\t1\t10\t1\tW\tctg1\t1\t10\t+\n",
		func(b *Builder) { b.Wrap(5) })
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nACGTA\nCGTAC\n")
}

func (s *S) TestStrict(c *check.C) {
	got, err := run("scaf1\t1\t4\t1\tW\tctg1\t3\t6\t+\n",
		func(b *Builder) { b.Strict(true) })
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nGTAC\n")
}

func (s *S) TestStrictMinus(c *check.C) {
	got, err := run("scaf1\t1\t4\t1\tW\tctg1\t2\t5\t-\n",
		func(b *Builder) { b.Strict(true) })
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nTACG\n")
}

func (s *S) TestStrictOutOfRange(c *check.C) {
	_, err := run("scaf1\t1\t20\t1\tW\tctg1\t3\t22\t+\n",
		func(b *Builder) { b.Strict(true) })
	c.Assert(err, check.NotNil)
	c.Check(err, check.ErrorMatches, `line 1: range \[2,22\) outside "ctg1"`)
}

// In the default mode the emitted sequence is the whole component,
// regardless of the record's component coordinates.
func (s *S) TestFullSequenceEmission(c *check.C) {
	got, err := run("scaf1\t1\t4\t1\tW\tctg1\t3\t6\t+\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, ">scaf1\nACGTACGTAC\n")
}

func (s *S) TestEmptyInput(c *check.C) {
	got, err := run("# header only\n", nil)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, "\n")
}

func (s *S) TestCovered(c *check.C) {
	for i, t := range []struct {
		ivs []interval
		ok  bool
	}{
		{ivs: nil, ok: true},
		{ivs: []interval{{0, 10}}, ok: true},
		{ivs: []interval{{0, 10}, {10, 60}}, ok: true},
		{ivs: []interval{{10, 60}, {0, 10}}, ok: true},
		{ivs: []interval{{0, 10}, {11, 60}}, ok: false},
		{ivs: []interval{{0, 10}, {5, 15}}, ok: false},
		{ivs: []interval{{0, 10}, {0, 10}}, ok: false},
		{ivs: []interval{{1, 10}}, ok: false},
	} {
		c.Check(covered(t.ivs), check.Equals, t.ok, check.Commentf("test %d: %v", i, t.ivs))
	}
}
