// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// agpcheck validates an AGP v2.1 file without producing sequence output,
// applying the same per-line grammar and cross-line ordering and coverage
// rules as agp2fasta. When a components FASTA is supplied each referenced
// component is required to exist and to be long enough for its declared
// coordinates. A summary of the file is printed on success.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	"github.com/kdbrumfield/RagTag/agp"
	"github.com/kdbrumfield/RagTag/scaffold"
	"github.com/kdbrumfield/RagTag/seqdb"
)

var (
	compName = flag.String("components", "", "FASTA file of component sequences to cross-check. Defaults to none.")
	help     = flag.Bool("help", false, "help prints this message.")
)

// nullFetcher satisfies scaffold.Fetcher without any sequence data, so the
// builder's ordering and coverage checks can run on the AGP alone.
type nullFetcher struct{}

func (nullFetcher) Fetch(id string) (*linear.Seq, error) {
	return linear.NewSeq(id, nil, alphabet.DNA), nil
}

func (nullFetcher) FetchRevComp(id string) (*linear.Seq, error) {
	return linear.NewSeq(id, nil, alphabet.DNA), nil
}

func (nullFetcher) FetchRange(id string, start, end int) (*linear.Seq, error) {
	return linear.NewSeq(id, nil, alphabet.DNA), nil
}

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: agpcheck [options] <scaffolds.agp>")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	var (
		db    *seqdb.DB
		fetch scaffold.Fetcher = nullFetcher{}
		err   error
	)
	if *compName != "" {
		db, err = seqdb.Open(*compName)
		if err != nil {
			log.Fatalf("agpcheck: failed to read components: %v", err)
		}
		fetch = db
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("agpcheck: failed to open %q: %v", flag.Arg(0), err)
	}
	defer f.Close()

	var (
		objects, records  int
		components, gaps  int
		gapBases          int
		distinct          = make(map[string]bool)
		b                 = scaffold.NewBuilder(io.Discard, fetch)
		r                 = agp.NewReader(f)
		cur               string
	)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("agpcheck: %v", err)
		}
		records++
		if rec.Object != cur {
			objects++
			cur = rec.Object
		}
		if rec.IsGap() {
			gaps++
			gapBases += rec.Gap.Length
		} else {
			components++
			distinct[rec.Comp.ID] = true
			if db != nil {
				s, err := db.Fetch(rec.Comp.ID)
				if err != nil {
					log.Fatalf("agpcheck: line %d: %v", rec.Line, err)
				}
				if rec.Comp.End > s.Len() {
					log.Fatalf("agpcheck: line %d: component coordinates beyond end of %s (length %d)",
						rec.Line, rec.Comp.ID, s.Len())
				}
			}
		}
		if err := b.Add(rec); err != nil {
			log.Fatalf("agpcheck: %v", err)
		}
	}
	if err := b.Flush(); err != nil {
		log.Fatalf("agpcheck: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 1, ' ', 0)
	fmt.Fprintf(w, "objects\t%d\n", objects)
	fmt.Fprintf(w, "records\t%d\n", records)
	fmt.Fprintf(w, "component records\t%d\n", components)
	fmt.Fprintf(w, "distinct components\t%d\n", len(distinct))
	fmt.Fprintf(w, "gap records\t%d\n", gaps)
	fmt.Fprintf(w, "gap bases\t%d\n", gapBases)
	w.Flush()
	fmt.Fprintln(os.Stderr, "ok")
}
