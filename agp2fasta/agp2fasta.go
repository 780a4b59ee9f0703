// Copyright ©2020 the RagTag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// agp2fasta builds the sequences described by an AGP v2.1 file from a
// FASTA file of component sequences, writing the assembled objects as
// FASTA to stdout. Validation is fail fast: the first malformed line
// aborts the run with its line number and reason.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/kdbrumfield/RagTag/agp"
	"github.com/kdbrumfield/RagTag/scaffold"
	"github.com/kdbrumfield/RagTag/seqdb"
)

var (
	strict = flag.Bool("strict", false, "slice components to their declared component coordinates")
	wrap   = flag.Int("wrap", 0, "wrap sequence lines to this width (0 emits one line per object)")
	help   = flag.Bool("help", false, "help prints this message.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: agp2fasta [options] <scaffolds.agp> <components.fasta>")
		fmt.Fprintln(os.Stderr, "The components FASTA must not be compressed.")
		flag.PrintDefaults()
	}
	flag.Parse()
	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}

	db, err := seqdb.Open(flag.Arg(1))
	if err != nil {
		log.Fatalf("agp2fasta: failed to read components: %v", err)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("agp2fasta: failed to open %q: %v", flag.Arg(0), err)
	}
	defer f.Close()

	out := bufio.NewWriter(os.Stdout)
	b := scaffold.NewBuilder(out, db)
	b.Strict(*strict)
	b.Wrap(*wrap)

	r := agp.NewReader(f)
	for {
		rec, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			fail(out, err)
		}
		if err := b.Add(rec); err != nil {
			fail(out, err)
		}
	}
	if err := b.Flush(); err != nil {
		fail(out, err)
	}
	if err := out.Flush(); err != nil {
		log.Fatalf("agp2fasta: failed to write output: %v", err)
	}
}

// fail flushes what has already been written before reporting err; output
// preceding a failure is preserved.
func fail(out *bufio.Writer, err error) {
	out.Flush()
	log.Fatalf("agp2fasta: %v", err)
}
