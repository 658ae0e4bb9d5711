// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// motifstat reports the log-odds weight matrix and information content of a
// binding site model, and the statistical weight of each input sequence
// under the model.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"github.com/biogo/motif/pwm"
)

func main() {
	matName := flag.String("mat", "", "Filename for matrix input.")
	counts := flag.Bool("counts", false, "Matrix input holds counts rather than frequencies.")
	vert := flag.Bool("vert", false, "Matrix input is vertical (rows are nucleotides).")
	pseudo := flag.Float64("pseudo", 0, "Pseudocount applied when converting counts to frequencies.")
	gc := flag.Float64("gc", 0.5, "Fractional GC content of the background.")
	conc := flag.Float64("conc", 1, "Concentration scaling for statistical weights.")
	inName := flag.String("in", "", "Filename for sequence input. Defaults to stdin.")
	help := flag.Bool("help", false, "Print this usage message.")

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *matName == "" {
		flag.Usage()
		os.Exit(1)
	}

	text, err := os.ReadFile(*matName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	orient := pwm.Horizontal
	if *vert {
		orient = pwm.Vertical
	}

	var fm pwm.FreqMatrix
	if *counts {
		cm, err := pwm.ParseCounts(string(text), orient)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
		fm, err = cm.Freqs(*pseudo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	} else {
		fm, err = pwm.ParseFreqs(string(text), orient)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	}

	w, err := fm.Weights(*gc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	fmt.Println("weight matrix (A C G T):")
	rows, _ := w.Dims()
	for i := 0; i < rows; i++ {
		fmt.Printf("%.4f\t%.4f\t%.4f\t%.4f\n", w.At(i, 0), w.At(i, 1), w.At(i, 2), w.At(i, 3))
	}
	kl, err := fm.InformationContent(*gc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	fmt.Printf("information content: %.4f bits\n", kl)

	var r io.ReadCloser
	if *inName == "" {
		fmt.Fprintln(os.Stderr, "Reading sequences from stdin.")
		r = os.Stdin
	} else if r, err = os.Open(*inName); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	} else {
		defer r.Close()
	}
	in := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))

	sc := seqio.NewScanner(in)
	for sc.Next() {
		s := sc.Seq()
		if s.Len() < len(fm) {
			fmt.Fprintf(os.Stderr, "Skipping %s: shorter than matrix.\n", s.Name())
			continue
		}
		weight, err := fm.Score(pwm.Record(s), *gc, *conc)
		if err != nil {
			log.Fatalf("failed to score %s: %v", s.Name(), err)
		}
		fmt.Printf("%s\t%v\n", s.Name(), weight)
	}
	err = sc.Error()
	if err != nil {
		log.Fatalf("failed during read: %v", err)
	}
}
