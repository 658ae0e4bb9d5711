// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// patser2csv converts a directory of patser result files into one CSV per
// FASTA sequence, for use with inSite.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

var (
	// motifName extracts the binding site name from a result file name.
	motifName = regexp.MustCompile(`(\w+)_`)
	// matrixWidth recognizes the matrix width line of a patser report.
	matrixWidth = regexp.MustCompile(`^width of the matrix.+?(\d+)`)
	// hitLine recognizes a scored hit line of a patser report.
	hitLine = regexp.MustCompile(`(\w+?)\.txt\s+position=\s+(\d+).+score=\s+([\d.]+)`)
)

func main() {
	fastaName := flag.String("fasta", "", "Filename for the scanned FASTA sequences.")
	resultsDir := flag.String("results", "", "Directory holding patser result files.")
	outDir := flag.String("out", "", "Directory to receive the CSV files.")
	help := flag.Bool("help", false, "Print this usage message.")

	flag.Parse()

	if *help {
		flag.Usage()
		os.Exit(0)
	}
	if *fastaName == "" || *resultsDir == "" || *outDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*fastaName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	in := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNA))

	// Each sequence starts with the fixed 4-line header; accepted hits
	// are appended below it.
	lines := make(map[string][]string)
	sc := seqio.NewScanner(in)
	for sc.Next() {
		s := sc.Seq()
		lines[s.Name()] = []string{
			fmt.Sprintf("#NAME: %s", s.Name()),
			"#START: 0",
			fmt.Sprintf("#LENGTH: %d", s.Len()),
			"##class,start,length,motif_type, strength",
		}
	}
	err = sc.Error()
	f.Close()
	if err != nil {
		log.Fatalf("failed during read: %v", err)
	}

	results, err := os.ReadDir(*resultsDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
		os.Exit(1)
	}
	for _, e := range results {
		if e.IsDir() {
			continue
		}
		name := motifName.FindStringSubmatch(e.Name())
		if name == nil {
			log.Printf("WARNING: skipping %q: no binding site name", e.Name())
			continue
		}
		err = addHits(filepath.Join(*resultsDir, e.Name()), name[1], lines)
		if err != nil {
			log.Fatalf("failed reading results %q: %v", e.Name(), err)
		}
	}

	for name, l := range lines {
		err = os.WriteFile(filepath.Join(*outDir, name+".csv"), []byte(strings.Join(l, "\n")), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v.\n", err)
			os.Exit(1)
		}
	}
}

// addHits appends a binding_site line to the owning sequence for each hit
// in the named result file. Hits for unknown sequences are dropped.
func addHits(path, motif string, lines map[string][]string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	width := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if m := matrixWidth.FindStringSubmatch(line); m != nil {
			width, err = strconv.Atoi(m[1])
			if err != nil {
				return err
			}
			continue
		}
		m := hitLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		l, ok := lines[m[1]]
		if !ok {
			continue
		}
		start, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		score, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		lines[m[1]] = append(l, fmt.Sprintf("binding_site,%d,%d,%s,%.2f", start, width, motif, score))
	}
	return sc.Err()
}
