// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package patser wraps the patser motif scanning tool, formatting weight
// matrix and alphabet artifacts for it and parsing its hit reports.
package patser

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/biogo/external"
	"gonum.org/v1/gonum/mat"

	"github.com/biogo/motif/pwm"
)

// A ConfigError indicates an unusable search configuration.
type ConfigError string

func (e ConfigError) Error() string { return string(e) }

// Patser is the command builder for a patser invocation.
type Patser struct {
	// Usage: patser-v3b [options]
	Cmd string `buildarg:"{{if .}}{{.}}{{else}}patser-v3b{{end}}"` // patser-v3b

	WeightMatrix bool    `buildarg:"{{if .}}-w{{end}}"`                 // -w
	Vertical     bool    `buildarg:"{{if .}}-v{{end}}"`                 // -v
	PrintMatrix  bool    `buildarg:"{{if .}}-p{{end}}"`                 // -p
	SeqList      string  `buildarg:"{{with .}}-f{{split}}{{.}}{{end}}"` // -f <file>
	Matrix       string  `buildarg:"{{with .}}-m{{split}}{{.}}{{end}}"` // -m <file>
	Alphabet     string  `buildarg:"{{with .}}-a{{split}}{{.}}{{end}}"` // -a <file>
	Complement   bool    `buildarg:"{{if .}}-c{{end}}"`                 // -c
	LowerBound   float64 `buildarg:"-l{{split}}{{.}}"`                  // -l <score>
	SkipUnknown  bool    `buildarg:"{{if .}}-d2{{end}}"`                // -d2
}

// BuildCommand builds a patser command line using the receiver's flags.
func (p Patser) BuildCommand() (*exec.Cmd, error) {
	cl, err := external.Build(p)
	if err != nil {
		return nil, err
	}
	return exec.Command(cl[0], cl[1:]...), nil
}

// Scan runs patser with the given artifact files over the sequences named
// by the receiver's SeqList and returns its report. Scan blocks until the
// process exits.
func (p Patser) Scan(alphabetFile, matrixFile string) (io.Reader, error) {
	p.Alphabet = alphabetFile
	p.Matrix = matrixFile
	cmd, err := p.BuildCommand()
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	cmd.Stdout = buf
	err = cmd.Run()
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// A Scanner runs a motif scan given the alphabet and weight matrix artifact
// files, returning the textual report. Patser is the production Scanner;
// tests substitute canned reports.
type Scanner interface {
	Scan(alphabetFile, matrixFile string) (io.Reader, error)
}

// A Hit is a single match: a position within the target sequence and the
// natural log of the match p-value.
type Hit struct {
	Pos  int
	LogP float64
}

// alphabetText declares the complementary base pairing for patser.
const alphabetText = "A:T\nC:G\n\n"

// formatWeights renders a weight matrix as a patser matrix artifact: an
// A C G T header followed by tab-separated rows to 4 decimal places.
func formatWeights(w *mat.Dense) []byte {
	var buf bytes.Buffer
	buf.WriteString("A\tC\tG\tT\n")
	rows, _ := w.Dims()
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "%.4f\t%.4f\t%.4f\t%.4f\n", w.At(i, 0), w.At(i, 1), w.At(i, 2), w.At(i, 3))
	}
	return buf.Bytes()
}

var hitLine = regexp.MustCompile(`([\w.-]+)\s+position=\s+(\d+).+ln\(p-value\)=\s+(\S+)`)

// parseHits reads a patser report, keeping hits with ln(p-value) strictly
// below maxLogP. Hits are appended per sequence name in report order and
// are not deduplicated. Lines that do not describe a hit are skipped.
func parseHits(r io.Reader, maxLogP float64) (map[string][]Hit, error) {
	hits := make(map[string][]Hit)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		m := hitLine.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		logP, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		if logP >= maxLogP {
			continue
		}
		pos, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		hits[m[1]] = append(hits[m[1]], Hit{Pos: pos, LogP: logP})
	}
	return hits, sc.Err()
}

// A Search describes one patser scan of a frequency matrix model over a
// set of sequence files.
type Search struct {
	// GC is the fractional GC content of the background model.
	GC float64

	// SeqList names a file listing the sequence files to scan.
	SeqList string

	// Cutoff is the lower score threshold passed to the scanner.
	Cutoff float64

	// MinPValue retains only hits whose p-value is strictly below it.
	MinPValue float64

	// Dir, when non-empty, receives the artifact files and is left in
	// place, making simultaneous searches safe when each uses its own
	// directory. When empty a fresh temporary directory is used and
	// removed before Run returns.
	Dir string

	// Scanner runs the scan. A nil Scanner runs patser-v3b.
	Scanner Scanner
}

// Run derives the weight matrix of m against the search's background,
// writes the alphabet and matrix artifacts, runs the scanner and returns
// the retained hits keyed by sequence name. Run blocks until the scanner
// returns; no timeout is applied.
func (s Search) Run(m pwm.FreqMatrix) (map[string][]Hit, error) {
	_, err := pwm.NewBackground(s.GC)
	if err != nil {
		return nil, err
	}
	if s.Cutoff < 0 {
		return nil, pwm.RangeError("patser: cutoff must not be negative")
	}
	if s.MinPValue < 0 || s.MinPValue > 1 {
		return nil, pwm.RangeError("patser: min p-value must be between 0 and 1")
	}
	if _, err := os.Stat(s.SeqList); err != nil {
		return nil, ConfigError(fmt.Sprintf("patser: sequence list %q does not exist", s.SeqList))
	}

	w, err := m.Weights(s.GC)
	if err != nil {
		return nil, err
	}

	dir := s.Dir
	if dir == "" {
		dir, err = os.MkdirTemp("", "patser")
		if err != nil {
			return nil, err
		}
		defer os.RemoveAll(dir)
	}
	alphabetFile := filepath.Join(dir, "alphabet")
	err = os.WriteFile(alphabetFile, []byte(alphabetText), 0644)
	if err != nil {
		return nil, err
	}
	matrixFile := filepath.Join(dir, "matrix")
	err = os.WriteFile(matrixFile, formatWeights(w), 0644)
	if err != nil {
		return nil, err
	}

	sc := s.Scanner
	if sc == nil {
		sc = Patser{
			WeightMatrix: true,
			Vertical:     true,
			PrintMatrix:  true,
			SeqList:      s.SeqList,
			Complement:   true,
			LowerBound:   s.Cutoff,
			SkipUnknown:  true,
		}
	}
	r, err := sc.Scan(alphabetFile, matrixFile)
	if err != nil {
		return nil, fmt.Errorf("patser: scan failed: %v", err)
	}
	return parseHits(r, math.Log(s.MinPValue))
}
