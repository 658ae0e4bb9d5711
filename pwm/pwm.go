// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pwm provides count and frequency matrix models of transcription
// factor binding sites, derivation of log-odds weight matrices against a
// background nucleotide composition, information content measurement and
// statistical-weight scoring of candidate sequences.
package pwm

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Matrix rows correspond to binding site positions. Matrix columns are in
// the order A, C, G, T.

// A CountMatrix holds raw per-position nucleotide observation counts.
// Sub-ranges of positions are taken with ordinary slice expressions.
type CountMatrix [][]int

// A FreqMatrix holds a per-position probability distribution over the four
// nucleotides. Each row sums to 1 within a tolerance of ±0.01.
type FreqMatrix [][]float64

// An Orientation describes the layout of a matrix text: Horizontal rows are
// binding site positions, Vertical rows are nucleotides with one column per
// position.
type Orientation byte

const (
	Horizontal Orientation = 'h'
	Vertical   Orientation = 'v'
)

// A FormatError describes malformed matrix text. Pos is the 1-based matrix
// position at which the problem was found.
type FormatError struct {
	Pos    int
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("pwm: position %d of matrix: %s", e.Pos, e.Reason)
}

// A RangeError indicates a parameter outside its valid range. The message
// includes the package that rejected the value.
type RangeError string

func (e RangeError) Error() string { return string(e) }

// A LookupError indicates a symbol outside the DNA alphabet.
type LookupError byte

func (e LookupError) Error() string {
	return fmt.Sprintf("pwm: unrecognized nucleotide %q", byte(e))
}

// index returns the A=0, C=1, G=2, T=3 column of the given symbol,
// accepting either case.
func index(b byte) (int, error) {
	i := alphabet.DNA.IndexOf(alphabet.Letter(b))
	if i < 0 {
		return 0, LookupError(b)
	}
	return i, nil
}

// fields splits text into lines of whitespace-delimited tokens.
func fields(text string) [][]string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	rows := make([][]string, len(lines))
	for i, l := range lines {
		rows[i] = strings.Fields(l)
	}
	return rows
}

// transpose exchanges the rows and columns of rows, truncating all columns
// to the length of the shortest row.
func transpose(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	n := len(rows[0])
	for _, r := range rows {
		if len(r) < n {
			n = len(r)
		}
	}
	t := make([][]string, n)
	for i := range t {
		t[i] = make([]string, len(rows))
		for j, r := range rows {
			t[i][j] = r[i]
		}
	}
	return t
}

// ParseCounts parses whitespace-delimited integer rows into a CountMatrix.
// Vertical input is transposed before validation. A row that does not hold
// exactly four columns is a FormatError.
func ParseCounts(text string, o Orientation) (CountMatrix, error) {
	rows := fields(text)
	if o == Vertical {
		rows = transpose(rows)
	}
	m := make(CountMatrix, len(rows))
	for i, r := range rows {
		if len(r) != 4 {
			return nil, &FormatError{Pos: i + 1, Reason: "row is not 4 columns"}
		}
		m[i] = make([]int, 4)
		for j, f := range r {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, &FormatError{Pos: i + 1, Reason: fmt.Sprintf("bad count %q", f)}
			}
			m[i][j] = v
		}
	}
	return m, nil
}

// ParseFreqs parses whitespace-delimited float rows into a FreqMatrix.
// Vertical input is transposed before validation. A row that does not hold
// exactly four columns, or whose frequencies do not sum to 1 within ±0.01,
// is a FormatError.
func ParseFreqs(text string, o Orientation) (FreqMatrix, error) {
	rows := fields(text)
	if o == Vertical {
		rows = transpose(rows)
	}
	m := make(FreqMatrix, len(rows))
	for i, r := range rows {
		if len(r) != 4 {
			return nil, &FormatError{Pos: i + 1, Reason: "row is not 4 columns"}
		}
		m[i] = make([]float64, 4)
		for j, f := range r {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &FormatError{Pos: i + 1, Reason: fmt.Sprintf("bad frequency %q", f)}
			}
			m[i][j] = v
		}
		if s := floats.Sum(m[i]); s < 0.99 || s > 1.01 {
			return nil, &FormatError{Pos: i + 1, Reason: "frequencies do not sum to 1"}
		}
	}
	return m, nil
}

// FromSites tallies a set of equal-length aligned binding site strings into
// a CountMatrix. Symbols outside the DNA alphabet are a LookupError. It is
// the caller's responsibility to provide sites of equal length; a site
// longer than the first will cause a panic.
func FromSites(sites ...string) (CountMatrix, error) {
	if len(sites) == 0 {
		return nil, nil
	}
	m := make(CountMatrix, len(sites[0]))
	for i := range m {
		m[i] = make([]int, 4)
	}
	for _, s := range sites {
		for i := 0; i < len(s); i++ {
			j, err := index(s[i])
			if err != nil {
				return nil, err
			}
			m[i][j]++
		}
	}
	return m, nil
}

func (m CountMatrix) String() string {
	var b strings.Builder
	for i, row := range m {
		if i != 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j != 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.Itoa(v))
		}
	}
	return b.String()
}

// Freqs converts the count matrix to a frequency matrix, smoothing each
// count with the given pseudocount: (count+p)/(rowSum+4p). A pseudocount of
// zero reproduces the exact empirical frequencies, including exact zeros.
func (m CountMatrix) Freqs(pseudocount float64) (FreqMatrix, error) {
	if pseudocount < 0 {
		return nil, RangeError("pwm: pseudocount must not be negative")
	}
	f := make(FreqMatrix, len(m))
	for i, row := range m {
		var sum int
		for _, c := range row {
			sum += c
		}
		tot := float64(sum) + 4*pseudocount
		f[i] = make([]float64, 4)
		for j, c := range row {
			f[i][j] = (float64(c) + pseudocount) / tot
		}
	}
	return f, nil
}

func (m FreqMatrix) String() string {
	var b strings.Builder
	for i, row := range m {
		if i != 0 {
			b.WriteByte('\n')
		}
		for j, v := range row {
			if j != 0 {
				b.WriteByte('\t')
			}
			b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return b.String()
}

// A Background is a genomic nucleotide distribution in A, C, G, T order.
type Background [4]float64

// NewBackground returns the background distribution implied by the given
// fractional GC content. GC content at or beyond 0 and 1 is a RangeError.
func NewBackground(gc float64) (Background, error) {
	if gc <= 0 || gc >= 1 {
		return Background{}, RangeError("pwm: gc content must be between 0 and 1")
	}
	return Background{(1 - gc) / 2, gc / 2, gc / 2, (1 - gc) / 2}, nil
}

// Weights returns the log2 odds-ratio weight matrix of the model against
// the background implied by gc. A zero frequency saturates to a weight of
// 0 rather than -Inf, so a 0 in the result must not be read as impossible.
// The result is a plain numeric matrix, not a probability distribution.
func (m FreqMatrix) Weights(gc float64) (*mat.Dense, error) {
	bg, err := NewBackground(gc)
	if err != nil {
		return nil, err
	}
	w := mat.NewDense(len(m), 4, nil)
	for i, row := range m {
		for j, f := range row {
			if f != 0 {
				w.Set(i, j, math.Log2(f/bg[j]))
			}
		}
	}
	return w, nil
}

// PositionInformation returns the Kullback-Leibler divergence of each
// position of the model from the background implied by gc, in bits. Zero
// frequencies contribute nothing, matching the weight matrix saturation.
func (m FreqMatrix) PositionInformation(gc float64) ([]float64, error) {
	bg, err := NewBackground(gc)
	if err != nil {
		return nil, err
	}
	kl := make([]float64, len(m))
	for i, row := range m {
		for j, f := range row {
			if f != 0 {
				kl[i] += f * math.Log2(f/bg[j])
			}
		}
	}
	return kl, nil
}

// InformationContent returns the Kullback-Leibler divergence of the model
// from the background implied by gc, summed over all positions, in bits.
func (m FreqMatrix) InformationContent(gc float64) (float64, error) {
	kl, err := m.PositionInformation(gc)
	if err != nil {
		return 0, err
	}
	return floats.Sum(kl), nil
}

// A Sequence provides nucleotide text for scoring.
type Sequence interface {
	SequenceText() string
}

// Raw is a bare nucleotide string.
type Raw string

func (r Raw) SequenceText() string { return string(r) }

// Record adapts a bíogo sequence for scoring. The identifier and
// description of the record play no part in the score.
func Record(s seq.Sequence) Sequence { return record{s} }

type record struct{ seq.Sequence }

func (r record) SequenceText() string {
	b := make([]byte, 0, r.Len())
	for i := r.Start(); i < r.End(); i++ {
		b = append(b, byte(r.At(i).L))
	}
	return string(b)
}

// Score returns the statistical weight of s under the model: the likelihood
// ratio of the first len(m) symbols of s against the background implied by
// gc, scaled by concentration. Symbols outside the DNA alphabet are a
// LookupError; a negative concentration is a RangeError. A sequence shorter
// than the matrix will cause a panic.
func (m FreqMatrix) Score(s Sequence, gc, concentration float64) (float64, error) {
	bg, err := NewBackground(gc)
	if err != nil {
		return 0, err
	}
	if concentration < 0 {
		return 0, RangeError("pwm: concentration must not be negative")
	}
	text := s.SequenceText()
	w := concentration
	for i, row := range m {
		j, err := index(text[i])
		if err != nil {
			return 0, err
		}
		w *= row[j] / bg[j]
	}
	return w, nil
}
