// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pwm

import (
	"fmt"
	"math"
	"testing"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"

	check "gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

var counts = CountMatrix{
	{1, 5, 10, 12},
	{12, 5, 1, 10},
	{6, 0, 11, 11},
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func (s *S) TestFreqsFromCounts(c *check.C) {
	f, err := counts.Freqs(0)
	c.Assert(err, check.Equals, nil)
	c.Assert(len(f), check.Equals, len(counts))
	want := [][]string{
		{"0.0357", "0.1786", "0.3571", "0.4286"},
		{"0.4286", "0.1786", "0.0357", "0.3571"},
		{"0.2143", "0.0000", "0.3929", "0.3929"},
	}
	for i, row := range f {
		var sum float64
		for j, v := range row {
			c.Check(fmt.Sprintf("%.4f", v), check.Equals, want[i][j], check.Commentf("position %d column %d", i+1, j))
			sum += v
		}
		c.Check(near(sum, 1, 0.01), check.Equals, true, check.Commentf("position %d sums to %v", i+1, sum))
	}
}

func (s *S) TestFreqsPseudocount(c *check.C) {
	f, err := counts.Freqs(1)
	c.Assert(err, check.Equals, nil)
	c.Check(f[0][0], check.Equals, 2.0/32)
	c.Check(f[2][1], check.Equals, 1.0/32)
	for i, row := range f {
		var sum float64
		for _, v := range row {
			sum += v
		}
		c.Check(near(sum, 1, 1e-12), check.Equals, true, check.Commentf("position %d", i+1))
	}

	_, err = counts.Freqs(-0.5)
	c.Check(err, check.ErrorMatches, "pwm: pseudocount must not be negative")
}

func (s *S) TestParseRoundTrip(c *check.C) {
	got, err := ParseCounts(counts.String(), Horizontal)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.DeepEquals, counts)

	f, err := counts.Freqs(0.5)
	c.Assert(err, check.Equals, nil)
	gotf, err := ParseFreqs(f.String(), Horizontal)
	c.Assert(err, check.Equals, nil)
	c.Check(gotf, check.DeepEquals, f)
}

func (s *S) TestOrientation(c *check.C) {
	vert := "1 12 6\n5 5 0\n10 1 11\n12 10 11"
	got, err := ParseCounts(vert, Vertical)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.DeepEquals, counts)

	fvert := "0.25\t0.5 0.1 0.3 0.9\n0.25\t0.5 0.2 0.3 0\n0.25 0\t0.6 0.3 0.05\n0.25\t0\t0.1 0.1 0.05"
	f, err := ParseFreqs(fvert, Vertical)
	c.Assert(err, check.Equals, nil)
	c.Check(f, check.DeepEquals, FreqMatrix{
		{0.25, 0.25, 0.25, 0.25},
		{0.5, 0.5, 0, 0},
		{0.1, 0.2, 0.6, 0.1},
		{0.3, 0.3, 0.3, 0.1},
		{0.9, 0, 0.05, 0.05},
	})

	// Transposing the text by hand and parsing horizontally is equivalent.
	horiz, err := ParseFreqs(f.String(), Horizontal)
	c.Assert(err, check.Equals, nil)
	c.Check(horiz, check.DeepEquals, f)
}

func (s *S) TestParseErrors(c *check.C) {
	_, err := ParseCounts("1 2 3 4\n1 2 3", Horizontal)
	c.Check(err, check.ErrorMatches, "pwm: position 2 of matrix: row is not 4 columns")

	_, err = ParseCounts("1 2 x 4", Horizontal)
	c.Check(err, check.ErrorMatches, `pwm: position 1 of matrix: bad count "x"`)

	_, err = ParseFreqs("0.25 0.25 0.25 0.25\n0.5 0.5 0.5 0.5", Horizontal)
	c.Check(err, check.ErrorMatches, "pwm: position 2 of matrix: frequencies do not sum to 1")

	_, err = ParseFreqs("0.25 0.25 0.25", Horizontal)
	c.Check(err, check.ErrorMatches, "pwm: position 1 of matrix: row is not 4 columns")
}

func (s *S) TestSlice(c *check.C) {
	c.Check(counts[0:2], check.DeepEquals, CountMatrix{{1, 5, 10, 12}, {12, 5, 1, 10}})
	f, err := counts.Freqs(0)
	c.Assert(err, check.Equals, nil)
	c.Check(len(f[1:]), check.Equals, 2)
}

func (s *S) TestFromSites(c *check.C) {
	m, err := FromSites("ATCG", "ATCC", "atcg")
	c.Assert(err, check.Equals, nil)
	c.Check(m, check.DeepEquals, CountMatrix{
		{3, 0, 0, 0},
		{0, 0, 0, 3},
		{0, 3, 0, 0},
		{0, 1, 2, 0},
	})

	_, err = FromSites("ANCG")
	c.Check(err, check.ErrorMatches, `pwm: unrecognized nucleotide 'N'`)
	c.Check(err, check.FitsTypeOf, LookupError(0))
}

func (s *S) TestBackground(c *check.C) {
	bg, err := NewBackground(0.4)
	c.Assert(err, check.Equals, nil)
	c.Check(bg, check.Equals, Background{0.3, 0.2, 0.2, 0.3})

	for _, gc := range []float64{0, 1, -0.1, 1.5} {
		_, err = NewBackground(gc)
		c.Check(err, check.ErrorMatches, "pwm: gc content must be between 0 and 1", check.Commentf("gc=%v", gc))
		c.Check(err, check.FitsTypeOf, RangeError(""))
	}
}

func (s *S) TestWeights(c *check.C) {
	f, err := counts.Freqs(0)
	c.Assert(err, check.Equals, nil)
	w, err := f.Weights(0.4)
	c.Assert(err, check.Equals, nil)
	rows, cols := w.Dims()
	c.Assert(rows, check.Equals, len(f))
	c.Assert(cols, check.Equals, 4)

	bg, err := NewBackground(0.4)
	c.Assert(err, check.Equals, nil)
	for i, row := range f {
		for j, v := range row {
			if v == 0 {
				// Zero frequencies saturate to 0, not -Inf.
				c.Check(w.At(i, j), check.Equals, 0.0)
				continue
			}
			back := math.Exp2(w.At(i, j)) * bg[j]
			c.Check(near(back, v, 1e-12), check.Equals, true, check.Commentf("position %d column %d: %v != %v", i+1, j, back, v))
		}
	}

	for _, gc := range []float64{0, 1} {
		_, err = f.Weights(gc)
		c.Check(err, check.NotNil, check.Commentf("gc=%v", gc))
	}
}

var flat = FreqMatrix{
	{0.3, 0.2, 0.2, 0.3},
	{0.3, 0.2, 0.2, 0.3},
	{0.3, 0.2, 0.2, 0.3},
}

func (s *S) TestInformationContent(c *check.C) {
	// A model identical to the background carries no information.
	kl, err := flat.InformationContent(0.4)
	c.Assert(err, check.Equals, nil)
	c.Check(near(kl, 0, 1e-12), check.Equals, true)

	skew := FreqMatrix{{0.3, 0.2, 0.2, 0.3}, {0.7, 0.1, 0.1, 0.1}}
	kl, err = skew.InformationContent(0.4)
	c.Assert(err, check.Equals, nil)
	c.Check(kl > 0, check.Equals, true)

	pos, err := skew.PositionInformation(0.4)
	c.Assert(err, check.Equals, nil)
	c.Assert(len(pos), check.Equals, 2)
	c.Check(near(pos[0], 0, 1e-12), check.Equals, true)
	var sum float64
	for _, v := range pos {
		sum += v
	}
	c.Check(near(sum, kl, 1e-12), check.Equals, true)

	_, err = skew.InformationContent(1)
	c.Check(err, check.ErrorMatches, "pwm: gc content must be between 0 and 1")
}

func (s *S) TestScore(c *check.C) {
	// A model equal to the background at every position scores any
	// valid-length sequence at exactly the concentration.
	w, err := flat.Score(Raw("ACG"), 0.4, 1)
	c.Assert(err, check.Equals, nil)
	c.Check(w, check.Equals, 1.0)

	w, err = flat.Score(Raw("TGCA"), 0.4, 2.5)
	c.Assert(err, check.Equals, nil)
	c.Check(w, check.Equals, 2.5)

	f, err := counts.Freqs(1)
	c.Assert(err, check.Equals, nil)
	bg, err := NewBackground(0.5)
	c.Assert(err, check.Equals, nil)
	want := f[0][2] / bg[2] * f[1][0] / bg[0] * f[2][3] / bg[3]
	w, err = f.Score(Raw("GAT"), 0.5, 1)
	c.Assert(err, check.Equals, nil)
	c.Check(near(w, want, 1e-12), check.Equals, true)

	// Case is normalized on use.
	lw, err := f.Score(Raw("gat"), 0.5, 1)
	c.Assert(err, check.Equals, nil)
	c.Check(lw, check.Equals, w)

	_, err = flat.Score(Raw("ANC"), 0.4, 1)
	c.Check(err, check.ErrorMatches, `pwm: unrecognized nucleotide 'N'`)
	_, err = flat.Score(Raw("ACG"), 0.4, -1)
	c.Check(err, check.ErrorMatches, "pwm: concentration must not be negative")
	_, err = flat.Score(Raw("ACG"), 0, 1)
	c.Check(err, check.ErrorMatches, "pwm: gc content must be between 0 and 1")
}

func (s *S) TestScoreRecord(c *check.C) {
	f, err := counts.Freqs(1)
	c.Assert(err, check.Equals, nil)
	sq := linear.NewSeq("test", alphabet.BytesToLetters([]byte("GATC")), alphabet.DNA)
	got, err := f.Score(Record(sq), 0.5, 1)
	c.Assert(err, check.Equals, nil)
	want, err := f.Score(Raw("GATC"), 0.5, 1)
	c.Assert(err, check.Equals, nil)
	c.Check(got, check.Equals, want)
}
