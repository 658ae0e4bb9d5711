// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ident provides percent-identity measures over aligned sequences.
package ident

import (
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq"
)

const gap = alphabet.Letter('-')

func at(s seq.Sequence, i int) alphabet.Letter { return s.At(s.Start() + i).L }

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Pairwise returns the percent identity of each unordered pair of the given
// sequences over their common prefix. Pairs are enumerated with the first
// index ascending and then the second. A position counts as identical when
// the residues match or either residue is the gap letter '-'.
func Pairwise(seqs ...seq.Sequence) []float64 {
	var ids []float64
	for i := 0; i < len(seqs); i++ {
		for j := i + 1; j < len(seqs); j++ {
			a, b := seqs[i], seqs[j]
			n := min(a.Len(), b.Len())
			var id int
			for k := 0; k < n; k++ {
				la, lb := at(a, k), at(b, k)
				if la == lb || la == gap || lb == gap {
					id++
				}
			}
			ids = append(ids, float64(id)/float64(n))
		}
	}
	return ids
}

// Global returns the fraction of the first length positions that are
// conserved across all the given sequences. If length is not positive the
// first sequence's length is used. A position is conserved when the first
// sequence there matches, or gaps against, each of the others in turn; a
// gap in the first sequence conserves the position without comparing the
// remaining sequences to each other. A position beyond the end of any
// sequence is not conserved.
func Global(length int, seqs ...seq.Sequence) float64 {
	first := seqs[0]
	if length <= 0 {
		length = first.Len()
	}
	var id int
	for i := 0; i < length; i++ {
		conserved := true
		for _, s := range seqs[1:] {
			if min(first.Len(), s.Len()) < i+1 {
				conserved = false
				break
			}
			la, lb := at(first, i), at(s, i)
			if la == gap || lb == gap {
				continue
			}
			if la != lb {
				conserved = false
				break
			}
		}
		if conserved {
			id++
		}
	}
	return float64(id) / float64(length)
}

// Same returns whether a and b hold the same sequence content. Identifier
// and description are deliberately ignored; use a structural comparison
// when metadata matters.
func Same(a, b seq.Sequence) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i := 0; i < a.Len(); i++ {
		if at(a, i) != at(b, i) {
			return false
		}
	}
	return true
}
