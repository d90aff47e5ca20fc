// SPDX-License-Identifier: MIT

// Package feature maps rules to the structural feature vectors scored by
// the log-linear models.
//
// Each parent/child position pair contributes three values:
//
//	f1  dependency path length between the two words
//	f2  |i − j|, the distance in the token sequence
//	f3  sqrt(f1 · f2)
//
// When either position is implied both f1 and f2 take the neutral value
// len(words)/2. A pair with no dependency path uses len(words) for f1.
//
// Unary rules yield the parent/child triple. Binary rules yield
// parent/A, parent/B and A/B in that order.
package feature

import (
	"math"

	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

const (
	// PairDim is the width of one position-pair block.
	PairDim = 3
	// UnaryDim is the width of Unary vectors.
	UnaryDim = PairDim
	// BinaryDim is the width of Binary vectors.
	BinaryDim = 3 * PairDim
)

// Func maps a rule to a fixed-length vector.
type Func func(rule.Rule) []float64

// Unary returns the parent/child block of a unary rule.
func Unary(r rule.Rule) []float64 {
	out := make([]float64, 0, UnaryDim)
	s := sentenceOf(r)
	children := r.Children()
	if len(children) == 0 {
		return append(out, 0, 0, 0)
	}
	return appendPair(out, s, r.Parent().Pos, children[0].Pos)
}

// Binary returns the parent/A, parent/B and A/B blocks of a binary rule.
func Binary(r rule.Rule) []float64 {
	out := make([]float64, 0, BinaryDim)
	s := sentenceOf(r)
	children := r.Children()
	if len(children) < 2 {
		return append(out, make([]float64, BinaryDim)...)
	}
	p, a, b := r.Parent().Pos, children[0].Pos, children[1].Pos
	out = appendPair(out, s, p, a)
	out = appendPair(out, s, p, b)
	return appendPair(out, s, a, b)
}

func sentenceOf(r rule.Rule) *syntax.Sentence {
	if ctx := r.Context(); ctx != nil {
		return ctx.Sentence
	}
	return nil
}

// Pair returns the (f1, f2, f3) block for positions i and j.
func Pair(s *syntax.Sentence, i, j rule.Position) [PairDim]float64 {
	n := 0
	if s != nil {
		n = s.Len()
	}
	var f1, f2 float64
	if i.IsImplied() || j.IsImplied() || s == nil {
		f1 = float64(n) / 2
		f2 = f1
	} else {
		d, ok := s.Distance(int(i), int(j))
		if !ok {
			d = n
		}
		f1 = float64(d)
		f2 = math.Abs(float64(i - j))
	}
	return [PairDim]float64{f1, f2, math.Sqrt(f1 * f2)}
}

func appendPair(out []float64, s *syntax.Sentence, i, j rule.Position) []float64 {
	p := Pair(s, i, j)
	return append(out, p[:]...)
}
