// SPDX-License-Identifier: MIT

package decoder

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/ashish33/geosolver2/formula"
)

// Entry is one formula with its merged log-probability.
type Entry struct {
	Formula *formula.Node
	LogProb float64
}

// Prob returns exp(LogProb).
func (e Entry) Prob() float64 { return math.Exp(e.LogProb) }

// accum collects formulas, merging duplicates by log-sum-exp.
type accum struct {
	entries []Entry
	index   map[string]int
}

func newAccum() *accum { return &accum{index: make(map[string]int)} }

func (a *accum) add(n *formula.Node, lp float64) {
	if math.IsInf(lp, -1) {
		return
	}
	if i, ok := a.index[n.Key()]; ok {
		a.entries[i].LogProb = floats.LogSumExp([]float64{a.entries[i].LogProb, lp})
		return
	}
	a.index[n.Key()] = len(a.entries)
	a.entries = append(a.entries, Entry{Formula: n, LogProb: lp})
}

// Distribution maps each fully grounded formula to its log-probability.
// Entries are ordered by decreasing probability, ties by formula key.
type Distribution struct {
	entries []Entry
	index   map[string]int
}

func newDistribution(a *accum, limit int) *Distribution {
	entries := append([]Entry(nil), a.entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].LogProb != entries[j].LogProb {
			return entries[i].LogProb > entries[j].LogProb
		}
		return entries[i].Formula.Key() < entries[j].Formula.Key()
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	d := &Distribution{entries: entries, index: make(map[string]int, len(entries))}
	for i, e := range entries {
		d.index[e.Formula.Key()] = i
	}
	return d
}

// Len returns the number of distinct formulas.
func (d *Distribution) Len() int { return len(d.entries) }

// Entries returns the formulas by decreasing probability.
func (d *Distribution) Entries() []Entry { return append([]Entry(nil), d.entries...) }

// Best returns the most probable formula.
func (d *Distribution) Best() (Entry, bool) {
	if len(d.entries) == 0 {
		return Entry{}, false
	}
	return d.entries[0], true
}

// LogProb returns the log-probability of n, -Inf when absent.
func (d *Distribution) LogProb(n *formula.Node) float64 {
	i, ok := d.index[n.Key()]
	if !ok {
		return math.Inf(-1)
	}
	return d.entries[i].LogProb
}

// Prob returns the probability of n, 0 when absent.
func (d *Distribution) Prob(n *formula.Node) float64 { return math.Exp(d.LogProb(n)) }

// Total returns the summed probability mass of all entries.
func (d *Distribution) Total() float64 {
	var sum float64
	for _, e := range d.entries {
		sum += e.Prob()
	}
	return sum
}
