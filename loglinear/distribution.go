// SPDX-License-Identifier: MIT

package loglinear

import (
	"math"
	"sort"

	"github.com/ashish33/geosolver2/rule"
)

// Entry is one rule with its normalized log-probability.
type Entry struct {
	Rule    rule.Rule
	LogProb float64
}

// Distribution is a normalized local distribution over the rules of one
// parent context. It is immutable.
type Distribution struct {
	entries []Entry
	index   map[string]int
}

func newDistribution(rules []rule.Rule, logProbs []float64) *Distribution {
	d := &Distribution{
		entries: make([]Entry, len(rules)),
		index:   make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		d.entries[i] = Entry{Rule: r, LogProb: logProbs[i]}
		d.index[r.Key()] = i
	}
	return d
}

// Len returns the number of rules.
func (d *Distribution) Len() int { return len(d.entries) }

// Entries returns the rules in enumeration order.
func (d *Distribution) Entries() []Entry { return append([]Entry(nil), d.entries...) }

// Lookup returns the log-probability of r; ok is false when r is absent.
func (d *Distribution) Lookup(r rule.Rule) (float64, bool) {
	i, ok := d.index[r.Key()]
	if !ok {
		return math.Inf(-1), false
	}
	return d.entries[i].LogProb, true
}

// LogProb returns the log-probability of r or -Inf when absent.
func (d *Distribution) LogProb(r rule.Rule) float64 {
	lp, _ := d.Lookup(r)
	return lp
}

// Total returns Σ exp(logprob): 1 up to rounding, 0 when empty.
func (d *Distribution) Total() float64 {
	var sum float64
	for _, e := range d.entries {
		sum += math.Exp(e.LogProb)
	}
	return sum
}

// Sorted returns the entries by decreasing probability; ties keep
// enumeration order.
func (d *Distribution) Sorted() []Entry {
	out := d.Entries()
	sort.SliceStable(out, func(i, j int) bool { return out[i].LogProb > out[j].LogProb })
	return out
}
