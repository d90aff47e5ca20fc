// SPDX-License-Identifier: MIT

// Package tagger proposes one leaf or function signature per word.
//
// The Tagger is deterministic: a word maps to the catalog signature named
// in its lexicon, a numeric literal maps to a number leaf, and a short
// all-uppercase token ("O", "AB") maps to a label leaf. Words matching no
// rule stay untagged and are never expansion candidates.
package tagger

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

// ErrNilCatalog is returned when no catalog is supplied.
var ErrNilCatalog = errors.New("tagger: catalog is nil")

// Tagger maps words to signatures.
type Tagger struct {
	lexicon    map[string]*ontology.Signature
	numberType ontology.Type
	labelType  ontology.Type
	maxLabel   int
	fold       bool
}

// Option configures a Tagger.
type Option func(*Tagger)

// WithNumbers tags numeric literals as leaves of type t.
func WithNumbers(t ontology.Type) Option {
	return func(tg *Tagger) { tg.numberType = t }
}

// WithLabels tags all-uppercase tokens of up to maxLen letters as leaves
// of type t.
func WithLabels(t ontology.Type, maxLen int) Option {
	return func(tg *Tagger) {
		tg.labelType = t
		tg.maxLabel = maxLen
	}
}

// WithCaseFolding matches lexicon words case-insensitively.
func WithCaseFolding() Option {
	return func(tg *Tagger) { tg.fold = true }
}

// New builds a tagger whose lexicon maps words to catalog IDs.
func New(c *ontology.Catalog, lexicon map[string]string, opts ...Option) (*Tagger, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}
	tg := &Tagger{lexicon: make(map[string]*ontology.Signature, len(lexicon))}
	for _, opt := range opts {
		opt(tg)
	}
	for word, id := range lexicon {
		sig, ok := c.Get(id)
		if !ok {
			return nil, fmt.Errorf("tagger: word %q: %w: %q", word, ontology.ErrUnknownSignature, id)
		}
		tg.lexicon[tg.normalize(word)] = sig
	}
	return tg, nil
}

// FromGold learns a lexicon from annotated sentences: each tagged word
// maps to the signature it carries most often, ties broken by ID.
func FromGold(golds []*rule.Gold, opts ...Option) *Tagger {
	tg := &Tagger{lexicon: make(map[string]*ontology.Signature)}
	for _, opt := range opts {
		opt(tg)
	}
	counts := make(map[string]map[string]int)
	sigs := make(map[string]*ontology.Signature)
	for _, g := range golds {
		for pos, sig := range g.Context.Tags {
			word, ok := g.Context.Sentence.Word(int(pos))
			if !ok || sig == nil {
				continue
			}
			word = tg.normalize(word)
			if counts[word] == nil {
				counts[word] = make(map[string]int)
			}
			counts[word][sig.ID()]++
			sigs[sig.ID()] = sig
		}
	}
	for word, byID := range counts {
		ids := make([]string, 0, len(byID))
		for id := range byID {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool {
			if byID[ids[i]] != byID[ids[j]] {
				return byID[ids[i]] > byID[ids[j]]
			}
			return ids[i] < ids[j]
		})
		tg.lexicon[word] = sigs[ids[0]]
	}
	return tg
}

func (tg *Tagger) normalize(word string) string {
	if tg.fold {
		return strings.ToLower(word)
	}
	return word
}

// Len returns the lexicon size.
func (tg *Tagger) Len() int { return len(tg.lexicon) }

// BestTag returns the signature for the word at position i.
func (tg *Tagger) BestTag(s *syntax.Sentence, i int) (*ontology.Signature, bool) {
	word, ok := s.Word(i)
	if !ok {
		return nil, false
	}
	if sig, ok := tg.lexicon[tg.normalize(word)]; ok {
		return sig, true
	}
	if tg.numberType != "" {
		if _, err := strconv.ParseFloat(word, 64); err == nil {
			return ontology.NewVariable(word, tg.numberType), true
		}
	}
	if tg.labelType != "" && isLabel(word, tg.maxLabel) {
		return ontology.NewVariable(word, tg.labelType), true
	}
	return nil, false
}

// Tags tags every word of s.
func (tg *Tagger) Tags(s *syntax.Sentence) rule.Tags {
	tags := rule.Tags{}
	for i := 0; i < s.Len(); i++ {
		if sig, ok := tg.BestTag(s, i); ok {
			tags[rule.Position(i)] = sig
		}
	}
	return tags
}

// Context tags s and wraps it for decoding.
func (tg *Tagger) Context(s *syntax.Sentence) *rule.Context {
	return rule.NewContext(s, tg.Tags(s))
}

func isLabel(word string, maxLen int) bool {
	if word == "" || len(word) > maxLen {
		return false
	}
	for _, r := range word {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
