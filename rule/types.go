// SPDX-License-Identifier: MIT

package rule

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/syntax"
)

var (
	// ErrInvalidArity is returned for an enumerator arity other than Unary or Binary.
	ErrInvalidArity = errors.New("rule: enumerator arity must be unary or binary")

	// ErrNilCatalog is returned when no catalog is supplied.
	ErrNilCatalog = errors.New("rule: catalog is nil")

	// ErrNilContext is returned when a rule or enumeration has no sentence.
	ErrNilContext = errors.New("rule: context has no sentence")

	// ErrNilSignature is returned for a slot without a signature.
	ErrNilSignature = errors.New("rule: slot has no signature")

	// ErrParentValence is returned when the parent does not take the rule's child count.
	ErrParentValence = errors.New("rule: parent valence does not match rule arity")

	// ErrSyntax is returned for malformed tuple notation.
	ErrSyntax = errors.New("rule: malformed tuple")

	// ErrTagConflict is returned when one position receives two different tags.
	ErrTagConflict = errors.New("rule: conflicting tags for position")
)

// Position is a word index, or Implied for a node with no surface word.
type Position int

// Implied marks a slot that is not realized by any word.
const Implied Position = -1

// IsImplied reports whether p has no surface word.
func (p Position) IsImplied() bool { return p < 0 }

func (p Position) String() string {
	if p.IsImplied() {
		return "i"
	}
	return strconv.Itoa(int(p))
}

// Slot is a signature anchored at a position.
type Slot struct {
	Pos Position
	Sig *ontology.Signature
}

// At anchors sig at position p.
func At(p Position, sig *ontology.Signature) Slot { return Slot{Pos: p, Sig: sig} }

// ImpliedSlot anchors sig with no surface word.
func ImpliedSlot(sig *ontology.Signature) Slot { return Slot{Pos: Implied, Sig: sig} }

// Key identifies the slot by position and signature ID.
func (s Slot) Key() string {
	id := ""
	if s.Sig != nil {
		id = s.Sig.ID()
	}
	return fmt.Sprintf("%s@%d:%s", s.Pos, len(id), id)
}

func (s Slot) String() string {
	if s.Sig == nil {
		return "<nil>@" + s.Pos.String()
	}
	return s.Sig.Name() + "@" + s.Pos.String()
}

// PositionSet is a set of excluded word positions. Values are treated as
// immutable: With returns a new set.
type PositionSet map[Position]struct{}

// NewPositionSet returns a set holding ps. Implied positions are dropped.
func NewPositionSet(ps ...Position) PositionSet {
	s := make(PositionSet, len(ps))
	for _, p := range ps {
		if !p.IsImplied() {
			s[p] = struct{}{}
		}
	}
	return s
}

// Has reports membership.
func (s PositionSet) Has(p Position) bool {
	_, ok := s[p]
	return ok
}

// With returns a copy of s plus p. Adding Implied is a no-op copy.
func (s PositionSet) With(p Position) PositionSet {
	out := make(PositionSet, len(s)+1)
	for k := range s {
		out[k] = struct{}{}
	}
	if !p.IsImplied() {
		out[p] = struct{}{}
	}
	return out
}

// Sorted lists the members in ascending order.
func (s PositionSet) Sorted() []Position {
	out := make([]Position, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Key is a canonical string for memoization.
func (s PositionSet) Key() string {
	ps := s.Sorted()
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Tags assigns at most one signature to each tagged word position.
type Tags map[Position]*ontology.Signature

// Context is the per-sentence input shared by every rule over it.
type Context struct {
	Sentence *syntax.Sentence
	Tags     Tags
}

// NewContext pairs a sentence with its tags.
func NewContext(s *syntax.Sentence, tags Tags) *Context {
	if tags == nil {
		tags = Tags{}
	}
	return &Context{Sentence: s, Tags: tags}
}

// Tag returns the signature tagged at p.
func (c *Context) Tag(p Position) (*ontology.Signature, bool) {
	sig, ok := c.Tags[p]
	return sig, ok && sig != nil
}
