// SPDX-License-Identifier: MIT

package rule

import (
	"fmt"

	"github.com/ashish33/geosolver2/ontology"
)

// Enumerator produces every type-legal one-step expansion of a parent slot
// for one arity class.
type Enumerator struct {
	catalog *ontology.Catalog
	arity   ontology.Arity
	subtype bool
}

// EnumeratorOption configures an Enumerator.
type EnumeratorOption func(*Enumerator)

// WithSubtypeMatching accepts a candidate whose return type is a subtype
// of the argument type instead of requiring equality.
func WithSubtypeMatching() EnumeratorOption {
	return func(e *Enumerator) { e.subtype = true }
}

// NewEnumerator returns an enumerator for arity, which must be Unary or Binary.
func NewEnumerator(c *ontology.Catalog, arity ontology.Arity, opts ...EnumeratorOption) (*Enumerator, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}
	if arity != ontology.Unary && arity != ontology.Binary {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidArity, arity)
	}
	e := &Enumerator{catalog: c, arity: arity}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Arity returns the arity class this enumerator serves.
func (e *Enumerator) Arity() ontology.Arity { return e.arity }

// Catalog returns the catalog implied constants are drawn from.
func (e *Enumerator) Catalog() *ontology.Catalog { return e.catalog }

// Enumerate returns every legal rule rooted at parent. Candidate children
// are the tagged positions that are neither excluded nor the parent's own
// position, followed by every valence-0 catalog signature at Implied.
// Binary rules take ordered pairs of distinct candidates. An empty result
// is a dead branch, not an error.
func (e *Enumerator) Enumerate(ctx *Context, parent Slot, excluded PositionSet) ([]Rule, error) {
	if ctx == nil || ctx.Sentence == nil {
		return nil, ErrNilContext
	}
	if parent.Sig == nil {
		return nil, ErrNilSignature
	}
	if parent.Sig.Arity() != e.arity {
		return nil, fmt.Errorf("%w: %s has valence %d, enumerator is %s",
			ErrInvalidArity, parent.Sig.ID(), parent.Sig.Valence(), e.arity)
	}

	candidates := e.candidates(ctx, parent.Pos, excluded)
	switch e.arity {
	case ontology.Unary:
		return e.unary(ctx, parent, candidates), nil
	case ontology.Binary:
		return e.binary(ctx, parent, candidates), nil
	}
	return nil, ErrInvalidArity
}

func (e *Enumerator) candidates(ctx *Context, parentPos Position, excluded PositionSet) []Slot {
	leaves := e.catalog.Leaves()
	out := make([]Slot, 0, ctx.Sentence.Len()+len(leaves))
	for i := 0; i < ctx.Sentence.Len(); i++ {
		p := Position(i)
		if p == parentPos || excluded.Has(p) {
			continue
		}
		if sig, ok := ctx.Tag(p); ok {
			out = append(out, At(p, sig))
		}
	}
	for _, sig := range leaves {
		out = append(out, ImpliedSlot(sig))
	}
	return out
}

func (e *Enumerator) unary(ctx *Context, parent Slot, candidates []Slot) []Rule {
	want, _ := parent.Sig.ArgType(0)
	var out []Rule
	for _, c := range candidates {
		if e.matches(c.Sig.ReturnType(), want) {
			out = append(out, NewUnary(ctx, parent, c))
		}
	}
	return out
}

func (e *Enumerator) binary(ctx *Context, parent Slot, candidates []Slot) []Rule {
	wantA, _ := parent.Sig.ArgType(0)
	wantB, _ := parent.Sig.ArgType(1)
	var out []Rule
	for i, a := range candidates {
		if !e.matches(a.Sig.ReturnType(), wantA) {
			continue
		}
		for j, b := range candidates {
			if i == j || !e.matches(b.Sig.ReturnType(), wantB) {
				continue
			}
			out = append(out, NewBinary(ctx, parent, a, b))
		}
	}
	return out
}

func (e *Enumerator) matches(got, want ontology.Type) bool {
	if got == want {
		return true
	}
	return e.subtype && e.catalog.IsSubtype(got, want)
}
