// SPDX-License-Identifier: MIT

package rule

import (
	"fmt"
	"strings"

	"github.com/ashish33/geosolver2/ontology"
)

// Rule is one parent→children expansion step. The concrete types are
// *UnaryRule and *BinaryRule.
type Rule interface {
	// Arity is Unary or Binary.
	Arity() ontology.Arity
	// Parent is the expanded slot.
	Parent() Slot
	// Children lists the argument slots in order.
	Children() []Slot
	// Context is the sentence and tags the rule was built over.
	Context() *Context
	// Key identifies the rule by positions and signature IDs only.
	Key() string
	String() string
}

// UnaryRule expands a valence-1 parent into one child.
type UnaryRule struct {
	ctx    *Context
	parent Slot
	child  Slot
}

// NewUnary builds a unary rule.
func NewUnary(ctx *Context, parent, child Slot) *UnaryRule {
	return &UnaryRule{ctx: ctx, parent: parent, child: child}
}

func (r *UnaryRule) Arity() ontology.Arity { return ontology.Unary }
func (r *UnaryRule) Parent() Slot          { return r.parent }
func (r *UnaryRule) Child() Slot           { return r.child }
func (r *UnaryRule) Children() []Slot      { return []Slot{r.child} }
func (r *UnaryRule) Context() *Context     { return r.ctx }
func (r *UnaryRule) Key() string           { return ruleKey(r.parent, r.child) }
func (r *UnaryRule) String() string        { return ruleString(r.parent, r.child) }

// BinaryRule expands a valence-2 parent into an ordered pair of children.
type BinaryRule struct {
	ctx    *Context
	parent Slot
	a, b   Slot
}

// NewBinary builds a binary rule.
func NewBinary(ctx *Context, parent, a, b Slot) *BinaryRule {
	return &BinaryRule{ctx: ctx, parent: parent, a: a, b: b}
}

func (r *BinaryRule) Arity() ontology.Arity { return ontology.Binary }
func (r *BinaryRule) Parent() Slot          { return r.parent }
func (r *BinaryRule) A() Slot               { return r.a }
func (r *BinaryRule) B() Slot               { return r.b }
func (r *BinaryRule) Children() []Slot      { return []Slot{r.a, r.b} }
func (r *BinaryRule) Context() *Context     { return r.ctx }
func (r *BinaryRule) Key() string           { return ruleKey(r.parent, r.a, r.b) }
func (r *BinaryRule) String() string        { return ruleString(r.parent, r.a, r.b) }

func ruleKey(parent Slot, children ...Slot) string {
	var b strings.Builder
	b.WriteString(parent.Key())
	b.WriteString("->")
	for i, c := range children {
		if i > 0 {
			b.WriteByte('|')
		}
		b.WriteString(c.Key())
	}
	return b.String()
}

func ruleString(parent Slot, children ...Slot) string {
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("%s -> %s", parent, strings.Join(parts, ", "))
}

// Validate checks that r's parent takes exactly its children and that
// every slot carries a signature.
func Validate(r Rule) error {
	if r.Context() == nil || r.Context().Sentence == nil {
		return ErrNilContext
	}
	p := r.Parent()
	if p.Sig == nil {
		return ErrNilSignature
	}
	children := r.Children()
	if p.Sig.Valence() != len(children) {
		return fmt.Errorf("%w: %s has valence %d, rule has %d children", ErrParentValence, p.Sig.ID(), p.Sig.Valence(), len(children))
	}
	for _, c := range children {
		if c.Sig == nil {
			return ErrNilSignature
		}
	}
	return nil
}
