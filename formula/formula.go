// SPDX-License-Identifier: MIT

// Package formula implements immutable typed formula trees over ontology
// signatures.
//
// A Node pairs a signature with one child per argument. Nodes never change
// after construction, so subtrees are freely shared between trees. Two nodes
// are the same formula exactly when their Keys are equal; the key is built
// from signature IDs only, never from positions or display names.
package formula

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ashish33/geosolver2/ontology"
)

var (
	// ErrNilSignature is returned when a node is built without a signature.
	ErrNilSignature = errors.New("formula: nil signature")

	// ErrArityMismatch is returned when the child count differs from the valence.
	ErrArityMismatch = errors.New("formula: child count does not match valence")

	// ErrTypeMismatch is returned when a child's return type does not fit its argument slot.
	ErrTypeMismatch = errors.New("formula: child type does not match argument type")
)

// Node is one vertex of a formula tree.
type Node struct {
	sig      *ontology.Signature
	children []*Node
	key      string
}

// New builds a node without type checking. Callers that already enforce
// the type discipline (the decoder) use it directly; everyone else should
// prefer Build.
func New(sig *ontology.Signature, children ...*Node) *Node {
	n := &Node{sig: sig, children: append([]*Node(nil), children...)}
	n.key = n.buildKey()
	return n
}

// Leaf builds a childless node.
func Leaf(sig *ontology.Signature) *Node { return New(sig) }

// Build checks child count and child return types before building. With a
// non-nil hierarchy a child whose type is a subtype of the argument type is
// accepted; with nil, types must be equal.
func Build(h *ontology.Hierarchy, sig *ontology.Signature, children ...*Node) (*Node, error) {
	if sig == nil {
		return nil, ErrNilSignature
	}
	if len(children) != sig.Valence() {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArityMismatch, sig.ID(), sig.Valence(), len(children))
	}
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("%w: child %d of %s", ErrNilSignature, i, sig.ID())
		}
		want, _ := sig.ArgType(i)
		if !fits(h, c.ReturnType(), want) {
			return nil, fmt.Errorf("%w: %s argument %d wants %s, got %s", ErrTypeMismatch, sig.ID(), i, want, c.ReturnType())
		}
	}
	return New(sig, children...), nil
}

func fits(h *ontology.Hierarchy, got, want ontology.Type) bool {
	if got == want {
		return true
	}
	return h != nil && h.IsSubtype(got, want)
}

// Validate checks the type discipline over the whole tree.
func (n *Node) Validate(h *ontology.Hierarchy) error {
	if _, err := Build(h, n.sig, n.children...); err != nil {
		return err
	}
	for _, c := range n.children {
		if err := c.Validate(h); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) Signature() *ontology.Signature { return n.sig }
func (n *Node) ReturnType() ontology.Type      { return n.sig.ReturnType() }
func (n *Node) IsLeaf() bool                   { return len(n.children) == 0 }
func (n *Node) Len() int                       { return len(n.children) }

// Children returns a copy of the child slice.
func (n *Node) Children() []*Node { return append([]*Node(nil), n.children...) }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Key is the canonical structural identity of the tree.
func (n *Node) Key() string { return n.key }

// Equal reports structural equality.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	return n.key == o.key
}

// buildKey writes length-prefixed IDs so that IDs containing delimiters
// cannot collide.
func (n *Node) buildKey() string {
	var b strings.Builder
	id := ""
	if n.sig != nil {
		id = n.sig.ID()
	}
	b.WriteString(strconv.Itoa(len(id)))
	b.WriteByte(':')
	b.WriteString(id)
	if len(n.children) > 0 {
		b.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(c.key)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// String renders the tree with display names, e.g. "Equal(RadiusOf(Circle(O)),5)".
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.sig != nil {
		b.WriteString(n.sig.Name())
	}
	if len(n.children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			b.WriteByte(',')
		}
		c.write(b)
	}
	b.WriteByte(')')
}

// Size counts the nodes in the tree.
func (n *Node) Size() int {
	total := 1
	for _, c := range n.children {
		total += c.Size()
	}
	return total
}

// Depth is 1 for a leaf.
func (n *Node) Depth() int {
	d := 0
	for _, c := range n.children {
		if cd := c.Depth(); cd > d {
			d = cd
		}
	}
	return d + 1
}

// Walk visits nodes in pre-order until fn returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// ReplaceSignature rebuilds the tree, swapping every signature for which
// test holds with get(signature). Children are rewritten before parents.
func (n *Node) ReplaceSignature(test func(*ontology.Signature) bool, get func(*ontology.Signature) *ontology.Signature) *Node {
	children := make([]*Node, len(n.children))
	for i, c := range n.children {
		children[i] = c.ReplaceSignature(test, get)
	}
	sig := n.sig
	if test(sig) {
		sig = get(sig)
	}
	return New(sig, children...)
}

// ReplaceNode rebuilds the tree, substituting get(node) for the first node
// on each root-to-leaf path for which test holds.
func (n *Node) ReplaceNode(test func(*Node) bool, get func(*Node) *Node) *Node {
	if test(n) {
		return get(n)
	}
	children := make([]*Node, len(n.children))
	for i, c := range n.children {
		children[i] = c.ReplaceNode(test, get)
	}
	return New(n.sig, children...)
}
