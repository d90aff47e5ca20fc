// SPDX-License-Identifier: MIT

package formula

import (
	"fmt"

	"github.com/ashish33/geosolver2/ontology"
)

// Builder combines nodes with the catalog's arithmetic and comparison
// signatures, type checked against the catalog hierarchy.
type Builder struct {
	catalog *ontology.Catalog
}

// NewBuilder returns a Builder over c.
func NewBuilder(c *ontology.Catalog) *Builder { return &Builder{catalog: c} }

// Apply builds id(args...) with type checking.
func (b *Builder) Apply(id string, args ...*Node) (*Node, error) {
	sig, ok := b.catalog.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ontology.ErrUnknownSignature, id)
	}
	return Build(b.catalog.Hierarchy(), sig, args...)
}

// Symbol builds the signature behind a surface abbreviation such as "+".
func (b *Builder) Symbol(symbol string, args ...*Node) (*Node, error) {
	sig, ok := b.catalog.Abbreviation(symbol)
	if !ok {
		return nil, fmt.Errorf("%w: abbreviation %q", ontology.ErrUnknownSignature, symbol)
	}
	return Build(b.catalog.Hierarchy(), sig, args...)
}

func (b *Builder) Add(x, y *Node) (*Node, error)    { return b.Apply("Add", x, y) }
func (b *Builder) Sub(x, y *Node) (*Node, error)    { return b.Apply("Sub", x, y) }
func (b *Builder) Mul(x, y *Node) (*Node, error)    { return b.Apply("Mul", x, y) }
func (b *Builder) Div(x, y *Node) (*Node, error)    { return b.Apply("Div", x, y) }
func (b *Builder) Pow(x, y *Node) (*Node, error)    { return b.Apply("Pow", x, y) }
func (b *Builder) Equals(x, y *Node) (*Node, error) { return b.Apply("Equals", x, y) }
func (b *Builder) Ge(x, y *Node) (*Node, error)     { return b.Apply("Ge", x, y) }
func (b *Builder) Lt(x, y *Node) (*Node, error)     { return b.Apply("Lt", x, y) }

// Number returns a numeric leaf named by its literal.
func Number(literal string) *Node {
	return Leaf(ontology.NewVariable(literal, "number"))
}
