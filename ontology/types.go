// SPDX-License-Identifier: MIT

package ontology

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for ontology construction and lookup.
var (
	ErrUnknownType        = errors.New("ontology: unknown type")
	ErrDuplicateSignature = errors.New("ontology: duplicate signature id")
	ErrCyclicHierarchy    = errors.New("ontology: type hierarchy is cyclic")
	ErrEmptyName          = errors.New("ontology: empty name")
	ErrUnknownSignature   = errors.New("ontology: unknown signature")
)

// Type names a semantic category such as "truth", "number" or "circle".
type Type string

// Arity classifies a signature by valence. The decoder dispatches on it.
type Arity int

const (
	Leaf   Arity = iota // valence 0
	Unary               // valence 1
	Binary              // valence 2
	Nary                // valence ≥ 3; not expandable by the per-arity models
)

// ArityOf maps a valence to its Arity class.
func ArityOf(valence int) Arity {
	switch {
	case valence <= 0:
		return Leaf
	case valence == 1:
		return Unary
	case valence == 2:
		return Binary
	default:
		return Nary
	}
}

func (a Arity) String() string {
	switch a {
	case Leaf:
		return "leaf"
	case Unary:
		return "unary"
	case Binary:
		return "binary"
	case Nary:
		return "nary"
	}
	return fmt.Sprintf("arity(%d)", int(a))
}

// Kind distinguishes function signatures from variable (constant) signatures.
type Kind int

const (
	FunctionKind Kind = iota
	VariableKind
)

// Signature is an immutable typed function or constant descriptor.
type Signature struct {
	id         string
	name       string
	returnType Type
	argTypes   []Type
	plural     []bool
	symmetric  bool
	kind       Kind
}

// SignatureOption configures a Signature at construction.
type SignatureOption func(*Signature)

// WithName sets the display name (defaults to the ID).
func WithName(name string) SignatureOption {
	return func(s *Signature) {
		if name != "" {
			s.name = name
		}
	}
}

// WithSymmetric marks the two arguments as interchangeable.
func WithSymmetric() SignatureOption {
	return func(s *Signature) { s.symmetric = true }
}

// WithPluralities sets per-argument plurality flags. Extra flags are
// ignored and missing ones default to false.
func WithPluralities(flags ...bool) SignatureOption {
	return func(s *Signature) {
		for i := range s.plural {
			s.plural[i] = i < len(flags) && flags[i]
		}
	}
}

// NewFunction returns a function signature with the given argument types.
func NewFunction(id string, returnType Type, argTypes []Type, opts ...SignatureOption) *Signature {
	s := &Signature{
		id:         id,
		name:       id,
		returnType: returnType,
		argTypes:   append([]Type(nil), argTypes...),
		plural:     make([]bool, len(argTypes)),
		kind:       FunctionKind,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewVariable returns a valence-0 leaf constant.
func NewVariable(id string, returnType Type, opts ...SignatureOption) *Signature {
	s := &Signature{id: id, name: id, returnType: returnType, kind: VariableKind}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Signature) ID() string       { return s.id }
func (s *Signature) Name() string     { return s.name }
func (s *Signature) ReturnType() Type { return s.returnType }
func (s *Signature) Valence() int     { return len(s.argTypes) }
func (s *Signature) Arity() Arity     { return ArityOf(len(s.argTypes)) }
func (s *Signature) IsLeaf() bool     { return len(s.argTypes) == 0 }
func (s *Signature) Symmetric() bool  { return s.symmetric }
func (s *Signature) Kind() Kind       { return s.kind }

// ArgTypes returns a copy of the ordered argument types.
func (s *Signature) ArgTypes() []Type { return append([]Type(nil), s.argTypes...) }

// ArgType returns the i-th argument type; ok is false when out of range.
func (s *Signature) ArgType(i int) (Type, bool) {
	if i < 0 || i >= len(s.argTypes) {
		return "", false
	}
	return s.argTypes[i], true
}

// ArgPlural reports whether the i-th argument accepts a set of values.
func (s *Signature) ArgPlural(i int) bool {
	return i >= 0 && i < len(s.plural) && s.plural[i]
}

// Equal compares signatures by ID.
func (s *Signature) Equal(o *Signature) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.id == o.id
}

// String returns the display name.
func (s *Signature) String() string { return s.name }

// Describe renders the full typed form, e.g. "truth Equals(number, number)".
func (s *Signature) Describe() string {
	args := make([]string, len(s.argTypes))
	for i, t := range s.argTypes {
		args[i] = string(t)
		if s.plural[i] {
			args[i] = "*" + args[i]
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", s.returnType, s.name)
	if s.kind == FunctionKind {
		fmt.Fprintf(&b, "(%s)", strings.Join(args, ", "))
	}
	if s.symmetric {
		b.WriteString(" symmetric")
	}
	return b.String()
}
