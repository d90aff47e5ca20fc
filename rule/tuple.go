// SPDX-License-Identifier: MIT

package rule

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/syntax"
)

// Leaf types assigned by the bracketed tuple notations.
const (
	ModifierType ontology.Type = "modifier" // 'x'
	NumberType   ontology.Type = "number"   // [x]
	VariableType ontology.Type = "variable" // <x>
)

// ParseSlot reads "Name@pos" or "Name@i". Name is a catalog ID, or one of
// the leaf notations 'x', [x] and <x>; a leaf whose inner ID is in the
// catalog resolves to the catalog signature.
func ParseSlot(c *ontology.Catalog, s string) (Slot, error) {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return Slot{}, fmt.Errorf("%w: %q lacks name@position", ErrSyntax, s)
	}
	name, rawPos := s[:at], s[at+1:]

	pos := Implied
	if rawPos != "i" {
		n, err := strconv.Atoi(rawPos)
		if err != nil || n < 0 {
			return Slot{}, fmt.Errorf("%w: bad position in %q", ErrSyntax, s)
		}
		pos = Position(n)
	}

	sig, err := resolve(c, name)
	if err != nil {
		return Slot{}, err
	}
	return At(pos, sig), nil
}

func resolve(c *ontology.Catalog, name string) (*ontology.Signature, error) {
	if sig, ok := c.Get(name); ok {
		return sig, nil
	}
	if len(name) >= 3 {
		inner := name[1 : len(name)-1]
		var typ ontology.Type
		switch name[0:1] + name[len(name)-1:] {
		case "''":
			typ = ModifierType
		case "[]":
			typ = NumberType
		case "<>":
			typ = VariableType
		}
		if typ != "" {
			if sig, ok := c.Get(inner); ok && sig.IsLeaf() {
				return sig, nil
			}
			return ontology.NewVariable(inner, typ), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ontology.ErrUnknownSignature, name)
}

// Gold is an annotated sentence: the tags implied by its tuples and the
// unary and binary rules they spell out.
type Gold struct {
	Context *Context
	Unary   []Rule
	Binary  []Rule
}

// ParseTuples turns gold tuples into rules over s. A two-element tuple is a
// unary rule (parent, child); a three-element tuple is a binary rule
// (parent, a, b). Every realized slot also becomes a tag, and one position
// may carry only one signature.
func ParseTuples(c *ontology.Catalog, s *syntax.Sentence, tuples [][]string) (*Gold, error) {
	if c == nil {
		return nil, ErrNilCatalog
	}
	if s == nil {
		return nil, ErrNilContext
	}

	parsed := make([][]Slot, len(tuples))
	tags := Tags{}
	for i, tuple := range tuples {
		if len(tuple) != 2 && len(tuple) != 3 {
			return nil, fmt.Errorf("%w: tuple %d has %d elements", ErrSyntax, i, len(tuple))
		}
		slots := make([]Slot, len(tuple))
		for j, raw := range tuple {
			slot, err := ParseSlot(c, raw)
			if err != nil {
				return nil, fmt.Errorf("tuple %d: %w", i, err)
			}
			if !slot.Pos.IsImplied() {
				if int(slot.Pos) >= s.Len() {
					return nil, fmt.Errorf("%w: %s in a %d-word sentence", syntax.ErrPositionOutOfRange, slot, s.Len())
				}
				if prev, ok := tags[slot.Pos]; ok && !prev.Equal(slot.Sig) {
					return nil, fmt.Errorf("%w: %d is %s and %s", ErrTagConflict, slot.Pos, prev.ID(), slot.Sig.ID())
				}
				tags[slot.Pos] = slot.Sig
			}
			slots[j] = slot
		}
		parsed[i] = slots
	}

	g := &Gold{Context: NewContext(s, tags)}
	for _, slots := range parsed {
		if len(slots) == 2 {
			g.Unary = append(g.Unary, NewUnary(g.Context, slots[0], slots[1]))
		} else {
			g.Binary = append(g.Binary, NewBinary(g.Context, slots[0], slots[1], slots[2]))
		}
	}
	return g, nil
}
