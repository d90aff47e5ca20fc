// SPDX-License-Identifier: MIT

package formula_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/formula"
	"github.com/ashish33/geosolver2/ontology"
)

var (
	radiusOf = ontology.NewFunction("RadiusOf", "number", []ontology.Type{"circle"})
	circle   = ontology.NewFunction("Circle", "circle", []ontology.Type{"modifier"})
	equal    = ontology.NewFunction("Equal", "truth", []ontology.Type{"number", "number"})
	nameO    = ontology.NewVariable("O", "modifier")
	five     = ontology.NewVariable("5", "number")
)

func radiusEquation() *formula.Node {
	return formula.New(equal,
		formula.New(radiusOf, formula.New(circle, formula.Leaf(nameO))),
		formula.Leaf(five))
}

func TestNode_StringAndKey(t *testing.T) {
	n := radiusEquation()
	assert.Equal(t, "Equal(RadiusOf(Circle(O)),5)", n.String())
	assert.Equal(t, 5, n.Size())
	assert.Equal(t, 4, n.Depth())
	assert.Equal(t, 2, n.Len())
	assert.Nil(t, n.Child(2))

	same := radiusEquation()
	assert.True(t, n.Equal(same))
	assert.Equal(t, n.Key(), same.Key())

	// display names never enter the key
	renamed := ontology.NewVariable("5", "number", ontology.WithName("five"))
	alt := formula.New(equal, n.Child(0), formula.Leaf(renamed))
	assert.True(t, n.Equal(alt))
	assert.NotEqual(t, n.String(), alt.String())

	swapped := formula.New(equal, formula.Leaf(five), n.Child(0))
	assert.False(t, n.Equal(swapped))
}

func TestNode_KeyNoDelimiterCollision(t *testing.T) {
	a := formula.Leaf(ontology.NewVariable("x,y", "number"))
	pair := formula.New(equal, formula.Leaf(ontology.NewVariable("x", "number")), formula.Leaf(ontology.NewVariable("y", "number")))
	wrap := formula.New(ontology.NewFunction("Equal(x", "truth", []ontology.Type{"number"}), a)
	assert.NotEqual(t, pair.Key(), wrap.Key())
}

func TestBuild_TypeDiscipline(t *testing.T) {
	h, err := ontology.NewHierarchy("root", []ontology.Type{"number", "truth", "circle", "modifier"}, nil)
	require.NoError(t, err)

	_, err = formula.Build(h, radiusOf)
	assert.ErrorIs(t, err, formula.ErrArityMismatch)

	_, err = formula.Build(h, radiusOf, formula.Leaf(five))
	assert.ErrorIs(t, err, formula.ErrTypeMismatch)

	_, err = formula.Build(h, nil)
	assert.ErrorIs(t, err, formula.ErrNilSignature)

	n, err := formula.Build(h, radiusOf, formula.New(circle, formula.Leaf(nameO)))
	require.NoError(t, err)
	assert.Equal(t, "RadiusOf(Circle(O))", n.String())

	assert.NoError(t, radiusEquation().Validate(h))
	bad := formula.New(equal, formula.Leaf(nameO), formula.Leaf(five))
	assert.ErrorIs(t, bad.Validate(h), formula.ErrTypeMismatch)
}

func TestBuild_SubtypeArguments(t *testing.T) {
	c := ontology.MustDefault()
	area := c.MustGet("AreaOf") // number AreaOf(2d)
	tri := formula.Leaf(ontology.NewVariable("ABC", "triangle"))

	n, err := formula.Build(c.Hierarchy(), area, tri)
	require.NoError(t, err)
	assert.Equal(t, "AreaOf(ABC)", n.String())

	_, err = formula.Build(nil, area, tri)
	assert.ErrorIs(t, err, formula.ErrTypeMismatch)
}

func TestReplaceSignature(t *testing.T) {
	n := radiusEquation()
	seven := ontology.NewVariable("7", "number")
	out := n.ReplaceSignature(
		func(s *ontology.Signature) bool { return s.ID() == "5" },
		func(*ontology.Signature) *ontology.Signature { return seven },
	)
	assert.Equal(t, "Equal(RadiusOf(Circle(O)),7)", out.String())
	assert.Equal(t, "Equal(RadiusOf(Circle(O)),5)", n.String())
}

func TestReplaceNode(t *testing.T) {
	n := radiusEquation()
	out := n.ReplaceNode(
		func(x *formula.Node) bool { return x.Signature().ID() == "RadiusOf" },
		func(*formula.Node) *formula.Node { return formula.Number("3") },
	)
	assert.Equal(t, "Equal(3,5)", out.String())

	var ids []string
	out.Walk(func(x *formula.Node) bool {
		ids = append(ids, x.Signature().ID())
		return true
	})
	assert.Equal(t, []string{"Equal", "3", "5"}, ids)
}

func TestBuilder_Arithmetic(t *testing.T) {
	b := formula.NewBuilder(ontology.MustDefault())

	sum, err := b.Add(formula.Number("2"), formula.Number("3"))
	require.NoError(t, err)
	sq, err := b.Symbol("\\sqrt", sum)
	require.NoError(t, err)
	eq, err := b.Equals(sq, formula.Number("5"))
	require.NoError(t, err)
	assert.Equal(t, "Equals(Sqrt(Add(2,3)),5)", eq.String())

	_, err = b.Add(eq, formula.Number("1"))
	assert.ErrorIs(t, err, formula.ErrTypeMismatch)

	_, err = b.Apply("Modulo", formula.Number("1"), formula.Number("2"))
	assert.ErrorIs(t, err, ontology.ErrUnknownSignature)

	for _, op := range []func(x, y *formula.Node) (*formula.Node, error){b.Sub, b.Mul, b.Div, b.Pow} {
		n, err := op(formula.Number("4"), formula.Number("2"))
		require.NoError(t, err)
		assert.Equal(t, ontology.Type("number"), n.ReturnType())
	}
	for _, op := range []func(x, y *formula.Node) (*formula.Node, error){b.Ge, b.Lt} {
		n, err := op(formula.Number("4"), formula.Number("2"))
		require.NoError(t, err)
		assert.Equal(t, ontology.Type("truth"), n.ReturnType())
	}
}
