// SPDX-License-Identifier: MIT

package decoder_test

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/decoder"
	"github.com/ashish33/geosolver2/feature"
	"github.com/ashish33/geosolver2/formula"
	"github.com/ashish33/geosolver2/internal/fixture"
	"github.com/ashish33/geosolver2/loglinear"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

// parentNearFirst rewards binary rules whose first argument sits close to
// the parent word.
var parentNearFirst = []float64{-1, -1, -1, 0, 0, 0, 0, 0, 0}

func newDecoder(t testing.TB, c *ontology.Catalog, binaryWeights []float64, opts ...decoder.Option) *decoder.Decoder {
	t.Helper()
	ue, err := rule.NewEnumerator(c, ontology.Unary)
	require.NoError(t, err)
	be, err := rule.NewEnumerator(c, ontology.Binary)
	require.NoError(t, err)
	um, err := loglinear.New(ue, feature.Unary, feature.UnaryDim)
	require.NoError(t, err)
	bopts := []loglinear.Option{}
	if binaryWeights != nil {
		bopts = append(bopts, loglinear.WithWeights(binaryWeights))
	}
	bm, err := loglinear.New(be, feature.Binary, feature.BinaryDim, bopts...)
	require.NoError(t, err)
	d, err := decoder.New(um, bm, opts...)
	require.NoError(t, err)
	return d
}

func startOf(t testing.TB, c *ontology.Catalog) *ontology.Signature {
	t.Helper()
	s, ok := c.Start()
	require.True(t, ok)
	return s
}

func formulaStrings(d *decoder.Distribution) []string {
	var out []string
	for _, e := range d.Entries() {
		out = append(out, e.Formula.String())
	}
	return out
}

func TestNew_Errors(t *testing.T) {
	c := fixture.Catalog()
	ue, _ := rule.NewEnumerator(c, ontology.Unary)
	um, _ := loglinear.New(ue, feature.Unary, feature.UnaryDim)

	_, err := decoder.New(nil, um)
	assert.ErrorIs(t, err, decoder.ErrNilModel)
	_, err = decoder.New(um, um)
	assert.ErrorIs(t, err, decoder.ErrModelArity)
}

func TestFormulaDistribution_RadiusScenario(t *testing.T) {
	c := fixture.Catalog()
	dec := newDecoder(t, c, parentNearFirst)

	dist, err := dec.FormulaDistribution(context.Background(), decoder.Input{
		Context: fixture.Context(c),
		Start:   startOf(t, c),
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"StartTruth(Equal(RadiusOf(Circle(O)),5))",
		"StartTruth(Equal(5,RadiusOf(Circle(O))))",
		"StartTruth(Equal(5,5))",
	}, formulaStrings(dist))

	best, ok := dist.Best()
	require.True(t, ok)
	assert.Equal(t, "StartTruth(Equal(RadiusOf(Circle(O)),5))", best.Formula.String())
	assert.Greater(t, best.Prob(), 0.99)

	// every branch terminates, so the mass is fully accounted for
	assert.InDelta(t, 1.0, dist.Total(), 1e-9)
}

func TestFormulaDistribution_MergesDuplicateTrees(t *testing.T) {
	c := fixture.Catalog()
	dec := newDecoder(t, c, nil)

	dist, err := dec.FormulaDistribution(context.Background(), decoder.Input{
		Context: fixture.Context(c),
		Start:   startOf(t, c),
	})
	require.NoError(t, err)

	// zero weights: six equiprobable binary rules, two per distinct tree;
	// Circle(O) merges its tagged and implied derivations
	require.Equal(t, 3, dist.Len())
	for _, e := range dist.Entries() {
		assert.InDelta(t, 1.0/3, e.Prob(), 1e-9, e.Formula.String())
	}

	circleO := formula.New(c.MustGet("Circle"), formula.Leaf(c.MustGet("O")))
	tree := formula.New(startOf(t, c), formula.New(c.MustGet("Equal"),
		formula.New(c.MustGet("RadiusOf"), circleO), formula.Leaf(c.MustGet("5"))))
	assert.InDelta(t, math.Log(1.0/3), dist.LogProb(tree), 1e-9)
	assert.InDelta(t, 1.0/3, dist.Prob(tree), 1e-9)
	assert.True(t, math.IsInf(dist.LogProb(circleO), -1))
}

func TestFormulaDistribution_Empty(t *testing.T) {
	h, err := ontology.NewHierarchy("root", []ontology.Type{"truth", "number", "circle", "modifier"}, nil)
	require.NoError(t, err)
	c, err := ontology.NewCatalog(h, []ontology.Entry{
		{ID: "StartTruth", Returns: "truth", Args: []string{"truth"}},
		{ID: "Equal", Returns: "truth", Args: []string{"number", "number"}},
		{ID: "RadiusOf", Returns: "number", Args: []string{"circle"}},
		{ID: "Circle", Returns: "circle", Args: []string{"modifier"}},
		{ID: "O", Returns: "modifier", Variable: true},
	}, ontology.WithStart("StartTruth"))
	require.NoError(t, err)

	// without any number but RadiusOf, Equal cannot fill both slots
	ctx := rule.NewContext(fixture.Sentence(), rule.Tags{
		0: c.MustGet("Circle"), 1: c.MustGet("O"), 2: c.MustGet("Equal"), 4: c.MustGet("RadiusOf"),
	})
	dec := newDecoder(t, c, nil)
	dist, err := dec.FormulaDistribution(context.Background(), decoder.Input{Context: ctx, Start: startOf(t, c)})
	require.NoError(t, err)
	assert.Equal(t, 0, dist.Len())
	_, ok := dist.Best()
	assert.False(t, ok)
}

func TestFormulaDistribution_InvalidInput(t *testing.T) {
	c := fixture.Catalog()
	dec := newDecoder(t, c, nil)

	_, err := dec.FormulaDistribution(context.Background(), decoder.Input{Context: fixture.Context(c), Start: c.MustGet("Equal")})
	assert.ErrorIs(t, err, decoder.ErrInvalidStart)

	_, err = dec.FormulaDistribution(context.Background(), decoder.Input{Start: startOf(t, c)})
	assert.ErrorIs(t, err, rule.ErrNilContext)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = dec.FormulaDistribution(ctx, decoder.Input{Context: fixture.Context(c), Start: startOf(t, c)})
	assert.ErrorIs(t, err, context.Canceled)
}

// chainCatalog has a unary Half that could nest forever without exclusions.
func chainCatalog(t *testing.T) *ontology.Catalog {
	t.Helper()
	h, err := ontology.NewHierarchy("root", []ontology.Type{"truth", "number"}, nil)
	require.NoError(t, err)
	c, err := ontology.NewCatalog(h, []ontology.Entry{
		{ID: "StartTruth", Returns: "truth", Args: []string{"truth"}},
		{ID: "Positive", Returns: "truth", Args: []string{"number"}},
		{ID: "Half", Returns: "number", Args: []string{"number"}},
		{ID: "Add", Returns: "number", Args: []string{"number", "number"}},
	}, ontology.WithStart("StartTruth"))
	require.NoError(t, err)
	return c
}

func TestFormulaDistribution_ExclusionAlongChain(t *testing.T) {
	c := chainCatalog(t)
	s, err := syntax.NewSentence([]string{"positive", "half", "half", "3"})
	require.NoError(t, err)
	ctx := rule.NewContext(s, rule.Tags{
		0: c.MustGet("Positive"), 1: c.MustGet("Half"), 2: c.MustGet("Half"), 3: ontology.NewVariable("3", "number"),
	})

	dist, err := newDecoder(t, c, nil).FormulaDistribution(context.Background(), decoder.Input{Context: ctx, Start: startOf(t, c)})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"StartTruth(Positive(3))",
		"StartTruth(Positive(Half(3)))",
		"StartTruth(Positive(Half(Half(3))))",
	}, formulaStrings(dist))
	for _, e := range dist.Entries() {
		assert.LessOrEqual(t, strings.Count(e.Formula.String(), "Half"), 2)
	}
	assert.InDelta(t, 1.0, dist.Total(), 1e-9)
}

func TestFormulaDistribution_SiblingsMayShareWords(t *testing.T) {
	c := chainCatalog(t)
	s, err := syntax.NewSentence([]string{"positive", "add", "5", "half"})
	require.NoError(t, err)
	ctx := rule.NewContext(s, rule.Tags{
		0: c.MustGet("Positive"), 1: c.MustGet("Add"), 2: ontology.NewVariable("5", "number"), 3: c.MustGet("Half"),
	})

	dist, err := newDecoder(t, c, nil).FormulaDistribution(context.Background(), decoder.Input{Context: ctx, Start: startOf(t, c)})
	require.NoError(t, err)
	assert.Contains(t, formulaStrings(dist), "StartTruth(Positive(Add(Half(5),5)))")
}

func TestFormulaDistribution_NaryDeadBranch(t *testing.T) {
	c := ontology.MustDefault()
	s, err := syntax.NewSentence([]string{"triangle", "ABC"})
	require.NoError(t, err)
	ctx := rule.NewContext(s, rule.Tags{0: c.MustGet("IsTriangle"), 1: c.MustGet("Triangle")})

	dist, err := newDecoder(t, c, nil).FormulaDistribution(context.Background(), decoder.Input{Context: ctx, Start: startOf(t, c)})
	require.NoError(t, err)
	assert.Equal(t, 0, dist.Len())
}

func TestFormulaDistribution_MaxResults(t *testing.T) {
	c := fixture.Catalog()
	dec := newDecoder(t, c, parentNearFirst, decoder.WithMaxResults(1))
	dist, err := dec.FormulaDistribution(context.Background(), decoder.Input{Context: fixture.Context(c), Start: startOf(t, c)})
	require.NoError(t, err)
	require.Equal(t, 1, dist.Len())
	assert.Equal(t, "StartTruth(Equal(RadiusOf(Circle(O)),5))", dist.Entries()[0].Formula.String())
}

func TestFormulaDistribution_AfterTraining(t *testing.T) {
	c := fixture.Catalog()
	gold, err := rule.ParseTuples(c, fixture.Sentence(), fixture.GoldTuples)
	require.NoError(t, err)

	ue, _ := rule.NewEnumerator(c, ontology.Unary)
	be, _ := rule.NewEnumerator(c, ontology.Binary)
	um, err := loglinear.New(ue, feature.Unary, feature.UnaryDim)
	require.NoError(t, err)
	bm, err := loglinear.New(be, feature.Binary, feature.BinaryDim)
	require.NoError(t, err)
	_, err = um.Train(gold.Unary, 0.1)
	require.NoError(t, err)
	_, err = bm.Train(gold.Binary, 0.1)
	require.NoError(t, err)

	dec, err := decoder.New(um, bm)
	require.NoError(t, err)
	dist, err := dec.FormulaDistribution(context.Background(), decoder.Input{Context: gold.Context, Start: startOf(t, c)})
	require.NoError(t, err)
	best, ok := dist.Best()
	require.True(t, ok)
	assert.Equal(t, "StartTruth(Equal(RadiusOf(Circle(O)),5))", best.Formula.String())
}

func TestDecodeAll(t *testing.T) {
	c := fixture.Catalog()
	dec := newDecoder(t, c, parentNearFirst)
	in := decoder.Input{Context: fixture.Context(c), Start: startOf(t, c)}

	out, err := dec.DecodeAll(context.Background(), []decoder.Input{in, in, in, in}, 2)
	require.NoError(t, err)
	require.Len(t, out, 4)
	for _, d := range out {
		best, ok := d.Best()
		require.True(t, ok)
		assert.Equal(t, "StartTruth(Equal(RadiusOf(Circle(O)),5))", best.Formula.String())
	}

	_, err = dec.DecodeAll(context.Background(), []decoder.Input{in, {Context: in.Context}}, 0)
	assert.ErrorIs(t, err, decoder.ErrInvalidStart)
}
