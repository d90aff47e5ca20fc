// SPDX-License-Identifier: MIT

package corpus_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/corpus"
	"github.com/ashish33/geosolver2/internal/fixture"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

func TestLoad(t *testing.T) {
	c := fixture.Catalog()
	cp, err := corpus.Load(c, "testdata/radius.yaml")
	require.NoError(t, err)
	require.Len(t, cp.Examples, 2)

	radius := cp.Examples[0]
	assert.Equal(t, "radius", radius.ID)
	assert.True(t, radius.Annotated())
	assert.Equal(t, fixture.Tags(c), radius.Gold.Context.Tags)
	d, ok := radius.Sentence.Distance(1, 6)
	require.True(t, ok)
	assert.Equal(t, 5, d)

	assert.False(t, cp.Examples[1].Annotated())
	assert.Len(t, cp.Golds(), 1)
	assert.Len(t, cp.UnaryRules(), 3)
	assert.Len(t, cp.BinaryRules(), 1)
	for _, r := range cp.UnaryRules() {
		assert.NoError(t, rule.Validate(r))
	}
}

func TestParse_Errors(t *testing.T) {
	c := fixture.Catalog()

	_, err := corpus.Parse(c, []byte("examples:\n  - words: [a]\n    arcs: [{head: 0, dependent: 3}]\n"))
	assert.ErrorIs(t, err, syntax.ErrPositionOutOfRange)

	_, err = corpus.Parse(c, []byte("examples:\n  - id: bad\n    words: [a, b]\n    gold: [[Square@0, Circle@1]]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "example bad")

	_, err = corpus.Parse(c, []byte("sentences: []\n"))
	assert.Error(t, err)

	_, err = corpus.Load(c, "testdata/missing.yaml")
	assert.Error(t, err)
}
