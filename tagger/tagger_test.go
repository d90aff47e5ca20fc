// SPDX-License-Identifier: MIT

package tagger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/internal/fixture"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/tagger"
)

func TestTagger_Lexicon(t *testing.T) {
	c := fixture.Catalog()
	tg, err := tagger.New(c, map[string]string{"circle": "Circle", "radius": "RadiusOf", "has": "Equal"},
		tagger.WithNumbers("number"), tagger.WithLabels("modifier", 3), tagger.WithCaseFolding())
	require.NoError(t, err)
	assert.Equal(t, 3, tg.Len())

	tags := tg.Tags(fixture.Sentence())
	require.Len(t, tags, 5)
	assert.Equal(t, "Circle", tags[0].ID())
	assert.Equal(t, "Equal", tags[2].ID())
	assert.Equal(t, "RadiusOf", tags[4].ID())
	assert.Equal(t, ontology.Type("modifier"), tags[1].ReturnType())
	assert.Equal(t, "O", tags[1].ID())
	assert.Equal(t, ontology.Type("number"), tags[6].ReturnType())
	_, tagged := tags[3]
	assert.False(t, tagged, "'a' is untagged")

	_, ok := tg.BestTag(fixture.Sentence(), 99)
	assert.False(t, ok)
}

func TestTagger_Errors(t *testing.T) {
	_, err := tagger.New(nil, nil)
	assert.ErrorIs(t, err, tagger.ErrNilCatalog)

	_, err = tagger.New(fixture.Catalog(), map[string]string{"square": "Square"})
	assert.ErrorIs(t, err, ontology.ErrUnknownSignature)
}

func TestFromGold(t *testing.T) {
	c := fixture.Catalog()
	gold, err := rule.ParseTuples(c, fixture.Sentence(), fixture.GoldTuples)
	require.NoError(t, err)

	tg := tagger.FromGold([]*rule.Gold{gold})
	assert.Equal(t, 5, tg.Len())
	ctx := tg.Context(fixture.Sentence())
	assert.Equal(t, fixture.Tags(c), ctx.Tags)
}
