// SPDX-License-Identifier: MIT

package feature_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/feature"
	"github.com/ashish33/geosolver2/internal/fixture"
	"github.com/ashish33/geosolver2/rule"
)

func TestPair(t *testing.T) {
	s := fixture.Sentence()

	p := feature.Pair(s, 4, 6)
	assert.Equal(t, [3]float64{2, 2, 2}, p)

	p = feature.Pair(s, 0, 1)
	assert.Equal(t, [3]float64{1, 1, 1}, p)

	p = feature.Pair(s, 2, 0)
	assert.InDelta(t, math.Sqrt(2), p[2], 1e-12)

	// implied: neutral half-length on both distances
	p = feature.Pair(s, rule.Implied, 2)
	assert.Equal(t, [3]float64{3.5, 3.5, 3.5}, p)

	// identical positions on a tree: no cycle, capped at sentence length
	p = feature.Pair(s, 3, 3)
	assert.Equal(t, [3]float64{7, 0, 0}, p)
}

func TestUnaryAndBinary(t *testing.T) {
	c := fixture.Catalog()
	gold, err := rule.ParseTuples(c, fixture.Sentence(), fixture.GoldTuples)
	require.NoError(t, err)

	f := feature.Unary(gold.Unary[2]) // Circle@0 -> O@1
	require.Len(t, f, feature.UnaryDim)
	assert.Equal(t, []float64{1, 1, 1}, f)

	f = feature.Binary(gold.Binary[0]) // Equal@2 -> RadiusOf@4, 5@6
	require.Len(t, f, feature.BinaryDim)
	assert.Equal(t, []float64{1, 2, math.Sqrt(2)}, f[0:3])
	assert.Equal(t, []float64{3, 4, math.Sqrt(12)}, f[3:6])
	assert.Equal(t, []float64{2, 2, 2}, f[6:9])

	start := feature.Unary(gold.Unary[0]) // StartTruth@i -> Equal@2
	assert.Equal(t, []float64{3.5, 3.5, 3.5}, start)
}
