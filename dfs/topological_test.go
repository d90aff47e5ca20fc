// SPDX-License-Identifier: MIT

package dfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashish33/geosolver2/core"
	"github.com/ashish33/geosolver2/dfs"
)

// position returns index of v in slice or -1 if not found
func position(order []string, v string) int {
	for i, x := range order {
		if x == v {
			return i
		}
	}

	return -1
}

// TestTopo_InvalidGraphs verifies nil and undirected graphs are rejected.
func TestTopo_InvalidGraphs(t *testing.T) {
	order, err := dfs.TopologicalSort(nil)
	assert.Nil(t, order)
	assert.ErrorIs(t, err, dfs.ErrGraphNil)

	_, err = dfs.TopologicalSort(core.NewGraph())
	assert.ErrorIs(t, err, dfs.ErrUndirected)
}

// TestTopo_EmptyGraph covers a directed graph with no vertices.
func TestTopo_EmptyGraph(t *testing.T) {
	order, err := dfs.TopologicalSort(core.NewGraph(core.WithDirected(true)))
	assert.NoError(t, err)
	assert.Empty(t, order)
}

// TestTopo_TypeHierarchy checks parents precede children on a type tree.
func TestTopo_TypeHierarchy(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	edges := [][2]string{
		{"root", "truth"}, {"root", "number"}, {"root", "entity"},
		{"entity", "point"}, {"entity", "1d"}, {"1d", "line"},
		{"entity", "2d"}, {"2d", "circle"}, {"2d", "polygon"}, {"polygon", "triangle"},
	}
	for _, e := range edges {
		_, err := g.AddEdge(e[0], e[1])
		require.NoError(t, err)
	}
	order, err := dfs.TopologicalSort(g)
	require.NoError(t, err)
	require.Len(t, order, 11)
	assert.Equal(t, "root", order[0])
	for _, e := range edges {
		assert.Less(t, position(order, e[0]), position(order, e[1]), "%s must precede %s", e[0], e[1])
	}
}

// TestTopo_Cycle ensures cycles are reported with the sentinel.
func TestTopo_Cycle(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	_, _ = g.AddEdge("a", "b")
	_, _ = g.AddEdge("b", "c")
	_, _ = g.AddEdge("c", "a")

	_, err := dfs.TopologicalSort(g)
	require.ErrorIs(t, err, dfs.ErrCycleDetected)
	assert.Contains(t, err.Error(), "[a b c a]")
}

// TestTopo_Cancelled ensures a cancelled context aborts the sort.
func TestTopo_Cancelled(t *testing.T) {
	g := core.NewGraph(core.WithDirected(true))
	_, _ = g.AddEdge("a", "b")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := dfs.TopologicalSort(g, dfs.WithCancelContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}
