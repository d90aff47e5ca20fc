// SPDX-License-Identifier: MIT

package dfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/ashish33/geosolver2/core"
)

// Vertex visitation states.
const (
	White = iota // not visited yet
	Gray         // in the recursion stack
	Black        // fully explored
)

var (
	// ErrGraphNil is returned when a nil *core.Graph is passed.
	ErrGraphNil = errors.New("dfs: graph is nil")

	// ErrUndirected is returned when an undirected graph is passed to TopologicalSort.
	ErrUndirected = errors.New("dfs: topological sort requires a directed graph")

	// ErrCycleDetected indicates that a directed cycle was encountered.
	ErrCycleDetected = errors.New("dfs: cycle detected")

	// ErrNeighborFetch indicates a failure to retrieve neighbors from the graph.
	ErrNeighborFetch = errors.New("dfs: failed to fetch neighbors")
)

// TopoOption configures optional behavior for TopologicalSort.
type TopoOption func(*topoOptions)

type topoOptions struct {
	ctx context.Context
}

// WithCancelContext sets the cancellation context. A nil context has no effect.
func WithCancelContext(ctx context.Context) TopoOption {
	return func(o *topoOptions) {
		if ctx != nil {
			o.ctx = ctx
		}
	}
}

type topoSorter struct {
	graph *core.Graph
	opts  topoOptions
	state map[string]int
	order []string
	stack []string
}

// TopologicalSort computes a topological ordering of all vertices in g.
// A cycle is reported as ErrCycleDetected wrapped with the offending path.
func TopologicalSort(g *core.Graph, options ...TopoOption) ([]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	if !g.Directed() {
		return nil, ErrUndirected
	}
	opts := topoOptions{ctx: context.Background()}
	for _, opt := range options {
		opt(&opts)
	}

	verts := g.Vertices()
	sorter := &topoSorter{
		graph: g,
		opts:  opts,
		state: make(map[string]int, len(verts)),
		order: make([]string, 0, len(verts)),
	}
	for _, v := range verts {
		if sorter.state[v] == White {
			if err := sorter.visit(v); err != nil {
				return nil, err
			}
		}
	}
	// reverse post-order
	for i, j := 0, len(sorter.order)-1; i < j; i, j = i+1, j-1 {
		sorter.order[i], sorter.order[j] = sorter.order[j], sorter.order[i]
	}

	return sorter.order, nil
}

func (t *topoSorter) visit(id string) error {
	select {
	case <-t.opts.ctx.Done():
		return t.opts.ctx.Err()
	default:
	}
	switch t.state[id] {
	case Gray:
		return fmt.Errorf("%w: %v", ErrCycleDetected, append(t.cyclePath(id), id))
	case Black:
		return nil
	}
	t.state[id] = Gray
	t.stack = append(t.stack, id)

	neighbors, err := t.graph.NeighborIDs(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNeighborFetch, err)
	}
	for _, nbr := range neighbors {
		if err = t.visit(nbr); err != nil {
			return err
		}
	}

	t.stack = t.stack[:len(t.stack)-1]
	t.state[id] = Black
	t.order = append(t.order, id)

	return nil
}

// cyclePath returns the suffix of the recursion stack starting at id.
func (t *topoSorter) cyclePath(id string) []string {
	for i, v := range t.stack {
		if v == id {
			return append([]string(nil), t.stack[i:]...)
		}
	}
	return nil
}
