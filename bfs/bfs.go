// SPDX-License-Identifier: MIT

package bfs

import (
	"context"
	"fmt"

	"github.com/ashish33/geosolver2/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	graph   *core.Graph
	opts    BFSOptions
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *BFSResult
}

// BFS runs breadth-first search on g starting from startID.
// Returns ErrGraphNil or ErrStartVertexNotFound for invalid input,
// ErrOptionViolation for bad options, ErrNeighbors for graph failures,
// or the context error on cancellation.
func BFS(g *core.Graph, startID string, opts ...Option) (*BFSResult, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	n := g.VertexCount()
	w := &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &BFSResult{
			Order: make([]string, 0, n),
			Depth: make(map[string]int, n),
		},
	}
	w.enqueue(startID, 0)

	return w.res, w.loop()
}

func (w *walker) enqueue(id string, d int) {
	w.visited[id] = true
	w.res.Depth[id] = d
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.enqueueNeighbors(item); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) enqueueNeighbors(item queueItem) error {
	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("%w: failed to get neighbors of %q: %v", ErrNeighbors, item.id, err)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range neighbors {
		if !w.visited[nbr] {
			w.enqueue(nbr, next)
		}
	}
	return nil
}

// ShortestPathLength returns the number of edges on a shortest path from
// 'from' to 'to', honoring edge direction. ok is false when 'to' is not
// reachable. Distance from a vertex to itself is 0.
func ShortestPathLength(g *core.Graph, from, to string, opts ...Option) (dist int, ok bool, err error) {
	if g != nil && !g.HasVertex(to) {
		return 0, false, nil
	}
	res, err := BFS(g, from, opts...)
	if err != nil {
		return 0, false, err
	}
	dist, ok = res.Depth[to]

	return dist, ok, nil
}

// Reachable reports whether 'to' is reachable from 'from'. Every existing
// vertex reaches itself. Missing vertices are unreachable.
func Reachable(g *core.Graph, from, to string) bool {
	if g == nil || !g.HasVertex(from) || !g.HasVertex(to) {
		return false
	}
	_, ok, err := ShortestPathLength(g, from, to)

	return err == nil && ok
}

// ShortestCycleLength returns the length (in edges) of the shortest cycle
// that starts and ends at id, following edge direction. A self-loop has
// length 1. ok is false when id lies on no cycle.
//
// On undirected graphs every edge forms a trivial 2-cycle; callers wanting
// simple cycles should pass a directed graph.
func ShortestCycleLength(g *core.Graph, id string) (length int, ok bool, err error) {
	if g == nil {
		return 0, false, ErrGraphNil
	}
	if !g.HasVertex(id) {
		return 0, false, ErrStartVertexNotFound
	}
	if g.HasEdge(id, id) {
		return 1, true, nil
	}
	succ, err := g.NeighborIDs(id)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrNeighbors, err)
	}
	best := -1
	for _, s := range succ {
		d, reached, err := ShortestPathLength(g, s, id)
		if err != nil {
			return 0, false, err
		}
		if reached && (best < 0 || d+1 < best) {
			best = d + 1
		}
	}
	if best < 0 {
		return 0, false, nil
	}

	return best, true, nil
}
