// SPDX-License-Identifier: MIT

// Package core: vertex and edge method implementations for Graph.
// Adjacency is stored as adjacency[from][to][edgeID] = struct{}{},
// allowing constant-time existence, insertion and lookup of edges.

package core

import (
	"fmt"
	"sort"
)

const edgeIDPrefix = "e"

// AddVertex inserts a new vertex with the given ID into the Graph.
// Returns ErrEmptyVertexID if id is empty. Adding an existing vertex is a no-op.
// Complexity: O(1) amortized.
func (g *Graph) AddVertex(id string) error {
	if id == "" {
		return ErrEmptyVertexID
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addVertexLocked(id)

	return nil
}

func (g *Graph) addVertexLocked(id string) {
	if _, exists := g.vertices[id]; exists {
		return
	}
	g.vertices[id] = &Vertex{ID: id, Metadata: make(map[string]interface{})}
	g.adjacency[id] = make(map[string]map[string]struct{})
}

// HasVertex reports whether a vertex with the given ID exists in the graph.
// Complexity: O(1).
func (g *Graph) HasVertex(id string) bool {
	if id == "" {
		return false
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, exists := g.vertices[id]

	return exists
}

// AddEdge creates a new edge from 'from' to 'to', adding missing endpoints,
// and returns its unique Edge.ID. Undirected edges are mirrored in the
// adjacency so that both endpoints see each other as neighbors.
//
// Returns ErrEmptyVertexID, ErrLoopNotAllowed or ErrMultiEdgeNotAllowed.
// Complexity: O(1).
func (g *Graph) AddEdge(from, to string, opts ...EdgeOption) (string, error) {
	if from == "" || to == "" {
		return "", ErrEmptyVertexID
	}
	if from == to && !g.allowLoops {
		return "", ErrLoopNotAllowed
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.allowMulti {
		if inner, ok := g.adjacency[from][to]; ok && len(inner) > 0 {
			return "", ErrMultiEdgeNotAllowed
		}
	}
	g.addVertexLocked(from)
	g.addVertexLocked(to)

	g.nextEdgeID++
	eid := fmt.Sprintf("%s%d", edgeIDPrefix, g.nextEdgeID)
	e := &Edge{ID: eid, From: from, To: to, Directed: g.directed}
	for _, opt := range opts {
		opt(e)
	}
	g.edges[eid] = e
	g.link(from, to, eid)
	if !e.Directed && from != to {
		g.link(to, from, eid)
	}

	return eid, nil
}

func (g *Graph) link(from, to, eid string) {
	if g.adjacency[from][to] == nil {
		g.adjacency[from][to] = make(map[string]struct{})
	}
	g.adjacency[from][to][eid] = struct{}{}
}

// HasEdge reports true if at least one edge from 'from' to 'to' exists.
// Complexity: O(1).
func (g *Graph) HasEdge(from, to string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	inner, ok := g.adjacency[from][to]

	return ok && len(inner) > 0
}

// NeighborIDs returns the IDs of all vertices reachable from id over one
// edge, honoring edge direction. The result is unique and sorted.
// Complexity: O(d log d)
func (g *Graph) NeighborIDs(id string) ([]string, error) {
	if id == "" {
		return nil, ErrEmptyVertexID
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if _, ok := g.vertices[id]; !ok {
		return nil, ErrVertexNotFound
	}
	ids := make([]string, 0, len(g.adjacency[id]))
	for to, set := range g.adjacency[id] {
		if len(set) > 0 {
			ids = append(ids, to)
		}
	}
	sort.Strings(ids)

	return ids, nil
}

// Vertices returns all vertex IDs in sorted order.
// Complexity: O(V·logV)
func (g *Graph) Vertices() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]string, 0, len(g.vertices))
	for id := range g.vertices {
		out = append(out, id)
	}
	sort.Strings(out)

	return out
}

// Edges returns all edges sorted by their ID.
// Complexity: O(E·logE)
func (g *Graph) Edges() []*Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return edgeLess(out[i].ID, out[j].ID) })

	return out
}

// edgeLess orders "e2" before "e10".
func edgeLess(a, b string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

// VertexCount returns the number of vertices.
func (g *Graph) VertexCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.vertices)
}

// EdgeCount returns the number of edges (mirrors are not counted twice).
func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.edges)
}

// Directed reports whether new edges default to directed.
func (g *Graph) Directed() bool {
	return g.directed
}

// Looped reports whether self-loops are permitted.
func (g *Graph) Looped() bool {
	return g.allowLoops
}

// Multigraph reports whether parallel edges are permitted.
func (g *Graph) Multigraph() bool {
	return g.allowMulti
}
