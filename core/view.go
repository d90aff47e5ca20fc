// SPDX-License-Identifier: MIT

// File: view.go
// Role: Non-mutating graph views (cloning topology with altered properties).

package core

// UndirectedView returns a new undirected Graph with the same vertices and
// one undirected edge per source edge. Labels and edge IDs are preserved;
// loops are kept only when the source permits them. The input is not mutated.
//
// Complexity: O(V + E). Concurrency: read lock only on source.
func UndirectedView(g *Graph) *Graph {
	opts := []GraphOption{WithDirected(false), WithMultiEdges()}
	if g.allowLoops {
		opts = append(opts, WithLoops())
	}
	out := NewGraph(opts...)

	g.mu.RLock()
	defer g.mu.RUnlock()
	for id, v := range g.vertices {
		out.vertices[id] = &Vertex{ID: v.ID, Metadata: v.Metadata}
		out.adjacency[id] = make(map[string]map[string]struct{})
	}
	for eid, e := range g.edges {
		ne := &Edge{ID: eid, From: e.From, To: e.To, Label: e.Label}
		out.edges[eid] = ne
		out.link(ne.From, ne.To, eid)
		if ne.From != ne.To {
			out.link(ne.To, ne.From, eid)
		}
	}
	out.nextEdgeID = g.nextEdgeID

	return out
}
