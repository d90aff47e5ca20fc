// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first search over a core.Graph, returning
// unweighted shortest-path distances and visit order.
//
// What
//
//   - BFS explores vertices in non-decreasing distance (edge count) from a
//     start vertex and returns a BFSResult (Order, Depth). The syntax
//     package runs it once per word over the undirected view of the
//     dependency graph, bounded by WithMaxDepth, and reads Depth as the
//     word-distance row.
//   - ShortestPathLength answers the edge-count distance between two
//     vertices.
//   - Reachable answers descendant queries; the ontology uses it for
//     subtype checks over the directed type hierarchy.
//   - ShortestCycleLength reports the length of the shortest directed cycle
//     through a vertex (the "self distance" of a token).
//
// Determinism
//
//	core.Graph.NeighborIDs returns sorted IDs, so the visit sequence is
//	fully reproducible.
//
// Complexity (V = |Vertices|, E = |Edges|)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Options
//
//   - WithContext(ctx):        cancellation, checked once per dequeued vertex.
//   - WithMaxDepth(d):         stop exploring beyond depth d (>0); 0 = no limit.
//
// Errors
//
//   - ErrGraphNil             if the graph pointer is nil.
//   - ErrStartVertexNotFound  if the start vertex does not exist.
//   - ErrOptionViolation      if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNeighbors            if neighbor lookup fails.
package bfs
