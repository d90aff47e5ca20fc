// SPDX-License-Identifier: MIT

// Package core provides the small, thread-safe in-memory Graph used by the
// rest of the module: the type hierarchy of the ontology and the dependency
// syntax graph of a sentence are both stored as a core.Graph.
//
// The Graph G = (V,E) supports:
//
//   - Directed vs. undirected edges (WithDirected)
//   - Self-loops (WithLoops)
//   - Parallel edges (WithMultiEdges)
//   - Optional per-edge labels (WithEdgeLabel), e.g. dependency relations
//   - Constant-time edge operations via nested maps:
//     adjacency[from][to][edgeID] = struct{}{}
//   - Deterministic iteration: Vertices(), Edges(), NeighborIDs() are sorted
//
// Views:
//
//	UndirectedView(g) returns a fresh undirected copy of g. Path-length
//	features over dependency trees use it so that a head→dependent arc can be
//	walked in both directions.
//
// Errors:
//
//	ErrEmptyVertexID       – zero-length vertex ID
//	ErrVertexNotFound      – missing vertex
//	ErrLoopNotAllowed      – self-loop when loops disabled
//	ErrMultiEdgeNotAllowed – parallel edge when multi-edges disabled
package core
