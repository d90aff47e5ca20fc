// SPDX-License-Identifier: MIT

// Package dfs provides depth-first algorithms on directed core.Graphs.
//
// TopologicalSort computes a linear ordering of vertices such that for every
// directed edge u→v, u appears before v. The ontology uses it to validate
// that a type hierarchy is acyclic and to list types parents-first.
//
// Vertices are started in sorted order and neighbors are visited in sorted
// order, so the ordering is deterministic.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V)     (recursion stack and state map)
//
// Errors:
//
//   - ErrGraphNil       if the graph pointer is nil.
//   - ErrUndirected     if the graph is not directed.
//   - ErrCycleDetected  if a directed cycle exists.
//   - ErrNeighborFetch  if neighbor lookup fails.
package dfs
