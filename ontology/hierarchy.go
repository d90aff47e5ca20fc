// SPDX-License-Identifier: MIT

package ontology

import (
	"errors"
	"fmt"

	"github.com/ashish33/geosolver2/bfs"
	"github.com/ashish33/geosolver2/core"
	"github.com/ashish33/geosolver2/dfs"
)

// TypeEdge declares Child as a direct subtype of Parent.
type TypeEdge struct {
	Parent Type
	Child  Type
}

// Hierarchy is an immutable rooted DAG of types.
type Hierarchy struct {
	root  Type
	graph *core.Graph
	order []Type
}

// NewHierarchy builds a hierarchy from root, the declared types and the
// parent→child edges. Declared types that never appear as a child are
// attached directly below root. Every edge endpoint must be declared (root
// is implicitly declared).
func NewHierarchy(root Type, types []Type, edges []TypeEdge) (*Hierarchy, error) {
	if root == "" {
		return nil, fmt.Errorf("%w: root type", ErrEmptyName)
	}
	g := core.NewGraph(core.WithDirected(true))
	_ = g.AddVertex(string(root))

	declared := map[Type]bool{root: true}
	for _, t := range types {
		if t == "" {
			return nil, fmt.Errorf("%w: type", ErrEmptyName)
		}
		declared[t] = true
		_ = g.AddVertex(string(t))
	}

	hasParent := make(map[Type]bool, len(edges))
	for _, e := range edges {
		for _, t := range []Type{e.Parent, e.Child} {
			if !declared[t] {
				return nil, fmt.Errorf("%w: %q in edge %s→%s", ErrUnknownType, t, e.Parent, e.Child)
			}
		}
		if e.Child == root || e.Parent == e.Child {
			return nil, fmt.Errorf("%w: edge %s→%s", ErrCyclicHierarchy, e.Parent, e.Child)
		}
		if g.HasEdge(string(e.Parent), string(e.Child)) {
			continue
		}
		if _, err := g.AddEdge(string(e.Parent), string(e.Child)); err != nil {
			return nil, fmt.Errorf("ontology: edge %s→%s: %w", e.Parent, e.Child, err)
		}
		hasParent[e.Child] = true
	}
	for _, t := range types {
		if t != root && !hasParent[t] {
			if _, err := g.AddEdge(string(root), string(t)); err != nil {
				return nil, fmt.Errorf("ontology: attach %s: %w", t, err)
			}
		}
	}

	ids, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return nil, fmt.Errorf("%w: %v", ErrCyclicHierarchy, err)
		}
		return nil, err
	}
	order := make([]Type, len(ids))
	for i, id := range ids {
		order[i] = Type(id)
	}

	return &Hierarchy{root: root, graph: g, order: order}, nil
}

// Root returns the root type.
func (h *Hierarchy) Root() Type { return h.root }

// Has reports whether t is a declared type.
func (h *Hierarchy) Has(t Type) bool { return h.graph.HasVertex(string(t)) }

// Types lists every type, parents before children.
func (h *Hierarchy) Types() []Type { return append([]Type(nil), h.order...) }

// Len returns the number of types including the root.
func (h *Hierarchy) Len() int { return len(h.order) }

// IsSubtype reports whether child equals parent or descends from it.
// Unknown types are subtypes of nothing.
func (h *Hierarchy) IsSubtype(child, parent Type) bool {
	if child == parent {
		return h.Has(child)
	}
	return bfs.Reachable(h.graph, string(parent), string(child))
}

// Children returns the direct subtypes of t in sorted order.
func (h *Hierarchy) Children(t Type) []Type {
	ids, err := h.graph.NeighborIDs(string(t))
	if err != nil {
		return nil
	}
	out := make([]Type, len(ids))
	for i, id := range ids {
		out[i] = Type(id)
	}
	return out
}
