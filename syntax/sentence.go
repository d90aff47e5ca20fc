// SPDX-License-Identifier: MIT

// Package syntax holds a tokenised sentence and its dependency parse.
//
// Token positions are vertices of a directed core.Graph ("0", "1", ...),
// head→dependent arcs are its edges. Path lengths between positions ignore
// arc direction; the distance from a position to itself is the length of
// the shortest directed cycle through it, if any. All distances are
// computed once at construction, so a Sentence is safe for concurrent
// readers.
package syntax

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ashish33/geosolver2/bfs"
	"github.com/ashish33/geosolver2/core"
)

var (
	// ErrEmptySentence is returned for a sentence with no words.
	ErrEmptySentence = errors.New("syntax: sentence has no words")

	// ErrPositionOutOfRange is returned when an arc names a missing token.
	ErrPositionOutOfRange = errors.New("syntax: position out of range")
)

// Arc is one head→dependent dependency.
type Arc struct {
	Head      int    `yaml:"head"`
	Dependent int    `yaml:"dependent"`
	Relation  string `yaml:"relation,omitempty"`
}

// Sentence is an immutable token sequence with its dependency graph.
type Sentence struct {
	words []string
	arcs  []Arc
	graph *core.Graph
	dist  [][]int // -1 when unreachable
}

// NewSentence builds the dependency graph and the distance table.
func NewSentence(words []string, arcs ...Arc) (*Sentence, error) {
	if len(words) == 0 {
		return nil, ErrEmptySentence
	}
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())
	for i := range words {
		_ = g.AddVertex(vertexID(i))
	}
	for _, a := range arcs {
		if a.Head < 0 || a.Head >= len(words) || a.Dependent < 0 || a.Dependent >= len(words) {
			return nil, fmt.Errorf("%w: arc %d→%d over %d words", ErrPositionOutOfRange, a.Head, a.Dependent, len(words))
		}
		if _, err := g.AddEdge(vertexID(a.Head), vertexID(a.Dependent), core.WithEdgeLabel(a.Relation)); err != nil {
			return nil, fmt.Errorf("syntax: arc %d→%d: %w", a.Head, a.Dependent, err)
		}
	}

	s := &Sentence{
		words: append([]string(nil), words...),
		arcs:  append([]Arc(nil), arcs...),
		graph: g,
	}
	if err := s.computeDistances(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sentence) computeDistances() error {
	n := len(s.words)
	undirected := core.UndirectedView(s.graph)
	s.dist = make([][]int, n)
	for i := 0; i < n; i++ {
		row := make([]int, n)
		for j := range row {
			row[j] = -1
		}
		// no simple path between n words is longer than n-1 arcs
		res, err := bfs.BFS(undirected, vertexID(i), bfs.WithMaxDepth(n-1))
		if err != nil {
			return fmt.Errorf("syntax: distances from %d: %w", i, err)
		}
		for id, d := range res.Depth {
			j, _ := strconv.Atoi(id)
			row[j] = d
		}
		cycle, ok, err := bfs.ShortestCycleLength(s.graph, vertexID(i))
		if err != nil {
			return fmt.Errorf("syntax: cycle through %d: %w", i, err)
		}
		row[i] = -1
		if ok {
			row[i] = cycle
		}
		s.dist[i] = row
	}
	return nil
}

func vertexID(i int) string { return strconv.Itoa(i) }

// Len returns the number of words.
func (s *Sentence) Len() int { return len(s.words) }

// Words returns a copy of the tokens.
func (s *Sentence) Words() []string { return append([]string(nil), s.words...) }

// Word returns the token at i.
func (s *Sentence) Word(i int) (string, bool) {
	if i < 0 || i >= len(s.words) {
		return "", false
	}
	return s.words[i], true
}

// Arcs returns a copy of the dependency arcs.
func (s *Sentence) Arcs() []Arc { return append([]Arc(nil), s.arcs...) }

// Graph exposes the directed dependency graph. Callers must not mutate it.
func (s *Sentence) Graph() *core.Graph { return s.graph }

// Distance returns the undirected path length between two positions, or
// the shortest directed cycle length when i == j. ok is false when no such
// path exists or a position is out of range.
func (s *Sentence) Distance(i, j int) (int, bool) {
	if i < 0 || j < 0 || i >= len(s.words) || j >= len(s.words) {
		return 0, false
	}
	d := s.dist[i][j]
	return d, d >= 0
}

// String joins the tokens with spaces.
func (s *Sentence) String() string { return strings.Join(s.words, " ") }
