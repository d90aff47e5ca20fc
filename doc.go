// SPDX-License-Identifier: MIT

// Package geosolver turns tagged, dependency-parsed geometry sentences into
// weighted sets of typed logical formulas.
//
// "circle O has a radius of 5" decodes, with the trained models, to
//
//	StartTruth(Equal(RadiusOf(Circle(O)),5))   0.995
//
// What's inside:
//
//	ontology/  type hierarchy, function signatures and the embedded geometry catalog
//	formula/   immutable typed formula trees
//	syntax/    tokens, dependency arcs and word distances
//	rule/      tagged contexts, unary/binary rules and their enumerator
//	feature/   distance features over rules
//	loglinear/ per-arity log-linear models with BFGS training
//	decoder/   recursive decoder merging identical trees by log-sum-exp
//	tagger/    deterministic word-to-signature tagging
//	corpus/    YAML corpora of annotated sentences
//	config/    YAML configuration and persisted weights
//	core/, bfs/, dfs/ the small graph layer behind the hierarchy and sentences
//
// The command in cmd/geosolver trains both models on a corpus and decodes
// sentences with them:
//
//	go install github.com/ashish33/geosolver2/cmd/geosolver@latest
package geosolver
