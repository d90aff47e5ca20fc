// SPDX-License-Identifier: MIT

// Package decoder enumerates and weights complete derivations.
//
// Starting from an implied unary start signature, the decoder expands each
// slot with the model of its arity: leaves terminate with log-probability
// 0, unary slots recurse into their single child, binary slots recurse into
// both children independently and take the cross product. A derivation's
// log-probability is the sum of its local rule log-probabilities. Distinct
// derivations that build the same formula tree (for example through a
// tagged word or an implied constant with the same signature) are merged
// by log-sum-exp.
//
// Each expansion adds its own position to the exclusion set passed down to
// its children, so no position is expanded twice along one root-to-leaf
// chain. Sibling branches do not share exclusions: a word used inside one
// argument may reappear inside the other. Every chain therefore has at
// most len(words)+1 expansions and decoding terminates.
//
// Signatures of valence three or more have no model and end their branch
// without mass. Subtrees are memoized per (slot, exclusion set) within one
// call.
//
//	dec, _ := decoder.New(unaryModel, binaryModel)
//	dist, err := dec.FormulaDistribution(ctx, decoder.Input{Context: rc, Start: start})
//	best, _ := dist.Best()
package decoder
