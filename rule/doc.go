// SPDX-License-Identifier: MIT

// Package rule defines expansion hypotheses and enumerates them.
//
// A Slot is a signature anchored at a word position or at Implied (no
// surface word). A Rule expands a parent slot into one (UnaryRule) or two
// ordered (BinaryRule) child slots and carries the Context (sentence and
// tags) it was built over. Rule identity is its Key: positions and
// signature IDs only.
//
// An Enumerator serves one arity class and returns every legal rule for a
// parent slot given the positions already used on the current chain:
//
//	enum, _ := rule.NewEnumerator(catalog, ontology.Binary)
//	rules, err := enum.Enumerate(ctx, rule.At(2, equal), rule.NewPositionSet())
//
// By default a child fits an argument only when its return type equals the
// argument type; WithSubtypeMatching relaxes this to hierarchy reachability.
//
// ParseTuples reads gold annotations written as "Name@pos" tuples, e.g.
// {"Equal@2", "RadiusOf@4", "[5]@6"}, where 'x', [x] and <x> denote
// modifier, number and variable leaves and "@i" marks an implied slot.
package rule
