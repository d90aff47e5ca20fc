// SPDX-License-Identifier: MIT

// Package ontology defines the closed type system and the signature catalog
// that every formula is built from.
//
// Types
//
//	A Type is a name from a fixed set organised as a rooted hierarchy
//	(parent→child edges stored in a directed core.Graph). IsSubtype(child,
//	parent) is reachability from parent to child; a type is a subtype of
//	itself. Hierarchies are validated acyclic with dfs.TopologicalSort.
//
// Signatures
//
//	A Signature is a typed function (ordered argument types, per-argument
//	plurality flags, symmetric flag) or a variable (valence 0 leaf constant
//	such as a numeral or a named point). Signatures compare by ID and are
//	immutable once created. Arity classifies a signature as Leaf, Unary,
//	Binary or Nary.
//
// Catalog
//
//	A Catalog is an immutable registry of signatures addressed by ID, built
//	once from a table of entries. Default() returns the process-wide catalog
//	parsed from the embedded catalog.yaml (the geometry ontology); Load and
//	Parse read the same format from elsewhere.
//
// Errors:
//
//	ErrUnknownType         – a signature or hierarchy edge names an undeclared type
//	ErrDuplicateSignature  – two entries share an ID
//	ErrCyclicHierarchy     – the hierarchy has a directed cycle
//	ErrEmptyName           – empty type name or signature ID
//	ErrUnknownSignature    – a lookup (start symbol, abbreviation) names no entry
package ontology
