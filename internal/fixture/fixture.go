// SPDX-License-Identifier: MIT

// Package fixture holds the small radius-of-a-circle ontology and sentence
// shared by package tests.
package fixture

import (
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

// Words is the tokenised sentence "circle O has a radius of 5".
var Words = []string{"circle", "O", "has", "a", "radius", "of", "5"}

// Arcs is a dependency parse of Words rooted at "has".
var Arcs = []syntax.Arc{
	{Head: 2, Dependent: 0, Relation: "nsubj"},
	{Head: 0, Dependent: 1, Relation: "appos"},
	{Head: 2, Dependent: 4, Relation: "dobj"},
	{Head: 4, Dependent: 3, Relation: "det"},
	{Head: 4, Dependent: 5, Relation: "prep"},
	{Head: 5, Dependent: 6, Relation: "pobj"},
}

// GoldTuples annotates Words with the derivation of
// StartTruth(Equal(RadiusOf(Circle(O)),5)).
var GoldTuples = [][]string{
	{"StartTruth@i", "Equal@2"},
	{"Equal@2", "RadiusOf@4", "[5]@6"},
	{"RadiusOf@4", "Circle@0"},
	{"Circle@0", "'O'@1"},
}

// Catalog returns the six-signature radius ontology.
func Catalog() *ontology.Catalog {
	h, err := ontology.NewHierarchy("root", []ontology.Type{"truth", "number", "circle", "modifier"}, nil)
	if err != nil {
		panic(err)
	}
	c, err := ontology.NewCatalog(h, []ontology.Entry{
		{ID: "StartTruth", Returns: "truth", Args: []string{"truth"}},
		{ID: "Equal", Returns: "truth", Args: []string{"number", "number"}},
		{ID: "RadiusOf", Returns: "number", Args: []string{"circle"}},
		{ID: "Circle", Returns: "circle", Args: []string{"modifier"}},
		{ID: "O", Returns: "modifier", Variable: true},
		{ID: "5", Returns: "number", Variable: true},
	}, ontology.WithStart("StartTruth"))
	if err != nil {
		panic(err)
	}
	return c
}

// Sentence returns Words with Arcs.
func Sentence() *syntax.Sentence {
	s, err := syntax.NewSentence(Words, Arcs...)
	if err != nil {
		panic(err)
	}
	return s
}

// Tags tags circle, O, has, radius and 5 with their signatures in c.
func Tags(c *ontology.Catalog) rule.Tags {
	return rule.Tags{
		0: c.MustGet("Circle"),
		1: c.MustGet("O"),
		2: c.MustGet("Equal"),
		4: c.MustGet("RadiusOf"),
		6: c.MustGet("5"),
	}
}

// Context pairs Sentence with Tags.
func Context(c *ontology.Catalog) *rule.Context {
	return rule.NewContext(Sentence(), Tags(c))
}
