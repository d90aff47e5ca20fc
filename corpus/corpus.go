// SPDX-License-Identifier: MIT

// Package corpus reads annotated sentences from YAML.
//
// A corpus file lists examples, each with its tokens, dependency arcs and
// gold tuples in "Name@pos" notation:
//
//	examples:
//	  - words: [circle, O, has, a, radius, of, "5"]
//	    arcs:
//	      - {head: 2, dependent: 0, relation: nsubj}
//	    gold:
//	      - [StartTruth@i, Equal@2]
//	      - [Equal@2, RadiusOf@4, "[5]@6"]
//
// Examples without gold tuples are decoding inputs; their tags come from a
// tagger.
package corpus

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
	"github.com/ashish33/geosolver2/syntax"
)

// MaxFileSize bounds corpus files (16MB).
const MaxFileSize = 16 * 1024 * 1024

// ExampleYAML is one annotated sentence on disk.
type ExampleYAML struct {
	ID    string       `yaml:"id,omitempty"`
	Words []string     `yaml:"words"`
	Arcs  []syntax.Arc `yaml:"arcs,omitempty"`
	Gold  [][]string   `yaml:"gold,omitempty"`
}

// FileYAML is the corpus file layout.
type FileYAML struct {
	Examples []ExampleYAML `yaml:"examples"`
}

// Example is a parsed sentence with its gold annotation, if any.
type Example struct {
	ID       string
	Sentence *syntax.Sentence
	Gold     *rule.Gold
}

// Annotated reports whether the example carries gold tuples.
func (e *Example) Annotated() bool { return e.Gold != nil }

// Corpus is an ordered list of examples.
type Corpus struct {
	Examples []*Example
}

// Parse decodes YAML and resolves gold tuples against c.
func Parse(c *ontology.Catalog, data []byte) (*Corpus, error) {
	var f FileYAML
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("corpus: decode: %w", err)
	}
	out := &Corpus{Examples: make([]*Example, 0, len(f.Examples))}
	for i, ey := range f.Examples {
		ex, err := ey.build(c)
		if err != nil {
			name := ey.ID
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return nil, fmt.Errorf("corpus: example %s: %w", name, err)
		}
		out.Examples = append(out.Examples, ex)
	}
	return out, nil
}

func (ey ExampleYAML) build(c *ontology.Catalog) (*Example, error) {
	s, err := syntax.NewSentence(ey.Words, ey.Arcs...)
	if err != nil {
		return nil, err
	}
	ex := &Example{ID: ey.ID, Sentence: s}
	if len(ey.Gold) > 0 {
		if ex.Gold, err = rule.ParseTuples(c, s, ey.Gold); err != nil {
			return nil, err
		}
	}
	return ex, nil
}

// Load reads a corpus file.
func Load(c *ontology.Catalog, path string) (*Corpus, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("corpus: %s is %d bytes, limit %d", path, info.Size(), MaxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: %w", err)
	}
	out, err := Parse(c, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("corpus loaded", slog.String("path", path), slog.Int("examples", len(out.Examples)))
	return out, nil
}

// Golds returns the annotated examples' gold data.
func (c *Corpus) Golds() []*rule.Gold {
	var out []*rule.Gold
	for _, ex := range c.Examples {
		if ex.Annotated() {
			out = append(out, ex.Gold)
		}
	}
	return out
}

// UnaryRules concatenates every gold unary rule.
func (c *Corpus) UnaryRules() []rule.Rule {
	var out []rule.Rule
	for _, g := range c.Golds() {
		out = append(out, g.Unary...)
	}
	return out
}

// BinaryRules concatenates every gold binary rule.
func (c *Corpus) BinaryRules() []rule.Rule {
	var out []rule.Rule
	for _, g := range c.Golds() {
		out = append(out, g.Binary...)
	}
	return out
}
