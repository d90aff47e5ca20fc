// SPDX-License-Identifier: MIT

package ontology

import (
	"fmt"
	"sort"
	"strings"
)

// Entry is one row of a catalog table.
//
// Args use the textual form of argument types: a leading '*' marks the
// argument as plural ("*point" is a set of points).
type Entry struct {
	ID        string   `yaml:"id"`
	Name      string   `yaml:"name,omitempty"`
	Returns   Type     `yaml:"returns"`
	Args      []string `yaml:"args,omitempty"`
	Symmetric bool     `yaml:"symmetric,omitempty"`
	Variable  bool     `yaml:"variable,omitempty"`
}

// Catalog is an immutable registry of signatures keyed by ID.
type Catalog struct {
	hierarchy     *Hierarchy
	byID          map[string]*Signature
	ordered       []*Signature
	abbreviations map[string]*Signature
	start         *Signature
}

// CatalogOption configures NewCatalog.
type CatalogOption func(*catalogConfig)

type catalogConfig struct {
	abbreviations map[string]string
	start         string
}

// WithAbbreviations maps surface symbols ("+", "=") to signature IDs.
func WithAbbreviations(abbrev map[string]string) CatalogOption {
	return func(c *catalogConfig) {
		for k, v := range abbrev {
			c.abbreviations[k] = v
		}
	}
}

// WithStart names the distinguished start signature.
func WithStart(id string) CatalogOption {
	return func(c *catalogConfig) { c.start = id }
}

// NewCatalog validates entries against h and builds the registry.
func NewCatalog(h *Hierarchy, entries []Entry, opts ...CatalogOption) (*Catalog, error) {
	cfg := catalogConfig{abbreviations: make(map[string]string)}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Catalog{
		hierarchy:     h,
		byID:          make(map[string]*Signature, len(entries)),
		ordered:       make([]*Signature, 0, len(entries)),
		abbreviations: make(map[string]*Signature, len(cfg.abbreviations)),
	}
	for _, e := range entries {
		sig, err := e.signature(h)
		if err != nil {
			return nil, err
		}
		if _, dup := c.byID[sig.id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSignature, sig.id)
		}
		c.byID[sig.id] = sig
		c.ordered = append(c.ordered, sig)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].id < c.ordered[j].id })

	for sym, id := range cfg.abbreviations {
		sig, ok := c.byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: abbreviation %q → %q", ErrUnknownSignature, sym, id)
		}
		c.abbreviations[sym] = sig
	}
	if cfg.start != "" {
		sig, ok := c.byID[cfg.start]
		if !ok {
			return nil, fmt.Errorf("%w: start %q", ErrUnknownSignature, cfg.start)
		}
		c.start = sig
	}

	return c, nil
}

func (e Entry) signature(h *Hierarchy) (*Signature, error) {
	if e.ID == "" {
		return nil, fmt.Errorf("%w: signature id", ErrEmptyName)
	}
	if !h.Has(e.Returns) {
		return nil, fmt.Errorf("%w: %q returns %q", ErrUnknownType, e.ID, e.Returns)
	}
	if e.Variable {
		if len(e.Args) > 0 {
			return nil, fmt.Errorf("ontology: variable %q takes no arguments", e.ID)
		}
		return NewVariable(e.ID, e.Returns, WithName(e.Name)), nil
	}

	args := make([]Type, len(e.Args))
	plural := make([]bool, len(e.Args))
	for i, raw := range e.Args {
		plural[i] = strings.HasPrefix(raw, "*")
		args[i] = Type(strings.TrimPrefix(raw, "*"))
		if !h.Has(args[i]) {
			return nil, fmt.Errorf("%w: %q argument %d is %q", ErrUnknownType, e.ID, i, args[i])
		}
	}
	opts := []SignatureOption{WithName(e.Name), WithPluralities(plural...)}
	if e.Symmetric {
		if len(args) != 2 {
			return nil, fmt.Errorf("ontology: symmetric %q must be binary", e.ID)
		}
		opts = append(opts, WithSymmetric())
	}

	return NewFunction(e.ID, e.Returns, args, opts...), nil
}

// Hierarchy returns the type hierarchy the catalog was validated against.
func (c *Catalog) Hierarchy() *Hierarchy { return c.hierarchy }

// Len returns the number of signatures.
func (c *Catalog) Len() int { return len(c.ordered) }

// Get looks a signature up by ID.
func (c *Catalog) Get(id string) (*Signature, bool) {
	s, ok := c.byID[id]
	return s, ok
}

// MustGet is Get that panics on a missing ID. Intended for fixed tables
// and tests.
func (c *Catalog) MustGet(id string) *Signature {
	s, ok := c.byID[id]
	if !ok {
		panic(fmt.Sprintf("ontology: no signature %q", id))
	}
	return s
}

// Signatures lists every signature ordered by ID.
func (c *Catalog) Signatures() []*Signature {
	return append([]*Signature(nil), c.ordered...)
}

// Leaves lists every valence-0 signature ordered by ID.
func (c *Catalog) Leaves() []*Signature { return c.ByArity(Leaf) }

// ByArity lists the signatures of one arity class ordered by ID.
func (c *Catalog) ByArity(a Arity) []*Signature {
	var out []*Signature
	for _, s := range c.ordered {
		if s.Arity() == a {
			out = append(out, s)
		}
	}
	return out
}

// Abbreviation resolves a surface symbol such as "+" or "\sqrt".
func (c *Catalog) Abbreviation(symbol string) (*Signature, bool) {
	s, ok := c.abbreviations[symbol]
	return s, ok
}

// Start returns the distinguished start signature, if one was configured.
func (c *Catalog) Start() (*Signature, bool) {
	return c.start, c.start != nil
}

// IsSubtype is a shorthand for c.Hierarchy().IsSubtype.
func (c *Catalog) IsSubtype(child, parent Type) bool {
	return c.hierarchy.IsSubtype(child, parent)
}
