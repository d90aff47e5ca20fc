// SPDX-License-Identifier: MIT

package ontology

import (
	"bytes"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gopkg.in/yaml.v3"
)

// MaxCatalogFileSize bounds catalog files read by Load (1MB).
const MaxCatalogFileSize = 1024 * 1024

//go:embed catalog.yaml
var defaultCatalogYAML []byte

var (
	catalogLoadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geosolver_catalog_load_duration_seconds",
		Help:    "Duration of catalog parsing and validation",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	catalogLoadErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "geosolver_catalog_load_errors_total",
		Help: "Total catalog load failures",
	})
)

// File is the YAML layout of a catalog.
type File struct {
	Root          Type              `yaml:"root"`
	Types         []Type            `yaml:"types"`
	Hierarchy     [][]Type          `yaml:"hierarchy"`
	Start         string            `yaml:"start,omitempty"`
	Signatures    []Entry           `yaml:"signatures"`
	Abbreviations map[string]string `yaml:"abbreviations,omitempty"`
}

// Build validates f and returns the catalog it describes.
func (f *File) Build() (*Catalog, error) {
	edges := make([]TypeEdge, len(f.Hierarchy))
	for i, pair := range f.Hierarchy {
		if len(pair) != 2 {
			return nil, fmt.Errorf("ontology: hierarchy entry %d has %d types, want parent and child", i, len(pair))
		}
		edges[i] = TypeEdge{Parent: pair[0], Child: pair[1]}
	}
	h, err := NewHierarchy(f.Root, f.Types, edges)
	if err != nil {
		return nil, err
	}
	opts := []CatalogOption{WithAbbreviations(f.Abbreviations)}
	if f.Start != "" {
		opts = append(opts, WithStart(f.Start))
	}
	return NewCatalog(h, f.Signatures, opts...)
}

// Parse decodes a YAML catalog. Unknown fields are rejected.
func Parse(data []byte) (*Catalog, error) {
	start := time.Now()
	defer func() { catalogLoadDuration.Observe(time.Since(start).Seconds()) }()

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		catalogLoadErrors.Inc()
		return nil, fmt.Errorf("ontology: decode catalog: %w", err)
	}
	c, err := f.Build()
	if err != nil {
		catalogLoadErrors.Inc()
		return nil, err
	}
	return c, nil
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("ontology: %w", err)
	}
	if info.Size() > MaxCatalogFileSize {
		return nil, fmt.Errorf("ontology: catalog %s is %d bytes, limit %d", path, info.Size(), MaxCatalogFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ontology: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("catalog loaded", slog.String("path", path), slog.Int("signatures", c.Len()))
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded geometry catalog, parsed once per process.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(defaultCatalogYAML)
	})
	return defaultCatalog, defaultErr
}

// MustDefault is Default that panics if the embedded table is invalid.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}
