// SPDX-License-Identifier: MIT

// Package config loads and saves the geosolver YAML configuration.
//
// A configuration names the catalog (empty for the embedded geometry
// ontology), holds the weights of both models, the training and decoding
// parameters and the tagger lexicon. Save writes trained weights back so a
// later decode run can pick them up.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ashish33/geosolver2/feature"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the root YAML document.
type Config struct {
	// Catalog is a catalog YAML path; empty selects the embedded catalog.
	Catalog  string         `yaml:"catalog,omitempty"`
	Model    ModelConfig    `yaml:"model"`
	Training TrainingConfig `yaml:"training"`
	Decoder  DecoderConfig  `yaml:"decoder"`
	Tagger   TaggerConfig   `yaml:"tagger"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ModelConfig holds the weight vectors. Empty means all zero.
type ModelConfig struct {
	UnaryWeights  []float64 `yaml:"unary_weights,omitempty"`
	BinaryWeights []float64 `yaml:"binary_weights,omitempty"`
	// SubtypeMatching lets children match argument types by subtype.
	SubtypeMatching bool `yaml:"subtype_matching,omitempty"`
}

// TrainingConfig parameterizes BFGS training.
type TrainingConfig struct {
	L2                float64 `yaml:"l2"`
	MaxIterations     int     `yaml:"max_iterations"`
	GradientThreshold float64 `yaml:"gradient_threshold"`
}

// DecoderConfig parameterizes decoding.
type DecoderConfig struct {
	// MaxResults keeps the n best formulas per sentence; 0 keeps all.
	MaxResults int `yaml:"max_results"`
	// Parallelism bounds concurrent sentences; 0 means unbounded.
	Parallelism int `yaml:"parallelism"`
}

// TaggerConfig configures the deterministic tagger.
type TaggerConfig struct {
	// Lexicon maps words to catalog signature IDs.
	Lexicon map[string]string `yaml:"lexicon,omitempty"`
	// NumberType tags numeric literals; empty disables.
	NumberType string `yaml:"number_type,omitempty"`
	// LabelType tags short uppercase tokens; empty disables.
	LabelType string `yaml:"label_type,omitempty"`
	// MaxLabelLength bounds label tokens.
	MaxLabelLength int `yaml:"max_label_length,omitempty"`
	CaseFolding    bool `yaml:"case_folding,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Training: TrainingConfig{
			L2:                0.1,
			MaxIterations:     200,
			GradientThreshold: 1e-6,
		},
		Decoder: DecoderConfig{Parallelism: 4},
		Tagger: TaggerConfig{
			NumberType:     "number",
			LabelType:      "modifier",
			MaxLabelLength: 3,
			CaseFolding:    true,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML.
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Validate checks ranges and weight dimensions.
func (c *Config) Validate() error {
	var errs []error
	if n := len(c.Model.UnaryWeights); n != 0 && n != feature.UnaryDim {
		errs = append(errs, fmt.Errorf("unary_weights has %d entries, want %d", n, feature.UnaryDim))
	}
	if n := len(c.Model.BinaryWeights); n != 0 && n != feature.BinaryDim {
		errs = append(errs, fmt.Errorf("binary_weights has %d entries, want %d", n, feature.BinaryDim))
	}
	if c.Training.L2 < 0 {
		errs = append(errs, fmt.Errorf("training.l2 %v is negative", c.Training.L2))
	}
	if c.Training.MaxIterations < 0 {
		errs = append(errs, fmt.Errorf("training.max_iterations %d is negative", c.Training.MaxIterations))
	}
	if c.Training.GradientThreshold <= 0 {
		errs = append(errs, fmt.Errorf("training.gradient_threshold %v must be positive", c.Training.GradientThreshold))
	}
	if c.Decoder.MaxResults < 0 || c.Decoder.Parallelism < 0 {
		errs = append(errs, errors.New("decoder limits must be non-negative"))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log_level %q", c.LogLevel)
}
