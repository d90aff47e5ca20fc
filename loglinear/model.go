// SPDX-License-Identifier: MIT

package loglinear

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/ashish33/geosolver2/feature"
	"github.com/ashish33/geosolver2/ontology"
	"github.com/ashish33/geosolver2/rule"
)

var (
	// ErrNilEnumerator is returned when New receives no enumerator.
	ErrNilEnumerator = errors.New("loglinear: enumerator is nil")

	// ErrNilFeatures is returned when New receives no feature function.
	ErrNilFeatures = errors.New("loglinear: feature function is nil")

	// ErrDimension is returned when a weight or feature vector has the wrong length.
	ErrDimension = errors.New("loglinear: vector length does not match model dimension")

	// ErrNegativeL2 is returned for a negative regularization coefficient.
	ErrNegativeL2 = errors.New("loglinear: l2 coefficient must be non-negative")

	// ErrEmptyCorpus is returned when Train receives no rules.
	ErrEmptyCorpus = errors.New("loglinear: empty training corpus")

	// ErrOptimizationDidNotConverge is returned when the optimizer stops
	// without reaching a stationary point.
	ErrOptimizationDidNotConverge = errors.New("loglinear: optimization did not converge")
)

// Model is a log-linear distribution over the rules of one arity class.
// Weights are guarded by an RWMutex; scoring takes a snapshot so concurrent
// readers never observe a half-written weight vector.
type Model struct {
	mu      sync.RWMutex
	weights []float64

	enum     *rule.Enumerator
	features feature.Func
	dim      int
	logger   *slog.Logger

	maxIterations int
	gradThreshold float64
	tolerance     float64
}

// Option configures a Model.
type Option func(*Model) error

// WithWeights sets the initial weights (zero by default).
func WithWeights(w []float64) Option {
	return func(m *Model) error {
		if len(w) != m.dim {
			return fmt.Errorf("%w: got %d weights, want %d", ErrDimension, len(w), m.dim)
		}
		m.weights = append([]float64(nil), w...)
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) error {
		if l != nil {
			m.logger = l
		}
		return nil
	}
}

// WithMaxIterations bounds BFGS major iterations; 0 means unbounded.
func WithMaxIterations(n int) Option {
	return func(m *Model) error {
		if n < 0 {
			return fmt.Errorf("loglinear: max iterations %d is negative", n)
		}
		m.maxIterations = n
		return nil
	}
}

// WithGradientThreshold sets the gradient infinity-norm at which training
// stops successfully.
func WithGradientThreshold(g float64) Option {
	return func(m *Model) error {
		if !(g > 0) {
			return fmt.Errorf("loglinear: gradient threshold %v must be positive", g)
		}
		m.gradThreshold = g
		if m.tolerance < g {
			m.tolerance = g
		}
		return nil
	}
}

// New returns a model over enum's rules scored by features into dim weights.
func New(enum *rule.Enumerator, features feature.Func, dim int, opts ...Option) (*Model, error) {
	if enum == nil {
		return nil, ErrNilEnumerator
	}
	if features == nil {
		return nil, ErrNilFeatures
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension %d", ErrDimension, dim)
	}
	m := &Model{
		weights:       make([]float64, dim),
		enum:          enum,
		features:      features,
		dim:           dim,
		logger:        slog.Default(),
		maxIterations: 200,
		gradThreshold: 1e-6,
		tolerance:     1e-4,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Arity returns the arity class of the underlying enumerator.
func (m *Model) Arity() ontology.Arity { return m.enum.Arity() }

// Dim returns the weight vector length.
func (m *Model) Dim() int { return m.dim }

// Weights returns a copy of the current weights.
func (m *Model) Weights() []float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]float64(nil), m.weights...)
}

// SetWeights replaces the weights.
func (m *Model) SetWeights(w []float64) error {
	if len(w) != m.dim {
		return fmt.Errorf("%w: got %d weights, want %d", ErrDimension, len(w), m.dim)
	}
	m.mu.Lock()
	m.weights = append([]float64(nil), w...)
	m.mu.Unlock()
	return nil
}

func (m *Model) featuresOf(r rule.Rule) ([]float64, error) {
	f := m.features(r)
	if len(f) != m.dim {
		return nil, fmt.Errorf("%w: feature vector of %s has %d entries, want %d", ErrDimension, r, len(f), m.dim)
	}
	return f, nil
}

// Score is the dot product of the weights with the rule's features.
func (m *Model) Score(r rule.Rule) (float64, error) {
	f, err := m.featuresOf(r)
	if err != nil {
		return 0, err
	}
	w := m.Weights()
	return floats.Dot(w, f), nil
}

// LogDistribution enumerates the rules at parent, scores them and
// normalizes with log-sum-exp. An empty enumeration yields an empty
// distribution.
func (m *Model) LogDistribution(ctx *rule.Context, parent rule.Slot, excluded rule.PositionSet) (*Distribution, error) {
	rules, err := m.enum.Enumerate(ctx, parent, excluded)
	if err != nil {
		return nil, err
	}
	local, err := m.localize(rules)
	if err != nil {
		return nil, err
	}
	return newDistribution(rules, local.logProbs(m.Weights())), nil
}

// LogProb returns log P(r | parent context of r), recomputing the local
// distribution with r's own parent position as the only exclusion. A rule
// outside its own distribution, or one that cannot be scored, yields -Inf.
func (m *Model) LogProb(r rule.Rule) float64 {
	local, idx, err := m.gold(r)
	if err != nil || idx < 0 {
		return math.Inf(-1)
	}
	return local.logProbs(m.Weights())[idx]
}

// LogGrad returns features(r) − E[features] under r's local distribution.
func (m *Model) LogGrad(r rule.Rule) ([]float64, error) {
	local, idx, err := m.gold(r)
	if err != nil {
		return nil, err
	}
	if idx < 0 {
		return nil, fmt.Errorf("loglinear: %s is not in its own local distribution", r)
	}
	grad := make([]float64, m.dim)
	local.accumulateGrad(grad, idx, m.Weights())
	return grad, nil
}

// gold builds the local problem around r and returns r's index in it, or
// -1 when r is not a member.
func (m *Model) gold(r rule.Rule) (*local, int, error) {
	rules, err := m.enum.Enumerate(r.Context(), r.Parent(), rule.NewPositionSet())
	if err != nil {
		return nil, -1, err
	}
	loc, err := m.localize(rules)
	if err != nil {
		return nil, -1, err
	}
	key := r.Key()
	for i, c := range rules {
		if c.Key() == key {
			return loc, i, nil
		}
	}
	return loc, -1, nil
}

func (m *Model) localize(rules []rule.Rule) (*local, error) {
	loc := &local{features: make([][]float64, len(rules))}
	for i, r := range rules {
		f, err := m.featuresOf(r)
		if err != nil {
			return nil, err
		}
		loc.features[i] = f
	}
	return loc, nil
}

// local holds the feature matrix of one enumeration. It does not depend
// on the weights, so training computes it once per gold rule.
type local struct {
	features [][]float64
}

func (l *local) scores(w []float64) []float64 {
	s := make([]float64, len(l.features))
	for i, f := range l.features {
		s[i] = floats.Dot(w, f)
	}
	return s
}

func (l *local) logProbs(w []float64) []float64 {
	s := l.scores(w)
	if len(s) == 0 {
		return s
	}
	z := floats.LogSumExp(s)
	for i := range s {
		s[i] -= z
	}
	return s
}

// accumulateGrad adds features[idx] − E[features] into grad and returns
// the log-probability of idx.
func (l *local) accumulateGrad(grad []float64, idx int, w []float64) float64 {
	lp := l.logProbs(w)
	floats.Add(grad, l.features[idx])
	for i, f := range l.features {
		floats.AddScaled(grad, -math.Exp(lp[i]), f)
	}
	return lp[idx]
}
