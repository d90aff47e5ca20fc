// SPDX-License-Identifier: MIT

package loglinear

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"

	"github.com/ashish33/geosolver2/rule"
)

// TrainResult reports one call to Train.
type TrainResult struct {
	// Weights is the final iterate, also when training did not converge.
	Weights []float64
	// Objective is the regularized log-likelihood at Weights.
	Objective float64
	// LogLikelihood is Σ log P(rule) at Weights, without the regularizer.
	LogLikelihood float64
	// InitialLogLikelihood is Σ log P(rule) at the starting weights.
	InitialLogLikelihood float64
	// Iterations counts BFGS major iterations.
	Iterations int
	// Status is the optimizer's termination status.
	Status string
	// Skipped counts gold rules absent from their own local distribution.
	Skipped int
	// Converged reports whether Weights were installed in the model.
	Converged bool
}

// corpus is the weight-independent part of the training problem.
type corpus struct {
	locals []*local
	gold   []int
}

func (c *corpus) logLikelihood(w []float64) float64 {
	var ll float64
	for i, l := range c.locals {
		ll += l.logProbs(w)[c.gold[i]]
	}
	return ll
}

// objective returns Σ log P − ½·l2·‖w‖² and writes its gradient into grad
// when grad is non-nil.
func (c *corpus) objective(w []float64, l2 float64, grad []float64) float64 {
	if grad != nil {
		for i := range grad {
			grad[i] = -l2 * w[i]
		}
	}
	var ll float64
	for i, l := range c.locals {
		if grad != nil {
			ll += l.accumulateGrad(grad, c.gold[i], w)
		} else {
			ll += l.logProbs(w)[c.gold[i]]
		}
	}
	return ll - 0.5*l2*floats.Dot(w, w)
}

// Train fits the weights by maximizing the regularized log-likelihood of
// rules with BFGS, starting from the current weights. On convergence the
// new weights are installed; otherwise the model is left unchanged and the
// error wraps ErrOptimizationDidNotConverge while the result still carries
// the last iterate. Rules outside their own local distribution are skipped
// and counted; when every rule is skipped the error wraps ErrEmptyCorpus
// and the weights are untouched.
func (m *Model) Train(rules []rule.Rule, l2 float64) (*TrainResult, error) {
	return m.TrainContext(context.Background(), rules, l2)
}

// TrainContext is Train with a context for tracing.
func (m *Model) TrainContext(ctx context.Context, rules []rule.Rule, l2 float64) (*TrainResult, error) {
	_, span := tracer.Start(ctx, "loglinear.Train", trace.WithAttributes(
		attribute.String("arity", m.Arity().String()),
		attribute.Int("rules", len(rules)),
		attribute.Float64("l2", l2),
	))
	defer span.End()

	if l2 < 0 || math.IsNaN(l2) {
		return nil, fmt.Errorf("%w: got %v", ErrNegativeL2, l2)
	}
	if len(rules) == 0 {
		return nil, ErrEmptyCorpus
	}

	start := time.Now()
	c, skipped, err := m.buildCorpus(rules)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "corpus")
		return nil, err
	}
	if skipped > 0 {
		m.logger.Warn("skipping gold rules outside their local distribution",
			slog.String("arity", m.Arity().String()),
			slog.Int("skipped", skipped))
	}

	x0 := m.Weights()
	res := &TrainResult{
		Weights:              x0,
		Skipped:              skipped,
		InitialLogLikelihood: c.logLikelihood(x0),
	}
	if len(c.locals) == 0 {
		err := fmt.Errorf("%w: all %d gold rules skipped", ErrEmptyCorpus, skipped)
		trainRuns.WithLabelValues(m.Arity().String(), "empty").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "empty corpus")
		return res, err
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return -c.objective(x, l2, nil) },
		Grad: func(grad, x []float64) {
			c.objective(x, l2, grad)
			floats.Scale(-1, grad)
		},
	}
	settings := &optimize.Settings{
		GradientThreshold: m.gradThreshold,
		MajorIterations:   m.maxIterations,
	}
	result, optErr := optimize.Minimize(problem, x0, settings, &optimize.BFGS{})

	if result != nil {
		res.Weights = append([]float64(nil), result.X...)
		res.Iterations = result.Stats.MajorIterations
		res.Status = result.Status.String()
	} else {
		res.Weights = append([]float64(nil), x0...)
		res.Status = optimize.Failure.String()
	}
	grad := make([]float64, m.dim)
	res.Objective = c.objective(res.Weights, l2, grad)
	res.LogLikelihood = c.logLikelihood(res.Weights)
	res.Converged = result != nil && (converged(result.Status) || floats.Norm(grad, math.Inf(1)) <= m.tolerance)

	trainDuration.WithLabelValues(m.Arity().String()).Observe(time.Since(start).Seconds())
	trainIterations.WithLabelValues(m.Arity().String()).Observe(float64(res.Iterations))
	span.SetAttributes(
		attribute.Int("iterations", res.Iterations),
		attribute.String("status", res.Status),
		attribute.Int("skipped", skipped),
		attribute.Float64("objective", res.Objective),
	)

	if !res.Converged {
		trainRuns.WithLabelValues(m.Arity().String(), "diverged").Inc()
		err := fmt.Errorf("%w: status %s after %d iterations", ErrOptimizationDidNotConverge, res.Status, res.Iterations)
		if optErr != nil {
			err = fmt.Errorf("%w: %v", err, optErr)
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "not converged")
		m.logger.Warn("training did not converge",
			slog.String("arity", m.Arity().String()),
			slog.String("status", res.Status),
			slog.Int("iterations", res.Iterations))
		return res, err
	}

	if err := m.SetWeights(res.Weights); err != nil {
		return res, err
	}
	trainRuns.WithLabelValues(m.Arity().String(), "converged").Inc()
	m.logger.Info("training converged",
		slog.String("arity", m.Arity().String()),
		slog.Int("iterations", res.Iterations),
		slog.Float64("log_likelihood", res.LogLikelihood),
		slog.Float64("initial_log_likelihood", res.InitialLogLikelihood))
	return res, nil
}

func (m *Model) buildCorpus(rules []rule.Rule) (*corpus, int, error) {
	c := &corpus{}
	skipped := 0
	for _, r := range rules {
		loc, idx, err := m.gold(r)
		if err != nil {
			return nil, 0, fmt.Errorf("loglinear: rule %s: %w", r, err)
		}
		if idx < 0 {
			skipped++
			continue
		}
		c.locals = append(c.locals, loc)
		c.gold = append(c.gold, idx)
	}
	return c, skipped, nil
}

func converged(s optimize.Status) bool {
	switch s {
	case optimize.Success, optimize.GradientThreshold, optimize.FunctionConvergence,
		optimize.FunctionThreshold, optimize.StepConvergence:
		return true
	}
	return false
}
