// SPDX-License-Identifier: MIT

// Package loglinear implements the per-arity log-linear rule models.
//
// A Model owns one rule.Enumerator (unary or binary), a feature function
// and a weight vector. For a parent context it enumerates the candidate
// rules, scores each as dot(weights, features(rule)) and normalizes with
// log-sum-exp:
//
//	log P(r) = score(r) − log Σ_k exp(score(r_k))
//
// Train maximizes Σ log P(gold) − ½·l2·‖w‖² with gonum's BFGS driven by the
// analytic gradient
//
//	Σ (features(gold) − E[features]) − l2·w
//
// Feature matrices depend only on the enumeration, so training builds them
// once per gold rule and re-scores them for every optimizer step.
//
// Concurrency: scoring methods may run concurrently with each other and
// with SetWeights or a successful Train; each call works on one weight
// snapshot.
//
// Observability: Train opens an OpenTelemetry span ("loglinear.Train")
// and records run outcome, iteration and duration metrics in the default
// Prometheus registry.
package loglinear
