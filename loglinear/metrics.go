// SPDX-License-Identifier: MIT

package loglinear

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("geosolver.loglinear")

var (
	trainRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geosolver_loglinear_train_runs_total",
		Help: "Training runs by arity and outcome",
	}, []string{"arity", "outcome"})

	trainIterations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geosolver_loglinear_train_iterations",
		Help:    "BFGS major iterations per training run",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 200},
	}, []string{"arity"})

	trainDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "geosolver_loglinear_train_duration_seconds",
		Help:    "Wall time per training run",
		Buckets: prometheus.DefBuckets,
	}, []string{"arity"})
)
