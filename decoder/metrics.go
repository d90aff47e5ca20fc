// SPDX-License-Identifier: MIT

package decoder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("geosolver.decoder")

var (
	decodeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geosolver_decoder_decodes_total",
		Help: "Sentences decoded by outcome",
	}, []string{"outcome"})

	decodeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geosolver_decoder_duration_seconds",
		Help:    "Wall time per decoded sentence",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	})

	formulasPerDecode = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "geosolver_decoder_formulas",
		Help:    "Distinct formulas produced per decoded sentence",
		Buckets: []float64{0, 1, 2, 5, 10, 50, 100, 1000},
	})
)
