// SPDX-License-Identifier: MIT

package aligner

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	alignTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairalign_alignments_total",
		Help: "Pairwise alignments computed, by filler and outcome",
	}, []string{"filler", "status"})

	cellsFilled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairalign_cells_filled_total",
		Help: "Cost table cells filled",
	})

	alignDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pairalign_align_duration_seconds",
		Help:    "Duration of one pairwise alignment (fill, traceback and digest)",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
	}, []string{"filler"})
)

var (
	tracer     trace.Tracer
	tracerOnce sync.Once
)

// getTracer returns the package tracer, created on first use so that a
// provider installed by main is picked up.
func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		tracer = otel.Tracer("github.com/katalvlaran/pairalign/aligner")
	})
	return tracer
}
