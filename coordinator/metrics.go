// SPDX-License-Identifier: MIT

package coordinator

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairalign_runs_total",
		Help: "Distributed runs, by role and outcome",
	}, []string{"role", "status"})

	pairsComputed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairalign_pairs_computed_total",
		Help: "Pairs aligned locally, by role",
	}, []string{"role"})

	pairsCollected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairalign_pairs_collected_total",
		Help: "Pair results received by the coordinator from workers",
	})
)

var (
	tracer     trace.Tracer
	tracerOnce sync.Once
)

func getTracer() trace.Tracer {
	tracerOnce.Do(func() {
		tracer = otel.Tracer("github.com/katalvlaran/pairalign/coordinator")
	})
	return tracer
}
