// Package metrics exposes the planner's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ModelCalls counts structured-generation calls by target schema and result.
	ModelCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tripagent_model_calls_total",
		Help: "Structured generation calls issued to the model backend.",
	}, []string{"schema", "result"})

	// ItinerariesCompleted counts itineraries assembled at the terminal step.
	ItinerariesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tripagent_itineraries_completed_total",
		Help: "Itineraries successfully assembled.",
	})
)

// Result label values for ModelCalls.
const (
	ResultOK    = "ok"
	ResultTool  = "tool"
	ResultError = "error"
)
