package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Selection metrics
	Evaluations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talos_evaluations_total",
			Help: "Total number of chain evaluations",
		},
		[]string{"action", "outcome"}, // outcome: recommended|no_candidate|hold|invalid
	)

	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "talos_evaluation_duration_seconds",
			Help:    "Chain evaluation duration in seconds",
			Buckets: []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
		},
		[]string{"action"},
	)

	CandidatesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "talos_candidates_rejected_total",
			Help: "Total number of quotes rejected by the candidate filter",
		},
		[]string{"reason"},
	)

	// Recommendation metrics
	RecommendationEV = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "talos_recommendation_expected_value_usd",
			Help: "Expected value of the most recent recommendation",
		},
		[]string{"action"},
	)

	RecommendationPoT = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "talos_recommendation_touch_probability",
			Help: "Probability of touch of the most recent recommendation",
		},
		[]string{"action"},
	)

	RecommendationKelly = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "talos_recommendation_kelly_fraction",
			Help: "Clipped Kelly fraction of the most recent recommendation",
		},
		[]string{"action"},
	)
)

// Register registers all metrics with the default Prometheus registry
func Register() {
	prometheus.MustRegister(
		Evaluations,
		EvaluationDuration,
		CandidatesRejected,
		RecommendationEV,
		RecommendationPoT,
		RecommendationKelly,
	)
}

// Handler returns the HTTP handler exposing the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordEvaluation records one chain evaluation
func RecordEvaluation(action, outcome string, duration time.Duration) {
	Evaluations.WithLabelValues(action, outcome).Inc()
	EvaluationDuration.WithLabelValues(action).Observe(duration.Seconds())
}

// RecordRejection records one filtered-out quote
func RecordRejection(reason string) {
	CandidatesRejected.WithLabelValues(reason).Inc()
}

// RecordRecommendation records the risk profile of a selected contract
func RecordRecommendation(action string, ev, pot, kelly float64) {
	RecommendationEV.WithLabelValues(action).Set(ev)
	RecommendationPoT.WithLabelValues(action).Set(pot)
	RecommendationKelly.WithLabelValues(action).Set(kelly)
}
