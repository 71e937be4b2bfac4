package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Prediction outcomes used as the "outcome" label.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// Prometheus metrics
var (
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "predictions_total",
			Help:      "Total prediction requests by outcome.",
		},
		[]string{"outcome"},
	)

	FeatureDriftTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "salary",
			Name:      "feature_drift_total",
			Help:      "Schema features zero-filled because the record does not provide them.",
		},
		[]string{"feature"},
	)

	PredictionDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "salary",
			Name:      "prediction_duration_seconds",
			Help:      "Time spent validating, assembling and evaluating a prediction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	ModelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "salary",
			Name:      "model_loaded",
			Help:      "1 when a model artifact and feature schema are loaded, 0 in degraded mode.",
		},
	)
)

func init() {
	// Safe register; ignore duplicate registration in case of multiple imports
	_ = prometheus.Register(PredictionsTotal)
	_ = prometheus.Register(FeatureDriftTotal)
	_ = prometheus.Register(PredictionDuration)
	_ = prometheus.Register(ModelLoaded)
}

// ObservePrediction records the outcome and latency of one prediction.
func ObservePrediction(outcome string, start time.Time) {
	PredictionsTotal.WithLabelValues(outcome).Inc()
	PredictionDuration.Observe(time.Since(start).Seconds())
}

// ObserveDrift counts each zero-filled feature.
func ObserveDrift(zeroFilled []string) {
	for _, name := range zeroFilled {
		FeatureDriftTotal.WithLabelValues(name).Inc()
	}
}

// SetModelLoaded updates the model_loaded gauge.
func SetModelLoaded(loaded bool) {
	if loaded {
		ModelLoaded.Set(1)
		return
	}
	ModelLoaded.Set(0)
}
