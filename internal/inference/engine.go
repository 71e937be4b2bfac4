// Package inference evaluates model artifacts on assembled feature vectors and
// derives confidence intervals from ensemble disagreement.
package inference

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/salary-predictor/internal/features"
	"github.com/jonathan/salary-predictor/internal/model"
	"github.com/jonathan/salary-predictor/internal/types"
)

// Z95 is the two-sided 95% normal quantile used for confidence bands.
const Z95 = 1.96

// ModelUnavailableMessage is reported to clients while no artifact is loaded.
const ModelUnavailableMessage = "Model not loaded. Please ensure model files are available."

// ErrModelUnavailable is returned for every request while the process runs without an artifact.
var ErrModelUnavailable = errors.New("model unavailable")

// InferenceError wraps a failure raised by the model artifact or one of its members.
type InferenceError struct {
	Model string
	Cause error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference error (%s): %v", e.Model, e.Cause)
}

func (e *InferenceError) Unwrap() error {
	return e.Cause
}

// Result is the model-derived part of a prediction.
type Result struct {
	Salary    float64
	Interval  *types.ConfidenceInterval
	ModelName string
}

// Engine evaluates a single, read-only artifact. It holds no mutable state and
// is safe for concurrent use.
type Engine struct {
	artifact *model.Artifact
}

// NewEngine creates an engine for artifact. A nil artifact yields an engine that
// fails every call with ErrModelUnavailable.
func NewEngine(artifact *model.Artifact) *Engine {
	return &Engine{artifact: artifact}
}

// Available reports whether an artifact is loaded.
func (e *Engine) Available() bool {
	return e != nil && e.artifact != nil
}

// Artifact returns the loaded artifact, or nil.
func (e *Engine) Artifact() *model.Artifact {
	if e == nil {
		return nil
	}
	return e.artifact
}

// Predict evaluates the artifact on vec. Ensembles with at least one member also
// get a confidence interval; simple artifacts do not.
func (e *Engine) Predict(ctx context.Context, vec features.Vector) (*Result, error) {
	if !e.Available() {
		return nil, ErrModelUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := e.artifact.Name()
	salary, err := predictFinite(e.artifact, vec)
	if err != nil {
		return nil, &InferenceError{Model: name, Cause: err}
	}

	res := &Result{Salary: salary, ModelName: name}

	members := e.artifact.Members()
	if e.artifact.Kind() != model.KindEnsemble || len(members) == 0 {
		return res, nil
	}

	preds := make([]float64, len(members))
	for i, m := range members {
		y, err := predictFinite(m, vec)
		if err != nil {
			return nil, &InferenceError{Model: name, Cause: fmt.Errorf("estimator %d: %w", i, err)}
		}
		preds[i] = y
	}
	ci := Interval(salary, PopulationStdDev(preds))
	res.Interval = &ci
	return res, nil
}

func predictFinite(p model.Predictor, vec features.Vector) (float64, error) {
	y, err := p.Predict(vec)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return 0, fmt.Errorf("model returned non-finite value %v", y)
	}
	return y, nil
}

// PopulationStdDev returns the standard deviation of xs dividing by N.
func PopulationStdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Interval returns salary ± Z95·sigma with the lower bound floored at zero.
func Interval(salary, sigma float64) types.ConfidenceInterval {
	return types.ConfidenceInterval{
		Lower: math.Max(0, salary-Z95*sigma),
		Upper: salary + Z95*sigma,
	}
}
