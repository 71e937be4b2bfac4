// Package model provides the trained model artifacts the inference engine evaluates.
package model

// Predictor maps a feature vector to a scalar prediction.
// Implementations must be safe for concurrent use and must not mutate x.
type Predictor interface {
	Predict(x []float64) (float64, error)
}

// PredictorFunc adapts an ordinary function to the Predictor interface.
type PredictorFunc func(x []float64) (float64, error)

// Predict calls f(x).
func (f PredictorFunc) Predict(x []float64) (float64, error) {
	return f(x)
}

// Kind distinguishes plain models from ensembles.
type Kind string

const (
	KindSimple   Kind = "simple"
	KindEnsemble Kind = "ensemble"
)

// Artifact is a loaded, read-only model. The variant is fixed at construction:
// a Simple artifact has no members; an Ensemble exposes its members in order,
// each honouring the same Predictor contract as the artifact itself.
type Artifact struct {
	name      string
	kind      Kind
	predictor Predictor
	members   []Predictor
	features  int
}

// Simple wraps a single predictor.
func Simple(name string, p Predictor) *Artifact {
	return &Artifact{name: name, kind: KindSimple, predictor: p}
}

// Ensemble wraps an aggregate predictor together with its members.
func Ensemble(name string, p Predictor, members []Predictor) *Artifact {
	return &Artifact{
		name:      name,
		kind:      KindEnsemble,
		predictor: p,
		members:   append([]Predictor(nil), members...),
	}
}

// Name returns the model's display name, e.g. "RandomForestRegressor".
func (a *Artifact) Name() string {
	return a.name
}

// Kind returns the artifact variant.
func (a *Artifact) Kind() Kind {
	return a.kind
}

// Predict evaluates the artifact on x.
func (a *Artifact) Predict(x []float64) (float64, error) {
	return a.predictor.Predict(x)
}

// Members returns the ensemble members in order. It is empty for simple artifacts.
func (a *Artifact) Members() []Predictor {
	return append([]Predictor(nil), a.members...)
}

// NumFeatures returns the input width the artifact was trained on, or 0 when unknown.
func (a *Artifact) NumFeatures() int {
	return a.features
}
