package types

import (
	"encoding/json"
	"fmt"
)

// ConfidenceInterval is a two-sided band around a prediction.
// It is encoded as a two-element JSON array: [lower, upper].
type ConfidenceInterval struct {
	Lower float64
	Upper float64
}

// MarshalJSON encodes the interval as [lower, upper].
func (ci ConfidenceInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{ci.Lower, ci.Upper})
}

// UnmarshalJSON decodes a [lower, upper] pair.
func (ci *ConfidenceInterval) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("confidence interval must have 2 bounds, got %d", len(pair))
	}
	ci.Lower, ci.Upper = pair[0], pair[1]
	return nil
}

// PredictionResult is the response of a single salary prediction.
type PredictionResult struct {
	Salary             float64             `json:"salary"`
	ConfidenceInterval *ConfidenceInterval `json:"confidence_interval"`
	ModelUsed          string              `json:"model_used"`
	InputSummary       EmployeeRecord      `json:"input_summary"`
}

// ModelSummary describes the loaded model artifact and its feature schema.
type ModelSummary struct {
	Name     string   `json:"name"`
	Kind     string   `json:"kind"`
	Members  int      `json:"members"`
	Features []string `json:"features"`
}
