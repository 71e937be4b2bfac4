package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Artifact types accepted in the "type" field of a model file.
const (
	TypeLinear       = "linear"
	TypeDecisionTree = "decision_tree"
	TypeRandomForest = "random_forest"
	TypeConstant     = "constant"
)

// LoadError represents a failure to load or decode a model artifact.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load model %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load model %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// document is the on-disk layout of a model artifact.
type document struct {
	Type         string            `json:"type" yaml:"type"`
	Name         string            `json:"name,omitempty" yaml:"name,omitempty"`
	Linear       *LinearRegression `json:"linear,omitempty" yaml:"linear,omitempty"`
	DecisionTree *DecisionTree     `json:"decision_tree,omitempty" yaml:"decision_tree,omitempty"`
	RandomForest *RandomForest     `json:"random_forest,omitempty" yaml:"random_forest,omitempty"`
	Constant     *Constant         `json:"constant,omitempty" yaml:"constant,omitempty"`
}

// Load reads a model artifact from a JSON or YAML file (chosen by extension).
func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read file", Cause: err}
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot decode artifact", Cause: err}
	}

	artifact, err := doc.build()
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid artifact", Cause: err}
	}
	return artifact, nil
}

func (d *document) build() (*Artifact, error) {
	name := func(def string) string {
		if d.Name != "" {
			return d.Name
		}
		return def
	}

	switch d.Type {
	case TypeLinear:
		if d.Linear == nil {
			return nil, fmt.Errorf("missing %q section", TypeLinear)
		}
		if err := d.Linear.Validate(); err != nil {
			return nil, err
		}
		a := Simple(name("LinearRegression"), d.Linear)
		a.features = len(d.Linear.Coefficients)
		return a, nil

	case TypeDecisionTree:
		if d.DecisionTree == nil {
			return nil, fmt.Errorf("missing %q section", TypeDecisionTree)
		}
		if err := d.DecisionTree.Validate(); err != nil {
			return nil, err
		}
		a := Simple(name("DecisionTreeRegressor"), d.DecisionTree)
		a.features = d.DecisionTree.NFeatures
		return a, nil

	case TypeRandomForest:
		if d.RandomForest == nil {
			return nil, fmt.Errorf("missing %q section", TypeRandomForest)
		}
		if err := d.RandomForest.Validate(); err != nil {
			return nil, err
		}
		members := make([]Predictor, len(d.RandomForest.Trees))
		for i, t := range d.RandomForest.Trees {
			members[i] = t
		}
		a := Ensemble(name("RandomForestRegressor"), d.RandomForest, members)
		a.features = d.RandomForest.numFeatures()
		return a, nil

	case TypeConstant:
		if d.Constant == nil {
			return nil, fmt.Errorf("missing %q section", TypeConstant)
		}
		return Simple(name("DummyRegressor"), d.Constant), nil

	case "":
		return nil, fmt.Errorf("artifact type is required")
	default:
		return nil, fmt.Errorf("unsupported artifact type %q", d.Type)
	}
}
