// Package features turns validated employee records into the ordered numeric
// vectors a model artifact was trained on.
package features

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is the ordered list of feature names a model expects. It is immutable
// once constructed and safe to share between goroutines.
type Schema struct {
	names []string
}

// Vector is a feature vector whose i-th entry corresponds to the i-th schema name.
type Vector []float64

// LoadError represents a failure to load a feature schema file.
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load feature names %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load feature names %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// NewSchema builds a schema from feature names. Names must be non-empty and unique.
func NewSchema(names []string) (*Schema, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("feature schema is empty")
	}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("feature name at position %d is blank", i)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate feature name %q", name)
		}
		seen[name] = true
	}
	return &Schema{names: append([]string(nil), names...)}, nil
}

// LoadSchema reads feature names from a JSON or YAML list.
// The format is chosen by file extension; anything other than .yaml/.yml is parsed as JSON.
func LoadSchema(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot read file", Cause: err}
	}

	var names []string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &names)
	default:
		err = json.Unmarshal(data, &names)
	}
	if err != nil {
		return nil, &LoadError{Path: path, Message: "cannot parse feature list", Cause: err}
	}

	schema, err := NewSchema(names)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid feature list", Cause: err}
	}
	return schema, nil
}

// Names returns a copy of the feature names in model order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of features.
func (s *Schema) Len() int {
	return len(s.names)
}
