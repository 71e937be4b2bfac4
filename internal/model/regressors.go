package model

import (
	"fmt"
)

func shapeError(got, want int, model string) error {
	return fmt.Errorf("X has %d features, but %s is expecting %d features as input", got, model, want)
}

// LinearRegression predicts intercept + coefficients·x.
type LinearRegression struct {
	Intercept    float64   `json:"intercept" yaml:"intercept"`
	Coefficients []float64 `json:"coefficients" yaml:"coefficients"`
}

// Validate checks the model parameters.
func (m *LinearRegression) Validate() error {
	if len(m.Coefficients) == 0 {
		return fmt.Errorf("linear model has no coefficients")
	}
	return nil
}

// Predict implements Predictor.
func (m *LinearRegression) Predict(x []float64) (float64, error) {
	if len(x) != len(m.Coefficients) {
		return 0, shapeError(len(x), len(m.Coefficients), "LinearRegression")
	}
	y := m.Intercept
	for i, c := range m.Coefficients {
		y += c * x[i]
	}
	return y, nil
}

// TreeNode is one node of a regression tree. Leaves have Left == Right == -1.
type TreeNode struct {
	Feature   int     `json:"feature" yaml:"feature"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Left      int     `json:"left" yaml:"left"`
	Right     int     `json:"right" yaml:"right"`
	Value     float64 `json:"value" yaml:"value"`
}

func (n TreeNode) leaf() bool {
	return n.Left == -1
}

// DecisionTree is a binary regression tree stored as a flat node array rooted at index 0.
// Samples go left when x[Feature] <= Threshold.
type DecisionTree struct {
	NFeatures int        `json:"n_features,omitempty" yaml:"n_features,omitempty"`
	Nodes     []TreeNode `json:"nodes" yaml:"nodes"`
}

// Validate checks the tree structure. Children must come after their parent,
// which rules out cycles and bounds every traversal by len(Nodes).
func (t *DecisionTree) Validate() error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	for i, n := range t.Nodes {
		if n.leaf() {
			if n.Right != -1 {
				return fmt.Errorf("node %d: leaf has a right child", i)
			}
			continue
		}
		if n.Left <= i || n.Right <= i || n.Left >= len(t.Nodes) || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d: invalid children %d/%d", i, n.Left, n.Right)
		}
		if n.Feature < 0 {
			return fmt.Errorf("node %d: negative feature index %d", i, n.Feature)
		}
		if t.NFeatures > 0 && n.Feature >= t.NFeatures {
			return fmt.Errorf("node %d: feature index %d exceeds n_features %d", i, n.Feature, t.NFeatures)
		}
	}
	return nil
}

// Predict implements Predictor.
func (t *DecisionTree) Predict(x []float64) (float64, error) {
	if t.NFeatures > 0 && len(x) != t.NFeatures {
		return 0, shapeError(len(x), t.NFeatures, "DecisionTreeRegressor")
	}
	i := 0
	for steps := 0; steps <= len(t.Nodes); steps++ {
		n := t.Nodes[i]
		if n.leaf() {
			return n.Value, nil
		}
		if n.Feature >= len(x) {
			return 0, fmt.Errorf("index %d is out of bounds for X with %d features", n.Feature, len(x))
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return 0, fmt.Errorf("tree traversal did not reach a leaf")
}

// RandomForest averages the predictions of its trees.
type RandomForest struct {
	Trees []*DecisionTree `json:"trees" yaml:"trees"`
}

// Validate checks every tree and requires them to agree on input width.
func (f *RandomForest) Validate() error {
	if len(f.Trees) == 0 {
		return fmt.Errorf("forest has no trees")
	}
	width := 0
	for i, t := range f.Trees {
		if t == nil {
			return fmt.Errorf("tree %d is empty", i)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
		if t.NFeatures > 0 {
			if width > 0 && t.NFeatures != width {
				return fmt.Errorf("tree %d: n_features %d differs from %d", i, t.NFeatures, width)
			}
			width = t.NFeatures
		}
	}
	return nil
}

// Predict implements Predictor.
func (f *RandomForest) Predict(x []float64) (float64, error) {
	var sum float64
	for _, t := range f.Trees {
		y, err := t.Predict(x)
		if err != nil {
			return 0, err
		}
		sum += y
	}
	return sum / float64(len(f.Trees)), nil
}

func (f *RandomForest) numFeatures() int {
	for _, t := range f.Trees {
		if t.NFeatures > 0 {
			return t.NFeatures
		}
	}
	return 0
}

// Constant always predicts Value, whatever the input.
type Constant struct {
	Value float64 `json:"value" yaml:"value"`
}

// Predict implements Predictor.
func (c *Constant) Predict(_ []float64) (float64, error) {
	return c.Value, nil
}
