package predict

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// TreeEnsemble is a forest of binary decision trees exported from the training
// pipeline. Each tree votes for one label and the majority wins; ties go to
// the lowest label so inference stays deterministic.
type TreeEnsemble struct {
	Name        string `json:"name"`
	NumFeatures int    `json:"n_features"`
	Trees       []Tree `json:"trees"`
}

type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Node is either a split (feature <= threshold goes left) or a leaf carrying a label.
type Node struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Label     *int    `json:"label,omitempty"`
}

// LoadTreeEnsemble reads and validates a model artifact.
func LoadTreeEnsemble(path string) (*TreeEnsemble, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return ParseTreeEnsemble(raw)
}

func ParseTreeEnsemble(raw []byte) (*TreeEnsemble, error) {
	var ensemble TreeEnsemble
	if err := json.Unmarshal(raw, &ensemble); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := ensemble.validate(); err != nil {
		name := strings.TrimSpace(ensemble.Name)
		if name == "" {
			name = "unnamed"
		}
		return nil, fmt.Errorf("model %s: %w", name, err)
	}
	return &ensemble, nil
}

func (ensemble *TreeEnsemble) validate() error {
	if ensemble.NumFeatures <= 0 {
		return errors.New("n_features must be positive")
	}
	if len(ensemble.Trees) == 0 {
		return errors.New("no trees")
	}
	for treeIndex, tree := range ensemble.Trees {
		if len(tree.Nodes) == 0 {
			return fmt.Errorf("tree %d has no nodes", treeIndex)
		}
		for nodeIndex, node := range tree.Nodes {
			if node.Label != nil {
				continue
			}
			if node.Feature < 0 || node.Feature >= ensemble.NumFeatures {
				return fmt.Errorf("tree %d node %d: feature %d out of range", treeIndex, nodeIndex, node.Feature)
			}
			// Children must point forward, which also rules out cycles.
			if node.Left <= nodeIndex || node.Left >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid left child %d", treeIndex, nodeIndex, node.Left)
			}
			if node.Right <= nodeIndex || node.Right >= len(tree.Nodes) {
				return fmt.Errorf("tree %d node %d: invalid right child %d", treeIndex, nodeIndex, node.Right)
			}
		}
	}
	return nil
}

func (ensemble *TreeEnsemble) Predict(_ context.Context, features []float64) (int, error) {
	if len(features) != ensemble.NumFeatures {
		return 0, fmt.Errorf("%w: want %d, got %d", ErrFeatureCount, ensemble.NumFeatures, len(features))
	}

	votes := make(map[int]int, len(ensemble.Trees))
	for _, tree := range ensemble.Trees {
		votes[tree.evaluate(features)]++
	}

	labels := make([]int, 0, len(votes))
	for label := range votes {
		labels = append(labels, label)
	}
	sort.Ints(labels)

	best := labels[0]
	for _, label := range labels[1:] {
		if votes[label] > votes[best] {
			best = label
		}
	}
	return best, nil
}

func (tree Tree) evaluate(features []float64) int {
	index := 0
	for {
		node := tree.Nodes[index]
		if node.Label != nil {
			return *node.Label
		}
		if features[node.Feature] <= node.Threshold {
			index = node.Left
		} else {
			index = node.Right
		}
	}
}
