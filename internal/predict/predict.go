// Package predict runs the two plan classifiers. Models are opaque: callers
// hand over a feature vector and get back a class label.
package predict

import (
	"context"
	"errors"
	"fmt"
)

var ErrFeatureCount = errors.New("feature count mismatch")

// Model is a deterministic, stateless classifier.
type Model interface {
	Predict(ctx context.Context, features []float64) (int, error)
}

// Pair bundles the gym and diet models used for plan generation.
type Pair struct {
	Gym  Model
	Diet Model
}

func (pair Pair) Validate() error {
	if pair.Gym == nil {
		return errors.New("gym model is required")
	}
	if pair.Diet == nil {
		return errors.New("diet model is required")
	}
	return nil
}

// Static always answers with the same label.
type Static struct {
	Label    int
	Features int
}

func (model Static) Predict(_ context.Context, features []float64) (int, error) {
	if model.Features > 0 && len(features) != model.Features {
		return 0, fmt.Errorf("%w: want %d, got %d", ErrFeatureCount, model.Features, len(features))
	}
	return model.Label, nil
}
