package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	domsvc "FinSight/internal/domain/service"
)

// Model is a pretrained logistic-regression fraud classifier loaded from a
// JSON artifact. Training happens offline; this package only consumes the
// artifact. A loaded Model is immutable and safe for concurrent use.
type Model struct {
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Features  int       `json:"features"`
	Version   string    `json:"version,omitempty"`
}

// Load reads and validates a classifier artifact. A missing or incompatible
// artifact is an error the caller treats as "run rule-only", not a fault.
func Load(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}

	var m Model
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse artifact: %w", err)
	}
	if m.Features == 0 {
		m.Features = len(m.Weights)
	}
	if len(m.Weights) == 0 || len(m.Weights) != m.Features {
		return nil, fmt.Errorf("artifact incompatible: %d weights for %d features", len(m.Weights), m.Features)
	}
	return &m, nil
}

// ProbaFraud returns the positive-class probability for a feature vector.
func (m *Model) ProbaFraud(_ context.Context, features []float64) (float64, error) {
	if len(features) != m.Features {
		return 0, fmt.Errorf("feature vector length %d, model expects %d", len(features), m.Features)
	}
	z := m.Intercept
	for i, w := range m.Weights {
		z += w * features[i]
	}
	return sigmoid(z), nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

var _ domsvc.FraudClassifier = (*Model)(nil)
