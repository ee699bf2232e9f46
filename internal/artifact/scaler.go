// Package artifact loads the externally trained scaler and predictor and
// exposes them behind the interfaces contracts. The artifacts are opaque:
// their fitting procedure is out of scope, only their numeric-vector-in /
// numeric-out behavior is used here.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/resistlab/amrburden/internal/model"
)

// StandardScaler applies the per-feature (mean, scale) standardization fixed
// at training time. It must receive vectors in the exact feature order it
// was fit with.
type StandardScaler struct {
	means  []float64
	scales []float64
}

type scalerArtifact struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// NewStandardScaler builds a scaler from explicit parameters.
func NewStandardScaler(mean, scale []float64) (*StandardScaler, error) {
	if len(mean) == 0 {
		return nil, fmt.Errorf("scaler has no parameters")
	}
	if len(mean) != len(scale) {
		return nil, fmt.Errorf("scaler mean/scale length mismatch: %d vs %d", len(mean), len(scale))
	}
	return &StandardScaler{means: mean, scales: scale}, nil
}

// LoadScaler reads a scaler parameters artifact: {"mean": [...], "scale": [...]}.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scaler artifact %s: %w", path, err)
	}
	var a scalerArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding scaler artifact %s: %w", path, err)
	}
	return NewStandardScaler(a.Mean, a.Scale)
}

// Transform standardizes raw into a new slice. A zero scale falls back to 1,
// matching the training library's handling of constant features.
func (s *StandardScaler) Transform(raw []float64) ([]float64, error) {
	if len(raw) != len(s.means) {
		return nil, &model.InvalidVectorShapeError{Want: len(s.means), Got: len(raw)}
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		scale := s.scales[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (v - s.means[i]) / scale
	}
	return out, nil
}

// FeatureCount reports the number of features the scaler was fit with.
func (s *StandardScaler) FeatureCount() int {
	return len(s.means)
}
