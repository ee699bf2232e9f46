package artifact

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/resistlab/amrburden/internal/model"
)

// LinearPredictor evaluates a trained linear regression artifact: the burden
// score is dot(coef, scaled) + intercept. The training pipeline exports the
// fitted Huber regressor in this form.
type LinearPredictor struct {
	coef      []float64
	intercept float64
}

type linearArtifact struct {
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

// NewLinearPredictor builds a predictor from explicit coefficients.
func NewLinearPredictor(coef []float64, intercept float64) (*LinearPredictor, error) {
	if len(coef) == 0 {
		return nil, fmt.Errorf("linear model has no coefficients")
	}
	return &LinearPredictor{coef: coef, intercept: intercept}, nil
}

// LoadLinear reads a linear model artifact: {"coef": [...], "intercept": f}.
func LoadLinear(path string) (*LinearPredictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model artifact %s: %w", path, err)
	}
	var a linearArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decoding model artifact %s: %w", path, err)
	}
	return NewLinearPredictor(a.Coef, a.Intercept)
}

// Predict returns the burden score for a standardized vector.
func (p *LinearPredictor) Predict(scaled []float64) (float64, error) {
	if len(scaled) != len(p.coef) {
		return 0, &model.InvalidVectorShapeError{Want: len(p.coef), Got: len(scaled)}
	}
	score := p.intercept
	for i, v := range scaled {
		score += p.coef[i] * v
	}
	return score, nil
}

// Close implements interfaces.Predictor; nothing to release.
func (p *LinearPredictor) Close() error {
	return nil
}
