// Package scoring implements the deterministic half of the pipeline: risk
// classification, mechanism profiling and interpretation around the opaque
// trained artifacts.
package scoring

import "github.com/resistlab/amrburden/internal/model"

// RiskClassifier buckets a continuous burden score into three ordered
// categories via two fixed cutoffs.
type RiskClassifier struct {
	low  float64
	high float64
}

// NewRiskClassifier builds a classifier from validated config.
func NewRiskClassifier(cfg Config) *RiskClassifier {
	return &RiskClassifier{low: cfg.LowThreshold, high: cfg.HighThreshold}
}

// Classify is total over all real scores, including negative and zero.
func (c *RiskClassifier) Classify(score float64) model.RiskCategory {
	switch {
	case score <= c.low:
		return model.RiskLow
	case score <= c.high:
		return model.RiskModerate
	default:
		return model.RiskHigh
	}
}
