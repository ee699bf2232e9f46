// Package report assembles per-sample results into exportable records and
// serializes batches to CSV and JSON downloads.
package report

import (
	"fmt"

	"github.com/resistlab/amrburden/internal/model"
)

// Assemble merges the derived sub-results for one sample into its final
// report. Every argument is required: a missing sub-result is a programming
// contract violation, not a user-facing condition, and no partially filled
// report is ever produced.
func Assemble(sampleID string, score *model.ScoreResult, profile *model.MechanismProfile, interpretation string) (model.SampleReport, error) {
	if score == nil || profile == nil {
		return model.SampleReport{}, fmt.Errorf("assembling report for %q: missing sub-result", sampleID)
	}
	if score.SampleID != sampleID || profile.SampleID != sampleID {
		return model.SampleReport{}, fmt.Errorf("assembling report for %q: sub-results belong to %q/%q", sampleID, score.SampleID, profile.SampleID)
	}
	if interpretation == "" {
		return model.SampleReport{}, fmt.Errorf("assembling report for %q: empty interpretation", sampleID)
	}

	proportions := make(map[model.Mechanism]float64, len(profile.Proportions))
	for m, v := range profile.Proportions {
		proportions[m] = v
	}

	return model.SampleReport{
		SampleID:       sampleID,
		BurdenScore:    score.BurdenScore,
		RiskCategory:   score.RiskCategory,
		Profile:        proportions,
		Interpretation: interpretation,
	}, nil
}

// Summarize aggregates a scored batch for the UI dashboard.
func Summarize(reports []model.SampleReport, excluded []model.ExcludedSample) model.BatchSummary {
	s := model.BatchSummary{
		SampleCount:   len(reports),
		ExcludedCount: len(excluded),
	}
	total := 0.0
	for _, r := range reports {
		total += r.BurdenScore
		switch r.RiskCategory {
		case model.RiskLow:
			s.LowCount++
		case model.RiskModerate:
			s.ModerateCount++
		case model.RiskHigh:
			s.HighCount++
		}
	}
	if len(reports) > 0 {
		s.MeanScore = total / float64(len(reports))
	}
	return s
}
