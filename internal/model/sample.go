package model

import "time"

// GeneFeature is one entry of the gene catalog: a required input feature and
// the resistance mechanism it is annotated with. The catalog is immutable
// after load; callers must not mutate entries.
type GeneFeature struct {
	Name      string    `json:"name"`
	Mechanism Mechanism `json:"mechanism"`
}

// SampleInput is one validated row of an uploaded abundance table. RawValues
// holds a value for every catalog gene (validation guarantees completeness);
// extra columns from the upload are already discarded.
type SampleInput struct {
	SampleID  string             `json:"sample_id"`
	RawValues map[string]float64 `json:"raw_values"`
}

// ScaledVector is the standardized feature vector fed to the predictor.
// Values are ordered exactly as the catalog orders its genes. It is ephemeral:
// produced by the scaler, consumed by the predictor, never exported.
type ScaledVector struct {
	SampleID string
	Values   []float64
}

// ScoreResult pairs a sample's continuous burden score with its risk bucket.
type ScoreResult struct {
	SampleID     string       `json:"sample_id"`
	BurdenScore  float64      `json:"burden_score"`
	RiskCategory RiskCategory `json:"risk_category"`
}

// MechanismProfile holds per-mechanism proportions of a sample's raw
// abundance. Proportions are non-negative and sum to 1 within floating
// tolerance, or are all zero when the sample's total abundance is zero.
type MechanismProfile struct {
	SampleID    string                `json:"sample_id"`
	Proportions map[Mechanism]float64 `json:"proportions"`
}

// Dominant returns the highest-proportion mechanism, breaking ties by the
// canonical mechanism enumeration so the result is reproducible. The second
// return is the winning proportion; ok is false for an empty or all-zero
// profile.
func (p *MechanismProfile) Dominant() (Mechanism, float64, bool) {
	var (
		best     Mechanism
		bestProp float64
		found    bool
	)
	for _, m := range MechanismOrder {
		prop, ok := p.Proportions[m]
		if !ok {
			continue
		}
		if !found || prop > bestProp {
			best, bestProp, found = m, prop, true
		}
	}
	if !found || bestProp == 0 {
		return "", 0, false
	}
	return best, bestProp, true
}

// SampleReport is the exported unit: everything the pipeline derived for one
// sample. The JSON field names are part of the external contract and mirror
// the download format of the original web tool.
type SampleReport struct {
	SampleID       string                `json:"Sample_ID"`
	BurdenScore    float64               `json:"AMR_Risk_Score"`
	RiskCategory   RiskCategory          `json:"Risk_Category"`
	Profile        map[Mechanism]float64 `json:"Resistance_Mechanism_Profile"`
	Interpretation string                `json:"Interpretation"`
}

// ExcludedSample records a row that failed per-sample validation and was
// dropped from the batch. Other rows are unaffected.
type ExcludedSample struct {
	SampleID string `json:"sample_id"`
	Reason   string `json:"reason"`
}

// BatchSummary aggregates a scored batch for the UI dashboard.
type BatchSummary struct {
	SampleCount   int     `json:"sample_count"`
	ExcludedCount int     `json:"excluded_count"`
	MeanScore     float64 `json:"mean_score"`
	LowCount      int     `json:"low_count"`
	ModerateCount int     `json:"moderate_count"`
	HighCount     int     `json:"high_count"`
}

// Batch is a scored upload: its reports in input order plus summary metadata.
type Batch struct {
	ID        string           `json:"id"`
	Filename  string           `json:"filename"`
	CreatedAt time.Time        `json:"created_at"`
	Summary   BatchSummary     `json:"summary"`
	Reports   []SampleReport   `json:"reports,omitempty"`
	Excluded  []ExcludedSample `json:"excluded,omitempty"`
}
