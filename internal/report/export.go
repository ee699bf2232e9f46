package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/resistlab/amrburden/internal/model"
)

// exportRecord is the JSON wire form of one sample report. Field names are
// the download contract of the original tool and must not change.
type exportRecord struct {
	SampleID       string             `json:"Sample_ID"`
	BurdenScore    float64            `json:"AMR_Risk_Score"`
	RiskCategory   model.RiskCategory `json:"Risk_Category"`
	Profile        map[string]float64 `json:"Resistance_Mechanism_Profile"`
	Interpretation string             `json:"Interpretation"`
}

func toRecord(r model.SampleReport) exportRecord {
	profile := make(map[string]float64, len(r.Profile))
	for m, v := range r.Profile {
		profile[string(m)] = round3(v)
	}
	return exportRecord{
		SampleID:       r.SampleID,
		BurdenScore:    round3(r.BurdenScore),
		RiskCategory:   r.RiskCategory,
		Profile:        profile,
		Interpretation: r.Interpretation,
	}
}

// round3 matches the original tool's display precision for downloads.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// WriteJSON serializes a batch as an indented JSON array, one object per
// sample, in input order.
func WriteJSON(w io.Writer, reports []model.SampleReport) error {
	records := make([]exportRecord, len(reports))
	for i, r := range reports {
		records[i] = toRecord(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding JSON export: %w", err)
	}
	return nil
}

// WriteSampleJSON serializes a single sample report, matching the per-sample
// download of the original tool.
func WriteSampleJSON(w io.Writer, r model.SampleReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toRecord(r)); err != nil {
		return fmt.Errorf("encoding sample export: %w", err)
	}
	return nil
}

// CSVHeader is the fixed export column order: identity and score first, then
// one proportion column per mechanism in the canonical enumeration, then the
// interpretation.
func CSVHeader() []string {
	header := []string{"Sample_ID", "AMR_Risk_Score", "Risk_Category"}
	for _, m := range model.MechanismOrder {
		header = append(header, string(m))
	}
	return append(header, "Interpretation")
}

// WriteCSV serializes a batch as a flat CSV, one row per sample.
func WriteCSV(w io.Writer, reports []model.SampleReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, r := range reports {
		row := []string{
			r.SampleID,
			strconv.FormatFloat(round3(r.BurdenScore), 'f', -1, 64),
			string(r.RiskCategory),
		}
		for _, m := range model.MechanismOrder {
			row = append(row, strconv.FormatFloat(round3(r.Profile[m]), 'f', -1, 64))
		}
		row = append(row, r.Interpretation)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row for %q: %w", r.SampleID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
