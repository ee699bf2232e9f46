package report_test

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/report"
)

func sampleReport(id string, score float64, cat model.RiskCategory) model.SampleReport {
	return model.SampleReport{
		SampleID:     id,
		BurdenScore:  score,
		RiskCategory: cat,
		Profile: map[model.Mechanism]float64{
			model.MechanismBetaLactamase:  0.15123456,
			model.MechanismAminoglycoside: 0.131,
			model.MechanismEffluxPump:     0.03,
			model.MechanismMacrolide:      0.025,
			model.MechanismTargetMod:      0.016,
			model.MechanismNonSpecific:    0.64676544,
		},
		Interpretation: "Mixed resistance mechanisms observed",
	}
}

func TestAssemble_MergesSubResults(t *testing.T) {
	score := &model.ScoreResult{SampleID: "s1", BurdenScore: 42, RiskCategory: model.RiskLow}
	profile := &model.MechanismProfile{SampleID: "s1", Proportions: map[model.Mechanism]float64{
		model.MechanismEffluxPump: 1,
	}}

	rep, err := report.Assemble("s1", score, profile, "Efflux-based multidrug resistance likely")
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if rep.BurdenScore != 42 || rep.RiskCategory != model.RiskLow {
		t.Fatalf("report = %+v", rep)
	}

	// The report must hold its own copy of the proportions.
	profile.Proportions[model.MechanismEffluxPump] = 0
	if rep.Profile[model.MechanismEffluxPump] != 1 {
		t.Fatalf("report shares profile map with sub-result")
	}
}

func TestAssemble_ContractViolations(t *testing.T) {
	score := &model.ScoreResult{SampleID: "s1"}
	profile := &model.MechanismProfile{SampleID: "s1"}

	if _, err := report.Assemble("s1", nil, profile, "x"); err == nil {
		t.Fatalf("expected error for nil score")
	}
	if _, err := report.Assemble("s1", score, nil, "x"); err == nil {
		t.Fatalf("expected error for nil profile")
	}
	if _, err := report.Assemble("s1", score, profile, ""); err == nil {
		t.Fatalf("expected error for empty interpretation")
	}
	other := &model.ScoreResult{SampleID: "s2"}
	if _, err := report.Assemble("s1", other, profile, "x"); err == nil {
		t.Fatalf("expected error for sample ID mismatch")
	}
}

func TestWriteJSON_ContractKeys(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, []model.SampleReport{sampleReport("s1", 5203599.4689, model.RiskHigh)}); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record got %d", len(records))
	}
	rec := records[0]

	for _, key := range []string{"Sample_ID", "AMR_Risk_Score", "Risk_Category", "Resistance_Mechanism_Profile", "Interpretation"} {
		if _, ok := rec[key]; !ok {
			t.Fatalf("export missing key %q", key)
		}
	}
	if rec["Sample_ID"] != "s1" {
		t.Fatalf("Sample_ID = %v", rec["Sample_ID"])
	}
	// Scores and proportions are rounded to 3 decimals on export.
	if rec["AMR_Risk_Score"] != 5203599.469 {
		t.Fatalf("AMR_Risk_Score = %v, want 5203599.469", rec["AMR_Risk_Score"])
	}
	profile := rec["Resistance_Mechanism_Profile"].(map[string]any)
	if got := profile["β-lactamase"]; got != 0.151 {
		t.Fatalf("β-lactamase = %v, want 0.151", got)
	}
	if got := profile["Non-Specific Resistance"]; got != 0.647 {
		t.Fatalf("Non-Specific Resistance = %v, want 0.647", got)
	}
}

func TestWriteCSV_ColumnOrder(t *testing.T) {
	var buf bytes.Buffer
	reports := []model.SampleReport{
		sampleReport("s1", 100, model.RiskLow),
		sampleReport("s2", 4e6, model.RiskModerate),
	}
	if err := report.WriteCSV(&buf, reports); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("parsing CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
	}

	wantHeader := []string{
		"Sample_ID", "AMR_Risk_Score", "Risk_Category",
		"β-lactamase", "Aminoglycoside resistance", "Efflux pump",
		"Macrolide efflux", "Target modification", "Non-Specific Resistance",
		"Interpretation",
	}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Fatalf("header[%d] = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][0] != "s1" || rows[2][0] != "s2" {
		t.Fatalf("rows out of input order: %v", rows)
	}
	if rows[2][2] != "Moderate" {
		t.Fatalf("s2 category = %q", rows[2][2])
	}
}

func TestWriteSampleJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteSampleJSON(&buf, sampleReport("s1", 1, model.RiskLow)); err != nil {
		t.Fatalf("WriteSampleJSON: %v", err)
	}
	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decoding export: %v", err)
	}
	if rec["Sample_ID"] != "s1" {
		t.Fatalf("Sample_ID = %v", rec["Sample_ID"])
	}
}

func TestSummarize(t *testing.T) {
	reports := []model.SampleReport{
		{SampleID: "a", BurdenScore: 1e6, RiskCategory: model.RiskLow},
		{SampleID: "b", BurdenScore: 4e6, RiskCategory: model.RiskModerate},
		{SampleID: "c", BurdenScore: 7e6, RiskCategory: model.RiskHigh},
	}
	excluded := []model.ExcludedSample{{SampleID: "d", Reason: "negative abundance"}}

	s := report.Summarize(reports, excluded)
	if s.SampleCount != 3 || s.ExcludedCount != 1 {
		t.Fatalf("summary counts = %+v", s)
	}
	if s.LowCount != 1 || s.ModerateCount != 1 || s.HighCount != 1 {
		t.Fatalf("category counts = %+v", s)
	}
	if s.MeanScore != 4e6 {
		t.Fatalf("MeanScore = %v, want 4e6", s.MeanScore)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := report.Summarize(nil, nil)
	if s.SampleCount != 0 || s.MeanScore != 0 {
		t.Fatalf("empty summary = %+v", s)
	}
}
