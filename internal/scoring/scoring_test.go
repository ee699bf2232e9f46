package scoring_test

import (
	"errors"
	"math"
	"testing"

	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/scoring"
	"github.com/resistlab/amrburden/internal/testutil"
)

func smallCatalog() *testutil.DummyCatalog {
	return &testutil.DummyCatalog{GeneList: []model.GeneFeature{
		{Name: "cfxA", Mechanism: model.MechanismBetaLactamase},
		{Name: "aadE", Mechanism: model.MechanismAminoglycoside},
		{Name: "acrB", Mechanism: model.MechanismEffluxPump},
		{Name: "mefA", Mechanism: model.MechanismMacrolide},
		{Name: "tetQ", Mechanism: model.MechanismTargetMod},
		{Name: "marA", Mechanism: model.MechanismNonSpecific},
	}}
}

func sample(id string, values map[string]float64) model.SampleInput {
	return model.SampleInput{SampleID: id, RawValues: values}
}

func TestClassify_Boundaries(t *testing.T) {
	c := scoring.NewRiskClassifier(scoring.DefaultConfig())
	cases := []struct {
		score float64
		want  model.RiskCategory
	}{
		{0, model.RiskLow},
		{-100, model.RiskLow},
		{3e6, model.RiskLow},
		{3e6 + 1, model.RiskModerate},
		{5e6, model.RiskModerate},
		{5e6 + 1, model.RiskHigh},
		{5203599.469, model.RiskHigh},
	}
	for _, tc := range cases {
		if got := c.Classify(tc.score); got != tc.want {
			t.Errorf("Classify(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestProfile_NormalizesByTotal(t *testing.T) {
	p := scoring.NewProfiler(smallCatalog())
	prof, err := p.Profile(sample("s1", map[string]float64{
		"cfxA": 10, "aadE": 0, "acrB": 30, "mefA": 0, "tetQ": 0, "marA": 60,
	}))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}

	if got := prof.Proportions[model.MechanismBetaLactamase]; got != 0.1 {
		t.Fatalf("β-lactamase proportion = %v, want 0.1", got)
	}
	if got := prof.Proportions[model.MechanismEffluxPump]; got != 0.3 {
		t.Fatalf("efflux proportion = %v, want 0.3", got)
	}
	if got := prof.Proportions[model.MechanismNonSpecific]; got != 0.6 {
		t.Fatalf("non-specific proportion = %v, want 0.6", got)
	}

	// Every mechanism appears, including the zero ones, and the proportions
	// sum to 1 within floating tolerance.
	sum := 0.0
	for _, m := range model.MechanismOrder {
		v, ok := prof.Proportions[m]
		if !ok {
			t.Fatalf("mechanism %q missing from profile", m)
		}
		sum += v
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Fatalf("proportions sum to %v, want 1", sum)
	}
}

func TestProfile_AllZeroSample(t *testing.T) {
	p := scoring.NewProfiler(smallCatalog())
	prof, err := p.Profile(sample("s1", map[string]float64{
		"cfxA": 0, "aadE": 0, "acrB": 0, "mefA": 0, "tetQ": 0, "marA": 0,
	}))
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	for m, v := range prof.Proportions {
		if v != 0 {
			t.Fatalf("mechanism %q = %v, want 0", m, v)
		}
	}
}

func TestProfile_NegativeAbundance(t *testing.T) {
	p := scoring.NewProfiler(smallCatalog())
	_, err := p.Profile(sample("s1", map[string]float64{
		"cfxA": 1, "aadE": -2, "acrB": 3, "mefA": 0, "tetQ": 0, "marA": 0,
	}))

	var abundanceErr *model.InvalidAbundanceError
	if !errors.As(err, &abundanceErr) {
		t.Fatalf("expected InvalidAbundanceError, got %v", err)
	}
	if abundanceErr.SampleID != "s1" || abundanceErr.Gene != "aadE" || abundanceErr.Value != -2 {
		t.Fatalf("error details = %+v", abundanceErr)
	}
}

func TestInterpret_DominantMechanisms(t *testing.T) {
	in := scoring.NewInterpreter(scoring.DefaultConfig())

	profile := func(props map[model.Mechanism]float64) *model.MechanismProfile {
		return &model.MechanismProfile{SampleID: "s1", Proportions: props}
	}

	cases := []struct {
		name  string
		props map[model.Mechanism]float64
		want  string
	}{
		{
			name:  "beta lactamase dominant",
			props: map[model.Mechanism]float64{model.MechanismBetaLactamase: 0.7, model.MechanismEffluxPump: 0.3},
			want:  "β-lactamase–mediated resistance is prominent",
		},
		{
			name:  "efflux dominant",
			props: map[model.Mechanism]float64{model.MechanismEffluxPump: 0.6, model.MechanismTargetMod: 0.4},
			want:  "Efflux-based multidrug resistance likely",
		},
		{
			name:  "macrolide efflux shares the efflux sentence",
			props: map[model.Mechanism]float64{model.MechanismMacrolide: 0.8, model.MechanismTargetMod: 0.2},
			want:  "Efflux-based multidrug resistance likely",
		},
		{
			name:  "aminoglycoside dominant",
			props: map[model.Mechanism]float64{model.MechanismAminoglycoside: 0.9, model.MechanismTargetMod: 0.1},
			want:  "Aminoglycoside-modifying enzymes drive the resistance signal",
		},
		{
			name:  "target modification dominant",
			props: map[model.Mechanism]float64{model.MechanismTargetMod: 0.55, model.MechanismEffluxPump: 0.45},
			want:  "Target modification underlies the dominant resistance signal",
		},
		{
			name:  "non-specific dominant",
			props: map[model.Mechanism]float64{model.MechanismNonSpecific: 0.65, model.MechanismBetaLactamase: 0.35},
			want:  "Resistance is dominated by Non-Specific Resistance mechanisms with indirect AMR contribution",
		},
		{
			name: "below threshold falls back to highest proportion",
			props: map[model.Mechanism]float64{
				model.MechanismBetaLactamase: 0.4,
				model.MechanismEffluxPump:    0.35,
				model.MechanismTargetMod:     0.25,
			},
			want: "β-lactamase–mediated resistance is prominent",
		},
		{
			name:  "all zero",
			props: map[model.Mechanism]float64{model.MechanismBetaLactamase: 0, model.MechanismEffluxPump: 0},
			want:  "No significant resistance mechanisms detected",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := in.Interpret(profile(tc.props)); got != tc.want {
				t.Fatalf("Interpret = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInterpret_TieBreaksByMechanismOrder(t *testing.T) {
	in := scoring.NewInterpreter(scoring.DefaultConfig())
	// Exact tie below the dominance threshold: the canonical enumeration
	// puts β-lactamase before target modification.
	p := &model.MechanismProfile{SampleID: "s1", Proportions: map[model.Mechanism]float64{
		model.MechanismBetaLactamase: 0.4,
		model.MechanismTargetMod:     0.4,
		model.MechanismEffluxPump:    0.2,
	}}
	if got := in.Interpret(p); got != "β-lactamase–mediated resistance is prominent" {
		t.Fatalf("Interpret = %q", got)
	}
}

func TestInterpret_NilProfile(t *testing.T) {
	in := scoring.NewInterpreter(scoring.DefaultConfig())
	if got := in.Interpret(nil); got != "No significant resistance mechanisms detected" {
		t.Fatalf("Interpret(nil) = %q", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	bad := scoring.Config{LowThreshold: 5e6, HighThreshold: 3e6, DominanceThreshold: 0.5}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for inverted thresholds")
	}
	bad = scoring.Config{LowThreshold: 1, HighThreshold: 2, DominanceThreshold: 0}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected error for zero dominance threshold")
	}
	if err := scoring.DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestScoreSample_EndToEnd(t *testing.T) {
	cat := smallCatalog()
	scaler := &testutil.DummyScaler{Features: cat.Size()}
	predictor := &testutil.DummyPredictor{Score: 5203599.469}
	logger := &testutil.DummyLogger{}

	pipe, err := scoring.NewPipeline(cat, scaler, predictor, scoring.DefaultConfig(), logger)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	// Raw abundances apportioned like the reference run: non-specific
	// background carries most of the signal.
	rep, err := pipe.ScoreSample(sample("s1", map[string]float64{
		"cfxA": 151, "aadE": 131, "acrB": 30, "mefA": 25, "tetQ": 17, "marA": 646,
	}))
	if err != nil {
		t.Fatalf("ScoreSample: %v", err)
	}

	if rep.SampleID != "s1" {
		t.Fatalf("SampleID = %q", rep.SampleID)
	}
	if rep.BurdenScore != 5203599.469 {
		t.Fatalf("BurdenScore = %v", rep.BurdenScore)
	}
	if rep.RiskCategory != model.RiskHigh {
		t.Fatalf("RiskCategory = %q, want High", rep.RiskCategory)
	}
	if got := rep.Profile[model.MechanismNonSpecific]; math.Abs(got-0.646) > 1e-9 {
		t.Fatalf("non-specific proportion = %v, want 0.646", got)
	}
	if rep.Interpretation != "Resistance is dominated by Non-Specific Resistance mechanisms with indirect AMR contribution" {
		t.Fatalf("Interpretation = %q", rep.Interpretation)
	}
	if len(predictor.Inputs) != 1 {
		t.Fatalf("predictor called %d times, want 1", len(predictor.Inputs))
	}
}

func TestScoreSample_NegativeAbundanceExcludesSample(t *testing.T) {
	cat := smallCatalog()
	scaler := &testutil.DummyScaler{Features: cat.Size()}
	predictor := &testutil.DummyPredictor{Score: 1}

	pipe, err := scoring.NewPipeline(cat, scaler, predictor, scoring.DefaultConfig(), &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	_, err = pipe.ScoreSample(sample("bad", map[string]float64{
		"cfxA": -5, "aadE": 0, "acrB": 0, "mefA": 0, "tetQ": 0, "marA": 0,
	}))
	var abundanceErr *model.InvalidAbundanceError
	if !errors.As(err, &abundanceErr) {
		t.Fatalf("expected InvalidAbundanceError, got %v", err)
	}
	// The predictor must not have been consulted for an invalid sample.
	if len(predictor.Inputs) != 0 {
		t.Fatalf("predictor called for an invalid sample")
	}
}

func TestScoreSample_PredictorFailure(t *testing.T) {
	cat := smallCatalog()
	scaler := &testutil.DummyScaler{Features: cat.Size()}
	predictor := &testutil.DummyPredictor{Err: errors.New("runtime gone")}

	pipe, err := scoring.NewPipeline(cat, scaler, predictor, scoring.DefaultConfig(), &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	if _, err := pipe.ScoreSample(sample("s1", map[string]float64{
		"cfxA": 1, "aadE": 1, "acrB": 1, "mefA": 1, "tetQ": 1, "marA": 1,
	})); err == nil {
		t.Fatalf("expected predictor error to propagate")
	}
}

func TestNewPipeline_RejectsFeatureMismatch(t *testing.T) {
	cat := smallCatalog()
	scaler := &testutil.DummyScaler{Features: cat.Size() + 1}
	predictor := &testutil.DummyPredictor{}
	if _, err := scoring.NewPipeline(cat, scaler, predictor, scoring.DefaultConfig(), &testutil.DummyLogger{}); err == nil {
		t.Fatalf("expected feature-count mismatch error")
	}
}
