package artifact_test

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/resistlab/amrburden/internal/artifact"
	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/testutil"
)

func writeArtifact(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func TestLoadScaler_TransformsVectors(t *testing.T) {
	path := writeArtifact(t, "scaler.json", `{"mean":[10,20],"scale":[2,5]}`)
	s, err := artifact.LoadScaler(path)
	if err != nil {
		t.Fatalf("LoadScaler: %v", err)
	}
	if s.FeatureCount() != 2 {
		t.Fatalf("FeatureCount = %d", s.FeatureCount())
	}

	out, err := s.Transform([]float64{12, 10})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out[0] != 1 || out[1] != -2 {
		t.Fatalf("Transform = %v, want [1 -2]", out)
	}
}

func TestScaler_ZeroScaleFallsBackToOne(t *testing.T) {
	s, err := artifact.NewStandardScaler([]float64{5}, []float64{0})
	if err != nil {
		t.Fatalf("NewStandardScaler: %v", err)
	}
	out, err := s.Transform([]float64{8})
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if out[0] != 3 {
		t.Fatalf("Transform = %v, want [3]", out)
	}
}

func TestScaler_ShapeMismatch(t *testing.T) {
	s, err := artifact.NewStandardScaler([]float64{1, 2}, []float64{1, 1})
	if err != nil {
		t.Fatalf("NewStandardScaler: %v", err)
	}
	_, err = s.Transform([]float64{1})
	var shapeErr *model.InvalidVectorShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("expected InvalidVectorShapeError, got %v", err)
	}
	if shapeErr.Want != 2 || shapeErr.Got != 1 {
		t.Fatalf("shape error = %+v", shapeErr)
	}
}

func TestLoadScaler_LengthMismatch(t *testing.T) {
	path := writeArtifact(t, "scaler.json", `{"mean":[1,2],"scale":[1]}`)
	if _, err := artifact.LoadScaler(path); err == nil {
		t.Fatalf("expected error for mean/scale length mismatch")
	}
}

func TestLinearPredictor_Predict(t *testing.T) {
	path := writeArtifact(t, "model.json", `{"coef":[2,-1,0.5],"intercept":10}`)
	p, err := artifact.LoadLinear(path)
	if err != nil {
		t.Fatalf("LoadLinear: %v", err)
	}
	got, err := p.Predict([]float64{1, 2, 4})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	want := 10 + 2.0 - 2.0 + 2.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("Predict = %v, want %v", got, want)
	}
}

func TestLinearPredictor_ShapeMismatch(t *testing.T) {
	p, err := artifact.NewLinearPredictor([]float64{1, 2}, 0)
	if err != nil {
		t.Fatalf("NewLinearPredictor: %v", err)
	}
	if _, err := p.Predict([]float64{1}); err == nil {
		t.Fatalf("expected shape error")
	}
}

func TestNewPredictor_LinearBackend(t *testing.T) {
	path := writeArtifact(t, "model.json", `{"coef":[1,1],"intercept":0}`)
	cfg := artifact.Config{Backend: "linear", ModelPath: path}

	p, err := artifact.NewPredictor(cfg, 2, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}
	defer p.Close()

	got, err := p.Predict([]float64{3, 4})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != 7 {
		t.Fatalf("Predict = %v, want 7", got)
	}
}

func TestNewPredictor_FeatureCountMismatch(t *testing.T) {
	path := writeArtifact(t, "model.json", `{"coef":[1,1],"intercept":0}`)
	cfg := artifact.Config{Backend: "linear", ModelPath: path}
	if _, err := artifact.NewPredictor(cfg, 50, &testutil.DummyLogger{}); err == nil {
		t.Fatalf("expected error for coefficient count mismatch")
	}
}

func TestNewPredictor_UnknownBackend(t *testing.T) {
	cfg := artifact.Config{Backend: "no-such-backend"}
	if _, err := artifact.NewPredictor(cfg, 2, &testutil.DummyLogger{}); err == nil {
		t.Fatalf("expected error for unregistered backend")
	}
}

func TestNewPredictor_DefaultsToLinear(t *testing.T) {
	path := writeArtifact(t, "model.json", `{"coef":[1],"intercept":5}`)
	cfg := artifact.Config{ModelPath: path}
	p, err := artifact.NewPredictor(cfg, 1, &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("NewPredictor: %v", err)
	}
	defer p.Close()
	got, err := p.Predict([]float64{0})
	if err != nil || got != 5 {
		t.Fatalf("Predict = %v, %v; want 5, nil", got, err)
	}
}
