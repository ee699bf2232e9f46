// Package testutil provides shared test doubles for use across package tests.
// All dummies implement the corresponding interfaces from the production code,
// allowing injection into components under test without real I/O or side effects.
package testutil

import (
	"sync"

	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/model"
)

// ─── Logger ────────────────────────────────────────────────────────────

// DummyLogger implements logging.Logger with in-memory recording.
type DummyLogger struct {
	mu     sync.Mutex
	Errors []string
	Infos  []string
	Debugs []string
	Warns  []string
}

func (l *DummyLogger) Debug(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Debugs = append(l.Debugs, msg)
}

func (l *DummyLogger) Info(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Infos = append(l.Infos, msg)
}

func (l *DummyLogger) Warn(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Warns = append(l.Warns, msg)
}

func (l *DummyLogger) Error(msg string, fields ...logging.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Errors = append(l.Errors, msg)
}

func (l *DummyLogger) With(_ ...logging.Field) logging.Logger { return l }

// ─── Catalog ───────────────────────────────────────────────────────────

// DummyCatalog implements interfaces.Catalog over an explicit gene list,
// letting tests run with small catalogs instead of the full reference set.
type DummyCatalog struct {
	GeneList []model.GeneFeature
}

func (c *DummyCatalog) Genes() []model.GeneFeature { return c.GeneList }

func (c *DummyCatalog) MechanismOf(gene string) (model.Mechanism, bool) {
	for _, g := range c.GeneList {
		if g.Name == gene {
			return g.Mechanism, true
		}
	}
	return "", false
}

func (c *DummyCatalog) Size() int { return len(c.GeneList) }

// ─── Scaler ────────────────────────────────────────────────────────────

// DummyScaler implements interfaces.Scaler. It passes vectors through
// unchanged unless Offset is set, in which case Offset is added to every
// component.
type DummyScaler struct {
	Features int
	Offset   float64
	Err      error
}

func (s *DummyScaler) Transform(v []float64) ([]float64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if len(v) != s.Features {
		return nil, &model.InvalidVectorShapeError{Want: s.Features, Got: len(v)}
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x + s.Offset
	}
	return out, nil
}

func (s *DummyScaler) FeatureCount() int { return s.Features }

// ─── Predictor ─────────────────────────────────────────────────────────

// DummyPredictor implements interfaces.Predictor with a fixed score, or the
// sum of the input vector when Score is zero and SumInputs is set.
type DummyPredictor struct {
	Score     float64
	SumInputs bool
	Err       error

	mu     sync.Mutex
	Inputs [][]float64
	Closed bool
}

func (p *DummyPredictor) Predict(v []float64) (float64, error) {
	if p.Err != nil {
		return 0, p.Err
	}
	p.mu.Lock()
	cp := append([]float64(nil), v...)
	p.Inputs = append(p.Inputs, cp)
	p.mu.Unlock()

	if p.SumInputs {
		var sum float64
		for _, x := range v {
			sum += x
		}
		return sum, nil
	}
	return p.Score, nil
}

func (p *DummyPredictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Closed = true
	return nil
}
