package scoring

import (
	"fmt"

	"github.com/resistlab/amrburden/internal/dataset"
	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/logging"
	"github.com/resistlab/amrburden/internal/model"
	"github.com/resistlab/amrburden/internal/report"
)

// Pipeline runs one validated sample through the full scoring chain:
// profile the raw values, standardize, predict, classify, interpret and
// assemble the report. It holds only read-only collaborators, so a single
// Pipeline may be shared by concurrent sample workers.
type Pipeline struct {
	cat        interfaces.Catalog
	scaler     interfaces.Scaler
	predictor  interfaces.Predictor
	classifier *RiskClassifier
	profiler   *Profiler
	interp     *Interpreter
	logger     interfaces.Logger
}

// NewPipeline wires the pipeline and checks the scaler against the catalog
// so feature-order mismatches fail at startup instead of mid-batch.
func NewPipeline(cat interfaces.Catalog, scaler interfaces.Scaler, predictor interfaces.Predictor, cfg Config, logger interfaces.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	if scaler.FeatureCount() != cat.Size() {
		return nil, fmt.Errorf("scaler was fit with %d features, catalog has %d", scaler.FeatureCount(), cat.Size())
	}
	if logger == nil {
		logger = logging.NewStdoutLogger("pipeline")
	}
	return &Pipeline{
		cat:        cat,
		scaler:     scaler,
		predictor:  predictor,
		classifier: NewRiskClassifier(cfg),
		profiler:   NewProfiler(cat),
		interp:     NewInterpreter(cfg),
		logger:     logger.With(interfaces.Field{Key: "component", Value: "pipeline"}),
	}, nil
}

// ScoreSample produces the complete report for one sample, or an error that
// excludes the sample without touching the rest of its batch. A report is
// never partially populated: any failure drops the sample entirely.
func (p *Pipeline) ScoreSample(s model.SampleInput) (model.SampleReport, error) {
	// Profile first: it enforces the non-negativity contract on raw values
	// before the predictor sees anything derived from them.
	profile, err := p.profiler.Profile(s)
	if err != nil {
		return model.SampleReport{}, err
	}

	scaled, err := p.scaler.Transform(dataset.Vector(s, p.cat))
	if err != nil {
		return model.SampleReport{}, fmt.Errorf("standardizing sample %q: %w", s.SampleID, err)
	}

	score, err := p.predictor.Predict(scaled)
	if err != nil {
		return model.SampleReport{}, fmt.Errorf("predicting sample %q: %w", s.SampleID, err)
	}

	result := model.ScoreResult{
		SampleID:     s.SampleID,
		BurdenScore:  score,
		RiskCategory: p.classifier.Classify(score),
	}

	rep, err := report.Assemble(s.SampleID, &result, profile, p.interp.Interpret(profile))
	if err != nil {
		return model.SampleReport{}, err
	}

	p.logger.Debug("scored sample",
		interfaces.Field{Key: "sample_id", Value: s.SampleID},
		interfaces.Field{Key: "score", Value: score},
		interfaces.Field{Key: "category", Value: result.RiskCategory})
	return rep, nil
}
