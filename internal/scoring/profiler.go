package scoring

import (
	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/model"
)

// Profiler aggregates a sample's raw (unscaled) abundances by resistance
// mechanism. It deliberately works on raw values: the standardized vector
// fed to the predictor is a model input, not an interpretable proportion,
// and the two views must not be confused.
type Profiler struct {
	cat interfaces.Catalog
}

// NewProfiler builds a profiler over the given catalog.
func NewProfiler(cat interfaces.Catalog) *Profiler {
	return &Profiler{cat: cat}
}

// Profile sums raw values per mechanism and normalizes by the grand total.
// An all-zero sample yields an all-zero profile rather than a division by
// zero. A negative value fails with *model.InvalidAbundanceError naming the
// first offending gene in catalog order.
func (p *Profiler) Profile(s model.SampleInput) (*model.MechanismProfile, error) {
	sums := make(map[model.Mechanism]float64, len(model.MechanismOrder))
	for _, m := range model.MechanismOrder {
		sums[m] = 0
	}

	total := 0.0
	for _, g := range p.cat.Genes() {
		v := s.RawValues[g.Name]
		if v < 0 {
			return nil, &model.InvalidAbundanceError{SampleID: s.SampleID, Gene: g.Name, Value: v}
		}
		sums[g.Mechanism] += v
		total += v
	}

	proportions := make(map[model.Mechanism]float64, len(sums))
	if total > 0 {
		for m, sum := range sums {
			proportions[m] = sum / total
		}
	} else {
		for m := range sums {
			proportions[m] = 0
		}
	}

	return &model.MechanismProfile{SampleID: s.SampleID, Proportions: proportions}, nil
}
