package scoring

import "github.com/resistlab/amrburden/internal/model"

// Canned interpretation sentences. The set is fixed and finite; the
// interpreter only ever selects, never composes.
const (
	interpNone           = "No significant resistance mechanisms detected"
	interpNonSpecific    = "Resistance is dominated by Non-Specific Resistance mechanisms with indirect AMR contribution"
	interpBetaLactamase  = "β-lactamase–mediated resistance is prominent"
	interpEfflux         = "Efflux-based multidrug resistance likely"
	interpAminoglycoside = "Aminoglycoside-modifying enzymes drive the resistance signal"
	interpTargetMod      = "Target modification underlies the dominant resistance signal"
	interpMixed          = "Mixed resistance mechanisms observed"
)

// Interpreter maps a mechanism profile to an explanatory sentence.
type Interpreter struct {
	dominance float64
}

// NewInterpreter builds an interpreter with the configured dominance
// threshold.
func NewInterpreter(cfg Config) *Interpreter {
	return &Interpreter{dominance: cfg.DominanceThreshold}
}

// Interpret picks the dominant mechanism and returns its canned sentence.
// A mechanism is dominant when its proportion reaches the dominance
// threshold; absent any, the single highest proportion wins. Ties break by
// the canonical mechanism enumeration so results are reproducible.
func (in *Interpreter) Interpret(p *model.MechanismProfile) string {
	if p == nil || len(p.Proportions) == 0 {
		return interpNone
	}

	// Threshold pass first: the enumeration order makes the pick
	// deterministic when several mechanisms clear the bar.
	for _, m := range model.MechanismOrder {
		if p.Proportions[m] >= in.dominance && p.Proportions[m] > 0 {
			return sentenceFor(m)
		}
	}

	dominant, _, ok := p.Dominant()
	if !ok {
		return interpNone
	}
	return sentenceFor(dominant)
}

func sentenceFor(m model.Mechanism) string {
	switch m {
	case model.MechanismNonSpecific:
		return interpNonSpecific
	case model.MechanismBetaLactamase:
		return interpBetaLactamase
	case model.MechanismEffluxPump, model.MechanismMacrolide:
		return interpEfflux
	case model.MechanismAminoglycoside:
		return interpAminoglycoside
	case model.MechanismTargetMod:
		return interpTargetMod
	default:
		return interpMixed
	}
}
