package model

// Mechanism is the biological category explaining how a gene confers
// resistance. The set is closed: every catalog gene maps to exactly one of
// the values below, and unrecognized annotation labels collapse to
// MechanismNonSpecific at catalog load time.
type Mechanism string

const (
	MechanismBetaLactamase  Mechanism = "β-lactamase"
	MechanismAminoglycoside Mechanism = "Aminoglycoside resistance"
	MechanismEffluxPump     Mechanism = "Efflux pump"
	MechanismMacrolide      Mechanism = "Macrolide efflux"
	MechanismTargetMod      Mechanism = "Target modification"
	MechanismNonSpecific    Mechanism = "Non-Specific Resistance"
)

// MechanismOrder is the canonical mechanism enumeration. It fixes the CSV
// export column order and the tie-break priority used when two mechanisms
// hold equal proportions in a profile.
var MechanismOrder = []Mechanism{
	MechanismBetaLactamase,
	MechanismAminoglycoside,
	MechanismEffluxPump,
	MechanismMacrolide,
	MechanismTargetMod,
	MechanismNonSpecific,
}

// RiskCategory is the three-bucket classification of a burden score.
type RiskCategory string

const (
	RiskLow      RiskCategory = "Low"
	RiskModerate RiskCategory = "Moderate"
	RiskHigh     RiskCategory = "High"
)
