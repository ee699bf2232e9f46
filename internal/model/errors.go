package model

import (
	"fmt"
	"strings"
)

// MissingFeaturesError reports catalog genes absent from an uploaded table.
// It applies to the whole table (columns are shared by every row), so no
// scoring is attempted when it is returned.
type MissingFeaturesError struct {
	Missing []string
}

func (e *MissingFeaturesError) Error() string {
	return fmt.Sprintf("uploaded table is missing %d required genes: %s",
		len(e.Missing), strings.Join(e.Missing, ", "))
}

// InvalidAbundanceError reports a negative abundance value. Abundances are
// normalized counts and must be non-negative; the offending sample is
// excluded from the batch while the remaining rows proceed.
type InvalidAbundanceError struct {
	SampleID string
	Gene     string
	Value    float64
}

func (e *InvalidAbundanceError) Error() string {
	return fmt.Sprintf("sample %q: negative abundance %v for gene %q",
		e.SampleID, e.Value, e.Gene)
}

// InvalidVectorShapeError reports a feature vector whose length does not
// match the catalog. This is a programming-contract violation between the
// validator and the scaler/predictor, not a user-facing condition.
type InvalidVectorShapeError struct {
	Want int
	Got  int
}

func (e *InvalidVectorShapeError) Error() string {
	return fmt.Sprintf("feature vector has %d values, want %d", e.Got, e.Want)
}
