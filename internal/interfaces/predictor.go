package interfaces

import "github.com/resistlab/amrburden/internal/model"

// Scaler standardizes a raw feature vector using parameters fixed at
// training time. Implementations must be applied to vectors in the exact
// feature order they were fit with; the dataset validator's reordering step
// exists to guarantee this.
type Scaler interface {
	// Transform returns the standardized form of raw. It must not mutate raw
	// and must reject vectors whose length differs from the fitted feature
	// count with a *model.InvalidVectorShapeError.
	Transform(raw []float64) ([]float64, error)

	// FeatureCount reports the number of features the scaler was fit with.
	FeatureCount() int
}

// Predictor maps a standardized feature vector to a single continuous burden
// score. Implementations wrap externally trained model artifacts and are
// deterministic for a given artifact; they perform no network I/O.
type Predictor interface {
	// Predict returns the burden score for scaled. Wrong vector lengths fail
	// with a *model.InvalidVectorShapeError.
	Predict(scaled []float64) (float64, error)

	// Close releases any resources held by the model runtime.
	Close() error
}

// Catalog is the read-only gene reference consulted throughout the pipeline.
type Catalog interface {
	// Genes returns the catalog entries in their fixed order.
	Genes() []model.GeneFeature

	// MechanismOf reports the mechanism a gene is annotated with.
	MechanismOf(gene string) (model.Mechanism, bool)

	// Size returns the number of required genes.
	Size() int
}
