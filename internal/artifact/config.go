package artifact

// Config locates the externally trained artifacts and selects the predictor
// backend. Fixed at deployment; never edited at request time.
type Config struct {
	// Backend names the predictor implementation: "linear" or "onnx".
	Backend string `yaml:"backend"`

	// ScalerPath is the JSON standardization-parameters artifact.
	ScalerPath string `yaml:"scaler_path"`

	// ModelPath is the trained model artifact (JSON coefficients for the
	// linear backend, an .onnx file for the onnx backend).
	ModelPath string `yaml:"model_path"`

	// OrtLibraryPath points at the onnxruntime shared library. Only the
	// onnx backend reads it; empty means the platform default lookup.
	OrtLibraryPath string `yaml:"ort_library_path"`

	// InputName/OutputName are the ONNX graph tensor names. Defaults match
	// what sklearn-onnx emits for regressors.
	InputName  string `yaml:"input_name"`
	OutputName string `yaml:"output_name"`
}
