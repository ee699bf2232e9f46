package artifact

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/resistlab/amrburden/internal/interfaces"
	"github.com/resistlab/amrburden/internal/model"
)

var ortInitOnce sync.Once

// ONNXPredictor runs a model exported to ONNX through onnxruntime. It exists
// for deployments where the training side ships an .onnx file instead of the
// JSON coefficient artifact; the scoring contract is identical.
type ONNXPredictor struct {
	session      *ort.DynamicAdvancedSession
	featureCount int
	inputName    string
	outputName   string

	// onnxruntime sessions are not documented as safe for concurrent Run
	// calls on the same bound tensors, so serialize.
	mu sync.Mutex
}

// NewONNXPredictor initializes the onnxruntime environment (once per
// process) and opens a session for the model at cfg.ModelPath.
func NewONNXPredictor(cfg Config, featureCount int, logger interfaces.Logger) (*ONNXPredictor, error) {
	if cfg.OrtLibraryPath != "" {
		ort.SetSharedLibraryPath(cfg.OrtLibraryPath)
	}
	var initErr error
	ortInitOnce.Do(func() {
		initErr = ort.InitializeEnvironment()
	})
	if initErr != nil {
		return nil, fmt.Errorf("initializing onnxruntime: %w", initErr)
	}

	inputName := cfg.InputName
	if inputName == "" {
		inputName = "float_input"
	}
	outputName := cfg.OutputName
	if outputName == "" {
		outputName = "variable"
	}

	session, err := ort.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{inputName}, []string{outputName}, nil)
	if err != nil {
		return nil, fmt.Errorf("opening onnx session for %s: %w", cfg.ModelPath, err)
	}

	if logger != nil {
		logger.Info("onnx predictor loaded",
			interfaces.Field{Key: "model_path", Value: cfg.ModelPath},
			interfaces.Field{Key: "feature_count", Value: featureCount})
	}

	return &ONNXPredictor{
		session:      session,
		featureCount: featureCount,
		inputName:    inputName,
		outputName:   outputName,
	}, nil
}

// Predict runs the model on a standardized vector.
func (p *ONNXPredictor) Predict(scaled []float64) (float64, error) {
	if len(scaled) != p.featureCount {
		return 0, &model.InvalidVectorShapeError{Want: p.featureCount, Got: len(scaled)}
	}

	in := make([]float32, len(scaled))
	for i, v := range scaled {
		in[i] = float32(v)
	}

	inputTensor, err := ort.NewTensor(ort.NewShape(1, int64(len(in))), in)
	if err != nil {
		return 0, fmt.Errorf("creating input tensor: %w", err)
	}
	defer inputTensor.Destroy()

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 1))
	if err != nil {
		return 0, fmt.Errorf("creating output tensor: %w", err)
	}
	defer outputTensor.Destroy()

	p.mu.Lock()
	err = p.session.Run([]ort.Value{inputTensor}, []ort.Value{outputTensor})
	p.mu.Unlock()
	if err != nil {
		return 0, fmt.Errorf("running onnx session: %w", err)
	}

	out := outputTensor.GetData()
	if len(out) == 0 {
		return 0, fmt.Errorf("onnx session produced an empty output tensor")
	}
	return float64(out[0]), nil
}

// Close destroys the session. The shared environment stays up for the
// process lifetime.
func (p *ONNXPredictor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session != nil {
		p.session.Destroy()
		p.session = nil
	}
	return nil
}
