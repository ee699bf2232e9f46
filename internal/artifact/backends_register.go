package artifact

import (
	"fmt"

	"github.com/resistlab/amrburden/internal/interfaces"
)

func init() {
	RegisterBackend("linear", func(cfg Config, featureCount int, _ interfaces.Logger) (interfaces.Predictor, error) {
		p, err := LoadLinear(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		if len(p.coef) != featureCount {
			return nil, fmt.Errorf("model artifact was fit with %d features, catalog has %d", len(p.coef), featureCount)
		}
		return p, nil
	})

	RegisterBackend("onnx", func(cfg Config, featureCount int, logger interfaces.Logger) (interfaces.Predictor, error) {
		return NewONNXPredictor(cfg, featureCount, logger)
	})
}
