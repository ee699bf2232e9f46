package artifact

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/resistlab/amrburden/internal/interfaces"
)

// BackendConstructor constructs an interfaces.Predictor for a given artifact
// config. featureCount is the catalog size the model must accept.
type BackendConstructor func(cfg Config, featureCount int, logger interfaces.Logger) (interfaces.Predictor, error)

var (
	mu       sync.RWMutex
	backends = map[string]BackendConstructor{}
)

// RegisterBackend registers a named predictor backend. Name is lower-cased
// internally; registering the same name again overwrites the previous
// constructor.
func RegisterBackend(name string, ctor BackendConstructor) {
	if name == "" || ctor == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	backends[strings.ToLower(name)] = ctor
}

// NewPredictor constructs the configured predictor backend. It returns an
// error if the named backend has not been registered.
func NewPredictor(cfg Config, featureCount int, logger interfaces.Logger) (interfaces.Predictor, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Backend))
	if backend == "" {
		backend = "linear"
	}

	mu.RLock()
	ctor, ok := backends[backend]
	mu.RUnlock()
	if !ok || ctor == nil {
		return nil, fmt.Errorf("predictor backend %q not registered: available backends=%v", backend, ListBackends())
	}

	p, err := ctor(cfg, featureCount, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to construct predictor backend %q: %w", backend, err)
	}
	if p == nil {
		return nil, errors.New("predictor constructor returned nil")
	}
	return p, nil
}

// ListBackends returns the list of registered backend names.
func ListBackends() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(backends))
	for k := range backends {
		out = append(out, k)
	}
	return out
}
