package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/resistlab/amrburden/internal/artifact"
	"github.com/resistlab/amrburden/internal/scoring"
)

// Config contains the runtime configuration for the service. Everything here
// is fixed at deployment; end users never edit it through the API.
type Config struct {
	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string `yaml:"listen_addr"`

	// StorageDSN is the sqlite DSN backing the batch registry. The default
	// is an in-memory database: scored batches survive only as long as the
	// process, which is all the single-session UI needs.
	StorageDSN string `yaml:"storage_dsn"`

	// CatalogPath points at the annotated gene reference table. Empty means
	// the embedded default catalog.
	CatalogPath string `yaml:"catalog_path"`

	// Concurrency is the number of sample workers per score job.
	Concurrency int `yaml:"concurrency"`

	// ArtifactCfg locates the trained scaler/model artifacts.
	ArtifactCfg artifact.Config `yaml:"artifacts"`

	// ScoringCfg carries the risk and dominance thresholds.
	ScoringCfg scoring.Config `yaml:"scoring"`
}

// DefaultConfig returns a Config populated with deployment defaults.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  ":8080",
		StorageDSN:  "file::memory:?cache=shared",
		CatalogPath: "",
		Concurrency: 4,
		ArtifactCfg: artifact.Config{
			Backend:    "linear",
			ScalerPath: "assets/scaler_top50.json",
			ModelPath:  "assets/huber_amr_model.json",
		},
		ScoringCfg: scoring.DefaultConfig(),
	}
}

// LoadConfig overlays a YAML file onto the defaults. An empty path returns
// the defaults untouched.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.ScoringCfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}
