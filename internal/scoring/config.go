package scoring

import "fmt"

// Config carries the deployment-fixed scoring parameters. Thresholds are
// never recomputed from data at request time.
type Config struct {
	// LowThreshold and HighThreshold are the risk cutoffs: score ≤ low is
	// Low, score ≤ high is Moderate, anything above is High.
	LowThreshold  float64 `yaml:"low_threshold"`
	HighThreshold float64 `yaml:"high_threshold"`

	// DominanceThreshold is the proportion above which a mechanism is called
	// dominant for interpretation purposes.
	DominanceThreshold float64 `yaml:"dominance_threshold"`
}

// DefaultConfig returns the deployment defaults carried over from the
// trained model's release notes.
func DefaultConfig() Config {
	return Config{
		LowThreshold:       3e6,
		HighThreshold:      5e6,
		DominanceThreshold: 0.5,
	}
}

// Validate rejects threshold combinations the classifier cannot order.
func (c Config) Validate() error {
	if c.LowThreshold >= c.HighThreshold {
		return fmt.Errorf("low threshold %v must be below high threshold %v", c.LowThreshold, c.HighThreshold)
	}
	if c.DominanceThreshold <= 0 || c.DominanceThreshold > 1 {
		return fmt.Errorf("dominance threshold %v must be in (0, 1]", c.DominanceThreshold)
	}
	return nil
}
