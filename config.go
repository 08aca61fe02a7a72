// Package asl holds the shared configuration and result types for the
// isolated-sign recognizer.
package asl

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the model selection settings shared by all strategies.
type Config struct {

	// Inclusive bounds of the hidden state count search.
	MinComponents int `toml:"min_n_components" json:"min_n_components"`
	MaxComponents int `toml:"max_n_components" json:"max_n_components"`

	// Fixed state count used by the constant strategy.
	NConstant int `toml:"n_constant" json:"n_constant"`

	// Seed for reproducible model fits.
	RandomState int64 `toml:"random_state" json:"random_state"`

	// Max number of cross-validation folds.
	NSplits int `toml:"n_splits,omitempty" json:"n_splits,omitempty"`

	// Max number of EM iterations per fit.
	EMIterations int `toml:"em_iterations,omitempty" json:"em_iterations,omitempty"`

	// Selection strategy {constant, bic, dic, cv}.
	Strategy string `toml:"strategy,omitempty" json:"strategy,omitempty"`

	// Input and output files.
	DataSet     string `toml:"data_set,omitempty" json:"data_set,omitempty"`
	TestSet     string `toml:"test_set,omitempty" json:"test_set,omitempty"`
	ResultsFile string `toml:"results_file,omitempty" json:"results_file,omitempty"`
}

// DefaultConfig returns the settings used by the reference experiments.
func DefaultConfig() Config {
	return Config{
		MinComponents: 2,
		MaxComponents: 10,
		NConstant:     3,
		RandomState:   14,
		NSplits:       3,
		EMIterations:  20,
		Strategy:      "bic",
	}
}

// ReadConfig decodes a toml config file. Missing fields keep default values.
func ReadConfig(fn string) (Config, error) {

	config := DefaultConfig()
	_, e := toml.DecodeFile(fn, &config)
	if e != nil {
		return config, e
	}
	if e := config.Validate(); e != nil {
		return config, e
	}
	return config, nil
}

// Validate checks that the search range is usable.
func (c Config) Validate() error {

	if c.MinComponents < 1 {
		return fmt.Errorf("min_n_components must be positive, got [%d]", c.MinComponents)
	}
	if c.MaxComponents < c.MinComponents {
		return fmt.Errorf("max_n_components [%d] is less than min_n_components [%d]",
			c.MaxComponents, c.MinComponents)
	}
	if c.NConstant < 1 {
		return fmt.Errorf("n_constant must be positive, got [%d]", c.NConstant)
	}
	if c.NSplits < 2 {
		return fmt.Errorf("n_splits must be at least 2, got [%d]", c.NSplits)
	}
	return nil
}
