package tables

import (
	"errors"
	"fmt"
	"math"

	"github.com/tsawler/papertab/layout"
)

// ErrInvalidConfig is returned when a Config fails validation
var ErrInvalidConfig = errors.New("invalid table configuration")

// Config holds the tunables for detection, building, scoring and
// consolidation. Every field may be set independently.
type Config struct {
	// Whitespace geometry (run threshold N, boundary tolerance window)
	Layout layout.Config `mapstructure:"layout" yaml:"layout" toml:"layout"`

	// Non-blank lines on each side used to revise a classification
	ContextWindow int `mapstructure:"context_window" yaml:"context_window" toml:"context_window"`

	// Maximum tokens in the label of a citation-numeric row
	MaxLabelTokens int `mapstructure:"max_label_tokens" yaml:"max_label_tokens" toml:"max_label_tokens"`

	// Consecutive narrative/blank lines tolerated inside a region (K)
	NoiseTolerance int `mapstructure:"noise_tolerance" yaml:"noise_tolerance" toml:"noise_tolerance"`

	// Maximum non-table lines between two fragments that may merge (M)
	MergeGap int `mapstructure:"merge_gap" yaml:"merge_gap" toml:"merge_gap"`

	// Minimum score (0-1) for a grid to be valid
	ValidityThreshold float64 `mapstructure:"validity_threshold" yaml:"validity_threshold" toml:"validity_threshold"`

	// Minimum rows and columns before a grid is flagged as not tabular
	MinRows    int `mapstructure:"min_rows" yaml:"min_rows" toml:"min_rows"`
	MinColumns int `mapstructure:"min_columns" yaml:"min_columns" toml:"min_columns"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Layout:            layout.DefaultConfig(),
		ContextWindow:     2,
		MaxLabelTokens:    6,
		NoiseTolerance:    1,
		MergeGap:          3,
		ValidityThreshold: 0.5,
		MinRows:           3,
		MinColumns:        2,
	}
}

// Validate checks every field and reports all violations at once. The
// returned error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	if err := c.Layout.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.ContextWindow < 0 {
		errs = append(errs, fmt.Errorf("context_window must not be negative, got %d", c.ContextWindow))
	}
	if c.MaxLabelTokens < 1 {
		errs = append(errs, fmt.Errorf("max_label_tokens must be at least 1, got %d", c.MaxLabelTokens))
	}
	if c.NoiseTolerance < 0 {
		errs = append(errs, fmt.Errorf("noise_tolerance must not be negative, got %d", c.NoiseTolerance))
	}
	if c.MergeGap < 0 {
		errs = append(errs, fmt.Errorf("merge_gap must not be negative, got %d", c.MergeGap))
	}
	if math.IsNaN(c.ValidityThreshold) || c.ValidityThreshold < 0 || c.ValidityThreshold > 1 {
		errs = append(errs, fmt.Errorf("validity_threshold must be within [0,1], got %v", c.ValidityThreshold))
	}
	if c.MinRows < 1 {
		errs = append(errs, fmt.Errorf("min_rows must be at least 1, got %d", c.MinRows))
	}
	if c.MinColumns < 1 {
		errs = append(errs, fmt.Errorf("min_columns must be at least 1, got %d", c.MinColumns))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
