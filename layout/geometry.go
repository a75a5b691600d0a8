package layout

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/tsawler/papertab/model"
)

// Config holds configuration for whitespace geometry analysis.
// All widths and positions share the unit of the token positions.
type Config struct {
	// MinGapRun is the minimum whitespace run that counts as a split (N).
	// Default: 2 columns
	MinGapRun float64 `mapstructure:"min_gap_run" yaml:"min_gap_run" toml:"min_gap_run"`

	// WideGapRun is the run width at which a split is strong even when no
	// neighbouring line repeats it.
	// Default: 4 columns
	WideGapRun float64 `mapstructure:"wide_gap_run" yaml:"wide_gap_run" toml:"wide_gap_run"`

	// MinLineLength is the trimmed length below which a line carries no
	// column information.
	// Default: 4 characters
	MinLineLength int `mapstructure:"min_line_length" yaml:"min_line_length" toml:"min_line_length"`

	// AlignmentWindow is how many non-blank lines on each side are checked
	// for a split at the same position.
	// Default: 1 (immediate neighbours)
	AlignmentWindow int `mapstructure:"alignment_window" yaml:"alignment_window" toml:"alignment_window"`

	// Tolerance is the distance within which two boundary positions are
	// considered the same column edge.
	// Default: 2 columns
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance" toml:"tolerance"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		MinGapRun:       2,
		WideGapRun:      4,
		MinLineLength:   4,
		AlignmentWindow: 1,
		Tolerance:       2.0,
	}
}

// Validate reports every out-of-range field
func (c Config) Validate() error {
	var errs []error
	if c.MinGapRun <= 0 {
		errs = append(errs, fmt.Errorf("min_gap_run must be positive, got %v", c.MinGapRun))
	}
	if c.WideGapRun < c.MinGapRun {
		errs = append(errs, fmt.Errorf("wide_gap_run (%v) must be at least min_gap_run (%v)", c.WideGapRun, c.MinGapRun))
	}
	if c.MinLineLength < 0 {
		errs = append(errs, fmt.Errorf("min_line_length must not be negative, got %d", c.MinLineLength))
	}
	if c.AlignmentWindow < 1 {
		errs = append(errs, fmt.Errorf("alignment_window must be at least 1, got %d", c.AlignmentWindow))
	}
	if c.Tolerance <= 0 || math.IsNaN(c.Tolerance) {
		errs = append(errs, fmt.Errorf("tolerance must be positive, got %v", c.Tolerance))
	}
	return errors.Join(errs...)
}

// Split is a candidate column separator found in one line.
type Split struct {
	Pos     float64 // Start position of the token after the gap
	Width   float64 // Width of the whitespace run
	Support int     // Lines in the window (this one included) splitting here
	Strong  bool
}

// Analyzer finds column split candidates from whitespace runs and their
// vertical alignment across neighbouring lines.
type Analyzer struct {
	config Config
}

// NewAnalyzer creates an analyzer with default configuration
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: DefaultConfig()}
}

// NewAnalyzerWithConfig creates an analyzer with custom configuration
func NewAnalyzerWithConfig(config Config) *Analyzer {
	return &Analyzer{config: config}
}

// Config returns the analyzer configuration
func (a *Analyzer) Config() Config {
	return a.config
}

// RawSplits returns the whitespace-run splits of a single line, before any
// alignment evidence is applied. Short lines and single-token lines yield nil.
func (a *Analyzer) RawSplits(line model.TextLine) []Split {
	if len(line.Tokens) < 2 {
		return nil
	}
	if utf8.RuneCountInString(line.Trimmed()) < a.config.MinLineLength {
		return nil
	}

	var splits []Split
	for i := 1; i < len(line.Tokens); i++ {
		gap := line.Tokens[i].Start - line.Tokens[i-1].End
		if gap >= a.config.MinGapRun {
			splits = append(splits, Split{
				Pos:     line.Tokens[i].Start,
				Width:   gap,
				Support: 1,
				Strong:  gap >= a.config.WideGapRun,
			})
		}
	}
	return splits
}

// Analyze returns the splits of every line. A split repeated within
// Tolerance by a line in the alignment window gains support and becomes
// strong; an isolated split stays strong only if its run is wide.
func (a *Analyzer) Analyze(lines []model.TextLine) [][]Split {
	raw := make([][]Split, len(lines))
	for i, line := range lines {
		raw[i] = a.RawSplits(line)
	}

	out := make([][]Split, len(lines))
	for i := range lines {
		if len(raw[i]) == 0 {
			continue
		}
		neighbours := neighbourIndices(lines, i, a.config.AlignmentWindow)

		splits := make([]Split, len(raw[i]))
		copy(splits, raw[i])
		for k := range splits {
			for _, n := range neighbours {
				if hasSplitNear(raw[n], splits[k].Pos, a.config.Tolerance) {
					splits[k].Support++
				}
			}
			if splits[k].Support >= 2 {
				splits[k].Strong = true
			}
		}
		out[i] = splits
	}
	return out
}

// neighbourIndices returns up to window non-blank lines on each side of i,
// nearest first.
func neighbourIndices(lines []model.TextLine, i, window int) []int {
	var idx []int
	for j, found := i-1, 0; j >= 0 && found < window; j-- {
		if !lines[j].IsBlank() {
			idx = append(idx, j)
			found++
		}
	}
	for j, found := i+1, 0; j < len(lines) && found < window; j++ {
		if !lines[j].IsBlank() {
			idx = append(idx, j)
			found++
		}
	}
	return idx
}

func hasSplitNear(splits []Split, pos, tolerance float64) bool {
	for _, s := range splits {
		if math.Abs(s.Pos-pos) <= tolerance {
			return true
		}
	}
	return false
}

// Positions returns the split positions, ascending
func Positions(splits []Split) []float64 {
	pos := make([]float64, len(splits))
	for i, s := range splits {
		pos[i] = s.Pos
	}
	sort.Float64s(pos)
	return pos
}

// StrongCount returns how many splits are strong
func StrongCount(splits []Split) int {
	n := 0
	for _, s := range splits {
		if s.Strong {
			n++
		}
	}
	return n
}
