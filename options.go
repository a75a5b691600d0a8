package papertab

import (
	"context"
	"runtime"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/tables"
	"github.com/tsawler/papertab/text"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection (1-indexed), nil means all pages
	pages []int

	config  tables.Config
	lines   text.LineConfig
	running layout.HeaderFooterConfig

	// Remove running headers and footers before detection
	stripRunning bool

	// Pages processed concurrently
	workers int

	ctx context.Context
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		config:  tables.DefaultConfig(),
		lines:   text.DefaultLineConfig(),
		running: layout.DefaultHeaderFooterConfig(),
		workers: runtime.NumCPU(),
		ctx:     context.Background(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	return newOpts
}
