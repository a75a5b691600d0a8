package papertab

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/report"
	"github.com/tsawler/papertab/tables"
	"github.com/tsawler/papertab/text"
)

// CorpusOptions configures ProcessCorpus.
type CorpusOptions struct {
	Config tables.Config
	Lines  text.LineConfig

	// StripRunning removes running headers and footers with Running
	StripRunning bool
	Running      layout.HeaderFooterConfig

	// Workers is the number of documents processed concurrently. Each
	// document analyses its pages on a single worker.
	Workers int
}

// DefaultCorpusOptions returns the options used by the CLI when nothing is
// configured.
func DefaultCorpusOptions() CorpusOptions {
	return CorpusOptions{
		Config:       tables.DefaultConfig(),
		Lines:        text.DefaultLineConfig(),
		StripRunning: true,
		Running:      layout.DefaultHeaderFooterConfig(),
		Workers:      runtime.NumCPU(),
	}
}

// extractor returns the Extractor used for one corpus file
func (o CorpusOptions) extractor(ctx context.Context, file string) *Extractor {
	e := Open(file).
		WithConfig(o.Config).
		WithLineConfig(o.Lines).
		Workers(1).
		WithContext(ctx)
	if o.StripRunning {
		e = e.StripRunningLinesWithConfig(o.Running)
	}
	return e
}

// ProcessCorpus extracts tables from every file and folds the statistics
// into a summary. A file that cannot be processed is left out of the
// summary and reported as a warning; every other warning carries its file
// name as Source. The error is non-nil only for an invalid configuration
// or a cancelled context.
//
// Example:
//
//	summary, warnings, err := papertab.ProcessCorpus(ctx, files, papertab.DefaultCorpusOptions())
//	fmt.Printf("%d tables, %.1f%% valid\n", summary.Tables, summary.ValidityRate()*100)
func ProcessCorpus(ctx context.Context, files []string, opts CorpusOptions) (report.Summary, []Warning, error) {
	if err := opts.Config.Validate(); err != nil {
		return report.Summary{}, nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	type outcome struct {
		stats    report.DocumentStats
		warnings []Warning
		failed   bool
	}
	outcomes := make([]outcome, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stats, warnings, err := opts.extractor(ctx, file).Stats()
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				warnings = append(warnings, Warning{
					Kind:    WarningDocumentFailed,
					Message: err.Error(),
				})
			}
			for j := range warnings {
				warnings[j].Source = file
			}
			outcomes[i] = outcome{stats: stats, warnings: warnings, failed: err != nil}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report.Summary{}, nil, err
	}

	var summary report.Summary
	var warnings []Warning
	for _, o := range outcomes {
		warnings = append(warnings, o.warnings...)
		if !o.failed {
			summary = summary.Add(o.stats)
		}
	}
	return summary, warnings, nil
}
