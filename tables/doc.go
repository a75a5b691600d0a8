// Package tables detects, builds, scores and consolidates tables in
// positioned text lines.
//
// Academic papers rarely carry explicit grid information, so tables are
// inferred from whitespace geometry and the shape of each line's content.
//
// # Pipeline
//
// Each stage has its own type, configured from a shared [Config]:
//
//	config := tables.DefaultConfig()
//	detector := tables.NewDetectorWithConfig(config)
//	builder := tables.NewBuilderWithConfig(config)
//	scorer := tables.NewScorerWithConfig(config)
//
//	var results []model.Result
//	for _, c := range detector.Detect(page.Lines) {
//		grid := builder.Build(c)
//		results = append(results, model.Result{Grid: grid, Report: scorer.Score(grid)})
//	}
//	results = tables.NewConsolidatorWithConfig(config).Consolidate(results)
//
// # Classification
//
// The [Classifier] runs an ordered rule table; the first matching rule
// decides the line's tag:
//
//  1. citation_numeric - a short reference or method label followed by
//     numeric metrics
//  2. separator - rules drawn with dashes, pipes or equals signs, or an
//     empty line after a header row
//  3. header_like - short capitalised segments between whitespace splits
//  4. multi_space - at least one strong whitespace split
//  5. narrative - any other text
//  6. blank
//
// A second pass looks at ContextWindow non-blank neighbours and demotes
// header-like and multi-space lines that stand alone.
//
// # Detection
//
// The [Detector] groups qualifying lines into candidates, tolerating up to
// NoiseTolerance stray lines and NoiseTolerance lines whose columns do not
// line up with the region.
//
// # Scoring
//
// The [Scorer] checks four defect kinds: too_few_rows, too_few_columns,
// missing_header_separator and inconsistent_row_width. The score is one
// minus the fraction of kinds present. Too few rows or columns always make
// a grid invalid.
//
// # Consolidation
//
// The [Consolidator] merges neighbouring grids separated by at most
// MergeGap lines whose column boundaries agree, then re-scores them.
package tables
