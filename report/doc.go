// Package report aggregates table detection results into per-document and
// per-corpus statistics.
//
// A [DocumentStats] is built once per document from its final results:
//
//	stats := report.FromResults(name, pages, lines, candidates, results)
//
// A [Summary] is folded from document statistics. It is a value threaded
// through the caller rather than shared state, so documents processed in
// parallel can each produce a partial summary and be combined with [Merge]:
//
//	var summary report.Summary
//	for _, stats := range all {
//		summary = summary.Add(stats)
//	}
//	fmt.Printf("validity rate: %.1f%%\n", summary.ValidityRate()*100)
package report
