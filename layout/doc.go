// Package layout provides whitespace geometry analysis for positioned text
// lines.
//
// # Splits
//
// The [Analyzer] turns each line into candidate column separators. A
// [Split] is produced for every whitespace run of at least MinGapRun
// between two tokens; its position is the start of the following token.
//
//	analyzer := layout.NewAnalyzer()
//	splits := analyzer.Analyze(lines)
//
// Splits that recur at the same position (within Tolerance) on a
// neighbouring line gain support and become strong. Isolated splits are
// strong only when the run is at least WideGapRun wide, which keeps the
// double space after a full stop from looking like a column edge.
//
// Lines shorter than MinLineLength, or holding a single token, never
// produce splits.
//
// # Boundaries
//
// Boundary lists are ascending positions. [Cluster] merges nearby values
// into canonical boundaries, and [Match], [Shares], [Subset] and
// [Equivalent] compare lists within a tolerance.
package layout
