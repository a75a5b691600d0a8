// Package model provides the data types shared by the table reconstruction
// pipeline.
//
// # Lines
//
// A [TextLine] is one line of page text broken into positioned [Token]
// values. Positions are character columns for plain-text sources; sources
// with real coordinates convert to an equivalent column unit before
// producing lines:
//
//	line := model.NewTextLine(1, 0, "[12] Method A   94.2%   0.81")
//
// Lines are grouped into a [Page], and pages into a [Document]. Calling
// [Document.Sequence] numbers every line in document order.
//
// # Classification
//
// Each line receives a [Tag] (blank, citation_numeric, multi_space,
// narrative, header_like, separator) and is carried as a [ClassifiedLine]
// together with the column boundaries it contributes.
//
// # Tables
//
// A [Candidate] is a contiguous line range judged tabular. Building it
// produces a [Grid] whose rows all have exactly Grid.Columns cells; rows
// whose layout conflicts with the table's columns become spanning rows so
// no text is lost. Grids export to markdown and CSV:
//
//	md := grid.ToMarkdown()
//
// # Validity
//
// A [Report] carries a score in [0,1], a valid flag and an ordered list of
// [Defect] records. A [Result] pairs a grid with its report.
package model
