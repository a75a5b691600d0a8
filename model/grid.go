package model

import (
	"fmt"
	"strings"
)

// Candidate is a contiguous range of lines provisionally judged tabular.
// It is frozen once handed to a builder.
type Candidate struct {
	Page  int
	Start int // First line index within the page (inclusive)
	End   int // Last line index within the page (inclusive)

	FirstSeq int
	LastSeq  int

	Lines      []ClassifiedLine
	Boundaries []float64 // Boundary set established during detection
	Caption    *Caption  // Title line found above the range, if any
}

// Caption is a table title line such as "Table 3: Ablation results." or
// "Table 3 (continued)".
type Caption struct {
	Number      string `json:"number" yaml:"number"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Continued   bool   `json:"continued,omitempty" yaml:"continued,omitempty"`
}

// LineCount returns the number of lines in the candidate range
func (c Candidate) LineCount() int {
	return c.End - c.Start + 1
}

// Segment is a piece of a line between two of its own boundaries
type Segment struct {
	Text  string
	Start float64
}

// Row is one line of a built table.
type Row struct {
	Seq  int
	Line int // Line index within its page
	Page int
	Tag  Tag
	Text string // Trimmed source line

	Cells    []string
	Segments []Segment // Source pieces, kept so the row can be re-laid out

	// Spanning is set when the line's own boundaries conflict with the
	// table's columns; the whole text then sits in the first cell.
	Spanning bool
	Header   bool
}

// Effective returns the number of non-empty cells, ignoring padding
func (r Row) Effective() int {
	n := 0
	for _, c := range r.Cells {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

// Grid is a built table: rows of cell strings with a fixed column count.
type Grid struct {
	ID int

	Page    int // Page of the first line
	Start   int // First line index on Page
	EndPage int // Page of the last line
	End     int // Last line index on EndPage

	FirstSeq int
	LastSeq  int

	Columns    int
	Header     int       // Index into Rows, -1 when the table has no header row
	Boundaries []float64 // Canonical column boundaries, ascending
	Rows       []Row
	Separators []int // Seq of separator lines inside the range
	Members    []int // IDs of the grids merged into this one
	Caption    *Caption
}

// RowCount returns the number of rows
func (g *Grid) RowCount() int {
	return len(g.Rows)
}

// HasHeader reports whether a header row was identified
func (g *Grid) HasHeader() bool {
	return g.Header >= 0 && g.Header < len(g.Rows)
}

// HeaderRow returns the header row, or nil
func (g *Grid) HeaderRow() *Row {
	if !g.HasHeader() {
		return nil
	}
	return &g.Rows[g.Header]
}

// Cell returns the text at the given row and column (0-indexed)
func (g *Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	if col < 0 || col >= len(g.Rows[row].Cells) {
		return ""
	}
	return g.Rows[row].Cells[col]
}

// HasSeparatorAfter reports whether the line directly after seq is a separator
func (g *Grid) HasSeparatorAfter(seq int) bool {
	for _, s := range g.Separators {
		if s == seq+1 {
			return true
		}
	}
	return false
}

// ToMarkdown converts the grid to a GitHub-flavoured markdown table.
// Columns whose body cells are mostly numeric are right-aligned. Grids
// without a header row get generated "Column N" headers.
func (g *Grid) ToMarkdown() string {
	if len(g.Rows) == 0 || g.Columns == 0 {
		return ""
	}

	var header []string
	body := make([]Row, 0, len(g.Rows))
	if g.HasHeader() {
		header = g.Rows[g.Header].Cells
		for i, r := range g.Rows {
			if i != g.Header {
				body = append(body, r)
			}
		}
	} else {
		header = make([]string, g.Columns)
		for j := range header {
			header[j] = fmt.Sprintf("Column %d", j+1)
		}
		body = g.Rows
	}

	var sb strings.Builder
	writeMarkdownRow(&sb, header, g.Columns)

	for j := 0; j < g.Columns; j++ {
		if numericColumn(body, j) {
			sb.WriteString("| ---: ")
		} else {
			sb.WriteString("| --- ")
		}
	}
	sb.WriteString("|\n")

	for _, r := range body {
		writeMarkdownRow(&sb, r.Cells, g.Columns)
	}

	return sb.String()
}

func writeMarkdownRow(sb *strings.Builder, cells []string, columns int) {
	for j := 0; j < columns; j++ {
		text := ""
		if j < len(cells) {
			text = cells[j]
		}
		text = strings.ReplaceAll(text, "\n", " ")
		text = strings.ReplaceAll(text, "|", "\\|")
		sb.WriteString("| ")
		sb.WriteString(strings.TrimSpace(text))
		sb.WriteString(" ")
	}
	sb.WriteString("|\n")
}

// numericColumn reports whether more than half of the non-empty cells in
// column col are numeric.
func numericColumn(rows []Row, col int) bool {
	filled, numeric := 0, 0
	for _, r := range rows {
		if r.Spanning || col >= len(r.Cells) {
			continue
		}
		c := strings.TrimSpace(r.Cells[col])
		if c == "" {
			continue
		}
		filled++
		if IsNumeric(c) || IsPlaceholder(c) {
			numeric++
		}
	}
	return filled > 0 && numeric*2 > filled
}

// ToCSV converts the grid to CSV format
func (g *Grid) ToCSV() string {
	var sb strings.Builder
	for _, row := range g.Rows {
		for j, cell := range row.Cells {
			// Escape quotes and wrap in quotes if necessary
			text := cell
			if strings.Contains(text, ",") || strings.Contains(text, "\"") || strings.Contains(text, "\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row.Cells)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
