package tables

import (
	"math"
	"strings"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
)

// Builder turns a candidate into a grid of cells.
type Builder struct {
	config Config
}

// NewBuilder creates a builder with default configuration
func NewBuilder() *Builder {
	return NewBuilderWithConfig(DefaultConfig())
}

// NewBuilderWithConfig creates a builder with custom configuration
func NewBuilderWithConfig(config Config) *Builder {
	return &Builder{config: config}
}

// Build lays out a candidate. Canonical boundaries are clustered from every
// qualifying line; each line is then cut at its own boundaries and its
// pieces are placed in the column whose boundary they start on. Blank lines
// produce no row and separator lines are recorded by sequence number.
func (b *Builder) Build(c model.Candidate) model.Grid {
	tol := b.config.Layout.Tolerance

	var all []float64
	for _, cl := range c.Lines {
		if cl.Tag.Qualifying() {
			all = append(all, cl.Boundaries...)
		}
	}
	bounds := layout.Cluster(all, tol)

	g := model.Grid{
		Page:       c.Page,
		Start:      c.Start,
		EndPage:    c.Page,
		End:        c.End,
		FirstSeq:   c.FirstSeq,
		LastSeq:    c.LastSeq,
		Columns:    len(bounds) + 1,
		Header:     -1,
		Boundaries: bounds,
		Caption:    c.Caption,
	}

	for _, cl := range c.Lines {
		if cl.Tag == model.TagSeparator {
			g.Separators = append(g.Separators, cl.Line.Seq)
			continue
		}
		if cl.Line.IsBlank() {
			continue
		}

		row := model.Row{
			Seq:      cl.Line.Seq,
			Line:     cl.Line.Index,
			Page:     cl.Line.Page,
			Tag:      cl.Tag,
			Text:     cl.Line.Trimmed(),
			Segments: Segments(cl),
		}
		row.Cells, row.Spanning = place(row.Segments, row.Text, bounds, tol)

		if g.Header < 0 && cl.Tag == model.TagHeaderLike {
			row.Header = true
			g.Header = len(g.Rows)
		}
		g.Rows = append(g.Rows, row)
	}

	return g
}

// Segments cuts a classified line at its own boundaries. A line without
// boundaries is a single segment.
func Segments(cl model.ClassifiedLine) []model.Segment {
	var segs []model.Segment
	var words []string
	start := 0.0

	flush := func() {
		if len(words) > 0 {
			segs = append(segs, model.Segment{Text: strings.Join(words, " "), Start: start})
			words = nil
		}
	}

	for _, t := range cl.Line.Tokens {
		if len(words) > 0 && isBoundary(cl.Boundaries, t.Start) {
			flush()
		}
		if len(words) == 0 {
			start = t.Start
		}
		words = append(words, t.Text)
	}
	flush()

	return segs
}

func isBoundary(bounds []float64, pos float64) bool {
	for _, b := range bounds {
		if math.Abs(b-pos) < 1e-9 {
			return true
		}
	}
	return false
}

// place assigns segments to columns. Column 0 holds text left of the first
// boundary; column i+1 starts at boundary i. A segment that matches no
// boundary, or two segments landing in the same column, make the row
// spanning: the full text goes in the first cell.
func place(segs []model.Segment, text string, bounds []float64, tol float64) ([]string, bool) {
	cells := make([]string, len(bounds)+1)
	prev := -1

	for _, s := range segs {
		col := 0
		if len(bounds) > 0 && s.Start >= bounds[0]-tol {
			m := layout.Match(s.Start, bounds, tol)
			if m < 0 {
				return spanning(text, len(cells)), true
			}
			col = m + 1
		}
		if col <= prev {
			return spanning(text, len(cells)), true
		}
		cells[col] = s.Text
		prev = col
	}

	return cells, false
}

func spanning(text string, columns int) []string {
	cells := make([]string, columns)
	cells[0] = text
	return cells
}
