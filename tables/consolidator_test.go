package tables

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/tsawler/papertab/model"
)

// fragment builds a grid covering seq first..last with one cell per boundary
func fragment(id, first, last int, bounds ...float64) model.Grid {
	g := model.Grid{
		ID:         id,
		FirstSeq:   first,
		LastSeq:    last,
		Columns:    len(bounds) + 1,
		Header:     -1,
		Boundaries: bounds,
	}
	for seq := first; seq <= last; seq++ {
		segs := []model.Segment{{Text: fmt.Sprintf("row%d", seq), Start: 0}}
		for j, b := range bounds {
			segs = append(segs, model.Segment{Text: fmt.Sprintf("%d.%d", seq, j), Start: b})
		}
		cells, _ := place(segs, "", bounds, 2)
		g.Rows = append(g.Rows, model.Row{Seq: seq, Segments: segs, Cells: cells})
	}
	return g
}

func titled(g model.Grid, number string, continued bool) model.Grid {
	g.Caption = &model.Caption{Number: number, Continued: continued}
	return g
}

func scored(grids ...model.Grid) []model.Result {
	s := NewScorer()
	out := make([]model.Result, len(grids))
	for i, g := range grids {
		out[i] = model.Result{Grid: g, Report: s.Score(g)}
	}
	return out
}

func TestMergeable(t *testing.T) {
	c := NewConsolidator()

	tests := []struct {
		name string
		a, b model.Grid
		want bool
	}{
		{"adjacent equal", fragment(1, 0, 2, 12, 24), fragment(2, 3, 5, 12, 24), true},
		{"caption between", fragment(1, 0, 2, 12, 24), fragment(2, 4, 6, 12, 24), true},
		{"within tolerance", fragment(1, 0, 2, 12, 24), fragment(2, 4, 6, 13, 25), true},
		{"gap at limit", fragment(1, 0, 2, 12, 24), fragment(2, 6, 8, 12, 24), true},
		{"gap too large", fragment(1, 0, 2, 12, 24), fragment(2, 7, 9, 12, 24), false},
		{"overlapping", fragment(1, 0, 4, 12, 24), fragment(2, 3, 6, 12, 24), false},
		{"subset", fragment(1, 0, 2, 12, 24), fragment(2, 4, 6, 24), true},
		{"superset", fragment(1, 0, 2, 24), fragment(2, 4, 6, 12, 24, 36), true},
		{"disjoint", fragment(1, 0, 2, 12, 24), fragment(2, 4, 6, 40, 50), false},
		{"new title", fragment(1, 0, 2, 12, 24), titled(fragment(2, 4, 6, 12, 24), "4", false), false},
		{"continued title", fragment(1, 0, 2, 12, 24), titled(fragment(2, 4, 6, 12, 24), "3", true), true},
		{"continued same number", titled(fragment(1, 0, 2, 12, 24), "3", false), titled(fragment(2, 4, 6, 12, 24), "3", true), true},
		{"continued other number", titled(fragment(1, 0, 2, 12, 24), "3", false), titled(fragment(2, 4, 6, 12, 24), "4", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Mergeable(tt.a, tt.b); got != tt.want {
				t.Errorf("Mergeable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConsolidate_MergesAcrossCaption(t *testing.T) {
	doc := model.Document{}
	doc.AddPage(pageLines(
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
	))
	doc.AddPage(pageLines(
		"Table 3 (continued)",
		"[15] Method D 92.4% 0.79",
		"[16] Method E 93.3% 0.80",
		"[17] Method F 90.7% 0.75",
	))
	doc.Sequence()

	detector := NewDetector()
	builder := NewBuilder()
	scorer := NewScorer()

	var results []model.Result
	for _, p := range doc.Pages {
		for _, cand := range detector.Detect(p.Lines) {
			g := builder.Build(cand)
			g.ID = len(results) + 1
			results = append(results, model.Result{Grid: g, Report: scorer.Score(g)})
		}
	}
	if len(results) != 2 {
		t.Fatalf("got %d fragments, want 2", len(results))
	}

	got := NewConsolidator().Consolidate(results)
	if len(got) != 1 {
		t.Fatalf("Consolidate() = %d grids, want 1", len(got))
	}

	merged := got[0].Grid
	want := results[0].Grid.RowCount() + results[1].Grid.RowCount()
	if merged.RowCount() != want {
		t.Errorf("RowCount() = %d, want %d", merged.RowCount(), want)
	}
	if merged.Page != 1 || merged.EndPage != 2 {
		t.Errorf("pages = %d..%d, want 1..2", merged.Page, merged.EndPage)
	}
	if !reflect.DeepEqual(merged.Members, []int{1, 2}) {
		t.Errorf("Members = %v, want [1 2]", merged.Members)
	}
	if merged.Cell(3, 0) != "[15] Method D" {
		t.Errorf("Cell(3,0) = %q, want %q", merged.Cell(3, 0), "[15] Method D")
	}
	if !got[0].Report.Valid {
		t.Errorf("merged grid invalid: %+v", got[0].Report)
	}
	if merged.Caption == nil || merged.Caption.Number != "3" {
		t.Errorf("Caption = %+v, want table 3", merged.Caption)
	}
}

func TestConsolidate_KeepsTitledTablesApart(t *testing.T) {
	lines := pageLines(
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
		"Table 4: Results on CIFAR-100.",
		"[15] Method D 92.4% 0.79",
		"[16] Method E 93.3% 0.80",
		"[17] Method F 90.7% 0.75",
	)
	builder := NewBuilder()
	var grids []model.Grid
	for i, cand := range NewDetector().Detect(lines) {
		g := builder.Build(cand)
		g.ID = i + 1
		grids = append(grids, g)
	}

	got := NewConsolidator().Consolidate(scored(grids...))
	if len(got) != 2 {
		t.Fatalf("Consolidate() = %d grids, want 2", len(got))
	}
	if got[0].Grid.RowCount() != 3 || got[1].Grid.RowCount() != 3 {
		t.Errorf("row counts = %d, %d, want 3, 3", got[0].Grid.RowCount(), got[1].Grid.RowCount())
	}
	if c := got[1].Grid.Caption; c == nil || c.Number != "4" || c.Description != "Results on CIFAR-100." {
		t.Errorf("Caption = %+v", c)
	}
}

func TestConsolidate_ChainNeedsEachPair(t *testing.T) {
	a := fragment(1, 0, 2, 12, 24)
	b := fragment(2, 4, 6, 40, 50)
	c := fragment(3, 8, 10, 12, 24)

	got := NewConsolidator().Consolidate(scored(a, b, c))
	if len(got) != 3 {
		t.Fatalf("Consolidate() = %d grids, want 3", len(got))
	}
	for i, r := range got {
		if r.Grid.ID != i+1 {
			t.Errorf("result %d has ID %d, want %d", i, r.Grid.ID, i+1)
		}
	}
}

func TestConsolidate_TransitiveChain(t *testing.T) {
	a := fragment(1, 0, 1, 12, 24)
	b := fragment(2, 3, 4, 12, 24)
	c := fragment(3, 6, 7, 12, 24)

	got := NewConsolidator().Consolidate(scored(c, a, b))
	if len(got) != 1 {
		t.Fatalf("Consolidate() = %d grids, want 1", len(got))
	}
	if got[0].Grid.RowCount() != 6 {
		t.Errorf("RowCount() = %d, want 6", got[0].Grid.RowCount())
	}
}

func TestConsolidate_RescoresMergedGrid(t *testing.T) {
	a := fragment(1, 0, 1, 12, 24)
	b := fragment(2, 3, 4, 12, 24)

	in := scored(a, b)
	for i, r := range in {
		if r.Report.Valid {
			t.Fatalf("fragment %d already valid", i)
		}
	}

	got := NewConsolidator().Consolidate(in)
	if len(got) != 1 {
		t.Fatalf("Consolidate() = %d grids, want 1", len(got))
	}
	if !got[0].Report.Valid || got[0].Report.Has(model.DefectTooFewRows) {
		t.Errorf("merged report = %+v, want valid", got[0].Report)
	}
}

func TestMerge_CommutativeAndOrdered(t *testing.T) {
	c := NewConsolidator()
	a := fragment(1, 0, 2, 12, 24)
	b := fragment(2, 4, 6, 24)

	ab := c.Merge(a, b)
	ba := c.Merge(b, a)
	if !reflect.DeepEqual(ab, ba) {
		t.Errorf("Merge(a, b) != Merge(b, a)")
	}

	for i := 1; i < len(ab.Rows); i++ {
		if ab.Rows[i].Seq <= ab.Rows[i-1].Seq {
			t.Errorf("row %d seq %d not after %d", i, ab.Rows[i].Seq, ab.Rows[i-1].Seq)
		}
	}
	if ab.Columns != 3 {
		t.Errorf("Columns = %d, want 3", ab.Columns)
	}
	for i, r := range ab.Rows {
		if len(r.Cells) != ab.Columns {
			t.Errorf("row %d has %d cells, want %d", i, len(r.Cells), ab.Columns)
		}
	}
	// Rows from the narrower fragment keep their second column empty.
	if got := ab.Cell(3, 1); got != "" {
		t.Errorf("Cell(3,1) = %q, want empty", got)
	}
	if got := ab.Cell(3, 2); got != "4.0" {
		t.Errorf("Cell(3,2) = %q, want %q", got, "4.0")
	}
}

func TestMerge_HeaderIsFirstHeaderRow(t *testing.T) {
	a := fragment(1, 0, 2, 12, 24)
	b := fragment(2, 4, 6, 12, 24)
	b.Rows[0].Header = true
	b.Header = 0

	got := NewConsolidator().Merge(a, b)
	if got.Header != 3 {
		t.Errorf("Header = %d, want 3", got.Header)
	}
}
