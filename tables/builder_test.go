package tables

import (
	"testing"

	"github.com/tsawler/papertab/model"
)

func buildAll(raw ...string) []model.Grid {
	config := DefaultConfig()
	detector := NewDetectorWithConfig(config)
	builder := NewBuilderWithConfig(config)

	var grids []model.Grid
	for _, c := range detector.Detect(pageLines(raw...)) {
		grids = append(grids, builder.Build(c))
	}
	return grids
}

func checkCells(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("cells = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("cell %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBuild_MeanAndSpreadCells(t *testing.T) {
	grids := buildAll(
		"ResNet-50    76.1 ± 0.2   25.6",
		"ResNet-101   77.4 ± 0.3   44.5",
		"ViT-B/16     79.9 ± 0.1   86.6",
	)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}

	g := grids[0]
	if g.Columns != 3 {
		t.Fatalf("Columns = %d, want 3", g.Columns)
	}
	checkCells(t, g.Rows[0].Cells, "ResNet-50", "76.1 ± 0.2", "25.6")
	checkCells(t, g.Rows[2].Cells, "ViT-B/16", "79.9 ± 0.1", "86.6")
}

func TestBuild_CountSuffixes(t *testing.T) {
	grids := buildAll(
		"BERT-base    110M    25k",
		"BERT-large   340M    25k",
		"DistilBERT   66M     12k",
	)
	if len(grids) != 1 || grids[0].Columns != 3 {
		t.Fatalf("grids = %+v, want one 3-column grid", grids)
	}
	checkCells(t, grids[0].Rows[2].Cells, "DistilBERT", "66M", "12k")
}

func TestBuild_CaptionAttached(t *testing.T) {
	grids := buildAll(
		"Table 2: Accuracy on the benchmark datasets.",
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
	)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	c := grids[0].Caption
	if c == nil || c.Number != "2" || c.Description != "Accuracy on the benchmark datasets." {
		t.Errorf("Caption = %+v", c)
	}
	if grids[0].RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", grids[0].RowCount())
	}
}

func TestBuild_CitationRows(t *testing.T) {
	grids := buildAll(
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
	)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	g := grids[0]

	if g.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", g.RowCount())
	}
	if g.Columns != 3 {
		t.Errorf("Columns = %d, want 3", g.Columns)
	}
	if g.HasHeader() {
		t.Errorf("Header = %d, want none", g.Header)
	}
	checkCells(t, g.Rows[0].Cells, "[12] Method A", "94.2%", "0.81")
	checkCells(t, g.Rows[2].Cells, "[14] Method C", "96.5%", "0.83")
}

func TestBuild_HeaderSeparatorAndPadding(t *testing.T) {
	grids := buildAll(
		bodyRow("Model", "Accuracy", "F1"),
		"----------------------------",
		bodyRow("BERT", "91.2", "0.88"),
		bodyRow("RoBERTa", "92.5", "0.90"),
		"Total                   0.50",
	)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}
	g := grids[0]

	if g.RowCount() != 4 {
		t.Fatalf("RowCount() = %d, want 4 (separator is not a row)", g.RowCount())
	}
	if g.Header != 0 || !g.Rows[0].Header {
		t.Errorf("Header = %d, want 0", g.Header)
	}
	if len(g.Separators) != 1 || g.Separators[0] != 1 {
		t.Errorf("Separators = %v, want [1]", g.Separators)
	}
	checkCells(t, g.Rows[0].Cells, "Model", "Accuracy", "F1")
	checkCells(t, g.Rows[3].Cells, "Total", "", "0.50")
	if g.Rows[3].Spanning {
		t.Error("padded row marked spanning")
	}
}

func TestBuild_ConflictingLineSpans(t *testing.T) {
	grids := buildAll(
		bodyRow("BERT", "91.2", "0.88"),
		"                              (continued)",
		bodyRow("XLNet", "90.1", "0.87"),
		bodyRow("ALBERT", "89.4", "0.86"),
	)
	if len(grids) != 1 {
		t.Fatalf("got %d grids, want 1", len(grids))
	}

	row := grids[0].Rows[1]
	if !row.Spanning {
		t.Fatalf("row 1 Spanning = false, want true (cells %q)", row.Cells)
	}
	checkCells(t, row.Cells, "(continued)", "", "")
}

func TestBuild_RowsHaveDeclaredWidth(t *testing.T) {
	grids := buildAll(
		bodyRow("Model", "Accuracy", "F1"),
		"----------------------------",
		bodyRow("BERT", "91.2", "0.88"),
		"                              (continued)",
		bodyRow("RoBERTa", "92.5", "0.90"),
		"Total                   0.50",
		bodyRow("XLNet", "90.1", "0.87"),
	)

	for _, g := range grids {
		for i, r := range g.Rows {
			if len(r.Cells) != g.Columns {
				t.Errorf("row %d has %d cells, grid declares %d", i, len(r.Cells), g.Columns)
			}
		}
	}
}

func TestBuild_RangeMatchesCandidate(t *testing.T) {
	lines := pageLines(
		prose,
		bodyRow("BERT", "91.2", "0.88"),
		"",
		bodyRow("XLNet", "90.1", "0.87"),
		bodyRow("ALBERT", "89.4", "0.86"),
		prose,
	)

	builder := NewBuilder()
	cands := NewDetector().Detect(lines)
	if len(cands) != 1 {
		t.Fatalf("got %d candidates, want 1", len(cands))
	}
	c := cands[0]
	g := builder.Build(c)

	if g.Start != c.Start || g.End != c.End || g.Page != c.Page {
		t.Errorf("grid range %d:[%d,%d], candidate %d:[%d,%d]", g.Page, g.Start, g.End, c.Page, c.Start, c.End)
	}
	if g.FirstSeq != c.FirstSeq || g.LastSeq != c.LastSeq {
		t.Errorf("grid seq [%d,%d], candidate [%d,%d]", g.FirstSeq, g.LastSeq, c.FirstSeq, c.LastSeq)
	}
	if g.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3 (blank line is not a row)", g.RowCount())
	}
}

func TestSegments(t *testing.T) {
	cl := model.ClassifiedLine{
		Line:       model.NewTextLine(1, 0, "[12] Method A 94.2% 0.81"),
		Boundaries: []float64{14, 20},
	}

	got := Segments(cl)
	want := []model.Segment{
		{Text: "[12] Method A", Start: 0},
		{Text: "94.2%", Start: 14},
		{Text: "0.81", Start: 20},
	}
	if len(got) != len(want) {
		t.Fatalf("Segments() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("segment %d = %v, want %v", i, got[i], want[i])
		}
	}
}
