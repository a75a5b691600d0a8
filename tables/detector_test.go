package tables

import (
	"fmt"
	"testing"

	"github.com/tsawler/papertab/model"
)

const prose = "This sentence separates the two blocks of rows."

// wideRow lays out three cells at columns 0, 40 and 50
func wideRow(a, b, c string) string {
	return fmt.Sprintf("%-40s%-10s%s", a, b, c)
}

type span struct{ start, end int }

func spansOf(cands []model.Candidate) []span {
	out := make([]span, len(cands))
	for i, c := range cands {
		out[i] = span{c.Start, c.End}
	}
	return out
}

func checkSpans(t *testing.T, got []model.Candidate, want []span) {
	t.Helper()
	spans := spansOf(got)
	if len(spans) != len(want) {
		t.Fatalf("got %d candidates %v, want %d %v", len(spans), spans, len(want), want)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("candidate %d = %v, want %v", i, spans[i], want[i])
		}
	}
}

func TestDetect_CitationRows(t *testing.T) {
	lines := pageLines(
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
	)

	got := NewDetector().Detect(lines)
	checkSpans(t, got, []span{{0, 2}})
	if n := len(got[0].Lines); n != 3 {
		t.Errorf("candidate has %d lines, want 3", n)
	}
}

func TestDetect_NarrativeNeverOpens(t *testing.T) {
	got := NewDetector().Detect(pageLines("The results shown in Table 2 indicate improvement."))
	if len(got) != 0 {
		t.Errorf("Detect() = %d candidates, want 0", len(got))
	}
}

func TestDetect_SingleQualifyingLineDropped(t *testing.T) {
	lines := pageLines(
		prose,
		bodyRow("BERT", "91.2", "0.88"),
		prose,
	)
	if got := NewDetector().Detect(lines); len(got) != 0 {
		t.Errorf("Detect() = %v, want none", spansOf(got))
	}
}

func TestDetect_NoiseTolerance(t *testing.T) {
	a := bodyRow("BERT", "91.2", "0.88")
	b := bodyRow("XLNet", "90.1", "0.87")

	tests := []struct {
		name  string
		k     int
		lines []string
		want  []span
	}{
		{"one stray line absorbed", 1, []string{a, b, prose, a, b}, []span{{0, 4}}},
		{"two stray lines split", 1, []string{a, b, prose, prose, a, b}, []span{{0, 1}, {4, 5}}},
		{"zero tolerance", 0, []string{a, b, prose, a, b}, []span{{0, 1}, {3, 4}}},
		{"trailing noise excluded", 1, []string{a, b, a, prose}, []span{{0, 2}}},
		{"blank counts as noise", 1, []string{a, b, "", a}, []span{{0, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.NoiseTolerance = tt.k
			got := NewDetectorWithConfig(config).Detect(pageLines(tt.lines...))
			checkSpans(t, got, tt.want)
		})
	}
}

func TestDetect_IncompatibleBoundaries(t *testing.T) {
	a := bodyRow("BERT", "91.2", "0.88")
	b := wideRow("Baseline", "71.0", "0.52")

	tests := []struct {
		name  string
		lines []string
		want  []span
	}{
		{"one incompatible line tolerated", []string{a, a, b, a, a}, []span{{0, 4}}},
		{"two incompatible lines restart", []string{a, a, a, b, b, b}, []span{{0, 2}, {3, 5}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDetector().Detect(pageLines(tt.lines...))
			checkSpans(t, got, tt.want)
		})
	}
}

func TestDetect_HeaderAndSeparator(t *testing.T) {
	lines := pageLines(
		"Table 1: Accuracy on the benchmark datasets.",
		"",
		bodyRow("Model", "Accuracy", "F1"),
		"----------------------------",
		bodyRow("BERT", "91.2", "0.88"),
		bodyRow("RoBERTa", "92.5", "0.90"),
		bodyRow("XLNet", "90.1", "0.87"),
		"",
		prose,
	)

	got := NewDetector().Detect(lines)
	checkSpans(t, got, []span{{2, 6}})
	if got[0].FirstSeq != 2 || got[0].LastSeq != 6 {
		t.Errorf("Seq range = [%d,%d], want [2,6]", got[0].FirstSeq, got[0].LastSeq)
	}
	if got[0].Caption == nil || got[0].Caption.Number != "1" {
		t.Errorf("Caption = %+v, want table 1", got[0].Caption)
	}
}

func TestDetect_CaptionClosesRegion(t *testing.T) {
	lines := pageLines(
		"[12] Method A 94.2% 0.81",
		"[13] Method B 91.0% 0.77",
		"[14] Method C 96.5% 0.83",
		"Table 3: Ablation of the augmentation policy on CIFAR-10.",
		"[15] Method D 92.4% 0.79",
		"[16] Method E 93.3% 0.80",
		"[17] Method F 90.7% 0.75",
	)

	got := NewDetector().Detect(lines)
	checkSpans(t, got, []span{{0, 2}, {4, 6}})
	if got[0].Caption != nil {
		t.Errorf("first candidate Caption = %+v, want nil", got[0].Caption)
	}
	if c := got[1].Caption; c == nil || c.Number != "3" {
		t.Errorf("second candidate Caption = %+v, want table 3", c)
	}
}

func TestDetect_CaptionOutOfReach(t *testing.T) {
	lines := pageLines(
		"Table 3: Ablation of the augmentation policy.",
		prose,
		prose,
		prose,
		prose,
		"[15] Method D 92.4% 0.79",
		"[16] Method E 93.3% 0.80",
		"[17] Method F 90.7% 0.75",
	)

	got := NewDetector().Detect(lines)
	checkSpans(t, got, []span{{5, 7}})
	if got[0].Caption != nil {
		t.Errorf("Caption = %+v, want nil beyond MergeGap lines", got[0].Caption)
	}
}

func TestDetect_PendingRowsSurviveNoiseClose(t *testing.T) {
	config := DefaultConfig()
	config.NoiseTolerance = 2

	a := bodyRow("BERT", "91.2", "0.88")
	b := wideRow("Baseline", "71.0", "0.52")
	lines := pageLines(a, a, b, b, prose, prose, prose)

	got := NewDetectorWithConfig(config).Detect(lines)
	checkSpans(t, got, []span{{0, 1}, {2, 3}})
}

func TestScan_NoOverlapAndOrdered(t *testing.T) {
	a := bodyRow("BERT", "91.2", "0.88")
	b := wideRow("Baseline", "71.0", "0.52")
	lines := pageLines(a, a, b, b, prose, prose, a, a, "", b, b)

	got := NewDetector().Detect(lines)
	for i := 1; i < len(got); i++ {
		if got[i].Start <= got[i-1].End {
			t.Errorf("candidate %d starts at %d, before previous end %d", i, got[i].Start, got[i-1].End)
		}
	}
	for _, c := range got {
		if c.LineCount() != len(c.Lines) {
			t.Errorf("candidate [%d,%d] holds %d lines", c.Start, c.End, len(c.Lines))
		}
	}
}
