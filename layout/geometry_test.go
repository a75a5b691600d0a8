package layout

import (
	"testing"

	"github.com/tsawler/papertab/model"
)

func lineOf(raw string) model.TextLine {
	return model.NewTextLine(1, 0, raw)
}

func TestAnalyzer_RawSplits(t *testing.T) {
	a := NewAnalyzer()

	tests := []struct {
		name       string
		text       string
		wantPos    []float64
		wantStrong []bool
	}{
		{"single spaces", "The quick brown fox", nil, nil},
		{"two runs", "Model   Acc  F1", []float64{8, 13}, []bool{false, false}},
		{"wide run", "Model       Acc", []float64{12}, []bool{true}},
		{"single token", "      Results", nil, nil},
		{"empty", "", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := a.RawSplits(lineOf(tt.text))
			if len(got) != len(tt.wantPos) {
				t.Fatalf("RawSplits(%q) = %v, want positions %v", tt.text, got, tt.wantPos)
			}
			for i := range got {
				if got[i].Pos != tt.wantPos[i] {
					t.Errorf("split %d Pos = %v, want %v", i, got[i].Pos, tt.wantPos[i])
				}
				if got[i].Strong != tt.wantStrong[i] {
					t.Errorf("split %d Strong = %v, want %v", i, got[i].Strong, tt.wantStrong[i])
				}
				if got[i].Support != 1 {
					t.Errorf("split %d Support = %d, want 1", i, got[i].Support)
				}
			}
		})
	}
}

func TestAnalyzer_MinLineLength(t *testing.T) {
	config := DefaultConfig()
	config.MinLineLength = 10
	a := NewAnalyzerWithConfig(config)

	if got := a.RawSplits(lineOf("ab  cd")); got != nil {
		t.Errorf("RawSplits() on short line = %v, want nil", got)
	}
	if got := a.RawSplits(lineOf("abcd    efgh")); len(got) != 1 {
		t.Errorf("RawSplits() = %v, want one split", got)
	}
}

func TestAnalyzer_AnalyzeAlignment(t *testing.T) {
	lines := []model.TextLine{
		model.NewTextLine(1, 0, "alpha  12  beta"),
		model.NewTextLine(1, 1, ""),
		model.NewTextLine(1, 2, "gamma  34  delta"),
		model.NewTextLine(1, 3, "a plain  sentence of words"),
	}

	got := NewAnalyzer().Analyze(lines)

	if len(got) != len(lines) {
		t.Fatalf("Analyze() returned %d entries, want %d", len(got), len(lines))
	}
	if got[1] != nil {
		t.Errorf("blank line has splits %v", got[1])
	}
	// Lines 0 and 2 align across the blank line.
	for _, i := range []int{0, 2} {
		if StrongCount(got[i]) != 2 {
			t.Errorf("line %d strong splits = %d, want 2 (%v)", i, StrongCount(got[i]), got[i])
		}
	}
	// The split at column 9 on line 3 lines up with line 2's split at 7.
	if len(got[3]) != 1 || !got[3][0].Strong {
		t.Errorf("line 3 splits = %v, want one strong split", got[3])
	}
}

func TestAnalyzer_IsolatedNarrowSplitIsWeak(t *testing.T) {
	lines := []model.TextLine{
		model.NewTextLine(1, 0, "The first sentence ends here.  A second one starts."),
		model.NewTextLine(1, 1, "Nothing here lines up with the gap above at all."),
	}

	got := NewAnalyzer().Analyze(lines)
	if len(got[0]) != 1 {
		t.Fatalf("line 0 splits = %v, want 1", got[0])
	}
	if got[0][0].Strong {
		t.Error("isolated two-space gap marked strong")
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}

	config := DefaultConfig()
	config.Tolerance = -1
	config.WideGapRun = 1
	if err := config.Validate(); err == nil {
		t.Error("Validate() accepted negative tolerance and narrow wide_gap_run")
	}
}

func TestPositions(t *testing.T) {
	got := Positions([]Split{{Pos: 20}, {Pos: 4}, {Pos: 11}})
	want := []float64{4, 11, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
