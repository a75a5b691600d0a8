package tables

import (
	"testing"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
)

func TestParseCaption(t *testing.T) {
	tests := []struct {
		line string
		want model.Caption
		ok   bool
	}{
		{"Table 3: Ablation of the augmentation policy on CIFAR-10.", model.Caption{Number: "3", Description: "Ablation of the augmentation policy on CIFAR-10."}, true},
		{"Table 3 (continued)", model.Caption{Number: "3", Continued: true}, true},
		{"Table 4. Results (cont.)", model.Caption{Number: "4", Description: "Results", Continued: true}, true},
		{"Tab. 2 Results on ImageNet", model.Caption{Number: "2", Description: "Results on ImageNet"}, true},
		{"TABLE IV", model.Caption{Number: "IV"}, true},
		{"  Table 3.1 – Timing per epoch", model.Caption{Number: "3.1", Description: "Timing per epoch"}, true},
		{"Table 3 shows the accuracy of every model.", model.Caption{}, false},
		{"Tables 1 and 2 compare the baselines.", model.Caption{}, false},
		{"The results in Table 2 indicate improvement.", model.Caption{}, false},
		{"Table", model.Caption{}, false},
		{"Tabular data is rare here.", model.Caption{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, ok := ParseCaption(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseCaption(%q) = %+v, %v, want %+v, %v", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestClassifyLine_Caption(t *testing.T) {
	line := model.NewTextLine(1, 0, "Table 2:    Model    Accuracy    F1")

	got := NewClassifier().ClassifyLine(line, layout.NewAnalyzer().RawSplits(line), model.TagBlank)
	if got.Tag != model.TagNarrative || got.Caption == nil || got.Caption.Number != "2" {
		t.Errorf("ClassifyLine() = %v with caption %+v, want narrative with caption 2", got.Tag, got.Caption)
	}
	if len(got.Boundaries) != 0 {
		t.Errorf("caption carries boundaries %v", got.Boundaries)
	}
}
