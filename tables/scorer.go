package tables

import (
	"fmt"
	"sort"

	"github.com/tsawler/papertab/model"
)

// Scorer rates how table-like a grid is.
type Scorer struct {
	config Config
}

// NewScorer creates a scorer with default configuration
func NewScorer() *Scorer {
	return NewScorerWithConfig(DefaultConfig())
}

// NewScorerWithConfig creates a scorer with custom configuration
func NewScorerWithConfig(config Config) *Scorer {
	return &Scorer{config: config}
}

// Score checks a grid for structural defects. The score is one minus the
// fraction of defect kinds present, so it only drops when a new kind of
// problem appears. A grid is valid when the score reaches the threshold
// and it is neither too short nor too narrow.
func (s *Scorer) Score(g model.Grid) model.Report {
	var defects []model.Defect

	if len(g.Rows) < s.config.MinRows {
		defects = append(defects, model.Defect{
			Kind:   model.DefectTooFewRows,
			Row:    -1,
			Column: -1,
			Note:   fmt.Sprintf("%d rows, need at least %d", len(g.Rows), s.config.MinRows),
		})
	}
	if g.Columns < s.config.MinColumns {
		defects = append(defects, model.Defect{
			Kind:   model.DefectTooFewColumns,
			Row:    -1,
			Column: -1,
			Note:   fmt.Sprintf("%d columns, need at least %d", g.Columns, s.config.MinColumns),
		})
	}
	if g.HasHeader() && !g.HasSeparatorAfter(g.Rows[g.Header].Seq) {
		defects = append(defects, model.Defect{
			Kind:   model.DefectMissingHeaderSeparator,
			Row:    g.Header,
			Column: -1,
			Note:   "no separator line after header row",
		})
	}

	if len(g.Rows) > 0 {
		mode := modalWidth(g.Rows)
		for i, r := range g.Rows {
			w := r.Effective()
			if w-mode > 1 || mode-w > 1 {
				defects = append(defects, model.Defect{
					Kind:   model.DefectInconsistentRowWidth,
					Row:    i,
					Column: -1,
					Note:   fmt.Sprintf("%d cells, most rows have %d", w, mode),
				})
			}
		}
	}

	report := model.Report{Defects: defects}
	kinds := len(report.Kinds())
	report.Score = 1 - float64(kinds)/float64(len(model.DefectKinds))
	if report.Score < 0 {
		report.Score = 0
	}
	report.Valid = report.Score >= s.config.ValidityThreshold &&
		!report.Has(model.DefectTooFewRows) &&
		!report.Has(model.DefectTooFewColumns)

	return report
}

// modalWidth returns the most common effective width; ties go to the wider
func modalWidth(rows []model.Row) int {
	counts := make(map[int]int)
	for _, r := range rows {
		counts[r.Effective()]++
	}

	widths := make([]int, 0, len(counts))
	for w := range counts {
		widths = append(widths, w)
	}
	sort.Ints(widths)

	best, bestCount := 0, 0
	for _, w := range widths {
		if counts[w] >= bestCount {
			best, bestCount = w, counts[w]
		}
	}
	return best
}
