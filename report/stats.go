package report

import (
	"fmt"

	"github.com/tsawler/papertab/model"
)

// Documents whose validity rate falls below this are flagged
const lowValidityRate = 0.8

// TableEntry summarises one final table of a document.
type TableEntry struct {
	ID      int                `json:"id" yaml:"id"`
	Page    int                `json:"page" yaml:"page"`
	EndPage int                `json:"end_page" yaml:"end_page"`
	Rows    int                `json:"rows" yaml:"rows"`
	Columns int                `json:"columns" yaml:"columns"`
	Header  bool               `json:"header" yaml:"header"`
	Score   float64            `json:"score" yaml:"score"`
	Valid   bool               `json:"valid" yaml:"valid"`
	Defects []model.DefectKind `json:"defects,omitempty" yaml:"defects,omitempty"`
	Members []int              `json:"members,omitempty" yaml:"members,omitempty"`
}

// DocumentStats are the aggregate counts for one processed document.
type DocumentStats struct {
	Name  string `json:"name" yaml:"name"`
	Pages int    `json:"pages" yaml:"pages"`
	Lines int    `json:"lines" yaml:"lines"`

	// Candidates is the number of grids before consolidation
	Candidates int `json:"candidates" yaml:"candidates"`
	Tables     int `json:"tables" yaml:"tables"`
	Valid      int `json:"valid" yaml:"valid"`
	Merged     int `json:"merged" yaml:"merged"`

	// Defects counts tables per defect kind; a table with several defects
	// of one kind counts once.
	Defects map[model.DefectKind]int `json:"defects" yaml:"defects"`

	Issues  []string     `json:"issues,omitempty" yaml:"issues,omitempty"`
	Details []TableEntry `json:"tables_detail,omitempty" yaml:"tables_detail,omitempty"`
}

// FromResults builds the statistics of one document from its consolidated
// results. candidates is the number of grids before consolidation.
func FromResults(name string, pages, lines, candidates int, results []model.Result) DocumentStats {
	stats := DocumentStats{
		Name:       name,
		Pages:      pages,
		Lines:      lines,
		Candidates: candidates,
		Tables:     len(results),
		Defects:    make(map[model.DefectKind]int),
	}

	for _, r := range results {
		kinds := r.Report.Kinds()
		for _, k := range kinds {
			stats.Defects[k]++
		}
		if r.Report.Valid {
			stats.Valid++
		}
		if len(r.Grid.Members) > 1 {
			stats.Merged++
		}

		stats.Details = append(stats.Details, TableEntry{
			ID:      r.Grid.ID,
			Page:    r.Grid.Page,
			EndPage: r.Grid.EndPage,
			Rows:    r.Grid.RowCount(),
			Columns: r.Grid.Columns,
			Header:  r.Grid.HasHeader(),
			Score:   r.Report.Score,
			Valid:   r.Report.Valid,
			Defects: kinds,
			Members: r.Grid.Members,
		})
	}

	stats.Issues = stats.qualityIssues()
	return stats
}

// ValidityRate returns the fraction of tables that are valid, 0 with no tables
func (d DocumentStats) ValidityRate() float64 {
	if d.Tables == 0 {
		return 0
	}
	return float64(d.Valid) / float64(d.Tables)
}

func (d DocumentStats) qualityIssues() []string {
	var issues []string
	if d.Tables == 0 {
		issues = append(issues, "No tables found")
		return issues
	}
	if rate := d.ValidityRate(); rate < lowValidityRate {
		issues = append(issues, fmt.Sprintf("Low table validity rate: %.1f%%", rate*100))
	}
	return issues
}
