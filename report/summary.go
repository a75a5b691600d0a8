package report

import (
	"sort"
	"strings"

	"github.com/tsawler/papertab/model"
)

// Summary accumulates statistics over a corpus. It is a plain value: Add
// and Merge return new summaries and never modify their inputs, so partial
// summaries built on separate workers can be combined in any order.
type Summary struct {
	Files   int                      `json:"total_files" yaml:"total_files"`
	Pages   int                      `json:"total_pages" yaml:"total_pages"`
	Tables  int                      `json:"total_tables" yaml:"total_tables"`
	Valid   int                      `json:"valid_tables" yaml:"valid_tables"`
	Merged  int                      `json:"merged_tables" yaml:"merged_tables"`
	Defects map[model.DefectKind]int `json:"defects" yaml:"defects"`

	// Issues counts files per quality issue
	Issues map[string]int `json:"issues,omitempty" yaml:"issues,omitempty"`

	Documents []DocumentStats `json:"documents,omitempty" yaml:"documents,omitempty"`
}

// Add returns the summary with one more document folded in
func (s Summary) Add(d DocumentStats) Summary {
	return Merge(s, Summary{
		Files:     1,
		Pages:     d.Pages,
		Tables:    d.Tables,
		Valid:     d.Valid,
		Merged:    d.Merged,
		Defects:   d.Defects,
		Issues:    countIssues(d.Issues),
		Documents: []DocumentStats{d},
	})
}

// Merge combines two summaries. The result does not depend on argument
// order.
func Merge(a, b Summary) Summary {
	out := Summary{
		Files:   a.Files + b.Files,
		Pages:   a.Pages + b.Pages,
		Tables:  a.Tables + b.Tables,
		Valid:   a.Valid + b.Valid,
		Merged:  a.Merged + b.Merged,
		Defects: make(map[model.DefectKind]int),
	}

	for _, m := range []map[model.DefectKind]int{a.Defects, b.Defects} {
		for k, n := range m {
			out.Defects[k] += n
		}
	}
	for _, m := range []map[string]int{a.Issues, b.Issues} {
		for k, n := range m {
			if out.Issues == nil {
				out.Issues = make(map[string]int)
			}
			out.Issues[k] += n
		}
	}

	out.Documents = make([]DocumentStats, 0, len(a.Documents)+len(b.Documents))
	out.Documents = append(out.Documents, a.Documents...)
	out.Documents = append(out.Documents, b.Documents...)
	sort.SliceStable(out.Documents, func(i, j int) bool {
		return out.Documents[i].Name < out.Documents[j].Name
	})

	return out
}

// countIssues keys each issue by its label, dropping the measured value so
// files with the same problem are counted together.
func countIssues(issues []string) map[string]int {
	if len(issues) == 0 {
		return nil
	}
	m := make(map[string]int, len(issues))
	for _, issue := range issues {
		label, _, _ := strings.Cut(issue, ":")
		m[label]++
	}
	return m
}

// ValidityRate returns the fraction of all tables that are valid
func (s Summary) ValidityRate() float64 {
	if s.Tables == 0 {
		return 0
	}
	return float64(s.Valid) / float64(s.Tables)
}

// Quality grades the corpus validity rate
func (s Summary) Quality() string {
	rate := s.ValidityRate()
	switch {
	case rate > 0.95:
		return "excellent"
	case rate > 0.8:
		return "good"
	default:
		return "needs improvement"
	}
}

// DefectKinds returns the kinds present, most frequent first
func (s Summary) DefectKinds() []model.DefectKind {
	kinds := make([]model.DefectKind, 0, len(s.Defects))
	for k, n := range s.Defects {
		if n > 0 {
			kinds = append(kinds, k)
		}
	}
	sort.Slice(kinds, func(i, j int) bool {
		if s.Defects[kinds[i]] != s.Defects[kinds[j]] {
			return s.Defects[kinds[i]] > s.Defects[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
