package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/tsawler/papertab/report"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#2A6FDB", Dark: "#7AA2F7"}
	colorPass   = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#9ECE6A"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#E0AF68"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#565F89"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})
}

// qualityStyle colours a corpus quality grade
func qualityStyle(quality string) lipgloss.Style {
	switch quality {
	case "excellent", "good":
		return lipgloss.NewStyle().Foreground(colorPass)
	default:
		return lipgloss.NewStyle().Foreground(colorWarn)
	}
}

// renderSummary draws the corpus totals, defect counts and per-document rows
func renderSummary(s report.Summary) string {
	var sections []string

	totals := newTable("Metric", "Value").Rows(
		[]string{"Files", strconv.Itoa(s.Files)},
		[]string{"Pages", strconv.Itoa(s.Pages)},
		[]string{"Tables", strconv.Itoa(s.Tables)},
		[]string{"Valid tables", strconv.Itoa(s.Valid)},
		[]string{"Merged tables", strconv.Itoa(s.Merged)},
		[]string{"Validity rate", fmt.Sprintf("%.1f%%", s.ValidityRate()*100)},
	)
	sections = append(sections,
		titleStyle.Render("Corpus summary"),
		totals.String(),
		"Quality: "+qualityStyle(s.Quality()).Render(s.Quality()),
	)

	if kinds := s.DefectKinds(); len(kinds) > 0 {
		defects := newTable("Defect", "Tables")
		for _, k := range kinds {
			defects.Row(string(k), strconv.Itoa(s.Defects[k]))
		}
		sections = append(sections, "", titleStyle.Render("Defects"), defects.String())
	}

	if len(s.Documents) > 0 {
		docs := newTable("Document", "Pages", "Tables", "Valid", "Issues")
		for _, d := range s.Documents {
			docs.Row(
				filepath.Base(d.Name),
				strconv.Itoa(d.Pages),
				strconv.Itoa(d.Tables),
				strconv.Itoa(d.Valid),
				strings.Join(d.Issues, "; "),
			)
		}
		sections = append(sections, "", titleStyle.Render("Documents"), docs.String())
	}

	return strings.Join(sections, "\n") + "\n"
}
