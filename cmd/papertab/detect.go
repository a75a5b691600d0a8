package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/papertab"
	"github.com/tsawler/papertab/model"
)

// tableOutput is the JSON and YAML form of one detected table
type tableOutput struct {
	ID      int                `json:"id" yaml:"id"`
	Page    int                `json:"page" yaml:"page"`
	EndPage int                `json:"end_page" yaml:"end_page"`
	Score   float64            `json:"score" yaml:"score"`
	Valid   bool               `json:"valid" yaml:"valid"`
	Defects []model.DefectKind `json:"defects,omitempty" yaml:"defects,omitempty"`
	Members []int              `json:"members,omitempty" yaml:"members,omitempty"`
	Caption *model.Caption     `json:"caption,omitempty" yaml:"caption,omitempty"`
	Header  []string           `json:"header,omitempty" yaml:"header,omitempty"`
	Rows    [][]string         `json:"rows" yaml:"rows"`
}

func toOutput(r model.Result) tableOutput {
	out := tableOutput{
		ID:      r.Grid.ID,
		Page:    r.Grid.Page,
		EndPage: r.Grid.EndPage,
		Score:   r.Report.Score,
		Valid:   r.Report.Valid,
		Defects: r.Report.Kinds(),
		Members: r.Grid.Members,
		Caption: r.Grid.Caption,
	}
	for i, row := range r.Grid.Rows {
		if i == r.Grid.Header {
			out.Header = row.Cells
			continue
		}
		out.Rows = append(out.Rows, row.Cells)
	}
	return out
}

func newDetectCmd(app *app) *cobra.Command {
	var pages, outputFormat string
	var render bool

	cmd := &cobra.Command{
		Use:   "detect <file>",
		Short: "Detect the tables of one document",
		Long: `Detect, reconstruct and score the tables of one document.

The markdown and csv formats print valid tables only; json and yaml print
every table with its validity report.

Examples:
  papertab detect paper.pdf
  papertab detect --pages 3-5,9 paper.pdf
  pdftotext -layout paper.pdf - | papertab detect --format json -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := parsePages(pages)
			if err != nil {
				return err
			}

			e, err := app.extractor(cmd, args[0])
			if err != nil {
				return err
			}
			e = e.Pages(selected...)

			out := cmd.OutOrStdout()
			switch outputFormat {
			case "markdown", "md":
				md, warnings, err := e.ToMarkdown()
				logWarnings(app.logger, warnings)
				if err != nil {
					return err
				}
				if render || isTerminal(out) {
					if md, err = renderMarkdown(out, md); err != nil {
						return fmt.Errorf("rendering markdown: %w", err)
					}
				}
				_, err = io.WriteString(out, md)
				return err

			case "csv", "json", "yaml":
				results, warnings, err := e.Tables()
				logWarnings(app.logger, warnings)
				if err != nil {
					return err
				}
				app.logger.Info("detection finished", "file", args[0], "tables", len(results))
				return writeTables(out, outputFormat, results)

			default:
				return fmt.Errorf("unknown format %q (want markdown, csv, json or yaml)", outputFormat)
			}
		},
	}

	cmd.Flags().StringVarP(&pages, "pages", "p", "", "pages to search, e.g. 1,3-5 (default: all)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "markdown", "output format: markdown, csv, json or yaml")
	cmd.Flags().BoolVar(&render, "render", false, "style markdown output for the terminal (default when stdout is a terminal)")
	return cmd
}

// extractor returns an Extractor for a file, or for layout text on stdin
// when the name is "-".
func (a *app) extractor(cmd *cobra.Command, name string) (*papertab.Extractor, error) {
	var e *papertab.Extractor
	if name == "-" {
		if isTerminal(cmd.InOrStdin()) {
			return nil, errors.New("no input on stdin: pipe pdftotext -layout output or name a file")
		}
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		e = papertab.FromText("stdin", string(raw))
	} else {
		e = papertab.Open(name)
	}

	s := a.settings
	e = e.WithConfig(s.Tables).
		WithLineConfig(s.Lines).
		Workers(s.Workers).
		WithContext(cmd.Context())
	if s.StripRunning {
		e = e.StripRunningLinesWithConfig(s.Running)
	}
	return e, nil
}

func writeTables(w io.Writer, format string, results []model.Result) error {
	switch format {
	case "csv":
		first := true
		for _, r := range results {
			if !r.Report.Valid {
				continue
			}
			if !first {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			first = false
			if _, err := io.WriteString(w, r.Grid.ToCSV()); err != nil {
				return err
			}
		}
		return nil
	}

	out := make([]tableOutput, len(results))
	for i, r := range results {
		out[i] = toOutput(r)
	}
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(out); err != nil {
		return err
	}
	return enc.Close()
}

// parsePages parses a page list such as "1,3-5" into page numbers. An
// empty list selects every page.
func parsePages(s string) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		lo, hi, isRange := strings.Cut(part, "-")
		start, err := strconv.Atoi(strings.TrimSpace(lo))
		if err != nil {
			return nil, fmt.Errorf("invalid page %q", part)
		}
		end := start
		if isRange {
			if end, err = strconv.Atoi(strings.TrimSpace(hi)); err != nil {
				return nil, fmt.Errorf("invalid page range %q", part)
			}
		}
		if start < 1 || end < start {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	return pages, nil
}
