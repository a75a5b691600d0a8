package papertab

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/tsawler/papertab/format"
	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
	"github.com/tsawler/papertab/report"
	"github.com/tsawler/papertab/tables"
	"github.com/tsawler/papertab/text"
)

// Extractor provides a fluent interface for finding tables in a document.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source, exactly one of filename, raw or source is used
	name     string
	filename string
	format   format.Format
	raw      string
	source   *model.Document

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		name:     e.name,
		filename: e.filename,
		format:   e.format,
		raw:      e.raw,
		source:   e.source,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to search (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	results, _, err := papertab.Open("paper.pdf").Pages(1, 3, 5).Tables()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to search (1-indexed, inclusive).
//
// Example:
//
//	results, _, err := papertab.Open("paper.pdf").PageRange(5, 10).Tables()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// WithConfig replaces the detection, building, scoring and consolidation
// settings. An invalid config is reported by the terminal operation.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.MergeGap = 5
//	results, _, err := papertab.Open("paper.pdf").WithConfig(cfg).Tables()
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	if newExt.err == nil {
		newExt.err = config.Validate()
	}
	return newExt
}

// WithLineConfig sets how positioned words from PDF, bbox and OCR sources
// are grouped into lines. It has no effect on text sources.
func (e *Extractor) WithLineConfig(config text.LineConfig) *Extractor {
	newExt := e.clone()
	newExt.options.lines = config
	return newExt
}

// StripRunningLines removes running headers and footers, such as page
// numbers and journal names, before detection. This lets a table broken
// across a page boundary be consolidated into one.
//
// Example:
//
//	results, _, err := papertab.Open("paper.pdf").StripRunningLines().Tables()
func (e *Extractor) StripRunningLines() *Extractor {
	newExt := e.clone()
	newExt.options.stripRunning = true
	return newExt
}

// StripRunningLinesWithConfig is like StripRunningLines with custom
// detection settings.
func (e *Extractor) StripRunningLinesWithConfig(config layout.HeaderFooterConfig) *Extractor {
	newExt := e.clone()
	newExt.options.stripRunning = true
	newExt.options.running = config
	return newExt
}

// Workers sets how many pages are analysed concurrently. Values below 1
// restore the default of one worker per CPU.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = runtime.NumCPU()
	}
	newExt.options.workers = n
	return newExt
}

// WithContext sets a context checked between pages. A cancelled context
// ends the terminal operation with its error.
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	newExt := e.clone()
	if ctx == nil {
		ctx = context.Background()
	}
	newExt.options.ctx = ctx
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source, ignoring any page
// selection.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	src, _, err := e.open()
	if err != nil {
		return 0, err
	}
	defer src.Close()

	return src.PageCount(), nil
}

// Document returns the selected pages as a sequenced document, after
// running line removal.
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	return e.load()
}

// Lines returns the lines of the selected pages in document order.
func (e *Extractor) Lines() ([]model.TextLine, []Warning, error) {
	doc, warnings, err := e.Document()
	if err != nil {
		return nil, warnings, err
	}

	lines := make([]model.TextLine, 0, doc.LineCount())
	for _, p := range doc.Pages {
		lines = append(lines, p.Lines...)
	}
	return lines, warnings, nil
}

// Candidates returns the candidate regions of every selected page, in
// document order.
//
// Example:
//
//	cands, _, err := papertab.FromText("paper.pdf", raw).Candidates()
//	for _, c := range cands {
//	    fmt.Printf("page %d, lines %d-%d\n", c.Page, c.Start, c.End)
//	}
func (e *Extractor) Candidates() ([]model.Candidate, []Warning, error) {
	a, warnings, err := e.run()
	if err != nil {
		return nil, warnings, err
	}
	return a.candidates, warnings, nil
}

// Tables returns the consolidated tables with their validity reports, in
// document order. Invalid tables are included; check Report.Valid.
//
// Example:
//
//	results, _, err := papertab.Open("paper.pdf").Tables()
//	for _, r := range results {
//	    if r.Report.Valid {
//	        fmt.Print(r.Grid.ToMarkdown())
//	    }
//	}
func (e *Extractor) Tables() ([]model.Result, []Warning, error) {
	a, warnings, err := e.run()
	if err != nil {
		return nil, warnings, err
	}
	return a.tables, warnings, nil
}

// ToMarkdown renders the valid tables as markdown, each under a caption
// giving its number, confidence score and pages. Defects of rendered
// tables and the tables left out are reported as warnings.
//
// Example:
//
//	md, warnings, err := papertab.Open("paper.pdf").StripRunningLines().ToMarkdown()
func (e *Extractor) ToMarkdown() (string, []Warning, error) {
	a, warnings, err := e.run()
	if err != nil {
		return "", warnings, err
	}

	var sb strings.Builder
	for _, r := range a.tables {
		if !r.Report.Valid {
			warnings = append(warnings, Warning{
				Kind:    WarningTableSkipped,
				Page:    r.Grid.Page,
				Message: fmt.Sprintf("table %d skipped (score %.2f)%s", r.Grid.ID, r.Report.Score, defectList(r.Report)),
			})
			continue
		}
		if len(r.Report.Defects) > 0 {
			warnings = append(warnings, Warning{
				Kind:    WarningTableDefect,
				Page:    r.Grid.Page,
				Message: fmt.Sprintf("table %d%s", r.Grid.ID, defectList(r.Report)),
			})
		}

		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(caption(r))
		sb.WriteString("\n\n")
		sb.WriteString(r.Grid.ToMarkdown())
	}
	return sb.String(), warnings, nil
}

// Stats returns the document's table statistics.
func (e *Extractor) Stats() (report.DocumentStats, []Warning, error) {
	a, warnings, err := e.run()
	if err != nil {
		return report.DocumentStats{}, warnings, err
	}
	return report.FromResults(e.name, a.doc.PageCount(), a.doc.LineCount(), len(a.grids), a.tables), warnings, nil
}

// caption formats the line shown above a rendered table. A table with a
// title line is labelled with its own number and description; others are
// numbered by ID.
func caption(r model.Result) string {
	pages := fmt.Sprintf("page %d", r.Grid.Page)
	if r.Grid.EndPage > r.Grid.Page {
		pages = fmt.Sprintf("pages %d-%d", r.Grid.Page, r.Grid.EndPage)
	}

	title := fmt.Sprintf("**Table %d**", r.Grid.ID)
	if c := r.Grid.Caption; c != nil {
		title = "**Table " + c.Number + "**"
		if c.Description != "" {
			title += " " + c.Description
		}
	}
	return fmt.Sprintf("%s *(confidence: %.2f, %s)*", title, r.Report.Score, pages)
}

// defectList formats a report's defect kinds as ": a, b", or "" if none
func defectList(r model.Report) string {
	kinds := r.Kinds()
	if len(kinds) == 0 {
		return ""
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return ": " + strings.Join(names, ", ")
}
