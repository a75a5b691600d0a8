package text

import (
	"strings"

	"github.com/tsawler/papertab/model"
)

// SplitPages splits layout text into pages at form feeds. The empty page
// that follows the final form feed of pdftotext output is dropped.
func SplitPages(raw string) []string {
	if raw == "" {
		return nil
	}
	pages := strings.Split(raw, "\f")
	if last := pages[len(pages)-1]; strings.TrimSpace(last) == "" && len(pages) > 1 {
		pages = pages[:len(pages)-1]
	}
	return pages
}

// Lines normalizes one page of layout text and returns its lines, tabs
// expanded to DefaultTabWidth. A trailing newline does not produce an
// extra line.
func Lines(page int, raw string) []model.TextLine {
	raw = strings.TrimSuffix(Normalize(raw), "\n")
	if raw == "" {
		return nil
	}

	rows := strings.Split(raw, "\n")
	lines := make([]model.TextLine, len(rows))
	for i, row := range rows {
		lines[i] = model.NewTextLine(page, i, ExpandTabs(row, DefaultTabWidth))
	}
	return lines
}

// Parse turns pdftotext -layout output into a sequenced document
func Parse(name, raw string) *model.Document {
	doc := &model.Document{Name: name}
	for _, page := range SplitPages(raw) {
		doc.AddPage(Lines(len(doc.Pages)+1, page))
	}
	doc.Sequence()
	return doc
}
