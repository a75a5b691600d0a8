// Package papertab finds, reconstructs and scores tables in the text of
// academic documents.
//
// Basic usage:
//
//	results, warnings, err := papertab.Open("paper.pdf").Tables()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", papertab.FormatWarnings(warnings))
//	}
//
// With options:
//
//	md, _, err := papertab.Open("paper.pdf").
//	    PageRange(3, 8).
//	    StripRunningLines().
//	    ToMarkdown()
//
// Input may be a PDF, pdftotext -layout output, pdftotext -bbox XHTML or a
// scanned page image (with the ocr build tag). Text already in memory is
// handled by [FromText] and [FromPages].
//
// For a whole corpus, [ProcessCorpus] runs documents in parallel and folds
// their statistics into a [report.Summary].
//
// The lower-level tables, layout and text packages are also available.
package papertab

import (
	"github.com/tsawler/papertab/format"
	"github.com/tsawler/papertab/model"
)

// Open returns an Extractor for a file. The format is detected from the
// file's content when a terminal operation runs.
//
// Example:
//
//	results, warnings, err := papertab.Open("paper.pdf").Tables()
func Open(filename string) *Extractor {
	return &Extractor{
		name:     filename,
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromText returns an Extractor for pdftotext -layout output already in
// memory. Pages are separated by form feeds.
//
// Example:
//
//	raw, _ := exec.Command("pdftotext", "-layout", "paper.pdf", "-").Output()
//	results, _, err := papertab.FromText("paper.pdf", string(raw)).Tables()
func FromText(name, raw string) *Extractor {
	return &Extractor{
		name:    name,
		format:  format.Text,
		raw:     raw,
		options: defaultOptions(),
	}
}

// FromPages returns an Extractor for lines produced by the caller, one
// slice per page. Page numbers are assigned in order from 1.
func FromPages(name string, pages ...[]model.TextLine) *Extractor {
	doc := &model.Document{Name: name}
	for _, lines := range pages {
		doc.AddPage(append([]model.TextLine(nil), lines...))
	}
	return &Extractor{
		name:    name,
		source:  doc,
		options: defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := papertab.Must(papertab.Open("paper.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustResult is like Must for terminal operations that also return
// warnings. The warnings are discarded.
//
// Example:
//
//	results := papertab.MustResult(papertab.Open("paper.pdf").Tables())
func MustResult[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
