package papertab

import (
	"context"
	"fmt"
	"os"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/papertab/format"
	"github.com/tsawler/papertab/htmldoc"
	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
	"github.com/tsawler/papertab/ocr"
	"github.com/tsawler/papertab/reader"
	"github.com/tsawler/papertab/tables"
	"github.com/tsawler/papertab/text"
)

// pageSource yields the text lines of a document one page at a time.
// Pages are 1-indexed.
type pageSource interface {
	PageCount() int
	Lines(n int) ([]model.TextLine, error)
	Close() error
}

// textSource serves form-feed separated layout text
type textSource struct {
	pages []string
}

func (s textSource) PageCount() int { return len(s.pages) }
func (s textSource) Close() error   { return nil }

func (s textSource) Lines(n int) ([]model.TextLine, error) {
	return text.Lines(n, s.pages[n-1]), nil
}

// documentSource serves lines supplied by the caller
type documentSource struct {
	doc *model.Document
}

func (s documentSource) PageCount() int { return s.doc.PageCount() }
func (s documentSource) Close() error   { return nil }

func (s documentSource) Lines(n int) ([]model.TextLine, error) {
	return append([]model.TextLine(nil), s.doc.Pages[n-1].Lines...), nil
}

// imageSource serves a single scanned page through OCR
type imageSource struct {
	client *ocr.Client
	data   []byte
}

func (s imageSource) PageCount() int { return 1 }
func (s imageSource) Close() error   { return s.client.Close() }

func (s imageSource) Lines(n int) ([]model.TextLine, error) {
	return s.client.RecognizeLines(n, s.data)
}

// open selects a page source for the extractor's input. Warnings concern
// the input as a whole.
func (e *Extractor) open() (pageSource, []Warning, error) {
	if e.source != nil {
		return documentSource{doc: e.source}, nil, nil
	}
	if e.filename == "" {
		return textSource{pages: text.SplitPages(e.raw)}, nil, nil
	}

	f := e.format
	if f == format.Unknown {
		var err error
		if f, err = format.DetectFile(e.filename); err != nil {
			return nil, nil, err
		}
	}

	switch f {
	case format.PDF:
		r, err := reader.OpenWithConfig(e.filename, e.options.lines)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		return r, nil, nil

	case format.HTML:
		r, err := htmldoc.OpenWithConfig(e.filename, e.options.lines)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open bbox HTML: %w", err)
		}
		return r, nil, nil

	case format.Text:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read text: %w", err)
		}
		return textSource{pages: text.SplitPages(string(data))}, nil, nil

	case format.Image:
		data, err := os.ReadFile(e.filename)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read image: %w", err)
		}
		info, err := ocr.Inspect(data)
		if err != nil {
			return nil, nil, err
		}
		var warnings []Warning
		if info.LowResolution() {
			warnings = append(warnings, Warning{
				Kind:    WarningLowResolution,
				Page:    1,
				Message: fmt.Sprintf("%s scan is %dx%d; recognition may be unreliable", info.Format, info.Width, info.Height),
			})
		}
		client, err := ocr.NewWithConfig(e.options.lines)
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to start OCR: %w", err)
		}
		return imageSource{client: client, data: data}, warnings, nil

	default:
		return nil, nil, fmt.Errorf("%w: %s", format.ErrUnsupported, f)
	}
}

// resolvePages validates the page selection against the page count. If no
// pages are selected, every page is returned. The result is sorted and
// free of duplicates.
func (e *Extractor) resolvePages(pageCount int) ([]int, error) {
	if len(e.options.pages) == 0 {
		all := make([]int, pageCount)
		for i := range all {
			all[i] = i + 1
		}
		return all, nil
	}

	seen := make(map[int]bool)
	var pages []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, pageCount)
		}
		if !seen[p] {
			seen[p] = true
			pages = append(pages, p)
		}
	}
	sort.Ints(pages)
	return pages, nil
}

// load reads the selected pages into a sequenced document. A page that
// cannot be decoded becomes an empty page and a warning.
func (e *Extractor) load() (*model.Document, []Warning, error) {
	src, warnings, err := e.open()
	if err != nil {
		return nil, warnings, err
	}
	defer src.Close()

	pages, err := e.resolvePages(src.PageCount())
	if err != nil {
		return nil, warnings, err
	}

	ctx := e.options.ctx
	doc := &model.Document{Name: e.name}
	for _, n := range pages {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}

		lines, err := src.Lines(n)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:    WarningUnreadablePage,
				Page:    n,
				Message: err.Error(),
			})
			lines = nil
		} else if blankPage(lines) {
			warnings = append(warnings, Warning{
				Kind:    WarningEmptyPage,
				Page:    n,
				Message: "no text found",
			})
		}
		doc.Pages = append(doc.Pages, model.Page{Number: n, Lines: lines})
	}

	if e.options.stripRunning {
		running := layout.NewHeaderFooterDetectorWithConfig(e.options.running).Detect(doc.Pages)
		for i := range doc.Pages {
			doc.Pages[i].Lines = running.Filter(doc.Pages[i], e.options.running.ZoneLines)
		}
	}

	doc.Sequence()
	return doc, warnings, nil
}

func blankPage(lines []model.TextLine) bool {
	for _, l := range lines {
		if !l.IsBlank() {
			return false
		}
	}
	return true
}

// analysis holds every stage of one run over a document
type analysis struct {
	doc        *model.Document
	candidates []model.Candidate
	grids      []model.Result // Scored grids before consolidation
	tables     []model.Result
}

// pageResult is the output of one page's detection
type pageResult struct {
	candidates []model.Candidate
	grids      []model.Result
}

// run loads the document, then detects, builds and scores each page on a
// bounded worker pool. Per-page results are stitched in page order, grids
// are numbered in document order and fragments are consolidated.
func (e *Extractor) run() (*analysis, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}

	doc, warnings, err := e.load()
	if err != nil {
		return nil, warnings, err
	}

	perPage, err := e.analyzePages(e.options.ctx, doc)
	if err != nil {
		return nil, warnings, err
	}

	a := &analysis{doc: doc}
	for _, p := range perPage {
		a.candidates = append(a.candidates, p.candidates...)
		for _, r := range p.grids {
			r.Grid.ID = len(a.grids) + 1
			a.grids = append(a.grids, r)
		}
	}
	a.tables = tables.NewConsolidatorWithConfig(e.options.config).Consolidate(a.grids)
	return a, warnings, nil
}

func (e *Extractor) analyzePages(ctx context.Context, doc *model.Document) ([]pageResult, error) {
	config := e.options.config
	detector := tables.NewDetectorWithConfig(config)
	builder := tables.NewBuilderWithConfig(config)
	scorer := tables.NewScorerWithConfig(config)

	out := make([]pageResult, len(doc.Pages))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)

	for i := range doc.Pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			cands := detector.Detect(doc.Pages[i].Lines)
			grids := make([]model.Result, 0, len(cands))
			for _, c := range cands {
				grid := builder.Build(c)
				grids = append(grids, model.Result{Grid: grid, Report: scorer.Score(grid)})
			}
			out[i] = pageResult{candidates: cands, grids: grids}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
