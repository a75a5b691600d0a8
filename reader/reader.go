package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/papertab/model"
	"github.com/tsawler/papertab/text"
)

// US Letter, used when a page has no readable MediaBox
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Glyph tops sit roughly this fraction of the font size above the baseline
const ascent = 0.8

// ErrPageRange is returned for a page number outside the document
var ErrPageRange = errors.New("page out of range")

// Reader reads positioned text lines from a PDF file
type Reader struct {
	file    io.Closer
	pdf     *pdf.Reader
	builder *text.LineBuilder
}

// Open opens a PDF file and returns a Reader with default line building
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, text.DefaultLineConfig())
}

// OpenWithConfig opens a PDF file, grouping glyphs into lines with config
func OpenWithConfig(filename string, config text.LineConfig) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r, err := NewReader(file, info.Size(), config)
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file
	return r, nil
}

// NewReader reads a PDF from ra. The caller keeps ownership of ra.
func NewReader(ra io.ReaderAt, size int64, config text.LineConfig) (r *Reader, err error) {
	// the pdf package panics on some malformed trailers
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("failed to parse PDF: %v", rec)
		}
	}()

	p, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return &Reader{pdf: p, builder: text.NewLineBuilderWithConfig(config)}, nil
}

// Close closes the underlying file when the Reader opened it
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// PageSize returns the MediaBox dimensions of page n (1-indexed)
func (r *Reader) PageSize(n int) (width, height float64, err error) {
	page, err := r.page(n)
	if err != nil {
		return 0, 0, err
	}
	width, height = mediaBox(page)
	return width, height, nil
}

// Words returns the glyph boxes of page n (1-indexed) in top-down
// coordinates.
func (r *Reader) Words(n int) (words []text.Word, err error) {
	page, err := r.page(n)
	if err != nil {
		return nil, err
	}

	// malformed content streams panic inside the pdf package
	defer func() {
		if rec := recover(); rec != nil {
			words = nil
			err = fmt.Errorf("failed to read content of page %d: %v", n, rec)
		}
	}()

	_, height := mediaBox(page)
	return toWords(page.Content().Text, height), nil
}

// Lines returns the text lines of page n (1-indexed)
func (r *Reader) Lines(n int) ([]model.TextLine, error) {
	words, err := r.Words(n)
	if err != nil {
		return nil, err
	}
	return r.builder.Build(n, words), nil
}

// Document reads every page into a sequenced document. Pages that fail to
// read are kept empty and their errors joined into the returned error.
func (r *Reader) Document(name string) (*model.Document, error) {
	doc := &model.Document{Name: name}
	var errs []error
	for n := 1; n <= r.PageCount(); n++ {
		lines, err := r.Lines(n)
		if err != nil {
			errs = append(errs, err)
		}
		doc.AddPage(lines)
	}
	doc.Sequence()
	return doc, errors.Join(errs...)
}

func (r *Reader) page(n int) (pdf.Page, error) {
	if n < 1 || n > r.pdf.NumPage() {
		return pdf.Page{}, fmt.Errorf("%w: page %d of %d", ErrPageRange, n, r.pdf.NumPage())
	}
	page := r.pdf.Page(n)
	if page.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("invalid page %d", n)
	}
	return page, nil
}

func mediaBox(page pdf.Page) (width, height float64) {
	box := page.V.Key("MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return defaultPageWidth, defaultPageHeight
	}
	width = box.Index(2).Float64() - box.Index(0).Float64()
	height = box.Index(3).Float64() - box.Index(1).Float64()
	if width <= 0 || height <= 0 {
		return defaultPageWidth, defaultPageHeight
	}
	return width, height
}

// toWords converts baseline-anchored, bottom-up glyphs into top-down
// boxes. Whitespace glyphs are dropped; gaps carry the spacing.
func toWords(glyphs []pdf.Text, pageHeight float64) []text.Word {
	words := make([]text.Word, 0, len(glyphs))
	for _, g := range glyphs {
		if strings.TrimSpace(g.S) == "" {
			continue
		}
		words = append(words, text.Word{
			Text:     g.S,
			X:        g.X,
			Y:        pageHeight - (g.Y + g.FontSize*ascent),
			Width:    g.W,
			Height:   g.FontSize,
			FontSize: g.FontSize,
			Bold:     isBoldFont(g.Font),
		})
	}
	return words
}

func isBoldFont(name string) bool {
	name = strings.ToLower(name)
	return strings.Contains(name, "bold") || strings.Contains(name, "black") || strings.Contains(name, "heavy")
}
