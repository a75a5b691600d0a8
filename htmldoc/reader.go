// Package htmldoc reads the word boxes of pdftotext -bbox and -bbox-layout
// XHTML output.
//
// Each <page> element becomes one page; every <word> inside it, whatever
// its enclosing flow, block or line, contributes a box built from its
// xMin, yMin, xMax and yMax attributes. The words are regrouped into lines
// by position, so table rows that pdftotext split across blocks come back
// together:
//
//	r, err := htmldoc.Open("paper.html")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc := r.Document("paper.pdf")
package htmldoc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/papertab/model"
	"github.com/tsawler/papertab/text"
)

var (
	// ErrNoPages is returned when the input holds no <page> elements
	ErrNoPages = errors.New("no bbox pages found")

	// ErrPageRange is returned for a page number outside the document
	ErrPageRange = errors.New("page out of range")
)

type page struct {
	width, height float64
	words         []text.Word
}

// Reader provides access to the pages of a bbox document.
type Reader struct {
	title    string
	metadata map[string]string
	pages    []page
	builder  *text.LineBuilder
}

// Open opens a bbox XHTML file for reading.
func Open(filename string) (*Reader, error) {
	return OpenWithConfig(filename, text.DefaultLineConfig())
}

// OpenWithConfig opens a bbox XHTML file, grouping words into lines with
// config.
func OpenWithConfig(filename string, config text.LineConfig) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReaderWithConfig(f, config)
}

// OpenReader parses bbox XHTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	return OpenReaderWithConfig(r, text.DefaultLineConfig())
}

// OpenReaderWithConfig parses bbox XHTML, grouping words into lines with
// config.
func OpenReaderWithConfig(r io.Reader, config text.LineConfig) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{
		metadata: make(map[string]string),
		builder:  text.NewLineBuilderWithConfig(config),
	}
	reader.extractHead(doc)
	reader.extractPages(doc)

	if len(reader.pages) == 0 {
		return nil, ErrNoPages
	}
	return reader, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	return nil
}

// Title returns the document title, usually the source file name.
func (r *Reader) Title() string {
	return r.title
}

// Metadata returns the name/content pairs of the head's meta tags.
func (r *Reader) Metadata() map[string]string {
	return r.metadata
}

// PageCount returns the number of pages.
func (r *Reader) PageCount() int {
	return len(r.pages)
}

// PageSize returns the width and height of page n (1-indexed).
func (r *Reader) PageSize(n int) (width, height float64, err error) {
	p, err := r.page(n)
	if err != nil {
		return 0, 0, err
	}
	return p.width, p.height, nil
}

// Words returns the word boxes of page n (1-indexed).
func (r *Reader) Words(n int) ([]text.Word, error) {
	p, err := r.page(n)
	if err != nil {
		return nil, err
	}
	return p.words, nil
}

// Lines returns the text lines of page n (1-indexed).
func (r *Reader) Lines(n int) ([]model.TextLine, error) {
	p, err := r.page(n)
	if err != nil {
		return nil, err
	}
	return r.builder.Build(n, p.words), nil
}

// Document returns every page as a sequenced document.
func (r *Reader) Document(name string) *model.Document {
	doc := &model.Document{Name: name}
	for n := range r.pages {
		doc.AddPage(r.builder.Build(n+1, r.pages[n].words))
	}
	doc.Sequence()
	return doc
}

func (r *Reader) page(n int) (*page, error) {
	if n < 1 || n > len(r.pages) {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageRange, n, len(r.pages))
	}
	return &r.pages[n-1], nil
}

// extractHead extracts title and meta tags from the head element.
func (r *Reader) extractHead(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "head" {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "title":
				r.title = getTextContent(c)
			case "meta":
				name, content := getAttr(c, "name"), getAttr(c, "content")
				if name != "" && content != "" {
					r.metadata[name] = content
				}
			}
		}
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractHead(c)
	}
}

// extractPages collects the words of every page element in document order.
func (r *Reader) extractPages(n *html.Node) {
	if n.Type == html.ElementNode && n.Data == "page" {
		p := page{
			width:  getFloatAttr(n, "width"),
			height: getFloatAttr(n, "height"),
		}
		collectWords(n, &p.words)
		r.pages = append(r.pages, p)
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.extractPages(c)
	}
}

func collectWords(n *html.Node, words *[]text.Word) {
	if n.Type == html.ElementNode && n.Data == "word" {
		s := getTextContent(n)
		if s == "" {
			return
		}
		x0, y0 := getFloatAttr(n, "xmin"), getFloatAttr(n, "ymin")
		x1, y1 := getFloatAttr(n, "xmax"), getFloatAttr(n, "ymax")
		*words = append(*words, text.Word{
			Text:     s,
			X:        x0,
			Y:        y0,
			Width:    x1 - x0,
			Height:   y1 - y0,
			FontSize: y1 - y0,
		})
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectWords(c, words)
	}
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var result strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			result.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(result.String())
}

// getAttr returns the value of an attribute on a node, or empty string if
// not found. The parser lowercases attribute names.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func getFloatAttr(n *html.Node, key string) float64 {
	v, err := strconv.ParseFloat(getAttr(n, key), 64)
	if err != nil {
		return 0
	}
	return v
}
