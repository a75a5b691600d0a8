// Package format provides input format detection for papertab.
package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupported is returned for inputs no line source can read
var ErrUnsupported = errors.New("unsupported input format")

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Text indicates pdftotext -layout output, pages separated by form feeds.
	Text
	// HTML indicates pdftotext -bbox or -bbox-layout XHTML.
	HTML
	// Image indicates a scanned page (PNG, JPEG, TIFF, ...).
	Image
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Text:
		return "Text"
	case HTML:
		return "HTML"
	case Image:
		return "Image"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case Text:
		return ".txt"
	case HTML:
		return ".html"
	case Image:
		return ".png"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".txt", ".text":
		return Text
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".gif", ".webp":
		return Image
	default:
		return Unknown
	}
}

var imageMagic = [][]byte{
	[]byte("\x89PNG\r\n\x1a\n"),
	{0xFF, 0xD8, 0xFF},
	[]byte("II*\x00"),
	[]byte("MM\x00*"),
	[]byte("GIF87a"),
	[]byte("GIF89a"),
	[]byte("BM"),
}

// DetectFromMagic checks leading bytes to determine format. Data that is
// valid UTF-8 without NUL bytes and matches nothing else is Text.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	for _, magic := range imageMagic {
		if bytes.HasPrefix(data, magic) {
			return Image
		}
	}
	if len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return Image
	}
	if detectHTMLMagic(data) {
		return HTML
	}
	if looksLikeText(data) {
		return Text
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	upper := strings.ToUpper(string(bytes.TrimLeft(data, " \t\r\n")))
	if strings.HasPrefix(upper, "<!DOCTYPE HTML") || strings.HasPrefix(upper, "<HTML") {
		return true
	}
	// XML declaration followed by html-like content could be XHTML
	return strings.HasPrefix(upper, "<?XML") && strings.Contains(upper[:min(512, len(upper))], "<HTML")
}

// looksLikeText reports UTF-8 data without NUL bytes. A rune cut off at the
// end of the sample is ignored.
func looksLikeText(data []byte) bool {
	if bytes.IndexByte(data, 0) >= 0 {
		return false
	}
	for i := 0; i < utf8.UTFMax && len(data) > 0; i++ {
		if utf8.Valid(data) {
			return true
		}
		data = data[:len(data)-1]
	}
	return false
}

// DetectFromReader inspects the first bytes of r to determine format.
func DetectFromReader(r io.Reader) (Format, error) {
	magic := make([]byte, 512)
	n, err := io.ReadFull(r, magic)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// DetectFile determines the format of a file from its content, falling back
// to its extension. An undetermined format returns ErrUnsupported.
func DetectFile(filename string) (Format, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	format, err := DetectFromReader(f)
	if err != nil {
		return Unknown, fmt.Errorf("failed to read file: %w", err)
	}
	if ext := Detect(filename); format == Unknown || (format == Text && ext != Unknown) {
		format = ext
	}
	if format == Unknown {
		return Unknown, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(filename))
	}
	return format, nil
}
