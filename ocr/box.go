package ocr

import (
	"image"
	"strings"

	"github.com/tsawler/papertab/text"
)

// DefaultMinConfidence drops words Tesseract is less than 30% sure of
const DefaultMinConfidence = 30.0

// PageSegMode represents page segmentation modes for OCR.
// These control how Tesseract analyzes the page layout.
type PageSegMode int

// Page segmentation modes, numbered as in Tesseract.
const (
	PSM_AUTO          PageSegMode = 3  // Fully automatic (default)
	PSM_SINGLE_COLUMN PageSegMode = 4  // Single column of variable sizes
	PSM_SINGLE_BLOCK  PageSegMode = 6  // Single uniform block of text
	PSM_SPARSE_TEXT   PageSegMode = 11 // Find as much text as possible
)

// Box is one recognised word and its pixel rectangle
type Box struct {
	Rect       image.Rectangle
	Text       string
	Confidence float64 // 0-100
}

// ToWords converts recognised boxes to positioned words, dropping empty
// words and those below minConfidence.
func ToWords(boxes []Box, minConfidence float64) []text.Word {
	words := make([]text.Word, 0, len(boxes))
	for _, b := range boxes {
		s := strings.TrimSpace(b.Text)
		if s == "" || b.Confidence < minConfidence {
			continue
		}
		words = append(words, text.Word{
			Text:     s,
			X:        float64(b.Rect.Min.X),
			Y:        float64(b.Rect.Min.Y),
			Width:    float64(b.Rect.Dx()),
			Height:   float64(b.Rect.Dy()),
			FontSize: float64(b.Rect.Dy()),
		})
	}
	return words
}
