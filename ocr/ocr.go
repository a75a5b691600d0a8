//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/papertab/model"
	"github.com/tsawler/papertab/text"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client  *gosseract.Client
	builder *text.LineBuilder

	// Words recognised with lower confidence (0-100) are dropped
	MinConfidence float64
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	return NewWithConfig(text.DefaultLineConfig())
}

// NewWithConfig creates an OCR client that groups recognised words into
// lines with config.
func NewWithConfig(config text.LineConfig) (*Client, error) {
	return &Client{
		client:        gosseract.NewClient(),
		builder:       text.NewLineBuilderWithConfig(config),
		MinConfidence: DefaultMinConfidence,
	}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Words returns the recognised word boxes of an image, in pixels.
func (c *Client) Words(imageData []byte) ([]text.Word, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	found, err := c.client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes := make([]Box, len(found))
	for i, b := range found {
		boxes[i] = Box{Rect: b.Box, Text: b.Word, Confidence: b.Confidence}
	}
	return ToWords(boxes, c.MinConfidence), nil
}

// RecognizeLines performs OCR on a scanned page and returns its text lines
func (c *Client) RecognizeLines(page int, imageData []byte) ([]model.TextLine, error) {
	words, err := c.Words(imageData)
	if err != nil {
		return nil, err
	}
	return c.builder.Build(page, words), nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g., "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(strings.Split(lang, "+")...)
}

// SetPageSegMode sets the page segmentation mode.
func (c *Client) SetPageSegMode(mode PageSegMode) error {
	return c.client.SetPageSegMode(gosseract.PageSegMode(mode))
}
