package ocr

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Scans narrower than this are usually too coarse for reliable recognition
const minScanWidth = 1000

// ImageInfo describes a scanned page image
type ImageInfo struct {
	Format string // "png", "jpeg", "tiff", ...
	Width  int    // pixels
	Height int    // pixels
}

// LowResolution reports whether the scan is likely too coarse for OCR
func (i ImageInfo) LowResolution() bool {
	return i.Width < minScanWidth
}

// Inspect reads the format and dimensions of an image without decoding it
func Inspect(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("failed to read image header: %w", err)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
