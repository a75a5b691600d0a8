// Package ocr recognises text lines on scanned pages.
//
// Recognition wraps the Tesseract OCR engine via gosseract and is compiled
// only with the "ocr" build tag:
//
//	go build -tags ocr
//
// This requires Tesseract to be installed. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// Without the tag every [Client] operation returns [ErrOCRNotEnabled].
//
// Tesseract reports one pixel rectangle per word. [ToWords] drops words
// below a confidence floor and the client regroups the rest into lines with
// a [text.LineBuilder]. [Inspect] reads the dimensions of a scan (PNG,
// JPEG, GIF, TIFF, BMP or WebP) without decoding its pixels, and works
// with or without the tag.
package ocr
