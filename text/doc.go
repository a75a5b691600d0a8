// Package text turns extracted page text into [model.TextLine] values with
// character-column token positions.
//
// # Layout Text
//
// Output of pdftotext -layout already places words at character columns.
// [SplitPages] cuts it at form feeds and [Lines] tokenizes one page:
//
//	for i, page := range text.SplitPages(raw) {
//	    lines := text.Lines(i+1, page)
//	    ...
//	}
//
// [Parse] does both and returns a sequenced document.
//
// # Positioned Words
//
// Sources that report word or glyph boxes (PDF content, bbox XHTML, OCR)
// go through a [LineBuilder]. Words whose tops agree within LineTolerance
// of the word height share a line. Fragments closer than JoinGap columns
// join into one token, so glyph-level input yields whole words. Positions
// are divided by the character width, estimated as the median width per
// rune when not configured:
//
//	builder := text.NewLineBuilder()
//	lines := builder.Build(pageNum, words)
//
// # Normalization
//
// [Normalize] removes control and format runes, applies NFKC and narrows
// full-width forms, so that one rune occupies one column. Right-to-left
// tokens are detected with [DetectDirection] and put back in reading order.
package text
