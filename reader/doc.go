// Package reader reads positioned text lines from PDF files.
//
// Page content is decoded with github.com/ledongthuc/pdf, which reports one
// box per glyph with a bottom-up baseline. The reader flips each glyph to a
// top-down box and hands the page to a [text.LineBuilder], which joins
// glyphs into tokens and maps them to character columns.
//
// # Opening PDF Files
//
//	r, err := reader.Open("paper.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with any io.ReaderAt.
//
// # Pages
//
// Pages are 1-indexed:
//
//   - PageCount() - number of pages
//   - PageSize(n) - MediaBox width and height
//   - Words(n) - glyph boxes in top-down coordinates
//   - Lines(n) - text lines ready for table detection
//   - Document(name) - every page, sequenced
//
// A page whose content stream cannot be decoded returns an error rather
// than aborting the document; [Reader.Document] keeps it as an empty page.
package reader
