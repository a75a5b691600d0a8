// Command papertab finds, reconstructs and scores tables in academic
// documents.
//
// Usage:
//
//	papertab detect paper.pdf                  # valid tables as markdown
//	papertab detect --format json paper.txt    # every table with its report
//	papertab stats corpus/                     # corpus summary
//	papertab config init                       # write papertab.toml
//
// Input may be a PDF, pdftotext -layout output, pdftotext -bbox XHTML or,
// when built with the ocr tag, a scanned page image.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
