package papertab

import (
	"fmt"
	"strings"
)

// WarningKind classifies a non-fatal problem found while processing
type WarningKind string

const (
	// WarningEmptyPage marks a page that produced no text lines
	WarningEmptyPage WarningKind = "empty_page"
	// WarningUnreadablePage marks a page whose content could not be decoded
	WarningUnreadablePage WarningKind = "unreadable_page"
	// WarningLowResolution marks a scan too coarse for reliable recognition
	WarningLowResolution WarningKind = "low_resolution"
	// WarningTableDefect marks a rendered table with structural defects
	WarningTableDefect WarningKind = "table_defect"
	// WarningTableSkipped marks an invalid table left out of the output
	WarningTableSkipped WarningKind = "table_skipped"
	// WarningDocumentFailed marks a corpus file that could not be processed
	WarningDocumentFailed WarningKind = "document_failed"
)

// Warning is a non-fatal issue encountered during processing. Warnings
// never stop extraction; they explain why output may be incomplete.
type Warning struct {
	Kind    WarningKind
	Source  string // File or document name, empty for single documents
	Page    int    // 1-indexed, 0 when not page specific
	Message string
}

// String formats the warning as "[source] page N: message"
func (w Warning) String() string {
	var sb strings.Builder
	if w.Source != "" {
		fmt.Fprintf(&sb, "[%s] ", w.Source)
	}
	if w.Page > 0 {
		fmt.Fprintf(&sb, "page %d: ", w.Page)
	}
	sb.WriteString(w.Message)
	return sb.String()
}

// FormatWarnings joins warnings one per line
func FormatWarnings(warnings []Warning) string {
	lines := make([]string, len(warnings))
	for i, w := range warnings {
		lines[i] = w.String()
	}
	return strings.Join(lines, "\n")
}
