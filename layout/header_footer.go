package layout

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/papertab/model"
)

var digitRun = regexp.MustCompile(`\d+`)

// RegionType indicates whether a running line sits at the top or bottom of pages
type RegionType int

const (
	Header RegionType = iota
	Footer
)

func (r RegionType) String() string {
	if r == Header {
		return "header"
	}
	return "footer"
}

// RunningLine is text repeated at the top or bottom of many pages, such as
// a journal name or a page number.
type RunningLine struct {
	Type RegionType

	// Text is the representative text, "[Page Number]" for page numbers
	Text string

	IsPageNumber bool

	// Confidence is the detection confidence (0.0 to 1.0)
	Confidence float64

	// Pages lists the page numbers carrying this line
	Pages []int

	normalized string
}

// HeaderFooterConfig holds configuration for running header/footer detection
type HeaderFooterConfig struct {
	// ZoneLines is how many non-blank lines at each end of a page are
	// inspected.
	// Default: 2
	ZoneLines int `mapstructure:"zone_lines" yaml:"zone_lines" toml:"zone_lines"`

	// MinOccurrenceRatio is the minimum fraction of pages a line must
	// appear on (0.0 to 1.0)
	// Default: 0.5
	MinOccurrenceRatio float64 `mapstructure:"min_occurrence_ratio" yaml:"min_occurrence_ratio" toml:"min_occurrence_ratio"`

	// MinPages is the minimum number of pages required for detection
	// Default: 2
	MinPages int `mapstructure:"min_pages" yaml:"min_pages" toml:"min_pages"`
}

// DefaultHeaderFooterConfig returns sensible default configuration
func DefaultHeaderFooterConfig() HeaderFooterConfig {
	return HeaderFooterConfig{
		ZoneLines:          2,
		MinOccurrenceRatio: 0.5,
		MinPages:           2,
	}
}

// HeaderFooterDetector finds running headers and footers across pages.
// Removing them before table detection keeps page furniture out of the
// gap between two halves of a table split by a page break.
type HeaderFooterDetector struct {
	config HeaderFooterConfig
}

// NewHeaderFooterDetector creates a new detector with default configuration
func NewHeaderFooterDetector() *HeaderFooterDetector {
	return &HeaderFooterDetector{config: DefaultHeaderFooterConfig()}
}

// NewHeaderFooterDetectorWithConfig creates a detector with custom configuration
func NewHeaderFooterDetectorWithConfig(config HeaderFooterConfig) *HeaderFooterDetector {
	return &HeaderFooterDetector{config: config}
}

// HeaderFooterResult contains the detection results
type HeaderFooterResult struct {
	Headers []RunningLine
	Footers []RunningLine
}

// zoneLine is one line found in a page's header or footer zone
type zoneLine struct {
	page int
	text string
}

// Detect analyzes the pages of a document to find running lines
func (d *HeaderFooterDetector) Detect(pages []model.Page) *HeaderFooterResult {
	result := &HeaderFooterResult{}
	if len(pages) < d.config.MinPages || len(pages) == 0 {
		return result
	}

	result.Headers = d.findRepeating(d.zone(pages, Header), len(pages), Header)
	result.Footers = d.findRepeating(d.zone(pages, Footer), len(pages), Footer)
	return result
}

func (d *HeaderFooterDetector) zone(pages []model.Page, region RegionType) []zoneLine {
	var out []zoneLine
	for _, p := range pages {
		for _, idx := range zoneIndices(p.Lines, d.config.ZoneLines, region) {
			out = append(out, zoneLine{page: p.Number, text: p.Lines[idx].Trimmed()})
		}
	}
	return out
}

// zoneIndices returns the indices of the first (header) or last (footer)
// n non-blank lines.
func zoneIndices(lines []model.TextLine, n int, region RegionType) []int {
	var idx []int
	if region == Header {
		for i := 0; i < len(lines) && len(idx) < n; i++ {
			if !lines[i].IsBlank() {
				idx = append(idx, i)
			}
		}
		return idx
	}
	for i := len(lines) - 1; i >= 0 && len(idx) < n; i-- {
		if !lines[i].IsBlank() {
			idx = append(idx, i)
		}
	}
	return idx
}

func (d *HeaderFooterDetector) findRepeating(lines []zoneLine, totalPages int, region RegionType) []RunningLine {
	if len(lines) == 0 {
		return nil
	}

	groups := make(map[string][]zoneLine)
	for _, l := range lines {
		key := normalizeForComparison(l.text)
		groups[key] = append(groups[key], l)
	}

	minOccurrences := int(float64(totalPages) * d.config.MinOccurrenceRatio)
	if minOccurrences < 2 {
		minOccurrences = 2
	}

	var found []RunningLine
	for normalized, group := range groups {
		// Very short text that isn't a page number is likely a fragment
		if len(normalized) <= 2 && !isPageNumberPattern(normalized) {
			continue
		}

		pageSet := make(map[int]bool)
		for _, l := range group {
			pageSet[l.page] = true
		}
		if len(pageSet) < minOccurrences {
			continue
		}

		isPageNum := isPageNumberPattern(normalized) || containsPageNumberPattern(group)
		text := group[0].text
		if isPageNum {
			text = "[Page Number]"
		}

		pageNumbers := make([]int, 0, len(pageSet))
		for p := range pageSet {
			pageNumbers = append(pageNumbers, p)
		}
		sort.Ints(pageNumbers)

		confidence := float64(len(pageSet)) / float64(totalPages)
		if confidence > 1 {
			confidence = 1
		}

		found = append(found, RunningLine{
			Type:         region,
			Text:         text,
			IsPageNumber: isPageNum,
			Confidence:   confidence,
			Pages:        pageNumbers,
			normalized:   normalized,
		})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].Confidence != found[j].Confidence {
			return found[i].Confidence > found[j].Confidence
		}
		return found[i].Text < found[j].Text
	})
	return found
}

// normalizeForComparison replaces digit runs so numbered lines compare equal
func normalizeForComparison(text string) string {
	return digitRun.ReplaceAllString(strings.TrimSpace(text), "#")
}

// isPageNumberPattern checks if normalized text looks like a page number
func isPageNumberPattern(normalizedText string) bool {
	patterns := []string{
		"#",           // Just a number
		"Page #",      // "Page 1"
		"- # -",       // "- 1 -"
		"# of #",      // "1 of 10"
		"Page # of #", // "Page 1 of 10"
		"#/#",         // "1/10"
		"p. #",        // "p. 1"
		"p.#",         // "p.1"
		"pg #",        // "pg 1"
		"pg. #",       // "pg. 1"
	}

	trimmed := strings.TrimSpace(normalizedText)
	for _, pattern := range patterns {
		if strings.EqualFold(trimmed, pattern) {
			return true
		}
	}
	return false
}

// containsPageNumberPattern reports whether the numbers in a group of lines
// mostly form a sequence.
func containsPageNumberPattern(group []zoneLine) bool {
	if len(group) < 2 {
		return false
	}

	var numbers []int
	for _, l := range group {
		for _, m := range digitRun.FindAllString(l.text, -1) {
			if n, err := strconv.Atoi(m); err == nil {
				numbers = append(numbers, n)
			}
		}
	}
	if len(numbers) < 2 {
		return false
	}

	sort.Ints(numbers)
	sequential := 0
	for i := 1; i < len(numbers); i++ {
		if numbers[i]-numbers[i-1] == 1 {
			sequential++
		}
	}
	return sequential >= len(numbers)/2
}

// Filter returns the page's lines without its running headers and footers.
// Only lines inside the header and footer zones are candidates for removal.
func (r *HeaderFooterResult) Filter(page model.Page, zoneLines int) []model.TextLine {
	if r == nil || !r.HasHeadersOrFooters() {
		return page.Lines
	}

	drop := make(map[int]bool)
	mark := func(region RegionType, running []RunningLine) {
		for _, idx := range zoneIndices(page.Lines, zoneLines, region) {
			if matchesAny(page.Lines[idx].Trimmed(), page.Number, running) {
				drop[idx] = true
			}
		}
	}
	mark(Header, r.Headers)
	mark(Footer, r.Footers)

	if len(drop) == 0 {
		return page.Lines
	}
	out := make([]model.TextLine, 0, len(page.Lines)-len(drop))
	for i, l := range page.Lines {
		if !drop[i] {
			out = append(out, l)
		}
	}
	return out
}

func matchesAny(text string, page int, running []RunningLine) bool {
	normalized := normalizeForComparison(text)
	for _, rl := range running {
		if !containsPage(rl.Pages, page) {
			continue
		}
		if rl.IsPageNumber && isPageNumberPattern(normalized) {
			return true
		}
		if normalized == rl.normalized {
			return true
		}
	}
	return false
}

// containsPage checks if a page number is in the list
func containsPage(pages []int, page int) bool {
	for _, p := range pages {
		if p == page {
			return true
		}
	}
	return false
}

// HasHeaders returns true if any headers were detected
func (r *HeaderFooterResult) HasHeaders() bool {
	return r != nil && len(r.Headers) > 0
}

// HasFooters returns true if any footers were detected
func (r *HeaderFooterResult) HasFooters() bool {
	return r != nil && len(r.Footers) > 0
}

// HasHeadersOrFooters returns true if any headers or footers were detected
func (r *HeaderFooterResult) HasHeadersOrFooters() bool {
	return r.HasHeaders() || r.HasFooters()
}

// Summary returns a human-readable summary of detection results
func (r *HeaderFooterResult) Summary() string {
	if r == nil || !r.HasHeadersOrFooters() {
		return "No headers or footers detected"
	}

	var parts []string
	if len(r.Headers) > 0 {
		texts := make([]string, len(r.Headers))
		for i, h := range r.Headers {
			texts[i] = h.Text
		}
		parts = append(parts, "Headers: "+strings.Join(texts, ", "))
	}
	if len(r.Footers) > 0 {
		texts := make([]string, len(r.Footers))
		for i, f := range r.Footers {
			texts[i] = f.Text
		}
		parts = append(parts, "Footers: "+strings.Join(texts, ", "))
	}
	return strings.Join(parts, "; ")
}
