package text

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// DefaultTabWidth is the tab stop interval of pdftotext -layout output
const DefaultTabWidth = 8

// stray reports runes that carry no visible column: control characters
// other than tab, newline and form feed, and format characters such as soft
// hyphens and zero-width spaces.
func stray(r rune) bool {
	switch r {
	case '\t', '\n', '\f':
		return false
	}
	return unicode.IsControl(r) || unicode.Is(unicode.Cf, r)
}

// Normalize folds extracted text into the form column analysis expects.
// Stray control and format runes are removed, compatibility forms are
// composed (ligatures such as "ﬁ" become "fi", no-break spaces become
// spaces) and full-width forms are narrowed so each rune fills one column.
func Normalize(s string) string {
	t := transform.Chain(
		runes.Remove(runes.Predicate(stray)),
		norm.NFKC,
		width.Narrow,
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ExpandTabs replaces each tab with spaces up to the next multiple of
// tabWidth. A tabWidth below 1 uses DefaultTabWidth.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	if tabWidth < 1 {
		tabWidth = DefaultTabWidth
	}

	var sb strings.Builder
	sb.Grow(len(line) + tabWidth)
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}

// Columns returns the number of character columns s occupies
func Columns(s string) int {
	return utf8.RuneCountInString(s)
}
