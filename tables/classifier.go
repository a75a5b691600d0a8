package tables

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
)

var (
	bracketRef = regexp.MustCompile(`^\[\d+(?:\s*[,–-]\s*\d+)*\]$`)
	yearRef    = regexp.MustCompile(`^\(?(?:19|20)\d{2}[a-z]?\)?[,;]?$`)
	codeToken  = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_+./'-]*$`)
)

const separatorMarks = "-|=+_:─━–—"

// maxCellWords is the longest word run a multi-space segment may hold
// before it reads as running text
const maxCellWords = 5

// features is the evidence a rule sees for one line
type features struct {
	line    model.TextLine
	splits  []layout.Split
	prevTag model.Tag
	config  Config
}

// rule is one entry of the ordered classification table. match returns the
// rule's confidence and the boundaries the line contributes.
type rule struct {
	tag   model.Tag
	match func(f *features) (weight float64, boundaries []float64, ok bool)
}

// classificationRules is evaluated top to bottom; the first match wins.
var classificationRules = []rule{
	{model.TagCitationNumeric, matchCitationNumeric},
	{model.TagSeparator, matchSeparator},
	{model.TagHeaderLike, matchHeaderLike},
	{model.TagMultiSpace, matchMultiSpace},
	{model.TagNarrative, matchNarrative},
	{model.TagBlank, matchBlank},
}

// Classifier labels lines with their structural role.
type Classifier struct {
	config   Config
	analyzer *layout.Analyzer
	rules    []rule
}

// NewClassifier creates a classifier with default configuration
func NewClassifier() *Classifier {
	return NewClassifierWithConfig(DefaultConfig())
}

// NewClassifierWithConfig creates a classifier with custom configuration
func NewClassifierWithConfig(config Config) *Classifier {
	return &Classifier{
		config:   config,
		analyzer: layout.NewAnalyzerWithConfig(config.Layout),
		rules:    classificationRules,
	}
}

// Classify tags every line of a page. The first pass applies the rule table
// in line order; the second revises tags that depend on neighbouring lines.
func (c *Classifier) Classify(lines []model.TextLine) []model.ClassifiedLine {
	splits := c.analyzer.Analyze(lines)

	out := make([]model.ClassifiedLine, len(lines))
	prev := model.TagBlank
	for i, line := range lines {
		out[i] = c.ClassifyLine(line, splits[i], prev)
		prev = out[i].Tag
	}

	c.revise(out)
	return out
}

// ClassifyLine applies the rule table to a single line given its analysed
// splits and the tag of the line before it. Table titles are narrative and
// carry their parsed caption.
func (c *Classifier) ClassifyLine(line model.TextLine, splits []layout.Split, prev model.Tag) model.ClassifiedLine {
	if caption, ok := ParseCaption(line.Text); ok {
		return model.ClassifiedLine{Line: line, Tag: model.TagNarrative, Weight: 0.9, Caption: &caption}
	}

	f := &features{line: line, splits: splits, prevTag: prev, config: c.config}
	for _, r := range c.rules {
		if weight, bounds, ok := r.match(f); ok {
			return model.ClassifiedLine{Line: line, Tag: r.tag, Weight: weight, Boundaries: bounds}
		}
	}
	return model.ClassifiedLine{Line: line, Tag: model.TagNarrative, Weight: 0.3}
}

// revise demotes header-like and multi-space lines that have no qualifying
// line among their ContextWindow non-blank neighbours. Tags are read from
// the first-pass snapshot so the outcome does not depend on scan order.
func (c *Classifier) revise(lines []model.ClassifiedLine) {
	window := c.config.ContextWindow
	if window == 0 {
		return
	}

	first := make([]model.Tag, len(lines))
	for i := range lines {
		first[i] = lines[i].Tag
	}

	for i := range lines {
		if first[i] != model.TagHeaderLike && first[i] != model.TagMultiSpace {
			continue
		}
		if hasQualifyingNeighbour(lines, first, i, window) {
			continue
		}

		lines[i].Tag = model.TagNarrative
		lines[i].Weight = 0.4
		lines[i].Boundaries = nil

		if first[i] == model.TagHeaderLike && i+1 < len(lines) &&
			first[i+1] == model.TagSeparator && lines[i+1].Line.IsBlank() {
			lines[i+1].Tag = model.TagBlank
			lines[i+1].Weight = 1
		}
	}
}

func hasQualifyingNeighbour(lines []model.ClassifiedLine, tags []model.Tag, i, window int) bool {
	for j, seen := i-1, 0; j >= 0 && seen < window; j-- {
		if lines[j].Line.IsBlank() {
			continue
		}
		if tags[j].Qualifying() {
			return true
		}
		seen++
	}
	for j, seen := i+1, 0; j < len(lines) && seen < window; j++ {
		if lines[j].Line.IsBlank() {
			continue
		}
		if tags[j].Qualifying() {
			return true
		}
		seen++
	}
	return false
}

// matchCitationNumeric accepts a short reference or method label followed
// by a trailing run of at least two numeric values.
func matchCitationNumeric(f *features) (float64, []float64, bool) {
	toks := f.line.Tokens
	if len(toks) < 3 {
		return 0, nil, false
	}

	start, values := trailingValues(toks)
	// A bracketed reference also parses as a number; it is the label.
	if start == 0 && bracketRef.MatchString(toks[0].Text) {
		start, values = 1, values[1:]
	}
	if start == 0 || start > f.config.MaxLabelTokens || len(values) < 2 {
		return 0, nil, false
	}

	numbers := 0
	for i, v := range values {
		end := len(toks)
		if i+1 < len(values) {
			end = values[i+1]
		}
		if model.IsNumeric(joinTokens(toks[v:end])) {
			numbers++
		}
	}
	if numbers < 2 {
		return 0, nil, false
	}

	label := toks[:start]
	weight, ok := labelWeight(label)
	if !ok {
		return 0, nil, false
	}

	var bounds []float64
	for _, s := range f.splits {
		if s.Pos < toks[start].Start {
			bounds = append(bounds, s.Pos)
		}
	}
	for _, v := range values {
		bounds = append(bounds, toks[v].Start)
	}
	return weight, bounds, true
}

// trailingValues scans the numeric run at the end of a line. It returns the
// index of the run's first token and the first token index of each value.
// A mean and its spread is one value however it is spaced: "76.1 ± 0.2",
// "76.1 ±0.2", "76.1± 0.2" or "76.1±0.2".
func trailingValues(toks []model.Token) (int, []int) {
	var starts []int
	i := len(toks)
	for i > 0 {
		t := toks[i-1].Text
		if !model.IsNumeric(t) && !model.IsPlaceholder(t) {
			break
		}

		j := i - 1
		switch {
		case j >= 2 && isPlusMinus(toks[j-1].Text) && model.IsNumeric(toks[j-2].Text):
			j -= 2
		case j >= 1 && strings.HasPrefix(t, "±") && model.IsNumeric(toks[j-1].Text):
			j--
		case j >= 1 && strings.HasSuffix(toks[j-1].Text, "±") &&
			model.IsNumeric(strings.TrimSuffix(toks[j-1].Text, "±")):
			j--
		}
		starts = append(starts, j)
		i = j
	}

	for l, r := 0, len(starts)-1; l < r; l, r = l+1, r-1 {
		starts[l], starts[r] = starts[r], starts[l]
	}
	return i, starts
}

func isPlusMinus(s string) bool {
	return s == "±" || s == "+/-"
}

func joinTokens(toks []model.Token) string {
	words := make([]string, len(toks))
	for i, t := range toks {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// labelWeight scores a citation-row label. References are the strongest
// signal; a bare method name or code is accepted with less confidence.
func labelWeight(label []model.Token) (float64, bool) {
	last := label[len(label)-1].Text
	if strings.HasSuffix(last, ".") && last != "al." {
		return 0, false
	}
	for _, t := range label {
		if bracketRef.MatchString(t.Text) || yearRef.MatchString(t.Text) || t.Text == "al." {
			return 0.95, true
		}
	}
	if codeToken.MatchString(label[0].Text) {
		return 0.85, true
	}
	return 0, false
}

func matchSeparator(f *features) (float64, []float64, bool) {
	if f.line.IsBlank() {
		if f.prevTag == model.TagHeaderLike {
			return 0.6, nil, true
		}
		return 0, nil, false
	}

	marks := 0
	for _, r := range f.line.Text {
		switch {
		case unicode.IsSpace(r):
		case strings.ContainsRune(separatorMarks, r):
			marks++
		default:
			return 0, nil, false
		}
	}
	if marks < 3 {
		return 0, nil, false
	}
	return 0.95, nil, true
}

// matchHeaderLike accepts rows of short capitalised labels separated by at
// least two whitespace splits.
func matchHeaderLike(f *features) (float64, []float64, bool) {
	if len(f.splits) < 2 {
		return 0, nil, false
	}

	for _, seg := range segmentTokens(f.line.Tokens, f.splits) {
		if len(seg) > 3 || sentenceLike(seg) || !capitalised(seg[0].Text) {
			return 0, nil, false
		}
	}
	return 0.75, layout.Positions(f.splits), true
}

// matchMultiSpace accepts lines with a strong whitespace split unless they
// read as columns of running text: no numeric cell and at least half of the
// segments long word runs or sentence ends.
func matchMultiSpace(f *features) (float64, []float64, bool) {
	strong := layout.StrongCount(f.splits)
	if strong == 0 {
		return 0, nil, false
	}
	if proseColumns(segmentTokens(f.line.Tokens, f.splits)) {
		return 0, nil, false
	}
	weight := 0.5 + 0.1*float64(strong)
	if weight > 0.9 {
		weight = 0.9
	}
	return weight, layout.Positions(f.splits), true
}

func matchNarrative(f *features) (float64, []float64, bool) {
	if f.line.IsBlank() {
		return 0, nil, false
	}
	text := f.line.Trimmed()
	last, _ := utf8.DecodeLastRuneInString(text)
	terminal := last == '.' || last == '!' || last == '?'
	switch {
	case terminal && utf8.RuneCountInString(text) >= 40:
		return 0.9, nil, true
	case terminal:
		return 0.6, nil, true
	default:
		return 0.4, nil, true
	}
}

func matchBlank(f *features) (float64, []float64, bool) {
	return 1, nil, f.line.IsBlank()
}

// segmentTokens groups tokens into the pieces delimited by splits
func segmentTokens(tokens []model.Token, splits []layout.Split) [][]model.Token {
	var segs [][]model.Token
	var cur []model.Token
	for _, t := range tokens {
		if len(cur) > 0 && splitAt(splits, t.Start) {
			segs = append(segs, cur)
			cur = nil
		}
		cur = append(cur, t)
	}
	if len(cur) > 0 {
		segs = append(segs, cur)
	}
	return segs
}

func splitAt(splits []layout.Split, pos float64) bool {
	for _, s := range splits {
		if s.Pos == pos {
			return true
		}
	}
	return false
}

func proseColumns(segs [][]model.Token) bool {
	prose := 0
	for _, seg := range segs {
		if numericCell(seg) {
			return false
		}
		if len(seg) > maxCellWords || sentenceLike(seg) {
			prose++
		}
	}
	return prose > 0 && 2*prose >= len(segs)
}

// numericCell reports whether every token of a segment is a value
func numericCell(seg []model.Token) bool {
	for _, t := range seg {
		if !model.IsNumeric(t.Text) && !model.IsPlaceholder(t.Text) && !isPlusMinus(t.Text) {
			return false
		}
	}
	return true
}

func sentenceLike(seg []model.Token) bool {
	last := seg[len(seg)-1].Text
	if strings.HasSuffix(last, "!") || strings.HasSuffix(last, "?") {
		return true
	}
	return len(seg) > 1 && strings.HasSuffix(last, ".")
}

// capitalised reports whether the first letter or digit of s is upper-case
// or numeric.
func capitalised(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) || unicode.IsUpper(r) {
			return true
		}
		if unicode.IsLetter(r) {
			return false
		}
	}
	return false
}
