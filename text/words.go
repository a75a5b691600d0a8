package text

import (
	"math"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/papertab/model"
)

// Word is a positioned run of text from a layout-aware source: a glyph, a
// word or a short phrase. X and Y are the top-left corner, with Y growing
// downwards. Sources whose Y axis points up flip it before building lines.
type Word struct {
	Text     string
	X, Y     float64
	Width    float64
	Height   float64
	FontSize float64
	Bold     bool
}

// LineConfig controls how positioned words become text lines
type LineConfig struct {
	// Fraction of the word height two tops may differ by on one line
	LineTolerance float64 `mapstructure:"line_tolerance" yaml:"line_tolerance" toml:"line_tolerance"`

	// Source units per character column, 0 to estimate from the words
	CharWidth float64 `mapstructure:"char_width" yaml:"char_width" toml:"char_width"`

	// Fragments closer than this many columns join into one token
	JoinGap float64 `mapstructure:"join_gap" yaml:"join_gap" toml:"join_gap"`
}

// DefaultLineConfig returns default configuration
func DefaultLineConfig() LineConfig {
	return LineConfig{
		LineTolerance: 0.5,
		JoinGap:       0.3,
	}
}

// LineBuilder groups positioned words into character-column text lines
type LineBuilder struct {
	config LineConfig
}

// NewLineBuilder creates a line builder with default configuration
func NewLineBuilder() *LineBuilder {
	return NewLineBuilderWithConfig(DefaultLineConfig())
}

// NewLineBuilderWithConfig creates a line builder with custom configuration
func NewLineBuilderWithConfig(config LineConfig) *LineBuilder {
	return &LineBuilder{config: config}
}

// Build groups words into lines from top to bottom and converts horizontal
// positions to character columns measured from the leftmost word on the
// page. Word text is normalized first.
func (b *LineBuilder) Build(page int, words []Word) []model.TextLine {
	frags := explode(words)
	if len(frags) == 0 {
		return nil
	}

	charWidth := b.config.CharWidth
	if charWidth <= 0 {
		charWidth = EstimateCharWidth(frags)
	}
	origin := frags[0].X
	for _, f := range frags[1:] {
		origin = math.Min(origin, f.X)
	}

	groups := b.groupByLine(frags)
	lines := make([]model.TextLine, 0, len(groups))
	for i, group := range groups {
		lines = append(lines, b.buildLine(page, i, group, origin, charWidth))
	}
	return lines
}

// explode normalizes each word and splits words holding inner whitespace,
// sharing the word's width evenly across its runes.
func explode(words []Word) []Word {
	out := make([]Word, 0, len(words))
	for _, w := range words {
		s := Normalize(w.Text)
		fields := strings.Fields(s)
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 && fields[0] == s {
			w.Text = s
			out = append(out, w)
			continue
		}

		perRune := 0.0
		if n := utf8.RuneCountInString(s); n > 0 {
			perRune = w.Width / float64(n)
		}
		col := 0
		rest := s
		for _, f := range fields {
			idx := strings.Index(rest, f)
			col += utf8.RuneCountInString(rest[:idx])
			part := w
			part.Text = f
			part.X = w.X + float64(col)*perRune
			part.Width = float64(utf8.RuneCountInString(f)) * perRune
			out = append(out, part)
			col += utf8.RuneCountInString(f)
			rest = rest[idx+len(f):]
		}
	}
	return out
}

// EstimateCharWidth returns the median width per rune over the words, or 1
// when no word has a usable width.
func EstimateCharWidth(words []Word) float64 {
	var widths []float64
	for _, w := range words {
		n := utf8.RuneCountInString(w.Text)
		if n > 0 && w.Width > 0 {
			widths = append(widths, w.Width/float64(n))
		}
	}
	if len(widths) == 0 {
		return 1
	}
	sort.Float64s(widths)
	return widths[len(widths)/2]
}

// groupByLine sorts words top to bottom and collects those whose tops lie
// within tolerance of the first word of the current line.
func (b *LineBuilder) groupByLine(words []Word) [][]Word {
	sorted := append([]Word(nil), words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines [][]Word
	current := []Word{sorted[0]}
	for _, w := range sorted[1:] {
		ref := current[0]
		if math.Abs(w.Y-ref.Y) <= b.config.LineTolerance*lineHeight(ref, w) {
			current = append(current, w)
			continue
		}
		lines = append(lines, current)
		current = []Word{w}
	}
	return append(lines, current)
}

func lineHeight(a, b Word) float64 {
	h := math.Max(a.Height, b.Height)
	if h <= 0 {
		h = math.Max(a.FontSize, b.FontSize)
	}
	if h <= 0 {
		h = 1
	}
	return h
}

// buildLine orders one line's words left to right, joins touching
// fragments into tokens and maps them to columns.
func (b *LineBuilder) buildLine(page, index int, words []Word, origin, charWidth float64) model.TextLine {
	sort.SliceStable(words, func(i, j int) bool { return words[i].X < words[j].X })

	var tokens []model.Token
	var run []Word
	flush := func() {
		if len(run) == 0 {
			return
		}
		first, last := run[0], run[len(run)-1]
		tokens = append(tokens, model.Token{
			Text:  joinRun(run),
			Start: (first.X - origin) / charWidth,
			End:   (last.X + last.Width - origin) / charWidth,
		})
		run = run[:0]
	}

	for _, w := range words {
		if len(run) > 0 {
			prev := run[len(run)-1]
			if w.X-(prev.X+prev.Width) >= b.config.JoinGap*charWidth {
				flush()
			}
		}
		run = append(run, w)
	}
	flush()

	line := model.LineFromTokens(page, index, tokens)
	bold := true
	for _, w := range words {
		line.FontSize = math.Max(line.FontSize, w.FontSize)
		bold = bold && w.Bold
	}
	line.Bold = bold
	return line
}

// joinRun concatenates the fragments of one token. Glyphs of right-to-left
// text arrive in visual order and are reversed into reading order.
func joinRun(run []Word) string {
	var sb strings.Builder
	for _, w := range run {
		sb.WriteString(w.Text)
	}
	if len(run) < 2 || DetectDirection(sb.String()) != RTL {
		return sb.String()
	}

	sb.Reset()
	for i := len(run) - 1; i >= 0; i-- {
		sb.WriteString(run[i].Text)
	}
	return sb.String()
}
