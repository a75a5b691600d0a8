package model

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a run of non-whitespace characters with its horizontal extent.
// Positions are in character columns unless the producing source documents
// another consistent unit.
type Token struct {
	Text  string
	Start float64
	End   float64
}

// Width returns the horizontal extent of the token
func (t Token) Width() float64 {
	return t.End - t.Start
}

// TextLine is one line of page text with positioned tokens.
// Lines are produced by an extraction source and treated as immutable.
type TextLine struct {
	Page  int // 1-indexed page number
	Index int // Line index within the page
	Seq   int // Line position within the whole document

	Text   string
	Tokens []Token

	Leading  float64 // Whitespace width before the first token
	Trailing float64 // Whitespace width after the last token

	FontSize float64 // Dominant font size, 0 when the source has none
	Bold     bool
}

// NewTextLine tokenizes raw text, using rune columns as positions.
// Tabs must already be expanded by the caller. Seq starts equal to index
// until Document.Sequence renumbers the lines.
func NewTextLine(page, index int, raw string) TextLine {
	line := TextLine{
		Page:  page,
		Index: index,
		Seq:   index,
		Text:  strings.TrimRightFunc(raw, unicode.IsSpace),
	}

	col := 0
	start := -1
	var sb strings.Builder
	flush := func() {
		if start >= 0 {
			line.Tokens = append(line.Tokens, Token{
				Text:  sb.String(),
				Start: float64(start),
				End:   float64(col),
			})
			sb.Reset()
			start = -1
		}
	}

	for _, r := range raw {
		if unicode.IsSpace(r) {
			flush()
		} else {
			if start < 0 {
				start = col
			}
			sb.WriteRune(r)
		}
		col++
	}
	flush()

	if len(line.Tokens) > 0 {
		line.Leading = line.Tokens[0].Start
		line.Trailing = float64(col) - line.Tokens[len(line.Tokens)-1].End
	} else {
		line.Leading = float64(col)
	}

	return line
}

// LineFromTokens builds a line from already positioned tokens, rendering
// Text by placing each token at its rounded start column. Tokens that would
// overlap are separated by a single space.
func LineFromTokens(page, index int, tokens []Token) TextLine {
	line := TextLine{
		Page:   page,
		Index:  index,
		Seq:    index,
		Tokens: append([]Token(nil), tokens...),
	}

	var sb strings.Builder
	col := 0
	for i, tok := range tokens {
		target := int(math.Round(tok.Start))
		if i > 0 && target <= col {
			target = col + 1
		}
		for col < target {
			sb.WriteByte(' ')
			col++
		}
		sb.WriteString(tok.Text)
		col += utf8.RuneCountInString(tok.Text)
	}
	line.Text = sb.String()

	if len(tokens) > 0 {
		line.Leading = tokens[0].Start
	}
	return line
}

// IsBlank reports whether the line carries no visible characters
func (l TextLine) IsBlank() bool {
	return len(l.Tokens) == 0
}

// Trimmed returns the text without surrounding whitespace
func (l TextLine) Trimmed() string {
	return strings.TrimSpace(l.Text)
}

// Words returns the token texts in order
func (l TextLine) Words() []string {
	words := make([]string, len(l.Tokens))
	for i, t := range l.Tokens {
		words[i] = t.Text
	}
	return words
}
