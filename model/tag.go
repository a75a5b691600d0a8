package model

import "fmt"

// Tag is the structural classification of a text line.
type Tag int

const (
	// TagBlank marks an empty or whitespace-only line.
	TagBlank Tag = iota
	// TagCitationNumeric marks a "method reference, metric, metric, ..." row.
	TagCitationNumeric
	// TagMultiSpace marks a line with at least one strong whitespace split.
	TagMultiSpace
	// TagNarrative marks running text.
	TagNarrative
	// TagHeaderLike marks a row of short capitalised column labels.
	TagHeaderLike
	// TagSeparator marks a rule line made of dashes, pipes or equals signs.
	TagSeparator
)

var tagNames = map[Tag]string{
	TagBlank:           "blank",
	TagCitationNumeric: "citation_numeric",
	TagMultiSpace:      "multi_space",
	TagNarrative:       "narrative",
	TagHeaderLike:      "header_like",
	TagSeparator:       "separator",
}

// String returns the snake_case name of the tag.
func (t Tag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tag(%d)", int(t))
}

// Qualifying reports whether the tag can open or extend a table region.
func (t Tag) Qualifying() bool {
	switch t {
	case TagCitationNumeric, TagMultiSpace, TagHeaderLike, TagSeparator:
		return true
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(b []byte) error {
	for tag, name := range tagNames {
		if name == string(b) {
			*t = tag
			return nil
		}
	}
	return fmt.Errorf("unknown line tag %q", string(b))
}

// ClassifiedLine is a text line with its final classification.
type ClassifiedLine struct {
	Line       TextLine
	Tag        Tag
	Weight     float64   // Classifier confidence (0-1)
	Boundaries []float64 // Column split positions carried by this line, ascending
	Caption    *Caption  // Set when the line is a table title
}
