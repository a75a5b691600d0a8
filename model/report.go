package model

// DefectKind names a structural defect found in a built table.
type DefectKind string

const (
	DefectTooFewRows             DefectKind = "too_few_rows"
	DefectTooFewColumns          DefectKind = "too_few_columns"
	DefectMissingHeaderSeparator DefectKind = "missing_header_separator"
	DefectInconsistentRowWidth   DefectKind = "inconsistent_row_width"
)

// DefectKinds lists every kind checked by validity scoring, in report order.
var DefectKinds = []DefectKind{
	DefectTooFewRows,
	DefectTooFewColumns,
	DefectMissingHeaderSeparator,
	DefectInconsistentRowWidth,
}

// Disqualifying reports whether the defect means the region is not tabular
// at all, rather than merely malformed.
func (k DefectKind) Disqualifying() bool {
	return k == DefectTooFewRows || k == DefectTooFewColumns
}

// Defect is one structural problem found in a grid.
type Defect struct {
	Kind   DefectKind `json:"kind" yaml:"kind"`
	Row    int        `json:"row" yaml:"row"`       // -1 when not row specific
	Column int        `json:"column" yaml:"column"` // -1 when not column specific
	Note   string     `json:"note" yaml:"note"`
}

// Report is the validity assessment of a grid.
type Report struct {
	Score   float64  `json:"score" yaml:"score"` // 0-1
	Valid   bool     `json:"valid" yaml:"valid"`
	Defects []Defect `json:"defects,omitempty" yaml:"defects,omitempty"`
}

// Has reports whether a defect of the given kind was recorded
func (r Report) Has(kind DefectKind) bool {
	for _, d := range r.Defects {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// Kinds returns the distinct defect kinds present, in DefectKinds order
func (r Report) Kinds() []DefectKind {
	var kinds []DefectKind
	for _, k := range DefectKinds {
		if r.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Result pairs a grid with its validity report.
type Result struct {
	Grid   Grid
	Report Report
}
