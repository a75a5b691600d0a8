package tables

import (
	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
)

// Detector finds contiguous runs of table-like lines on a page.
type Detector struct {
	config     Config
	classifier *Classifier
}

// NewDetector creates a detector with default configuration
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultConfig())
}

// NewDetectorWithConfig creates a detector with custom configuration
func NewDetectorWithConfig(config Config) *Detector {
	return &Detector{
		config:     config,
		classifier: NewClassifierWithConfig(config),
	}
}

// Classifier returns the classifier used by Detect
func (d *Detector) Classifier() *Classifier {
	return d.classifier
}

// Detect classifies the lines of one page and returns its candidates
func (d *Detector) Detect(lines []model.TextLine) []model.Candidate {
	return d.Scan(d.classifier.Classify(lines))
}

// region is the state of an open candidate during a scan
type region struct {
	start       int
	lastQual    int
	established []float64
	caption     *model.Caption
}

// Scan walks classified lines in order and groups them into candidates.
//
// A region opens at a qualifying line. Up to NoiseTolerance consecutive
// non-qualifying lines are absorbed; one more closes the region at its last
// qualifying line. A qualifying line that shares no boundary with the
// region's established set is incompatible. Up to NoiseTolerance of those
// are tolerated; one more closes the region at its last compatible line.
// A table title line closes the region at once and is never absorbed.
// Whenever a region closes with incompatible lines pending, scanning resumes
// at the first of them, which may open the next region. Regions with fewer
// than two qualifying lines are dropped.
//
// A title attaches to the next region that opens within MergeGap non-blank
// lines of it.
func (d *Detector) Scan(lines []model.ClassifiedLine) []model.Candidate {
	k := d.config.NoiseTolerance
	tol := d.config.Layout.Tolerance

	var out []model.Candidate
	var r region
	open := false
	noise, incompatible, firstIncompatible := 0, 0, -1

	var caption *model.Caption
	sinceCaption := 0

	// finish emits the open region and returns where scanning continues
	finish := func(i int) int {
		out = d.emit(out, lines, r)
		open = false
		if firstIncompatible >= 0 {
			return firstIncompatible
		}
		return i
	}

	for i := 0; i < len(lines); {
		cl := lines[i]

		if cl.Caption != nil {
			if open {
				if next := finish(i); next < i {
					i = next
					continue
				}
			}
			caption, sinceCaption = cl.Caption, 0
			i++
			continue
		}

		if !open {
			if cl.Tag.Qualifying() {
				r = region{start: i, lastQual: i, established: layout.Cluster(cl.Boundaries, tol), caption: caption}
				open = true
				noise, incompatible, firstIncompatible = 0, 0, -1
				caption = nil
			} else if caption != nil && !cl.Line.IsBlank() {
				sinceCaption++
				if sinceCaption > d.config.MergeGap {
					caption = nil
				}
			}
			i++
			continue
		}

		if !cl.Tag.Qualifying() {
			noise++
			if noise > k {
				i = finish(i + 1)
				continue
			}
			i++
			continue
		}

		noise = 0
		if compatible(r.established, cl.Boundaries, tol) {
			incompatible, firstIncompatible = 0, -1
			r.lastQual = i
			r.established = layout.Union(tol, r.established, cl.Boundaries)
			i++
			continue
		}

		incompatible++
		if firstIncompatible < 0 {
			firstIncompatible = i
		}
		if incompatible > k {
			i = finish(i)
			continue
		}
		i++
	}

	if open {
		out = d.emit(out, lines, r)
	}
	return out
}

// compatible reports whether a line's boundaries agree with the region's.
// Lines without boundaries, such as separators, agree with anything.
func compatible(established, boundaries []float64, tolerance float64) bool {
	if len(established) == 0 || len(boundaries) == 0 {
		return true
	}
	return layout.Shares(boundaries, established, tolerance)
}

func (d *Detector) emit(out []model.Candidate, lines []model.ClassifiedLine, r region) []model.Candidate {
	qualifying := 0
	for _, cl := range lines[r.start : r.lastQual+1] {
		if cl.Tag.Qualifying() {
			qualifying++
		}
	}
	if qualifying < 2 {
		return out
	}

	first, last := lines[r.start].Line, lines[r.lastQual].Line
	members := make([]model.ClassifiedLine, r.lastQual-r.start+1)
	copy(members, lines[r.start:r.lastQual+1])

	return append(out, model.Candidate{
		Page:       first.Page,
		Start:      first.Index,
		End:        last.Index,
		FirstSeq:   first.Seq,
		LastSeq:    last.Seq,
		Lines:      members,
		Boundaries: append([]float64(nil), r.established...),
		Caption:    r.caption,
	})
}
