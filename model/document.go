package model

// Page is the ordered line stream extracted from one page
type Page struct {
	Number int // 1-indexed page number
	Lines  []TextLine
}

// Document is a named sequence of pages
type Document struct {
	Name  string
	Pages []Page
}

// AddPage appends a page, numbering it after the last one
func (d *Document) AddPage(lines []TextLine) {
	number := len(d.Pages) + 1
	for i := range lines {
		lines[i].Page = number
	}
	d.Pages = append(d.Pages, Page{Number: number, Lines: lines})
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// LineCount returns the number of lines across all pages
func (d *Document) LineCount() int {
	n := 0
	for _, p := range d.Pages {
		n += len(p.Lines)
	}
	return n
}

// Sequence numbers every line in document order, and line indices within
// each page. It must run before detection so that fragments on adjacent
// pages can be related by distance.
func (d *Document) Sequence() {
	seq := 0
	for pi := range d.Pages {
		for li := range d.Pages[pi].Lines {
			line := &d.Pages[pi].Lines[li]
			line.Page = d.Pages[pi].Number
			line.Index = li
			line.Seq = seq
			seq++
		}
	}
}
