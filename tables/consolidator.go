package tables

import (
	"sort"

	"github.com/tsawler/papertab/layout"
	"github.com/tsawler/papertab/model"
)

// Consolidator merges table fragments that belong to one logical table,
// such as a table split by a page break or a stray caption line.
type Consolidator struct {
	config Config
	scorer *Scorer
}

// NewConsolidator creates a consolidator with default configuration
func NewConsolidator() *Consolidator {
	return NewConsolidatorWithConfig(DefaultConfig())
}

// NewConsolidatorWithConfig creates a consolidator with custom configuration
func NewConsolidatorWithConfig(config Config) *Consolidator {
	return &Consolidator{
		config: config,
		scorer: NewScorerWithConfig(config),
	}
}

// Mergeable reports whether b, which follows a in the document, continues
// it: at most MergeGap lines lie between them and their boundary lists are
// equivalent, or the shorter is a subset of the longer. A title above b
// starts a new table unless it marks a continuation of a's number.
func (c *Consolidator) Mergeable(a, b model.Grid) bool {
	gap := b.FirstSeq - a.LastSeq - 1
	if gap < 0 || gap > c.config.MergeGap {
		return false
	}
	if b.Caption != nil {
		if !b.Caption.Continued {
			return false
		}
		if a.Caption != nil && a.Caption.Number != b.Caption.Number {
			return false
		}
	}

	tol := c.config.Layout.Tolerance
	if layout.Equivalent(a.Boundaries, b.Boundaries, tol) {
		return true
	}
	if len(a.Boundaries) <= len(b.Boundaries) {
		return layout.Subset(a.Boundaries, b.Boundaries, tol)
	}
	return layout.Subset(b.Boundaries, a.Boundaries, tol)
}

// Consolidate merges fragment groups and re-scores every merged grid.
// Only neighbouring grids are linked, so a chain merges only when each
// adjacent pair qualifies; two compatible grids with an incompatible one
// between them stay apart. Results are returned in document order.
func (c *Consolidator) Consolidate(results []model.Result) []model.Result {
	ordered := make([]model.Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Grid.FirstSeq < ordered[j].Grid.FirstSeq
	})

	sets := newUnionFind(len(ordered))
	for i := 0; i+1 < len(ordered); i++ {
		if c.Mergeable(ordered[i].Grid, ordered[i+1].Grid) {
			sets.union(i, i+1)
		}
	}

	var groups [][]int
	index := make(map[int]int)
	for i := range ordered {
		root := sets.find(i)
		g, ok := index[root]
		if !ok {
			g = len(groups)
			index[root] = g
			groups = append(groups, nil)
		}
		groups[g] = append(groups[g], i)
	}

	out := make([]model.Result, 0, len(groups))
	for _, members := range groups {
		if len(members) == 1 {
			out = append(out, ordered[members[0]])
			continue
		}

		grids := make([]model.Grid, len(members))
		for i, m := range members {
			grids[i] = ordered[m].Grid
		}
		merged := c.Merge(grids...)
		out = append(out, model.Result{Grid: merged, Report: c.scorer.Score(merged)})
	}
	return out
}

// Merge combines grids into one. Rows are ordered by document position and
// re-laid out against the union of all boundary lists. The merged grid
// takes the ID of the earliest member.
func (c *Consolidator) Merge(grids ...model.Grid) model.Grid {
	if len(grids) == 0 {
		return model.Grid{Header: -1}
	}

	sorted := make([]model.Grid, len(grids))
	copy(sorted, grids)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].FirstSeq < sorted[j].FirstSeq
	})

	tol := c.config.Layout.Tolerance
	lists := make([][]float64, len(sorted))
	for i, g := range sorted {
		lists[i] = g.Boundaries
	}
	bounds := layout.Union(tol, lists...)

	first, last := sorted[0], sorted[len(sorted)-1]
	merged := model.Grid{
		ID:         first.ID,
		Page:       first.Page,
		Start:      first.Start,
		EndPage:    last.EndPage,
		End:        last.End,
		FirstSeq:   first.FirstSeq,
		LastSeq:    last.LastSeq,
		Columns:    len(bounds) + 1,
		Header:     -1,
		Boundaries: bounds,
	}

	for _, g := range sorted {
		if len(g.Members) > 0 {
			merged.Members = append(merged.Members, g.Members...)
		} else {
			merged.Members = append(merged.Members, g.ID)
		}
		merged.Separators = append(merged.Separators, g.Separators...)
		for _, r := range g.Rows {
			r.Segments = append([]model.Segment(nil), r.Segments...)
			merged.Rows = append(merged.Rows, r)
		}
	}

	for _, g := range sorted {
		if g.Caption != nil {
			caption := *g.Caption
			merged.Caption = &caption
			break
		}
	}

	sort.Ints(merged.Separators)
	sort.SliceStable(merged.Rows, func(i, j int) bool {
		return merged.Rows[i].Seq < merged.Rows[j].Seq
	})

	for i := range merged.Rows {
		r := &merged.Rows[i]
		r.Cells, r.Spanning = place(r.Segments, r.Text, bounds, tol)
		if r.Header && merged.Header < 0 {
			merged.Header = i
		}
	}

	return merged
}

// unionFind is a disjoint-set forest over grid positions
type unionFind struct {
	parent []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent}
}

func (u *unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u *unionFind) union(a, b int) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra < rb {
		u.parent[rb] = ra
	} else {
		u.parent[ra] = rb
	}
}
