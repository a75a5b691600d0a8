package layout

import (
	"math"
	"sort"
)

// Cluster merges nearby positions into canonical boundaries. Values are
// sorted, and each value within tolerance of the current cluster's mean
// joins it; otherwise it starts a new cluster. The result is strictly
// increasing.
func Cluster(values []float64, tolerance float64) []float64 {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	var centers []float64
	sum, count := sorted[0], 1

	for i := 1; i < len(sorted); i++ {
		center := sum / float64(count)
		if sorted[i]-center > tolerance {
			centers = append(centers, center)
			sum, count = sorted[i], 1
		} else {
			sum += sorted[i]
			count++
		}
	}
	centers = append(centers, sum/float64(count))

	return centers
}

// Match returns the index of the boundary nearest to pos within tolerance,
// or -1 when none is close enough.
func Match(pos float64, boundaries []float64, tolerance float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, b := range boundaries {
		d := math.Abs(pos - b)
		if d <= tolerance && d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Shares reports whether any position of a lies within tolerance of a
// position of b.
func Shares(a, b []float64, tolerance float64) bool {
	for _, p := range a {
		if Match(p, b, tolerance) >= 0 {
			return true
		}
	}
	return false
}

// Subset reports whether every position of a matches a position of b
func Subset(a, b []float64, tolerance float64) bool {
	for _, p := range a {
		if Match(p, b, tolerance) < 0 {
			return false
		}
	}
	return true
}

// Equivalent reports whether a and b have the same number of boundaries
// and are pairwise within tolerance.
func Equivalent(a, b []float64, tolerance float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// Union clusters the combined positions of several boundary lists
func Union(tolerance float64, lists ...[]float64) []float64 {
	var all []float64
	for _, l := range lists {
		all = append(all, l...)
	}
	return Cluster(all, tolerance)
}
