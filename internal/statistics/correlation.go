package statistics

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Spearman computes Spearman's rank correlation coefficient between x and y,
// the Pearson correlation of their fractional ranks. Ties receive the
// average of the ranks they span. Returns 0 when fewer than 2 pairs exist or
// the lengths differ.
func Spearman(x, y []float64) float64 {
	if len(x) != len(y) || len(x) < 2 {
		return 0
	}
	return stat.Correlation(ranks(x), ranks(y), nil)
}

// LinearFit returns the least-squares intercept and slope of y regressed on x.
func LinearFit(x, y []float64) (alpha, beta float64) {
	return stat.LinearRegression(x, y, nil, false)
}

// ranks maps values to 1-based ranks, averaging over ties.
func ranks(values []float64) []float64 {
	n := len(values)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	r := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && values[idx[j+1]] == values[idx[i]] {
			j++
		}
		// average rank of the tie group [i, j]
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			r[idx[k]] = avg
		}
		i = j + 1
	}
	return r
}
