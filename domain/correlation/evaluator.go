package correlation

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Grouping controls whether coefficients are computed per geography and
// averaged, or over the pooled sample set.
type Grouping string

const (
	GroupByGeo Grouping = "geo_value"
	GroupNone  Grouping = "pooled"
)

// Evaluate reduces a paired sample collection to a single coefficient.
// Undefined results (too few samples, zero variance, no groups) are NaN,
// never substituted with a default.
func Evaluate(samples []PairedSample, method Method, grouping Grouping) float64 {
	if grouping == GroupByGeo {
		return groupedMean(samples, method)
	}
	return Coefficient(samples, method)
}

// groupedMean partitions samples by geography, computes the coefficient per
// group, and reduces with an unweighted arithmetic mean over the groups that
// produced a defined value. Groups with fewer than two pairs are excluded,
// not counted as zero. Whether a sample-size-weighted mean would be more
// appropriate is an open statistical question; the unweighted mean is the
// established behavior.
func groupedMean(samples []PairedSample, method Method) float64 {
	groups := make(map[string][]PairedSample)
	for _, s := range samples {
		groups[s.GeoValue] = append(groups[s.GeoValue], s)
	}

	defined := make([]float64, 0, len(groups))
	for _, group := range groups {
		if c := Coefficient(group, method); !math.IsNaN(c) {
			defined = append(defined, c)
		}
	}

	mean, err := stats.Mean(defined)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// Coefficient computes one correlation coefficient over a sample collection.
// Fewer than two pairs is undefined (NaN), as is zero variance under Pearson.
func Coefficient(samples []PairedSample, method Method) float64 {
	if len(samples) < 2 {
		return math.NaN()
	}
	x := make([]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Value1
		y[i] = s.Value2
	}

	switch method {
	case MethodPearson:
		return stat.Correlation(x, y, nil)
	case MethodKendall:
		return stat.Kendall(x, y, nil)
	case MethodSpearman:
		return stat.Correlation(ranks(x), ranks(y), nil)
	}
	return math.NaN()
}

// ranks converts values to fractional ranks, averaging over ties, which makes
// Spearman's rho a Pearson correlation of the rank vectors.
func ranks(data []float64) []float64 {
	n := len(data)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return data[idx[a]] < data[idx[b]]
	})

	out := make([]float64, n)
	for i := 0; i < n; {
		j := i + 1
		for j < n && data[idx[j]] == data[idx[i]] {
			j++
		}
		// Tied values all receive the mean of the ranks they span.
		avg := float64(i+1) + float64(j-i-1)/2.0
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}
