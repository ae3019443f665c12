package comps

import (
	"math"
	"slices"

	domain "github.com/jessysellshomes/card-value-backend/pkg/types"
)

// Statistics thresholds. Named rather than inlined: these are the tuning
// points of the whole pipeline.
const (
	// DefaultTrimPct is the fraction dropped from each end of the sorted
	// sample before reporting the price range.
	DefaultTrimPct = 0.15

	// minSampleForTrim is the smallest sample that gets trimmed at all;
	// below it the raw min/max is more honest than a trimmed range.
	minSampleForTrim = 6

	// Confidence breakpoints by sample size.
	highConfidenceMin   = 25
	mediumConfidenceMin = 10
)

// Median returns the median of values. Callers must guard against empty
// input.
func Median(values []float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// TrimmedRange returns [min, max] after dropping floor(n*trimPct) values
// from each end of the sorted sample. Samples smaller than minSampleForTrim
// are returned untrimmed.
func TrimmedRange(values []float64, trimPct float64) [2]float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := len(sorted)
	if n == 0 {
		return [2]float64{}
	}
	if n < minSampleForTrim {
		return [2]float64{sorted[0], sorted[n-1]}
	}

	drop := int(math.Floor(float64(n) * trimPct))
	trimmed := sorted[drop : n-drop]
	return [2]float64{trimmed[0], trimmed[len(trimmed)-1]}
}

// ConfidenceFor labels a sample size: >=25 high, >=10 medium, else low.
func ConfidenceFor(n int) domain.Confidence {
	switch {
	case n >= highConfidenceMin:
		return domain.ConfidenceHigh
	case n >= mediumConfidenceMin:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
