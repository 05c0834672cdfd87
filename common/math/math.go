package math

import (
	"math"
	"sort"
)

// Stats summarises a set of samples
type Stats struct {
	Mean   float64
	Median float64
	Min    float64
	Max    float64
	StdDev float64
}

// CalculateStats reduces values to their mean, median, min, max and
// population standard deviation. Empty input returns the zero value.
func CalculateStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}
	return Stats{
		Mean:   ArithmeticAverage(values),
		Median: Median(values),
		Min:    Minimum(values),
		Max:    Maximum(values),
		StdDev: PopulationStandardDeviation(values),
	}
}

// ArithmeticAverage is the basic form of calculating an average.
// Divide the sum of all values by the length of values
func ArithmeticAverage(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sumOfValues float64
	for x := range values {
		sumOfValues += values[x]
	}
	return sumOfValues / float64(len(values))
}

// Median returns the middle value of a sorted copy of values, averaging the
// two middle values when the count is even
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Minimum returns the smallest value
func Minimum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	lowest := values[0]
	for x := 1; x < len(values); x++ {
		lowest = math.Min(lowest, values[x])
	}
	return lowest
}

// Maximum returns the largest value
func Maximum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	highest := values[0]
	for x := 1; x < len(values); x++ {
		highest = math.Max(highest, values[x])
	}
	return highest
}

// PopulationStandardDeviation calculates standard deviation using population based calculation
func PopulationStandardDeviation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	avg := ArithmeticAverage(values)
	diffs := make([]float64, len(values))
	for x := range values {
		diffs[x] = math.Pow(values[x]-avg, 2)
	}
	return math.Sqrt(ArithmeticAverage(diffs))
}
