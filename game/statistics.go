package game

import (
	"golang.org/x/exp/slices"
)

// Sum ...
func Sum(data []float32) (result float32) {
	for _, v := range data {
		result += v
	}
	return result
}

// Mean ...
func Mean(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}
	return Sum(data) / float32(len(data))
}

// Median returns the median of data without modifying it.
func Median(data []float32) float32 {
	count := len(data)
	if count == 0 {
		return 0
	}

	sorted := slices.Clone(data)
	slices.Sort(sorted)
	if count%2 != 0 {
		return sorted[count/2]
	}
	return (sorted[count/2-1] + sorted[count/2]) * 0.5
}

// Max ...
func Max(data []float32) float32 {
	if len(data) == 0 {
		return 0
	}
	return slices.Max(data)
}
