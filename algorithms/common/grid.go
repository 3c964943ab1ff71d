package common

import "fmt"

// SampleIndexGrid returns the default time axis 0, 1, ..., n-1
func SampleIndexGrid(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	grid := make([]float64, n)
	for i := range grid {
		grid[i] = float64(i)
	}
	return grid
}

// StrictlyIncreasing reports whether every element is larger than its predecessor
func StrictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return true
}

// CheckStrictlyIncreasing returns ErrInvalidInput naming the first offending index
func CheckStrictlyIncreasing(name string, x []float64) error {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return fmt.Errorf("%s must be strictly increasing (index %d: %g after %g): %w",
				name, i, x[i], x[i-1], ErrInvalidInput)
		}
	}
	return nil
}

// MeanSpacing returns the average distance between consecutive grid points
func MeanSpacing(t []float64) float64 {
	if len(t) < 2 {
		return 1.0
	}
	return (t[len(t)-1] - t[0]) / float64(len(t)-1)
}
