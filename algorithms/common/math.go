package common

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Numeric helpers shared by the sifting stages, built on gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// Energy returns the sum of squares of data
func Energy(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Dot(data, data)
}

// Range returns max(data) - min(data), or 0 for an empty slice
func Range(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data) - floats.Min(data)
}

// SumAbs returns the L1 norm of data
func SumAbs(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Norm(data, 1)
}

// Scaled returns a copy of data multiplied by c
func Scaled(data []float64, c float64) []float64 {
	out := make([]float64, len(data))
	copy(out, data)
	floats.Scale(c, out)
	return out
}

// Sub returns a - b as a new slice. Panics on length mismatch like gonum.
func Sub(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.SubTo(out, a, b)
	return out
}

// Midpoint returns (a + b) / 2 element-wise
func Midpoint(a, b []float64) []float64 {
	out := make([]float64, len(a))
	floats.AddTo(out, a, b)
	floats.Scale(0.5, out)
	return out
}
