package interpolation

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
)

// akimaWeightTolerance is relative to the largest weight sum
const akimaWeightTolerance = 1e-9

// akima implements H. Akima, "A new method of interpolation and smooth curve
// fitting based on local procedures", 1970. Knot derivatives come from the
// |Δslope|-weighted average of neighbouring segment slopes, with two slopes
// linearly extrapolated past each end; segments are cubic Hermite.
func akima(xs, ys, x []float64) ([]float64, error) {
	if err := requirePoints(Akima, xs, 3); err != nil {
		return nil, err
	}

	var spline interp.PiecewiseCubic
	spline.FitWithDerivatives(xs, ys, akimaDerivatives(xs, ys))

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = spline.Predict(v)
	}
	return out, nil
}

// akimaDerivatives returns the Akima slope estimate at every knot
func akimaDerivatives(xs, ys []float64) []float64 {
	n := len(xs)

	// m holds segment slopes offset by two: m[k+2] is the slope of segment k
	m := make([]float64, n+3)
	for k := 0; k < n-1; k++ {
		m[k+2] = (ys[k+1] - ys[k]) / (xs[k+1] - xs[k])
	}
	m[1] = 2*m[2] - m[3]
	m[0] = 2*m[1] - m[2]
	m[n+1] = 2*m[n] - m[n-1]
	m[n+2] = 2*m[n+1] - m[n]

	// weights: w[k] = |m[k+1] - m[k]|
	w := make([]float64, n+2)
	for k := range w {
		w[k] = math.Abs(m[k+1] - m[k])
	}

	sums := make([]float64, n)
	for i := range sums {
		sums[i] = w[i+2] + w[i]
	}
	tol := akimaWeightTolerance * floats.Max(sums)

	dydx := make([]float64, n)
	for i := range dydx {
		prev, next := m[i+1], m[i+2]
		if sums[i] > tol {
			dydx[i] = (w[i+2]*prev + w[i]*next) / sums[i]
		} else {
			dydx[i] = 0.5 * (prev + next)
		}
	}
	return dydx
}
