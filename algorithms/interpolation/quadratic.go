package interpolation

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

const quadraticDegree = 2

// quadraticBSpline interpolates with a C1 quadratic B-spline. The end knots
// have multiplicity three and the interior knots sit at the midpoints between
// consecutive control positions, dropping the first and last midpoint. The
// collocation matrix is then tridiagonal.
func quadraticBSpline(xs, ys, x []float64) ([]float64, error) {
	if err := requirePoints(Quadratic, xs, quadraticDegree+1); err != nil {
		return nil, err
	}

	n := len(xs)
	knots := quadraticKnots(xs)

	lower := make([]float64, n)
	diag := make([]float64, n)
	upper := make([]float64, n)
	for i, xi := range xs {
		span := findSpan(knots, n, xi)
		basis := basisFunctions(knots, span, xi)
		for r, value := range basis {
			col := span - quadraticDegree + r
			switch col - i {
			case -1:
				lower[i] = value
			case 0:
				diag[i] = value
			case 1:
				upper[i] = value
			}
		}
	}

	coeffs, err := solveTridiagonal(lower, diag, upper, ys)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(x))
	for i, v := range x {
		span := findSpan(knots, n, v)
		basis := basisFunctions(knots, span, v)
		sum := 0.0
		for r, value := range basis {
			sum += coeffs[span-quadraticDegree+r] * value
		}
		out[i] = sum
	}
	return out, nil
}

func quadraticKnots(xs []float64) []float64 {
	n := len(xs)
	knots := make([]float64, n+quadraticDegree+1)
	for j := 0; j <= quadraticDegree; j++ {
		knots[j] = xs[0]
		knots[n+j] = xs[n-1]
	}
	for j := quadraticDegree + 1; j < n; j++ {
		knots[j] = 0.5 * (xs[j-2] + xs[j-1])
	}
	return knots
}

// findSpan returns the knot span m with knots[m] <= x < knots[m+1],
// clamped to the last non-empty span for x at the right end
func findSpan(knots []float64, nCtrl int, x float64) int {
	if x >= knots[nCtrl] {
		return nCtrl - 1
	}
	// first index in [degree+1, nCtrl] whose knot exceeds x
	m := sort.Search(nCtrl-quadraticDegree, func(i int) bool {
		return knots[quadraticDegree+1+i] > x
	})
	return quadraticDegree + m
}

// basisFunctions evaluates the degree+1 non-zero B-spline basis functions on
// span m at x (Cox-de Boor recurrence)
func basisFunctions(knots []float64, m int, x float64) []float64 {
	basis := make([]float64, quadraticDegree+1)
	left := make([]float64, quadraticDegree+1)
	right := make([]float64, quadraticDegree+1)

	basis[0] = 1
	for j := 1; j <= quadraticDegree; j++ {
		left[j] = x - knots[m+1-j]
		right[j] = knots[m+j] - x
		saved := 0.0
		for r := 0; r < j; r++ {
			temp := basis[r] / (right[r+1] + left[j-r])
			basis[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		basis[j] = saved
	}
	return basis
}

// solveTridiagonal solves A·c = rhs with the Thomas algorithm. lower[0] and
// upper[n-1] are ignored.
func solveTridiagonal(lower, diag, upper, rhs []float64) ([]float64, error) {
	n := len(diag)
	cp := make([]float64, n)
	dp := make([]float64, n)

	if diag[0] == 0 {
		return nil, fmt.Errorf("interpolation: singular collocation matrix: %w", common.ErrInvalidInput)
	}
	cp[0] = upper[0] / diag[0]
	dp[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		denom := diag[i] - lower[i]*cp[i-1]
		if denom == 0 {
			return nil, fmt.Errorf("interpolation: singular collocation matrix at row %d: %w", i, common.ErrInvalidInput)
		}
		cp[i] = upper[i] / denom
		dp[i] = (rhs[i] - lower[i]*dp[i-1]) / denom
	}

	c := make([]float64, n)
	c[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		c[i] = dp[i] - cp[i]*c[i+1]
	}
	return c, nil
}
