package interpolation

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// notAKnotCubic evaluates the not-a-knot cubic spline; needs four or more points
func notAKnotCubic(xs, ys, x []float64) ([]float64, error) {
	if err := requirePoints(Cubic, xs, 4); err != nil {
		return nil, err
	}

	var spline interp.NotAKnotCubic
	if err := spline.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interpolation: not-a-knot fit: %v: %w", err, common.ErrInvalidInput)
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = spline.Predict(v)
	}
	return out, nil
}

// cubicThreePoint builds the C2 cubic through exactly three points as two
// Hermite segments. The knot derivatives k solve
//
//	| 2/h0     1/h0            0    | |k0|   | 3Δ0/h0²           |
//	| 1/h0     2(1/h0 + 1/h1)  1/h1 | |k1| = | 3Δ0/h0² + 3Δ1/h1² |
//	| 0        1/h1            2/h1 | |k2|   | 3Δ1/h1²           |
//
// and segment j is q(s) = (1-s)y_j + s·y_{j+1} + s(1-s)(a_j(1-s) + b_j·s).
func cubicThreePoint(xs, ys, x []float64) ([]float64, error) {
	if len(xs) != 3 {
		return nil, fmt.Errorf("interpolation: cubic needs at least 3 control points, got %d: %w",
			len(xs), common.ErrInvalidInput)
	}

	h0, h1 := xs[1]-xs[0], xs[2]-xs[1]
	dy0, dy1 := ys[1]-ys[0], ys[2]-ys[1]
	ih0, ih1 := 1/h0, 1/h1

	v0 := 3 * dy0 * ih0 * ih0
	v2 := 3 * dy1 * ih1 * ih1

	a := mat.NewDense(3, 3, []float64{
		2 * ih0, ih0, 0,
		ih0, 2 * (ih0 + ih1), ih1,
		0, ih1, 2 * ih1,
	})
	b := mat.NewVecDense(3, []float64{v0, v0 + v2, v2})

	var k mat.VecDense
	if err := k.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("interpolation: three-point cubic system: %v: %w", err, common.ErrInvalidInput)
	}

	seg := [2]hermiteSegment{
		{x0: xs[0], h: h0, y0: ys[0], y1: ys[1], a: k.AtVec(0)*h0 - dy0, b: -k.AtVec(1)*h0 + dy0},
		{x0: xs[1], h: h1, y0: ys[1], y1: ys[2], a: k.AtVec(1)*h1 - dy1, b: -k.AtVec(2)*h1 + dy1},
	}

	out := make([]float64, len(x))
	for i, v := range x {
		if v < xs[1] {
			out[i] = seg[0].at(v)
		} else {
			out[i] = seg[1].at(v)
		}
	}
	return out, nil
}

// hermiteSegment is one cubic piece in the symmetric (a, b) form
type hermiteSegment struct {
	x0, h  float64
	y0, y1 float64
	a, b   float64
}

func (s hermiteSegment) at(x float64) float64 {
	u := (x - s.x0) / s.h
	w := 1 - u
	return w*s.y0 + u*s.y1 + u*w*(s.a*w+s.b*u)
}
