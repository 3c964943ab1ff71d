package interpolation

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// piecewiseLinear joins consecutive control points with straight lines
func piecewiseLinear(xs, ys, x []float64) ([]float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return nil, fmt.Errorf("interpolation: linear fit: %v: %w", err, common.ErrInvalidInput)
	}

	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = pl.Predict(v)
	}
	return out, nil
}
