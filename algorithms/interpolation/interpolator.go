package interpolation

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/sonido-emd/algorithms/boundary"
	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// Interpolator evaluates envelopes with one configured method
type Interpolator struct {
	method Method
}

// NewInterpolator creates an interpolator for the named method
func NewInterpolator(name string) (*Interpolator, error) {
	method, err := ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return &Interpolator{method: method}, nil
}

// Method returns the configured method
func (ip *Interpolator) Method() Method {
	return ip.method
}

// Envelope evaluates the curve through pts at every grid time inside
// [pts.First(), pts.Last()]. It returns that sub-grid and the curve values.
func (ip *Interpolator) Envelope(t []float64, pts boundary.Points) ([]float64, []float64, error) {
	if pts.Len() == 0 {
		return nil, nil, fmt.Errorf("interpolation: no control points: %w", common.ErrInvalidInput)
	}

	lo := sort.SearchFloat64s(t, pts.First())
	hi := sort.Search(len(t), func(i int) bool { return t[i] > pts.Last() })
	if lo > hi {
		lo = hi
	}
	span := t[lo:hi]

	values, err := ip.Interpolate(pts.Pos, pts.Val, span)
	if err != nil {
		return nil, nil, err
	}
	return span, values, nil
}

// Interpolate fits (xs, ys) and evaluates the curve at x
func (ip *Interpolator) Interpolate(xs, ys, x []float64) ([]float64, error) {
	return Interpolate(ip.method, xs, ys, x)
}

// Interpolate fits (xs, ys) with method and evaluates the curve at x.
// xs must be strictly increasing and every x must lie within [xs[0], xs[n-1]].
func Interpolate(method Method, xs, ys, x []float64) ([]float64, error) {
	if err := checkControlPoints(xs, ys, x); err != nil {
		return nil, err
	}

	switch method {
	case Akima:
		return akima(xs, ys, x)
	case Cubic:
		if len(xs) > 3 {
			return notAKnotCubic(xs, ys, x)
		}
		return cubicThreePoint(xs, ys, x)
	case Linear, SLinear:
		return piecewiseLinear(xs, ys, x)
	case Quadratic:
		return quadraticBSpline(xs, ys, x)
	default:
		return nil, fmt.Errorf("interpolation: %q: %w", method, common.ErrUnsupportedMethod)
	}
}

func checkControlPoints(xs, ys, x []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("interpolation: %d positions for %d values: %w",
			len(xs), len(ys), common.ErrInvalidInput)
	}
	if len(xs) < 2 {
		return fmt.Errorf("interpolation: need at least 2 control points, got %d: %w",
			len(xs), common.ErrInvalidInput)
	}
	if err := common.CheckStrictlyIncreasing("interpolation: control positions", xs); err != nil {
		return err
	}

	first, last := xs[0], xs[len(xs)-1]
	for i, v := range x {
		if v < first || v > last {
			return fmt.Errorf("interpolation: point %d (%g) outside [%g, %g]: %w",
				i, v, first, last, common.ErrInvalidInput)
		}
	}
	return nil
}

func requirePoints(method Method, xs []float64, n int) error {
	if len(xs) < n {
		return fmt.Errorf("interpolation: %s needs at least %d control points, got %d: %w",
			method, n, len(xs), common.ErrInvalidInput)
	}
	return nil
}
