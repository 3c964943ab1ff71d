package boundary

import (
	"errors"
	"fmt"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
	"github.com/RyanBlaney/sonido-emd/algorithms/extrema"
)

// DefaultNBSym is the default number of points mirrored on each edge
const DefaultNBSym = 2

// ErrInsufficientExtrema signals that envelopes cannot be built. It is a
// control signal for the sifting loop rather than a failure.
var ErrInsufficientExtrema = errors.New("boundary: at least 3 extrema of both kinds are required")

// Extender mirrors extrema past the signal edges
type Extender struct {
	nbsym int
}

// NewExtender creates an extender reflecting nbsym points per edge and type
func NewExtender(nbsym int) *Extender {
	return &Extender{nbsym: nbsym}
}

// Extend returns the maxima and minima control points of values padded on
// both sides with mirrored pseudo-extrema. Both sets are ordered by position,
// free of repeated positions, and span at least [t[0], t[len(t)-1]].
func (e *Extender) Extend(t, values []float64, ext *extrema.Extrema) (maxPts, minPts Points, err error) {
	if len(t) != len(values) {
		return Points{}, Points{}, fmt.Errorf("boundary: %d time points for %d samples: %w",
			len(t), len(values), common.ErrShapeMismatch)
	}
	if e.nbsym < 1 {
		return Points{}, Points{}, fmt.Errorf("boundary: nbsym must be positive, got %d: %w",
			e.nbsym, common.ErrInvalidInput)
	}
	if ext == nil || !ext.Sufficient() || len(ext.MaxIndex) == 0 || len(ext.MinIndex) == 0 {
		return Points{}, Points{}, ErrInsufficientExtrema
	}

	left, err := e.mirror(t, values, leftEdge(ext))
	if err != nil {
		return Points{}, Points{}, err
	}
	right, err := e.mirror(t, values, rightEdge(ext, len(values)))
	if err != nil {
		return Points{}, Points{}, err
	}

	maxPts = concat(left.max, interior(t, values, ext.MaxIndex), right.max).pruneDuplicates()
	minPts = concat(left.min, interior(t, values, ext.MinIndex), right.min).pruneDuplicates()

	return maxPts, minPts, nil
}

// edge is the view of the extrema from one end of the signal, nearest first
type edge struct {
	name     string
	boundary int
	maxIdx   []int
	minIdx   []int
	left     bool
}

type mirrored struct {
	max Points
	min Points
}

func leftEdge(ext *extrema.Extrema) edge {
	return edge{
		name:     "left",
		boundary: 0,
		maxIdx:   ext.MaxIndex,
		minIdx:   ext.MinIndex,
		left:     true,
	}
}

func rightEdge(ext *extrema.Extrema, n int) edge {
	return edge{
		name:     "right",
		boundary: n - 1,
		maxIdx:   reversed(ext.MaxIndex),
		minIdx:   reversed(ext.MinIndex),
		left:     false,
	}
}

func (e *Extender) mirror(t, values []float64, ed edge) (mirrored, error) {
	key := ruleKey{near: nearMin}
	nearIdx, farIdx := ed.minIdx, ed.maxIdx
	if distance(ed.maxIdx[0], ed.boundary) < distance(ed.minIdx[0], ed.boundary) {
		key.near = nearMax
		nearIdx, farIdx = ed.maxIdx, ed.minIdx
	}
	edgeValue, farValue := values[ed.boundary], values[farIdx[0]]
	if key.near == nearMax {
		key.beyond = edgeValue > farValue
	} else {
		key.beyond = edgeValue < farValue
	}
	rule := mirrorRules[key]

	axis := ed.boundary
	if rule.axisOnExtremum {
		axis = nearIdx[0]
	}

	near := window(nearIdx, rule.nearFrom, e.nbsym)
	var far []int
	if rule.padFar {
		far = append([]int{ed.boundary}, window(farIdx, 0, e.nbsym-1)...)
	} else {
		far = window(farIdx, 0, e.nbsym)
	}
	if len(near) == 0 {
		near = nearIdx
	}
	if len(far) == 0 {
		far = farIdx
	}

	nearPts := ed.reflect(t, values, near, axis)
	farPts := ed.reflect(t, values, far, axis)

	if !ed.encloses(t, nearPts) || !ed.encloses(t, farPts) {
		if axis == ed.boundary {
			return mirrored{}, fmt.Errorf("boundary: %s edge mirrored around sample %d does not reach past the signal: %w",
				ed.name, axis, common.ErrInternalConsistency)
		}

		axis = ed.boundary
		near = window(nearIdx, 0, e.nbsym)
		nearPts = ed.reflect(t, values, near, axis)
		farPts = ed.reflect(t, values, far, axis)

		if !ed.encloses(t, nearPts) || !ed.encloses(t, farPts) {
			return mirrored{}, fmt.Errorf("boundary: %s edge still inside the signal after re-mirroring: %w",
				ed.name, common.ErrInternalConsistency)
		}
	}

	if key.near == nearMax {
		return mirrored{max: nearPts, min: farPts}, nil
	}
	return mirrored{max: farPts, min: nearPts}, nil
}

// reflect mirrors the samples at idx (nearest first) around t[axis] and
// returns them ordered by position
func (ed edge) reflect(t, values []float64, idx []int, axis int) Points {
	pts := Points{
		Pos: make([]float64, len(idx)),
		Val: make([]float64, len(idx)),
	}
	for i, j := range idx {
		pts.Pos[i] = 2*t[axis] - t[j]
		pts.Val[i] = values[j]
	}

	if ed.left {
		reverseInPlace(pts.Pos)
		reverseInPlace(pts.Val)
	}
	return pts
}

// encloses reports whether the outermost point lies at or past the edge
func (ed edge) encloses(t []float64, pts Points) bool {
	if pts.Len() == 0 {
		return true
	}
	if ed.left {
		return pts.First() <= t[0]
	}
	return pts.Last() >= t[len(t)-1]
}

func interior(t, values []float64, idx []int) Points {
	pts := Points{
		Pos: make([]float64, len(idx)),
		Val: make([]float64, len(idx)),
	}
	for i, j := range idx {
		pts.Pos[i] = t[j]
		pts.Val[i] = values[j]
	}
	return pts
}

// window returns up to count elements of idx starting at from
func window(idx []int, from, count int) []int {
	if from >= len(idx) || count <= 0 {
		return nil
	}
	to := min(from+count, len(idx))
	return idx[from:to]
}

func distance(i, j int) int {
	if i > j {
		return i - j
	}
	return j - i
}

func reversed(idx []int) []int {
	out := make([]int, len(idx))
	for i, v := range idx {
		out[len(idx)-1-i] = v
	}
	return out
}

func reverseInPlace(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}
