package extrema

import (
	"fmt"
	"sort"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// MinExtrema is the smallest number of extrema from which envelopes can be built
const MinExtrema = 3

// Extrema holds the local extrema and zero-crossings of one signal.
// Positions are time values, indices are sample indices; both are
// strictly increasing within each series.
type Extrema struct {
	MaxIndex []int
	MaxPos   []float64
	MaxVal   []float64

	MinIndex []int
	MinPos   []float64
	MinVal   []float64

	// ZeroCrossings holds sample indices i where the signal changes sign
	// between i and i+1, plus collapsed runs of exact zeros
	ZeroCrossings []int
}

// Count returns the total number of extrema
func (e *Extrema) Count() int {
	return len(e.MaxIndex) + len(e.MinIndex)
}

// ZeroCrossingCount returns the number of zero-crossings
func (e *Extrema) ZeroCrossingCount() int {
	return len(e.ZeroCrossings)
}

// Sufficient reports whether there are enough extrema to build envelopes
func (e *Extrema) Sufficient() bool {
	return e.Count() >= MinExtrema
}

// Balanced reports whether the extrema and zero-crossing counts differ by at most one
func (e *Extrema) Balanced() bool {
	diff := e.Count() - e.ZeroCrossingCount()
	return diff >= -1 && diff <= 1
}

// Finder detects extrema and zero-crossings
type Finder struct {
	// No state needed - stateless calculation
}

// NewFinder creates a new extrema finder
func NewFinder() *Finder {
	return &Finder{}
}

// Find locates the extrema of values sampled at times t
func (f *Finder) Find(t, values []float64) (*Extrema, error) {
	if len(t) != len(values) {
		return nil, fmt.Errorf("extrema: %d time points for %d samples: %w",
			len(t), len(values), common.ErrShapeMismatch)
	}
	return Find(t, values), nil
}

// Find locates the extrema of values sampled at times t.
// t and values must have the same length.
func Find(t, values []float64) *Extrema {
	ext := &Extrema{
		ZeroCrossings: ZeroCrossings(values),
	}

	runs := encodeRuns(values)
	for k := 1; k < len(runs)-1; k++ {
		prev, cur, next := runs[k-1], runs[k], runs[k+1]

		switch {
		case cur.value > prev.value && cur.value > next.value:
			i := cur.midpoint()
			ext.MaxIndex = append(ext.MaxIndex, i)
			ext.MaxPos = append(ext.MaxPos, t[i])
			ext.MaxVal = append(ext.MaxVal, values[i])

		case cur.value < prev.value && cur.value < next.value:
			i := cur.midpoint()
			ext.MinIndex = append(ext.MinIndex, i)
			ext.MinPos = append(ext.MinPos, t[i])
			ext.MinVal = append(ext.MinVal, values[i])
		}
	}

	return ext
}

// ZeroCrossings returns the indices i with values[i]*values[i+1] < 0, merged
// with the exact-zero samples. When any two zeros are adjacent, every run of
// zeros collapses to its midpoint; otherwise isolated zeros count directly.
func ZeroCrossings(values []float64) []int {
	var crossings []int
	for i := 0; i+1 < len(values); i++ {
		if values[i]*values[i+1] < 0 {
			crossings = append(crossings, i)
		}
	}

	var zeroRuns []run
	collapse := false
	for _, r := range encodeRuns(values) {
		if r.value != 0 {
			continue
		}
		zeroRuns = append(zeroRuns, r)
		if r.length() > 1 {
			collapse = true
		}
	}
	if len(zeroRuns) == 0 {
		return crossings
	}

	for _, r := range zeroRuns {
		if collapse {
			crossings = append(crossings, r.midpoint())
		} else {
			crossings = append(crossings, r.start)
		}
	}
	sort.Ints(crossings)

	return crossings
}
