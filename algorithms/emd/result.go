package emd

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// IMF is one intrinsic mode function with the bookkeeping of its extraction
type IMF struct {
	Index         int       `json:"index"`
	Values        []float64 `json:"values"`
	Iterations    int       `json:"iterations"`
	Extrema       int       `json:"extrema"`
	ZeroCrossings int       `json:"zero_crossings"`
}

// Result holds the IMFs of one decomposition in extraction order.
// The residue is not stored; see Residue.
type Result struct {
	Time      []float64 `json:"time"`
	IMFs      []IMF     `json:"imfs"`
	Scale     float64   `json:"scale"`
	EndReason EndReason `json:"end_reason"`
}

// Len returns the number of IMFs
func (r *Result) Len() int {
	return len(r.IMFs)
}

// IMF returns the i-th IMF
func (r *Result) IMF(i int) (IMF, bool) {
	if i < 0 || i >= len(r.IMFs) {
		return IMF{}, false
	}
	return r.IMFs[i], true
}

// Reconstruct returns the sum of all IMFs
func (r *Result) Reconstruct() []float64 {
	sum := make([]float64, len(r.Time))
	for _, imf := range r.IMFs {
		floats.Add(sum, imf.Values)
	}
	return sum
}

// Residue returns signal minus the sum of all IMFs
func (r *Result) Residue(signal []float64) ([]float64, error) {
	if len(signal) != len(r.Time) {
		return nil, fmt.Errorf("emd: residue of %d samples for a %d sample decomposition: %w",
			len(signal), len(r.Time), ErrShapeMismatch)
	}
	residue := make([]float64, len(signal))
	floats.SubTo(residue, signal, r.Reconstruct())
	return residue, nil
}

// OrthogonalityIndex returns Σ_{j≠k} <IMF_j, IMF_k> / <signal, signal>.
// Near zero means the IMFs leaked little energy into each other.
func (r *Result) OrthogonalityIndex(signal []float64) (float64, error) {
	if len(signal) != len(r.Time) {
		return 0, fmt.Errorf("emd: orthogonality of %d samples for a %d sample decomposition: %w",
			len(signal), len(r.Time), ErrShapeMismatch)
	}
	total := floats.Dot(signal, signal)
	if total == 0 {
		return 0, nil
	}

	sum := r.Reconstruct()
	cross := floats.Dot(sum, sum)
	for _, imf := range r.IMFs {
		cross -= floats.Dot(imf.Values, imf.Values)
	}
	return cross / total, nil
}
