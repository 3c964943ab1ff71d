package spectral

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
)

// AnalyticSignal returns x + i·H(x), where H is the Hilbert transform.
// Negative frequencies are zeroed and positive ones doubled; DC and the
// Nyquist bin are kept as they are.
func AnalyticSignal(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	f := NewFFT()
	spectrum := f.Compute(x)
	f.OneSided(spectrum)
	return f.ComputeInverse(spectrum)
}

// InstantaneousAmplitude returns |z| for each analytic sample
func InstantaneousAmplitude(z []complex128) []float64 {
	amp := make([]float64, len(z))
	for i, v := range z {
		amp[i] = cmplx.Abs(v)
	}
	return amp
}

// UnwrappedPhase returns the phase of z with 2π jumps removed
func UnwrappedPhase(z []complex128) []float64 {
	phase := make([]float64, len(z))
	offset := 0.0
	for i, v := range z {
		p := cmplx.Phase(v)
		if i > 0 {
			jump := p + offset - phase[i-1]
			switch {
			case jump > math.Pi:
				offset -= 2 * math.Pi * math.Round(jump/(2*math.Pi))
			case jump < -math.Pi:
				offset += 2 * math.Pi * math.Round(-jump/(2*math.Pi))
			}
		}
		phase[i] = p + offset
	}
	return phase
}

// InstantaneousFrequency differentiates an unwrapped phase into Hz.
// The result has one sample less than phase.
func InstantaneousFrequency(phase []float64, sampleInterval float64) ([]float64, error) {
	if sampleInterval <= 0 {
		return nil, fmt.Errorf("spectral: sample interval must be positive, got %g: %w",
			sampleInterval, common.ErrInvalidInput)
	}
	if len(phase) < 2 {
		return []float64{}, nil
	}

	freq := make([]float64, len(phase)-1)
	for i := range freq {
		freq[i] = (phase[i+1] - phase[i]) / (2 * math.Pi * sampleInterval)
	}
	return freq, nil
}

// MarginalSpectrum accumulates amplitude over frequency: the marginal
// Hilbert spectrum of one component on bins equal-width bins
type MarginalSpectrum struct {
	Edges     []float64 `json:"edges"`     // bins+1 bin boundaries in Hz
	Amplitude []float64 `json:"amplitude"` // summed amplitude per bin
}

// NewMarginalSpectrum bins freq weighted by amp. amp may be one sample
// longer than freq, as produced by InstantaneousFrequency.
func NewMarginalSpectrum(freq, amp []float64, bins int) (*MarginalSpectrum, error) {
	if bins < 1 {
		return nil, fmt.Errorf("spectral: bins must be positive, got %d: %w", bins, common.ErrInvalidInput)
	}
	if len(amp) == len(freq)+1 {
		amp = amp[:len(freq)]
	}
	if len(amp) != len(freq) {
		return nil, fmt.Errorf("spectral: %d amplitudes for %d frequencies: %w",
			len(amp), len(freq), common.ErrShapeMismatch)
	}
	if len(freq) == 0 {
		return &MarginalSpectrum{Edges: []float64{}, Amplitude: []float64{}}, nil
	}

	sorted := append([]float64(nil), freq...)
	inds := make([]int, len(sorted))
	floats.Argsort(sorted, inds)

	weights := make([]float64, len(inds))
	for i, idx := range inds {
		weights[i] = amp[idx]
	}

	lo, hi := sorted[0], sorted[len(sorted)-1]
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	// the last divider must lie strictly above the largest value
	edges := floats.Span(make([]float64, bins+1), lo, math.Nextafter(hi, math.Inf(1)))

	return &MarginalSpectrum{
		Edges:     edges,
		Amplitude: stat.Histogram(nil, edges, sorted, weights),
	}, nil
}

// Peak returns the centre frequency of the bin holding the most amplitude
func (m *MarginalSpectrum) Peak() float64 {
	if len(m.Amplitude) == 0 {
		return 0
	}
	i := floats.MaxIdx(m.Amplitude)
	return (m.Edges[i] + m.Edges[i+1]) / 2
}
