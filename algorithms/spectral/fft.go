package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT runs the go-dsp transforms behind the Hilbert analysis
type FFT struct {
	// No state needed - go-dsp caches its own factors
}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the spectrum of a real signal of any length
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputeInverse returns the normalized inverse transform
func (f *FFT) ComputeInverse(x []complex128) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.IFFT(x)
}

// OneSided turns the spectrum of a real signal of length len(spectrum)
// into the spectrum of its analytic signal, in place: positive bins are
// doubled, negative bins zeroed, DC and Nyquist left alone
func (f *FFT) OneSided(spectrum []complex128) {
	n := len(spectrum)
	for k := 1; k < (n+1)/2; k++ {
		spectrum[k] *= 2
	}
	for k := n/2 + 1; k < n; k++ {
		spectrum[k] = 0
	}
}
