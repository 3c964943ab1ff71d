package emd

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/sonido-emd/algorithms/common"
	"github.com/RyanBlaney/sonido-emd/algorithms/spectral"
)

// SpectrumBins is the number of frequency bins of the marginal spectrum
// used to locate each IMF's peak frequency
const SpectrumBins = 64

// Diagnostics summarizes one IMF and its Hilbert spectrum
type Diagnostics struct {
	Index         int     `json:"index"`
	Iterations    int     `json:"iterations"`
	Extrema       int     `json:"extrema"`
	ZeroCrossings int     `json:"zero_crossings"`
	Energy        float64 `json:"energy"`
	MeanAmplitude float64 `json:"mean_amplitude"`
	MeanFrequency float64 `json:"mean_frequency"` // amplitude weighted, in cycles per time unit
	PeakFrequency float64 `json:"peak_frequency"` // marginal spectrum maximum
}

// Diagnostics computes the diagnostics of every IMF
func (r *Result) Diagnostics() ([]Diagnostics, error) {
	return Diagnose(r)
}

// Diagnose runs Hilbert spectral analysis on each IMF of r
func Diagnose(r *Result) ([]Diagnostics, error) {
	dt := common.MeanSpacing(r.Time)

	out := make([]Diagnostics, 0, len(r.IMFs))
	for _, imf := range r.IMFs {
		z := spectral.AnalyticSignal(imf.Values)
		amp := spectral.InstantaneousAmplitude(z)
		freq, err := spectral.InstantaneousFrequency(spectral.UnwrappedPhase(z), dt)
		if err != nil {
			return nil, err
		}

		d := Diagnostics{
			Index:         imf.Index,
			Iterations:    imf.Iterations,
			Extrema:       imf.Extrema,
			ZeroCrossings: imf.ZeroCrossings,
			Energy:        common.Energy(imf.Values),
			MeanAmplitude: common.Mean(amp),
		}

		weights := amp[:len(freq)]
		if len(freq) > 0 && floats.Sum(weights) > 0 {
			d.MeanFrequency = stat.Mean(freq, weights)

			spectrum, err := spectral.NewMarginalSpectrum(freq, weights, SpectrumBins)
			if err != nil {
				return nil, err
			}
			d.PeakFrequency = spectrum.Peak()
		}

		out = append(out, d)
	}

	return out, nil
}
