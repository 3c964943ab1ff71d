package emd

import (
	"errors"
	"fmt"
	"math"

	"github.com/RyanBlaney/sonido-emd/algorithms/boundary"
	"github.com/RyanBlaney/sonido-emd/algorithms/common"
	"github.com/RyanBlaney/sonido-emd/algorithms/extrema"
	"github.com/RyanBlaney/sonido-emd/algorithms/interpolation"
	"github.com/RyanBlaney/sonido-emd/logging"
)

// MinSamples is the shortest signal Decompose accepts
const MinSamples = 4

// Option customizes a Sifter
type Option func(*Sifter)

// WithLogger sets the logger used for sifting diagnostics
func WithLogger(logger logging.Logger) Option {
	return func(s *Sifter) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Sifter runs decompositions with one validated configuration.
// It keeps no per-call state and may be shared between goroutines.
type Sifter struct {
	config       Config
	finder       *extrema.Finder
	extender     *boundary.Extender
	interpolator *interpolation.Interpolator
	logger       logging.Logger
}

// NewSifter validates cfg and creates a sifter
func NewSifter(cfg Config, opts ...Option) (*Sifter, error) {
	if cfg.Stopping.Kind == "" {
		cfg.Stopping = Cauchy()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	interpolator, err := interpolation.NewInterpolator(cfg.SplineKind)
	if err != nil {
		return nil, err
	}

	s := &Sifter{
		config:       cfg,
		finder:       extrema.NewFinder(),
		extender:     boundary.NewExtender(cfg.NBSym),
		interpolator: interpolator,
		logger:       logging.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.WithFields(logging.Fields{
		"component": "emd_sifter",
	})

	return s, nil
}

// Config returns the sifter's configuration
func (s *Sifter) Config() Config {
	return s.config
}

// Decompose performs EMD with the default configuration
func Decompose(signal, t []float64, maxIMF int) (*Result, error) {
	s, err := NewSifter(DefaultConfig())
	if err != nil {
		return nil, err
	}
	return s.Decompose(signal, t, maxIMF)
}

// Decompose splits signal into IMFs. A nil t means sample indices
// 0..N-1. maxIMF <= 0 leaves the count to the end conditions.
func (s *Sifter) Decompose(signal, t []float64, maxIMF int) (*Result, error) {
	if t == nil {
		t = common.SampleIndexGrid(len(signal))
	}
	if err := checkSignal(signal, t); err != nil {
		return nil, err
	}

	logger := s.logger.WithFields(logging.Fields{
		"samples": len(signal),
		"spline":  s.config.SplineKind,
	})

	scale := common.Range(signal) / s.config.ScaleFactor
	if scale == 0 {
		scale = 1
	}
	residue := common.Scaled(signal, 1/scale)

	result := &Result{
		Time:  append([]float64(nil), t...),
		IMFs:  []IMF{},
		Scale: scale,
	}
	end := NewEndConditionEvaluator(s.config, maxIMF)

	for {
		outcome, err := s.sift(t, residue)
		if err != nil {
			logger.Error(err, "Sifting failed", logging.Fields{"imf": len(result.IMFs)})
			return nil, err
		}
		if outcome.trend {
			result.EndReason = EndNoOscillation
			break
		}

		ext := extrema.Find(t, outcome.values)
		imf := IMF{
			Index:         len(result.IMFs),
			Values:        outcome.values,
			Iterations:    outcome.iterations,
			Extrema:       ext.Count(),
			ZeroCrossings: ext.ZeroCrossingCount(),
		}
		result.IMFs = append(result.IMFs, imf)
		residue = common.Sub(residue, outcome.values)

		logger.Debug("IMF extracted", logging.Fields{
			"imf":            imf.Index,
			"iterations":     imf.Iterations,
			"extrema":        imf.Extrema,
			"zero_crossings": imf.ZeroCrossings,
		})

		if outcome.terminal {
			result.EndReason = EndNoOscillation
			break
		}
		if stop, reason := end.Evaluate(residue, len(result.IMFs)); stop {
			result.EndReason = reason
			break
		}
	}

	for i := range result.IMFs {
		result.IMFs[i].Values = common.Scaled(result.IMFs[i].Values, scale)
	}

	logger.Debug("Decomposition finished", logging.Fields{
		"imfs":   len(result.IMFs),
		"reason": string(result.EndReason),
	})

	return result, nil
}

func checkSignal(signal, t []float64) error {
	if len(signal) != len(t) {
		return fmt.Errorf("emd: %d time points for %d samples: %w",
			len(t), len(signal), ErrShapeMismatch)
	}
	if len(signal) < MinSamples {
		return fmt.Errorf("emd: need at least %d samples, got %d: %w",
			MinSamples, len(signal), ErrInvalidInput)
	}
	for i, v := range signal {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("emd: non-finite sample %g at index %d: %w", v, i, ErrInvalidInput)
		}
	}
	if err := common.CheckStrictlyIncreasing("emd: time", t); err != nil {
		return err
	}
	return nil
}

// siftOutcome is the candidate left when the inner loop exits
type siftOutcome struct {
	values     []float64
	iterations int
	terminal   bool // no oscillation left after this component
	trend      bool // the residue itself was monotonic: nothing to record
}

// sift runs the inner loop on one residue until the stopping policy accepts
// the candidate, envelopes can no longer be built, or MaxIteration passes
func (s *Sifter) sift(t, residue []float64) (siftOutcome, error) {
	candidate := append([]float64(nil), residue...)
	mean := make([]float64, len(residue))
	convergence := NewConvergenceEvaluator(s.config)

	n := 0
	for n < s.config.MaxIteration {
		n++

		ext := extrema.Find(t, candidate)
		if !ext.Sufficient() {
			return siftOutcome{
				values:     candidate,
				iterations: n,
				terminal:   true,
				trend:      n == 1,
			}, nil
		}

		previous := candidate
		candidate = common.Sub(candidate, mean)

		env, err := s.envelopes(t, candidate)
		if errors.Is(err, boundary.ErrInsufficientExtrema) {
			return siftOutcome{values: candidate, iterations: n}, nil
		}
		if err != nil {
			return siftOutcome{}, err
		}
		mean = common.Midpoint(env.upper, env.lower)

		step := SiftStep{
			Iteration: n,
			Candidate: candidate,
			Previous:  previous,
			Upper:     env.maxPts,
			Lower:     env.minPts,
			Extrema:   extrema.Find(t, candidate),
		}
		if convergence.Accept(step) {
			break
		}
	}

	return siftOutcome{values: candidate, iterations: n}, nil
}

type envelopePair struct {
	maxPts, minPts boundary.Points
	upper, lower   []float64
}

// envelopes builds the upper and lower envelopes of values over the whole grid
func (s *Sifter) envelopes(t, values []float64) (envelopePair, error) {
	ext, err := s.finder.Find(t, values)
	if err != nil {
		return envelopePair{}, err
	}

	maxPts, minPts, err := s.extender.Extend(t, values, ext)
	if err != nil {
		return envelopePair{}, err
	}

	_, upper, err := s.interpolator.Envelope(t, maxPts)
	if err != nil {
		return envelopePair{}, fmt.Errorf("emd: upper envelope: %w", err)
	}
	_, lower, err := s.interpolator.Envelope(t, minPts)
	if err != nil {
		return envelopePair{}, fmt.Errorf("emd: lower envelope: %w", err)
	}

	if len(upper) != len(t) || len(lower) != len(t) {
		return envelopePair{}, fmt.Errorf("emd: envelopes cover %d and %d of %d samples: %w",
			len(upper), len(lower), len(t), ErrInternalConsistency)
	}

	return envelopePair{maxPts: maxPts, minPts: minPts, upper: upper, lower: lower}, nil
}
