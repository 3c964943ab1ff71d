package emd

import (
	"fmt"

	"github.com/RyanBlaney/sonido-emd/algorithms/boundary"
	"github.com/RyanBlaney/sonido-emd/algorithms/interpolation"
)

// StoppingKind selects how a sifting candidate is accepted
type StoppingKind string

const (
	StopCauchy            StoppingKind = "cauchy"
	StopFixedIterations   StoppingKind = "fixed_iterations"
	StopFixedStableStreak StoppingKind = "fixed_stable_streak"
)

// StoppingPolicy is a stopping kind plus its count for the fixed policies
type StoppingPolicy struct {
	Kind StoppingKind `json:"kind"`
	N    int          `json:"n,omitempty"`
}

// Cauchy accepts a candidate once it stops changing between passes
func Cauchy() StoppingPolicy {
	return StoppingPolicy{Kind: StopCauchy}
}

// FixedIterations stops after n mean-envelope subtractions
func FixedIterations(n int) StoppingPolicy {
	return StoppingPolicy{Kind: StopFixedIterations, N: n}
}

// FixedStableStreak stops after n consecutive passes whose extrema and
// zero-crossing counts differ by at most one
func FixedStableStreak(n int) StoppingPolicy {
	return StoppingPolicy{Kind: StopFixedStableStreak, N: n}
}

// Config holds every tunable of a decomposition. It is a plain value and
// is never mutated by the sifter.
type Config struct {
	// Envelope construction
	SplineKind string `json:"spline_kind"` // akima, cubic, linear, slinear, quadratic
	NBSym      int    `json:"nbsym"`       // mirrored points per edge

	// Sifting stop
	Stopping           StoppingPolicy `json:"stopping"`
	StdThreshold       float64        `json:"std_threshold"`
	ScaledVarThreshold float64        `json:"scaled_var_threshold"`
	EnergyFloor        float64        `json:"energy_floor"`
	MaxIteration       int            `json:"max_iteration"` // per IMF

	// Decomposition stop
	RangeThreshold      float64 `json:"range_threshold"`
	TotalPowerThreshold float64 `json:"total_power_threshold"`

	// Signal is divided by (max-min)/ScaleFactor before sifting
	ScaleFactor float64 `json:"scale_factor"`
}

// DefaultConfig returns the standard EMD configuration
func DefaultConfig() Config {
	return Config{
		SplineKind:          string(interpolation.Akima),
		NBSym:               boundary.DefaultNBSym,
		Stopping:            Cauchy(),
		StdThreshold:        0.2,
		ScaledVarThreshold:  0.001,
		EnergyFloor:         1e-10,
		MaxIteration:        10000,
		RangeThreshold:      0.001,
		TotalPowerThreshold: 0.01,
		ScaleFactor:         100,
	}
}

// Validate checks the configuration before any sifting happens
func (c Config) Validate() error {
	if _, err := interpolation.ParseMethod(c.SplineKind); err != nil {
		return err
	}
	if c.NBSym < 1 {
		return fmt.Errorf("emd: nbsym must be positive, got %d: %w", c.NBSym, ErrInvalidInput)
	}
	if c.MaxIteration < 1 {
		return fmt.Errorf("emd: max iteration must be positive, got %d: %w", c.MaxIteration, ErrInvalidInput)
	}
	if c.ScaleFactor <= 0 {
		return fmt.Errorf("emd: scale factor must be positive, got %g: %w", c.ScaleFactor, ErrInvalidInput)
	}
	if c.StdThreshold < 0 || c.ScaledVarThreshold < 0 || c.EnergyFloor < 0 ||
		c.RangeThreshold < 0 || c.TotalPowerThreshold < 0 {
		return fmt.Errorf("emd: thresholds must be non-negative: %w", ErrInvalidInput)
	}

	switch c.Stopping.Kind {
	case StopCauchy, "":
	case StopFixedIterations, StopFixedStableStreak:
		if c.Stopping.N < 1 {
			return fmt.Errorf("emd: %s needs a positive count, got %d: %w",
				c.Stopping.Kind, c.Stopping.N, ErrInvalidInput)
		}
	default:
		return fmt.Errorf("emd: unknown stopping policy %q: %w", c.Stopping.Kind, ErrInvalidInput)
	}

	return nil
}
