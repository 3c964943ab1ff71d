package emd

import (
	"math"

	"github.com/RyanBlaney/sonido-emd/algorithms/boundary"
	"github.com/RyanBlaney/sonido-emd/algorithms/common"
	"github.com/RyanBlaney/sonido-emd/algorithms/extrema"
)

// SiftStep is the state of one sifting pass handed to the evaluator
type SiftStep struct {
	Iteration int       // 1-based pass number within the current IMF
	Candidate []float64 // candidate after the previous mean was removed
	Previous  []float64 // candidate before that removal
	Upper     boundary.Points
	Lower     boundary.Points
	Extrema   *extrema.Extrema // extrema of Candidate
}

// ConvergenceEvaluator decides when a sifting candidate becomes an IMF.
// It holds the stable-streak counter, so use one evaluator per IMF.
type ConvergenceEvaluator struct {
	policy             StoppingPolicy
	stdThreshold       float64
	scaledVarThreshold float64
	energyFloor        float64
	streak             int
}

// NewConvergenceEvaluator creates an evaluator for cfg's stopping policy
func NewConvergenceEvaluator(cfg Config) *ConvergenceEvaluator {
	return &ConvergenceEvaluator{
		policy:             cfg.Stopping,
		stdThreshold:       cfg.StdThreshold,
		scaledVarThreshold: cfg.ScaledVarThreshold,
		energyFloor:        cfg.EnergyFloor,
	}
}

// Accept reports whether the sifting loop should stop at this step
func (c *ConvergenceEvaluator) Accept(step SiftStep) bool {
	switch c.policy.Kind {
	case StopFixedIterations:
		// the first pass removes a zero mean
		return step.Iteration >= c.policy.N+1

	case StopFixedStableStreak:
		if step.Iteration == 1 {
			return false
		}
		if step.Extrema.Balanced() {
			c.streak++
		} else {
			c.streak = 0
		}
		return c.streak >= c.policy.N

	default:
		// Candidate equals Previous on the first pass
		if step.Iteration == 1 {
			return false
		}
		return step.Extrema.Balanced() &&
			c.Converged(step.Candidate, step.Previous, step.Upper, step.Lower)
	}
}

// Converged is the Cauchy-type test: the envelopes must be well formed and
// either the scaled variance or the normalized difference between two
// consecutive candidates must fall below its threshold.
func (c *ConvergenceEvaluator) Converged(candidate, previous []float64, upper, lower boundary.Points) bool {
	for _, v := range upper.Val {
		if v < 0 {
			return false
		}
	}
	for _, v := range lower.Val {
		if v > 0 {
			return false
		}
	}

	if common.Energy(candidate) < c.energyFloor {
		return true
	}

	if ScaledVariance(candidate, previous) < c.scaledVarThreshold {
		return true
	}
	return NormalizedDifference(candidate, previous) < c.stdThreshold
}

// ScaledVariance returns Σ(new-old)² / (max(old)-min(old)), or +Inf when old
// is flat and the candidates differ
func ScaledVariance(candidate, previous []float64) float64 {
	var sum float64
	for i := range candidate {
		d := candidate[i] - previous[i]
		sum += d * d
	}
	spread := common.Range(previous)
	if spread == 0 {
		if sum == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return sum / spread
}

// NormalizedDifference returns Σ((new-old)/new)². Unchanged samples add
// nothing; a changed sample where new is zero makes the sum infinite.
func NormalizedDifference(candidate, previous []float64) float64 {
	var sum float64
	for i := range candidate {
		d := candidate[i] - previous[i]
		if d == 0 {
			continue
		}
		if candidate[i] == 0 {
			return math.Inf(1)
		}
		r := d / candidate[i]
		sum += r * r
	}
	return sum
}
