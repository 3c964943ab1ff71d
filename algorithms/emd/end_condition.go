package emd

import "github.com/RyanBlaney/sonido-emd/algorithms/common"

// EndReason names why the decomposition stopped
type EndReason string

const (
	EndNone          EndReason = ""
	EndRange         EndReason = "range"
	EndTotalPower    EndReason = "total_power"
	EndIMFBudget     EndReason = "imf_budget"
	EndNoOscillation EndReason = "no_oscillation"
)

// EndConditionEvaluator decides when no further IMFs should be extracted
type EndConditionEvaluator struct {
	rangeThreshold      float64
	totalPowerThreshold float64
	maxIMF              int
}

// NewEndConditionEvaluator creates an evaluator; maxIMF <= 0 means no budget
func NewEndConditionEvaluator(cfg Config, maxIMF int) *EndConditionEvaluator {
	return &EndConditionEvaluator{
		rangeThreshold:      cfg.RangeThreshold,
		totalPowerThreshold: cfg.TotalPowerThreshold,
		maxIMF:              maxIMF,
	}
}

// Evaluate checks the residue left after imfCount IMFs were extracted
func (e *EndConditionEvaluator) Evaluate(residue []float64, imfCount int) (bool, EndReason) {
	if common.Range(residue) < e.rangeThreshold {
		return true, EndRange
	}
	if common.SumAbs(residue) < e.totalPowerThreshold {
		return true, EndTotalPower
	}
	if e.maxIMF > 0 && imfCount >= e.maxIMF {
		return true, EndIMFBudget
	}
	return false, EndNone
}
