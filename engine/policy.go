package engine

import (
	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
)

// TerminationPolicy decides when a run is finished. The engine evaluates it
// once per full cycle, after the worker's response has been appended.
type TerminationPolicy interface {
	Finished(s *core.State) bool
}

// ConvergencePolicy is the default policy: a run finishes when the
// convergence score reaches the threshold (quality-based early exit) or the
// iteration budget is exhausted. No other exit path exists.
type ConvergencePolicy struct {
	Threshold float64
}

// NewConvergencePolicy constructs the default policy. A non-positive
// threshold falls back to evaluation.DefaultThreshold.
func NewConvergencePolicy(threshold float64) ConvergencePolicy {
	if threshold <= 0 {
		threshold = evaluation.DefaultThreshold
	}
	return ConvergencePolicy{Threshold: threshold}
}

// Finished implements TerminationPolicy.
func (p ConvergencePolicy) Finished(s *core.State) bool {
	if s.ConvergenceScore >= p.Threshold {
		return true
	}
	return s.Iteration >= s.MaxIterations
}
