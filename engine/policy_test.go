package engine

import (
	"testing"

	"github.com/hupe1980/roundtable/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestConvergencePolicy_ThresholdReached(t *testing.T) {
	p := NewConvergencePolicy(0.9)

	s := testutil.NewStateBuilder("task", 10).Iteration(1).Score(0.95).Build()
	assert.True(t, p.Finished(s))

	s = testutil.NewStateBuilder("task", 10).Iteration(1).Score(0.9).Build()
	assert.True(t, p.Finished(s), "threshold is inclusive")

	s = testutil.NewStateBuilder("task", 10).Iteration(1).Score(0.89).Build()
	assert.False(t, p.Finished(s))
}

func TestConvergencePolicy_BudgetExhausted(t *testing.T) {
	p := NewConvergencePolicy(0.9)

	s := testutil.NewStateBuilder("task", 3).Iteration(3).Score(0.2).Build()
	assert.True(t, p.Finished(s))

	s = testutil.NewStateBuilder("task", 3).Iteration(2).Score(0.2).Build()
	assert.False(t, p.Finished(s))
}

func TestNewConvergencePolicy_DefaultThreshold(t *testing.T) {
	p := NewConvergencePolicy(0)
	assert.InDelta(t, 0.9, p.Threshold, 1e-9)

	p = NewConvergencePolicy(-1)
	assert.InDelta(t, 0.9, p.Threshold, 1e-9)

	p = NewConvergencePolicy(0.7)
	assert.InDelta(t, 0.7, p.Threshold, 1e-9)
}
