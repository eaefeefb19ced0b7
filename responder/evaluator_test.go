package responder

import (
	"context"
	"testing"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
	"github.com/hupe1980/roundtable/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finalState(t *testing.T) *core.State {
	t.Helper()
	s := testutil.NewStateBuilder("task", 3).
		Iteration(3).
		Request(core.RoleCoordinator, core.RoleEvaluator, "evaluate", 2).
		Build()
	require.NoError(t, s.SetSolution("FINAL SOLUTION:\n\nthe plan"))
	return s
}

func TestEvaluator_ScoresSolution(t *testing.T) {
	e := NewEvaluator()

	s := finalState(t)
	require.NoError(t, e.Respond(context.Background(), s))

	assert.InDelta(t, 1.0, s.ConvergenceScore, 1e-9)
	assert.NotEmpty(t, s.Evaluation)
	assert.InDelta(t, 0.91, s.Evaluation["clarity"], 1e-9)

	resp, ok := s.LatestResponseFrom(core.RoleEvaluator)
	require.True(t, ok)
	assert.Contains(t, resp.Content, "Solution Evaluation:")
	assert.Contains(t, resp.Content, "clarity: 0.91/1.00")
	assert.Contains(t, resp.Content, "risk management: 0.72/1.00")
	assert.Equal(t, 2, resp.Iteration)
	assert.Equal(t, core.RoleCoordinator, s.ActiveRole)
}

func TestEvaluator_CustomScorer(t *testing.T) {
	e := NewEvaluator(func(o *EvaluatorOptions) {
		o.Scorer = evaluation.StaticScorer{
			Card:        evaluation.ScoreCard{"clarity": 0.4},
			Convergence: 0.4,
		}
	})

	s := finalState(t)
	require.NoError(t, e.Respond(context.Background(), s))

	assert.InDelta(t, 0.4, s.ConvergenceScore, 1e-9)
	assert.InDelta(t, 0.4, s.Evaluation["clarity"], 1e-9)
}

func TestEvaluator_ScoreNeverDrops(t *testing.T) {
	e := NewEvaluator(func(o *EvaluatorOptions) {
		o.Scorer = evaluation.StaticScorer{
			Card:        evaluation.ScoreCard{"clarity": 0.4},
			Convergence: 0.4,
		}
	})

	s := finalState(t)
	s.RaiseScore(0.8)
	require.NoError(t, e.Respond(context.Background(), s))

	assert.InDelta(t, 0.8, s.ConvergenceScore, 1e-9)
}
