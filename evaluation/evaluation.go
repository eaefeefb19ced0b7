// Package evaluation defines the scoring vocabulary shared by the evaluator
// responder and the termination policy.
package evaluation

// DefaultThreshold is the convergence score at which a run exits early.
const DefaultThreshold = 0.9

// ScoreCard maps named quality dimensions to scores in [0,1].
type ScoreCard map[string]float64

// Overall returns the mean score across all dimensions, or 0 for an empty card.
func (c ScoreCard) Overall() float64 {
	if len(c) == 0 {
		return 0
	}
	var sum float64
	for _, v := range c {
		sum += v
	}
	return sum / float64(len(c))
}

// Clone returns an independent copy of the card.
func (c ScoreCard) Clone() ScoreCard {
	clone := make(ScoreCard, len(c))
	for k, v := range c {
		clone[k] = v
	}
	return clone
}

// Scorer assesses a draft solution. It returns the per-dimension score card
// and the convergence score the evaluator should report for the run.
type Scorer interface {
	Score(task, draft string) (ScoreCard, float64)
}

// StaticScorer returns fixed values on every call. Useful for tests, demos
// and offline runs.
type StaticScorer struct {
	Card        ScoreCard
	Convergence float64
}

// Score implements Scorer.
func (s StaticScorer) Score(string, string) (ScoreCard, float64) {
	return s.Card.Clone(), s.Convergence
}

// DefaultScorer reproduces the reference assessment: a filled score card and
// a convergence score that accepts the solution as final.
func DefaultScorer() Scorer {
	return StaticScorer{
		Card: ScoreCard{
			"comprehensiveness":   0.85,
			"feasibility":         0.78,
			"clarity":             0.91,
			"risk_management":     0.72,
			"resource_allocation": 0.80,
			"overall_quality":     0.82,
		},
		Convergence: 1.0,
	}
}
