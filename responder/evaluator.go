package responder

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/evaluation"
)

// EvaluatorOptions configures an Evaluator instance.
type EvaluatorOptions struct {
	// Scorer assesses the draft solution. Defaults to evaluation.DefaultScorer.
	Scorer evaluation.Scorer
}

// Evaluator scores the draft solution and signals convergence. It is the
// only responder allowed to move the convergence score, and the score only
// ever moves up.
type Evaluator struct {
	scorer evaluation.Scorer
}

// NewEvaluator constructs an Evaluator with optional overrides.
func NewEvaluator(optFns ...func(o *EvaluatorOptions)) *Evaluator {
	opts := EvaluatorOptions{
		Scorer: evaluation.DefaultScorer(),
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Evaluator{scorer: opts.Scorer}
}

// Respond implements core.Responder.
func (e *Evaluator) Respond(_ context.Context, s *core.State) error {
	var draft string
	if s.Solution != nil {
		draft = *s.Solution
	}

	card, convergence := e.scorer.Score(s.Task, draft)

	s.Evaluation = card.Clone()
	s.RaiseScore(convergence)

	respond(s, core.RoleEvaluator, formatEvaluation(card, convergence))

	return nil
}

// formatEvaluation renders the score card as the evaluator's response body.
// Metrics are sorted for deterministic output.
func formatEvaluation(card evaluation.ScoreCard, convergence float64) string {
	names := make([]string, 0, len(card))
	for name := range card {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Solution Evaluation:\n\nMetrics:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %.2f/1.00\n", strings.ReplaceAll(name, "_", " "), card[name])
	}
	fmt.Fprintf(&b, "\nOverall assessment: %.1f%% optimal solution (convergence %.2f)", card.Overall()*100, convergence)
	return b.String()
}
