package responder

import (
	"context"
	"fmt"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/router"
)

// DefaultPlan is the initial plan the coordinator records as the first work
// product of a run.
const DefaultPlan = "1. Research phase: Gather information\n" +
	"2. Analysis phase: Evaluate options\n" +
	"3. Planning phase: Develop solution\n" +
	"4. Execution phase: Implement solution"

// CoordinatorOptions configures a Coordinator instance.
type CoordinatorOptions struct {
	// Router supplies the routing decision for each cycle. Must be the same
	// instance the engine validates against. Defaults to router.New().
	Router *router.Router

	// ArtifactStore receives the plan and final solution as work products.
	// Optional; when nil only the state's artifact map is updated.
	ArtifactStore core.ArtifactStore

	// Plan overrides the initial plan text.
	Plan string
}

// Coordinator manages the collaboration: each turn it consults the router,
// issues the cycle's request messages, and advances the iteration counter.
// It is the only responder that moves state.Iteration, and its turn is the
// only one that appends request messages.
//
// On the final cycle it assembles the draft solution from the executor's
// recent responses and hands it to the evaluator.
type Coordinator struct {
	router    *router.Router
	artifacts core.ArtifactStore
	plan      string
}

// NewCoordinator constructs a Coordinator with optional overrides.
func NewCoordinator(optFns ...func(o *CoordinatorOptions)) *Coordinator {
	opts := CoordinatorOptions{
		Router: router.New(),
		Plan:   DefaultPlan,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Coordinator{
		router:    opts.Router,
		artifacts: opts.ArtifactStore,
		plan:      opts.Plan,
	}
}

// Router returns the router this coordinator sequences with.
func (c *Coordinator) Router() *router.Router { return c.router }

// Respond implements core.Responder. It materialises the router's decision:
// request messages are stamped with the current iteration, then the counter
// advances and the selected role becomes active.
func (c *Coordinator) Respond(_ context.Context, s *core.State) error {
	d := c.router.Route(s)

	switch {
	case d.Bootstrap:
		s.Artifacts["plan"] = c.plan
		c.saveArtifact(s, "plan", c.plan)
		s.Append(core.NewRequest(core.RoleCoordinator, d.Next,
			fmt.Sprintf("Please research the following task: %s", s.Task), s.Iteration))

	case d.Final:
		solution := "FINAL SOLUTION:\n\n" + c.router.DraftSolution(s)
		if err := s.SetSolution(solution); err != nil {
			return err
		}
		s.Artifacts["solution"] = solution
		c.saveArtifact(s, "solution", solution)
		s.Append(core.NewRequest(core.RoleCoordinator, core.RoleEvaluator,
			"Please evaluate this solution:\n\n"+solution, s.Iteration))

	case len(d.Missing) > 0:
		for _, role := range d.Missing {
			s.Append(core.NewRequest(core.RoleCoordinator, role,
				"Following up on my previous request. Please respond.", s.Iteration))
		}

	default:
		s.Append(core.NewRequest(core.RoleCoordinator, d.Next, c.requestContent(d, s), s.Iteration))
	}

	s.ActiveRole = d.Next
	s.Iteration++

	return nil
}

// requestContent builds the request body for a regular phase cycle. The
// default phases reference the previous phase's latest output; custom phases
// get a generic prompt.
func (c *Coordinator) requestContent(d router.Decision, s *core.State) string {
	switch d.Phase {
	case "research":
		return "Please continue researching and provide additional information."
	case "critique":
		research, _ := s.LatestResponseFrom(core.RoleResearcher)
		return "Please critique this research and suggest improvements:\n\n" + research.Content
	case "execution":
		critique, _ := s.LatestResponseFrom(core.RoleCritic)
		return "Based on our research and critique, please develop a solution:\n\n" + critique.Content
	default:
		return fmt.Sprintf("Please handle the %s phase of the task: %s", d.Phase, s.Task)
	}
}

func (c *Coordinator) saveArtifact(s *core.State, id, content string) {
	if c.artifacts == nil {
		return
	}
	// Store failures do not fail the turn; the state map stays authoritative.
	_ = c.artifacts.Save(s.RunID, id, []byte(content))
}
