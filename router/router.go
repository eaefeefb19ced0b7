// Package router provides turn selection for Roundtable runs.
//
// The router decides which role acts next based on the current state. It
// replaces a hard-coded role chain with an ordered phase table, so the
// sequencing logic can be tested phase by phase and extended with custom
// phases without touching the orchestration loop.
package router

import (
	"strings"

	"github.com/hupe1980/roundtable/core"
)

// NoSolution is the draft handed to the evaluator when no executor response
// exists to build a solution from.
const NoSolution = "No solution developed."

// Phase is one entry of the ordered phase table: a named sub-task owned by a
// role. Non-terminal phases cycle in table order; the evaluator turn is
// terminal and not part of the table.
type Phase struct {
	Name string
	Role core.Role
}

// DefaultPhases is the research -> critique -> execution cycle.
var DefaultPhases = []Phase{
	{Name: "research", Role: core.RoleResearcher},
	{Name: "critique", Role: core.RoleCritic},
	{Name: "execution", Role: core.RoleExecutor},
}

// Decision is the routing outcome for one orchestration cycle. The
// coordinator materialises it: it appends a request message for every entry
// in Requests and hands the turn to Next.
type Decision struct {
	// Next is the role to activate this cycle.
	Next core.Role
	// Requests lists the roles to (re-)request, in order.
	Requests []core.Role
	// Missing lists roles whose requests from the previous cycle went
	// unanswered. Non-empty Missing means this cycle re-requests instead of
	// advancing the phase.
	Missing []core.Role
	// Phase names the sub-task this cycle works on.
	Phase string
	// Bootstrap marks the very first cycle of a run.
	Bootstrap bool
	// Final marks the evaluation cycle that closes the run.
	Final bool
}

// Options configures a Router instance.
type Options struct {
	// Phases is the ordered table of non-terminal phases. Defaults to
	// DefaultPhases if empty.
	Phases []Phase
}

// Router selects the next role for each orchestration cycle. Route is a pure
// function of the state, so it is safe to call it repeatedly for the same
// state (the engine does, for starvation accounting).
type Router struct {
	phases []Phase
}

// New constructs a Router with optional overrides.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{Phases: DefaultPhases}

	for _, fn := range optFns {
		fn(&opts)
	}

	if len(opts.Phases) == 0 {
		opts.Phases = DefaultPhases
	}

	phases := make([]Phase, len(opts.Phases))
	copy(phases, opts.Phases)

	return &Router{phases: phases}
}

// Phases returns a copy of the phase table.
func (r *Router) Phases() []Phase {
	phases := make([]Phase, len(r.phases))
	copy(phases, r.phases)
	return phases
}

// Roles returns every role the router can select, in selection order. The
// engine validates the role table against this set before a run starts.
func (r *Router) Roles() []core.Role {
	seen := map[core.Role]bool{}
	var roles []core.Role
	for _, p := range r.phases {
		if !seen[p.Role] {
			seen[p.Role] = true
			roles = append(roles, p.Role)
		}
	}
	if !seen[core.RoleEvaluator] {
		roles = append(roles, core.RoleEvaluator)
	}
	return roles
}

// Route decides the next turn. The policy, in order:
//
//  1. Iteration 0 bootstraps the first phase (the coordinator always seeds
//     the researcher first).
//  2. On the final iteration the evaluator is selected unconditionally.
//  3. If any request from the previous cycle went unanswered, the missing
//     roles are re-requested and the first missing role is selected instead
//     of advancing; the modulo clock keeps running, so a re-request cycle
//     still consumes an iteration.
//  4. Otherwise the phase is iteration mod N. Advancing past the first phase
//     requires a response from the previous phase's role somewhere in the
//     log; without one the earliest unmet phase is re-requested instead.
func (r *Router) Route(s *core.State) Decision {
	iter := s.Iteration

	if iter == 0 {
		first := r.phases[0]
		return Decision{
			Next:      first.Role,
			Requests:  []core.Role{first.Role},
			Phase:     first.Name,
			Bootstrap: true,
		}
	}

	if iter >= s.MaxIterations-1 {
		return Decision{
			Next:     core.RoleEvaluator,
			Requests: []core.Role{core.RoleEvaluator},
			Phase:    "evaluation",
			Final:    true,
		}
	}

	phase := r.phases[iter%len(r.phases)]

	if missing := r.missingResponses(s, iter-1); len(missing) > 0 {
		return Decision{
			Next:     missing[0],
			Requests: missing,
			Missing:  missing,
			Phase:    phase.Name,
		}
	}

	// Advancing needs the previous phase's output; re-request the earliest
	// unmet phase when it is absent.
	if idx := iter % len(r.phases); idx > 0 {
		prev := r.phases[idx-1].Role
		if _, ok := s.LatestResponseFrom(prev); !ok {
			unmet := r.earliestUnmetPhase(s)
			return Decision{
				Next:     unmet.Role,
				Requests: []core.Role{unmet.Role},
				Phase:    unmet.Name,
			}
		}
	}

	return Decision{
		Next:     phase.Role,
		Requests: []core.Role{phase.Role},
		Phase:    phase.Name,
	}
}

// DraftSolution concatenates the most recent two executor responses into the
// draft handed to the evaluator, or NoSolution if the executor never
// responded.
func (r *Router) DraftSolution(s *core.State) string {
	responses := s.ResponsesFrom(core.RoleExecutor)
	if len(responses) == 0 {
		return NoSolution
	}
	if len(responses) > 2 {
		responses = responses[len(responses)-2:]
	}
	parts := make([]string, len(responses))
	for i, m := range responses {
		parts[i] = m.Content
	}
	return strings.Join(parts, "\n")
}

// missingResponses returns the roles the coordinator requested in the given
// cycle that did not answer, preserving request order.
func (r *Router) missingResponses(s *core.State, cycle int) []core.Role {
	answered := map[core.Role]bool{}
	var needed []core.Role
	seen := map[core.Role]bool{}

	for _, m := range s.CycleMessages(cycle) {
		switch {
		case m.Kind == core.KindRequest && m.From == core.RoleCoordinator:
			if !seen[m.To] {
				seen[m.To] = true
				needed = append(needed, m.To)
			}
		case m.Kind == core.KindResponse && m.AddressedTo(core.RoleCoordinator):
			answered[m.From] = true
		}
	}

	var missing []core.Role
	for _, role := range needed {
		if !answered[role] {
			missing = append(missing, role)
		}
	}
	return missing
}

// earliestUnmetPhase returns the first phase whose role has no response
// anywhere in the log, defaulting to the first phase.
func (r *Router) earliestUnmetPhase(s *core.State) Phase {
	for _, p := range r.phases {
		if _, ok := s.LatestResponseFrom(p.Role); !ok {
			return p
		}
	}
	return r.phases[0]
}
