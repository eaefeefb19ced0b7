package core

import "context"

// Responder produces a role's turn. Implementations must read the latest
// request addressed to their role, append exactly one response message
// targeted at the coordinator, and return without touching fields owned by
// other roles. The evaluator is the single exception: it may additionally
// raise the convergence score and record the evaluation.
//
// The engine treats responders as synchronous and opaque: a turn must
// complete (or fail) before control returns. How content is produced -
// template, model call, static string - is invisible to the core.
type Responder interface {
	Respond(ctx context.Context, state *State) error
}

// ResponderFunc adapts a plain function to the Responder interface.
type ResponderFunc func(ctx context.Context, state *State) error

// Respond implements Responder.
func (f ResponderFunc) Respond(ctx context.Context, state *State) error {
	return f(ctx, state)
}

// RoleTable binds each role to the responder invoked on its turn. It is
// constructed by the caller and injected into the engine; there is no
// process-wide registry.
type RoleTable map[Role]Responder
