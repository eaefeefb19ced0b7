// Package responder provides the built-in role implementations: the
// coordinator that sequences phases, scripted workers for offline runs, a
// model-backed responder for LLM-driven roles, and the evaluator that scores
// solutions. All of them satisfy core.Responder; callers mix and match them
// in a core.RoleTable.
package responder

import "github.com/hupe1980/roundtable/core"

// requestIteration returns the cycle a response from the role should be
// stamped with: the iteration of the latest request addressed to it, falling
// back to the previous cycle when no request exists.
func requestIteration(s *core.State, role core.Role) int {
	if req, ok := s.LatestRequestTo(role); ok {
		return req.Iteration
	}
	if s.Iteration > 0 {
		return s.Iteration - 1
	}
	return 0
}

// respond appends the role's answer to the coordinator and hands the turn
// back, the shape every worker turn shares.
func respond(s *core.State, role core.Role, content string) {
	s.Append(core.NewResponse(role, core.RoleCoordinator, content, requestIteration(s, role)))
	s.ActiveRole = core.RoleCoordinator
}
