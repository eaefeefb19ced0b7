package core

// Role identifies a named participant in an orchestration run. The set is
// closed: the router's phase table enumerates every role it can select, so
// adding a role means extending that table as well.
type Role string

const (
	// RoleCoordinator manages the collaboration: it issues requests, tracks
	// progress across cycles and assembles the final solution.
	RoleCoordinator Role = "coordinator"
	// RoleResearcher gathers and synthesizes information.
	RoleResearcher Role = "researcher"
	// RoleCritic identifies weaknesses and suggests improvements.
	RoleCritic Role = "critic"
	// RoleExecutor turns plans into concrete solutions.
	RoleExecutor Role = "executor"
	// RoleEvaluator scores a solution and signals convergence.
	RoleEvaluator Role = "evaluator"

	// RoleBroadcast addresses a message to all participants.
	RoleBroadcast Role = "broadcast"
)

// String returns the role identifier.
func (r Role) String() string { return string(r) }

// Valid reports whether r names one of the known participants.
func (r Role) Valid() bool {
	switch r {
	case RoleCoordinator, RoleResearcher, RoleCritic, RoleExecutor, RoleEvaluator:
		return true
	default:
		return false
	}
}
