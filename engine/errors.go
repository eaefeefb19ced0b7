package engine

import "errors"

var (
	// ErrInvalidIterations is returned when the configured iteration budget
	// is not positive. Raised before the loop starts.
	ErrInvalidIterations = errors.New("max iterations must be positive")

	// ErrMissingResponder is returned when the role table lacks an entry for
	// a role the router can select. Raised before the loop starts.
	ErrMissingResponder = errors.New("no responder bound for role")

	// ErrNoPhases is returned when the router carries an empty phase table.
	// Raised before the loop starts.
	ErrNoPhases = errors.New("router has no phases")

	// ErrRunNotFound is returned by Cancel for an unknown or already
	// finished run.
	ErrRunNotFound = errors.New("run not found")

	// ErrScoreOwnership is returned when a non-evaluator turn moves the
	// convergence score. The score is owned by the evaluator role.
	ErrScoreOwnership = errors.New("convergence score mutated outside evaluator turn")
)
