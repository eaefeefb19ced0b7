package testutil

import (
	"github.com/hupe1980/roundtable/core"
)

// StateBuilder helps construct run states with fluent chaining for tests.
// Example:
//
//	s := NewStateBuilder("solve it", 5).Iteration(2).Request(core.RoleCoordinator, core.RoleCritic, "review", 1).Build()
type StateBuilder struct {
	task          string
	maxIterations int
	iteration     int
	score         float64
	messages      []core.Message
	artifacts     map[string]any
}

// NewStateBuilder creates a new builder for a state with the given task and
// iteration budget. Use chainable methods then call Build.
func NewStateBuilder(task string, maxIterations int) *StateBuilder {
	return &StateBuilder{task: task, maxIterations: maxIterations, artifacts: map[string]any{}}
}

// Iteration sets the current orchestration cycle (chainable).
func (b *StateBuilder) Iteration(n int) *StateBuilder {
	b.iteration = n
	return b
}

// Score sets the convergence score (chainable).
func (b *StateBuilder) Score(s float64) *StateBuilder {
	b.score = s
	return b
}

// Artifact stores a key/value artifact on the resulting state (chainable).
func (b *StateBuilder) Artifact(key string, val any) *StateBuilder {
	b.artifacts[key] = val
	return b
}

// Request appends a request message to the log (chainable).
func (b *StateBuilder) Request(from, to core.Role, content string, iteration int) *StateBuilder {
	b.messages = append(b.messages, core.NewRequest(from, to, content, iteration))
	return b
}

// Response appends a response message to the log (chainable).
func (b *StateBuilder) Response(from, to core.Role, content string, iteration int) *StateBuilder {
	b.messages = append(b.messages, core.NewResponse(from, to, content, iteration))
	return b
}

// Message appends a pre-built message to the log (chainable).
func (b *StateBuilder) Message(m core.Message) *StateBuilder {
	b.messages = append(b.messages, m)
	return b
}

// Build returns a *core.State with pre-populated log and counters.
func (b *StateBuilder) Build() *core.State {
	s := core.NewState(b.task, b.maxIterations)
	s.RunID = core.NewID()
	s.Iteration = b.iteration

	for k, v := range b.artifacts {
		s.Artifacts[k] = v
	}
	for _, m := range b.messages {
		s.Append(m)
	}
	if b.score > 0 {
		s.RaiseScore(b.score)
	}

	return s
}
