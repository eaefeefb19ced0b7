package core

import "errors"

// ErrSolutionSet is returned when a run attempts to finalize a solution twice.
var ErrSolutionSet = errors.New("solution already set")

// State is the mutable aggregate of an orchestration run: the task, the
// append-only message log, intermediate artifacts, iteration counters and the
// convergence signal.
//
// Ownership discipline: exactly one role is active per turn and the engine
// hands the same *State to each responder serially, so no locking is needed.
// The struct must never be shared across concurrent writers; use Clone for
// snapshots handed to observers.
//
// Invariants:
//   - Task is set once at creation and never mutated
//   - Iteration is monotonically non-decreasing
//   - Solution is set at most once
//   - ConvergenceScore only ever increases, and only an evaluator turn moves it
type State struct {
	RunID            string             `json:"run_id"`
	Task             string             `json:"task"`
	Messages         []Message          `json:"messages"`
	Artifacts        map[string]any     `json:"artifacts"`
	ActiveRole       Role               `json:"active_role"`
	Iteration        int                `json:"iteration"`
	MaxIterations    int                `json:"max_iterations"`
	ConvergenceScore float64            `json:"convergence_score"`
	Solution         *string            `json:"solution,omitempty"`
	Evaluation       map[string]float64 `json:"evaluation,omitempty"`
}

// NewState creates the starting state for a run.
func NewState(task string, maxIterations int) *State {
	return &State{
		Task:          task,
		Messages:      []Message{},
		Artifacts:     map[string]any{},
		ActiveRole:    RoleCoordinator,
		MaxIterations: maxIterations,
	}
}

// Append adds a message to the log. Messages are immutable once appended.
func (s *State) Append(m Message) {
	s.Messages = append(s.Messages, m)
}

// LatestRequestTo returns the most recent request addressed to the role,
// including broadcasts. The boolean reports whether one exists.
func (s *State) LatestRequestTo(r Role) (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		m := s.Messages[i]
		if m.Kind == KindRequest && m.AddressedTo(r) {
			return m, true
		}
	}
	return Message{}, false
}

// LatestResponseFrom returns the most recent response authored by the role.
func (s *State) LatestResponseFrom(r Role) (Message, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		m := s.Messages[i]
		if m.Kind == KindResponse && m.From == r {
			return m, true
		}
	}
	return Message{}, false
}

// ResponsesFrom returns every response authored by the role in log order.
func (s *State) ResponsesFrom(r Role) []Message {
	var res []Message
	for _, m := range s.Messages {
		if m.Kind == KindResponse && m.From == r {
			res = append(res, m)
		}
	}
	return res
}

// CycleMessages returns the messages stamped with the given iteration in
// log order.
func (s *State) CycleMessages(iteration int) []Message {
	var res []Message
	for _, m := range s.Messages {
		if m.Iteration == iteration {
			res = append(res, m)
		}
	}
	return res
}

// SetSolution finalizes the run's solution. It fails if a solution was
// already recorded.
func (s *State) SetSolution(solution string) error {
	if s.Solution != nil {
		return ErrSolutionSet
	}
	s.Solution = &solution
	return nil
}

// RaiseScore moves the convergence score up to the given value. Downward
// moves are ignored so the score stays monotone. Only evaluator responders
// should call this.
func (s *State) RaiseScore(score float64) {
	if score > s.ConvergenceScore {
		s.ConvergenceScore = score
	}
}

// Clone returns a deep copy of the state safe for independent inspection
// while the run continues to mutate the original.
func (s *State) Clone() *State {
	clone := &State{
		RunID:            s.RunID,
		Task:             s.Task,
		Messages:         make([]Message, len(s.Messages)),
		Artifacts:        make(map[string]any, len(s.Artifacts)),
		ActiveRole:       s.ActiveRole,
		Iteration:        s.Iteration,
		MaxIterations:    s.MaxIterations,
		ConvergenceScore: s.ConvergenceScore,
	}
	copy(clone.Messages, s.Messages)
	for k, v := range s.Artifacts {
		clone.Artifacts[k] = v
	}
	if s.Solution != nil {
		sol := *s.Solution
		clone.Solution = &sol
	}
	if s.Evaluation != nil {
		clone.Evaluation = make(map[string]float64, len(s.Evaluation))
		for k, v := range s.Evaluation {
			clone.Evaluation[k] = v
		}
	}
	return clone
}
