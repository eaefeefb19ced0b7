package core

import (
	"errors"
	"testing"
)

func TestMessage_NewRequestAndResponse(t *testing.T) {
	req := NewRequest(RoleCoordinator, RoleResearcher, "dig in", 2)
	if req.ID == "" {
		t.Fatal("expected generated message ID")
	}
	if req.Kind != KindRequest || req.From != RoleCoordinator || req.To != RoleResearcher {
		t.Fatalf("unexpected request envelope: %+v", req)
	}
	if req.Iteration != 2 {
		t.Fatalf("expected iteration 2, got %d", req.Iteration)
	}
	if req.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}

	resp := NewResponse(RoleResearcher, RoleCoordinator, "findings", 2)
	if resp.Kind != KindResponse {
		t.Fatalf("unexpected kind: %s", resp.Kind)
	}
}

func TestMessage_AddressedTo(t *testing.T) {
	direct := NewRequest(RoleCoordinator, RoleCritic, "review", 0)
	if !direct.AddressedTo(RoleCritic) {
		t.Error("direct message should address its target")
	}
	if direct.AddressedTo(RoleExecutor) {
		t.Error("direct message should not address other roles")
	}

	broadcast := NewRequest(RoleCoordinator, RoleBroadcast, "all hands", 0)
	if !broadcast.AddressedTo(RoleExecutor) || !broadcast.AddressedTo(RoleCritic) {
		t.Error("broadcast should address every role")
	}
}

func TestRole_Valid(t *testing.T) {
	for _, r := range []Role{RoleCoordinator, RoleResearcher, RoleCritic, RoleExecutor, RoleEvaluator} {
		if !r.Valid() {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if Role("astrologer").Valid() {
		t.Error("unknown role should not be valid")
	}
	if RoleBroadcast.Valid() {
		t.Error("broadcast is an address, not a participant")
	}
}

func TestState_LogQueries(t *testing.T) {
	s := NewState("task", 5)
	s.Append(NewRequest(RoleCoordinator, RoleResearcher, "first", 0))
	s.Append(NewResponse(RoleResearcher, RoleCoordinator, "answer one", 0))
	s.Append(NewRequest(RoleCoordinator, RoleResearcher, "second", 1))
	s.Append(NewResponse(RoleResearcher, RoleCoordinator, "answer two", 1))

	req, ok := s.LatestRequestTo(RoleResearcher)
	if !ok || req.Content != "second" {
		t.Fatalf("expected latest request 'second', got %+v", req)
	}

	resp, ok := s.LatestResponseFrom(RoleResearcher)
	if !ok || resp.Content != "answer two" {
		t.Fatalf("expected latest response 'answer two', got %+v", resp)
	}

	if _, ok := s.LatestResponseFrom(RoleCritic); ok {
		t.Error("critic never responded")
	}

	all := s.ResponsesFrom(RoleResearcher)
	if len(all) != 2 || all[0].Content != "answer one" {
		t.Fatalf("expected 2 ordered responses, got %+v", all)
	}

	cycle := s.CycleMessages(1)
	if len(cycle) != 2 {
		t.Fatalf("expected 2 messages in cycle 1, got %d", len(cycle))
	}
}

func TestState_LatestRequestIncludesBroadcast(t *testing.T) {
	s := NewState("task", 5)
	s.Append(NewRequest(RoleCoordinator, RoleBroadcast, "everyone", 0))

	req, ok := s.LatestRequestTo(RoleExecutor)
	if !ok || req.Content != "everyone" {
		t.Fatalf("broadcast should be visible to the executor, got %+v", req)
	}
}

func TestState_SetSolutionOnce(t *testing.T) {
	s := NewState("task", 3)
	if err := s.SetSolution("the answer"); err != nil {
		t.Fatalf("first SetSolution failed: %v", err)
	}
	err := s.SetSolution("another answer")
	if !errors.Is(err, ErrSolutionSet) {
		t.Fatalf("expected ErrSolutionSet, got %v", err)
	}
	if *s.Solution != "the answer" {
		t.Fatalf("solution should be unchanged, got %q", *s.Solution)
	}
}

func TestState_RaiseScoreMonotone(t *testing.T) {
	s := NewState("task", 3)
	s.RaiseScore(0.6)
	s.RaiseScore(0.4)
	if s.ConvergenceScore != 0.6 {
		t.Fatalf("score should not move down, got %f", s.ConvergenceScore)
	}
	s.RaiseScore(0.9)
	if s.ConvergenceScore != 0.9 {
		t.Fatalf("score should move up, got %f", s.ConvergenceScore)
	}
}

func TestState_CloneIsolation(t *testing.T) {
	s := NewState("task", 3)
	s.Append(NewRequest(RoleCoordinator, RoleResearcher, "go", 0))
	s.Artifacts["plan"] = "the plan"
	_ = s.SetSolution("done")
	s.Evaluation = map[string]float64{"clarity": 0.9}

	clone := s.Clone()
	if clone == s {
		t.Fatal("Clone should be a different pointer")
	}

	clone.Append(NewResponse(RoleResearcher, RoleCoordinator, "extra", 0))
	clone.Artifacts["plan"] = "changed"
	*clone.Solution = "mutated"
	clone.Evaluation["clarity"] = 0.1

	if len(s.Messages) != 1 {
		t.Error("original log should be untouched")
	}
	if s.Artifacts["plan"] != "the plan" {
		t.Error("original artifacts should be untouched")
	}
	if *s.Solution != "done" {
		t.Error("original solution should be untouched")
	}
	if s.Evaluation["clarity"] != 0.9 {
		t.Error("original evaluation should be untouched")
	}
}

func TestCallLimiter(t *testing.T) {
	unlimited := NewCallLimiter(0)
	for i := 0; i < 10; i++ {
		if err := unlimited.Increment(); err != nil {
			t.Fatalf("unlimited limiter errored: %v", err)
		}
	}
	if unlimited.Remaining() != -1 {
		t.Fatalf("expected -1 remaining for unlimited, got %d", unlimited.Remaining())
	}

	limited := NewCallLimiter(2)
	if err := limited.Increment(); err != nil {
		t.Fatalf("call 1 failed: %v", err)
	}
	if err := limited.Increment(); err != nil {
		t.Fatalf("call 2 failed: %v", err)
	}
	if limited.Remaining() != 0 {
		t.Fatalf("expected 0 remaining, got %d", limited.Remaining())
	}
	if err := limited.Increment(); err == nil {
		t.Fatal("expected limit exceeded error")
	}
	if limited.Count() != 3 {
		t.Fatalf("expected count 3, got %d", limited.Count())
	}
}
