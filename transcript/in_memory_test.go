package transcript

import (
	"errors"
	"testing"

	"github.com/hupe1980/roundtable/core"
)

// Interface compliance (compile-time assertion)
var _ core.TranscriptStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendAndMessages(t *testing.T) {
	store := NewInMemoryStore()

	if _, err := store.Messages("missing"); !errors.Is(err, ErrUnknownRun) {
		t.Fatalf("expected ErrUnknownRun, got %v", err)
	}

	m1 := core.NewRequest(core.RoleCoordinator, core.RoleResearcher, "go", 0)
	m2 := core.NewResponse(core.RoleResearcher, core.RoleCoordinator, "done", 0)
	if err := store.AppendMessage("run1", m1); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.AppendMessage("run1", m2); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	history, err := store.Messages("run1")
	if err != nil {
		t.Fatalf("messages failed: %v", err)
	}
	if len(history) != 2 || history[0].ID != m1.ID || history[1].ID != m2.ID {
		t.Fatalf("unexpected history: %+v", history)
	}

	// mutation safety (returned slice is a copy)
	history[0].Content = "changed"
	again, _ := store.Messages("run1")
	if again[0].Content != "go" {
		t.Fatalf("expected copy isolation, got %q", again[0].Content)
	}
}

func TestInMemoryStore_Snapshots(t *testing.T) {
	store := NewInMemoryStore()

	if _, err := store.Snapshot("missing"); !errors.Is(err, ErrUnknownRun) {
		t.Fatalf("expected ErrUnknownRun, got %v", err)
	}

	state := core.NewState("task", 5)
	state.RunID = "run1"
	state.Iteration = 2
	if err := store.SaveSnapshot("run1", state); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// Later mutations to the original must not leak into the snapshot.
	state.Iteration = 4

	got, err := store.Snapshot("run1")
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if got.Iteration != 2 {
		t.Fatalf("expected snapshot iteration 2, got %d", got.Iteration)
	}

	// Overwrite is allowed.
	if err := store.SaveSnapshot("run1", state); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	got, _ = store.Snapshot("run1")
	if got.Iteration != 4 {
		t.Fatalf("expected overwritten iteration 4, got %d", got.Iteration)
	}
}
