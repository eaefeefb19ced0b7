package artifact

import (
	"errors"
	"testing"

	"github.com/hupe1980/roundtable/core"
)

// Interface compliance (compile-time assertion)
var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveGetDelete(t *testing.T) {
	store := NewInMemoryStore()

	if _, err := store.Get("run1", "plan"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	data := []byte("the plan")
	if err := store.Save("run1", "plan", data); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// mutation safety (input is copied)
	data[0] = 'X'
	got, err := store.Get("run1", "plan")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != "the plan" {
		t.Fatalf("expected stored copy, got %q", got)
	}

	// mutation safety (output is copied)
	got[0] = 'Y'
	again, _ := store.Get("run1", "plan")
	if string(again) != "the plan" {
		t.Fatalf("expected copy isolation, got %q", again)
	}

	if err := store.Delete("run1", "plan"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete("run1", "plan"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestInMemoryStore_List(t *testing.T) {
	store := NewInMemoryStore()

	ids, err := store.List("empty")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list, got %v", ids)
	}

	_ = store.Save("run1", "plan", []byte("p"))
	_ = store.Save("run1", "solution", []byte("s"))

	ids, _ = store.List("run1")
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
}
