package memory

import (
	"fmt"
	"testing"

	"github.com/hupe1980/roundtable/core"
)

// Interface compliance (compile-time assertion)
var _ core.MemoryStore = (*InMemoryStore)(nil)

func TestInMemoryStore_StoreSearchDelete(t *testing.T) {
	store := NewInMemoryStore()

	for i := 0; i < 5; i++ {
		if err := store.Store("run1", fmt.Sprintf("finding %c", 'A'+i), map[string]any{"idx": i}); err != nil {
			t.Fatalf("store failed: %v", err)
		}
	}

	// empty query matches everything
	res, err := store.Search("run1", "", 10)
	if err != nil {
		t.Fatalf("search all failed: %v", err)
	}
	if len(res) != 5 {
		t.Fatalf("expected 5 results, got %d", len(res))
	}
	if res[0].Score != 1.0 {
		t.Fatalf("expected constant score 1.0, got %f", res[0].Score)
	}

	// substring match
	res2, _ := store.Search("run1", "finding A", 5)
	if len(res2) != 1 || res2[0].Content != "finding A" {
		t.Fatalf("expected single match, got %#v", res2)
	}

	// limit applies
	res3, _ := store.Search("run1", "", 3)
	if len(res3) != 3 {
		t.Fatalf("expected 3 limited results, got %d", len(res3))
	}

	// delete an existing memory
	if err := store.Delete("run1", res[0].ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	res4, _ := store.Search("run1", "", 10)
	if len(res4) != 4 {
		t.Fatalf("expected 4 results after delete, got %d", len(res4))
	}

	// deleting unknown ids fails
	if err := store.Delete("run1", "mem_99"); err == nil {
		t.Fatal("expected error deleting unknown memory")
	}
	if err := store.Delete("run2", "mem_0"); err == nil {
		t.Fatal("expected error deleting from unknown run")
	}
}

func TestInMemoryStore_SearchUnknownRun(t *testing.T) {
	store := NewInMemoryStore()
	res, err := store.Search("nope", "anything", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 0 {
		t.Fatalf("expected no results, got %d", len(res))
	}
}

func TestInMemoryStore_MetadataIsolation(t *testing.T) {
	store := NewInMemoryStore()
	md := map[string]any{"k": "v"}
	_ = store.Store("run1", "content", md)

	md["k"] = "changed"
	res, _ := store.Search("run1", "", 1)
	if res[0].Metadata["k"] != "v" {
		t.Fatalf("expected metadata copy isolation, got %#v", res[0].Metadata)
	}

	res[0].Metadata["k"] = "mutated"
	res2, _ := store.Search("run1", "", 1)
	if res2[0].Metadata["k"] != "v" {
		t.Fatalf("expected result metadata copy, got %#v", res2[0].Metadata)
	}
}
