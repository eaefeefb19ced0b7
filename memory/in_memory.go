// Package memory provides recall storage responders can use to carry
// findings across orchestration cycles.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/roundtable/core"
)

// storedMemory is the internal representation persisted by InMemoryStore. It
// mirrors the core.SearchResult shape (ID, content, metadata) without a
// score field since scoring is trivial here.
type storedMemory struct {
	id       string
	content  string
	metadata map[string]any
}

// InMemoryStore is a naive process-local MemoryStore offering append-only
// stored memories with substring Search.
//
// Concurrency: protected by RWMutex.
// Search: linear scan in insertion order with substring matching (case
// sensitive) assigning a constant score of 1.0 to every hit. Suitable only
// for tests / demos; swap for a vector index for production retrieval.
type InMemoryStore struct {
	mu      sync.RWMutex
	storage map[string][]storedMemory // runID -> stored memories
}

// NewInMemoryStore creates a new in-memory memory store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{storage: make(map[string][]storedMemory)}
}

// Store appends a new stored memory generating a simple incremental id.
func (m *InMemoryStore) Store(runID string, content string, metadata map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	md := make(map[string]any, len(metadata))
	for k, v := range metadata {
		md[k] = v
	}
	memoryID := fmt.Sprintf("mem_%d", len(m.storage[runID]))
	m.storage[runID] = append(m.storage[runID], storedMemory{id: memoryID, content: content, metadata: md})
	return nil
}

// Search performs a simple substring match over stored memories. Results are
// returned in insertion order up to the provided limit. Each result receives
// a constant score of 1.0. An empty query matches everything.
func (m *InMemoryStore) Search(runID string, query string, limit int) ([]core.SearchResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored, exists := m.storage[runID]
	if !exists {
		return []core.SearchResult{}, nil
	}
	results := make([]core.SearchResult, 0, limit)
	for _, sm := range stored {
		if len(results) >= limit {
			break
		}
		if query == "" || strings.Contains(sm.content, query) {
			md := make(map[string]any, len(sm.metadata))
			for k, v := range sm.metadata {
				md[k] = v
			}
			results = append(results, core.SearchResult{ID: sm.id, Content: sm.content, Score: 1.0, Metadata: md})
		}
	}
	return results, nil
}

// Delete removes a stored memory by id.
func (m *InMemoryStore) Delete(runID string, memoryID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, exists := m.storage[runID]
	if !exists {
		return fmt.Errorf("memory %s not found", memoryID)
	}
	for i, sm := range stored {
		if sm.id == memoryID {
			m.storage[runID] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("memory %s not found", memoryID)
}
