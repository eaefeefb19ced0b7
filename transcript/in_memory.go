// Package transcript provides persistence for run message histories and
// final state snapshots so finished or failed runs can be inspected after
// the fact.
package transcript

import (
	"fmt"
	"sync"

	"github.com/hupe1980/roundtable/core"
)

// ErrUnknownRun is returned when no record exists for a run identifier.
var ErrUnknownRun = fmt.Errorf("unknown run")

// InMemoryStore is a volatile TranscriptStore implementation storing records
// in process local maps. It is safe for concurrent access and best suited
// for tests or ephemeral demo runs. Returned values are copies to prevent
// external mutation of internal state.
type InMemoryStore struct {
	mu        sync.RWMutex
	messages  map[string][]core.Message
	snapshots map[string]*core.State
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		messages:  make(map[string][]core.Message),
		snapshots: make(map[string]*core.State),
	}
}

// AppendMessage adds a message to the run's history.
func (s *InMemoryStore) AppendMessage(runID string, m core.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[runID] = append(s.messages[runID], m)
	return nil
}

// Messages returns a copy of the run's message history in append order.
func (s *InMemoryStore) Messages(runID string) ([]core.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history, ok := s.messages[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	out := make([]core.Message, len(history))
	copy(out, history)
	return out, nil
}

// SaveSnapshot stores a clone of the run's state, overwriting any previous
// snapshot.
func (s *InMemoryStore) SaveSnapshot(runID string, state *core.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[runID] = state.Clone()
	return nil
}

// Snapshot returns a clone of the run's stored state.
func (s *InMemoryStore) Snapshot(runID string) (*core.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.snapshots[runID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return state.Clone(), nil
}
