package core

// TranscriptStore persists the message history and final state snapshot of
// orchestration runs so finished or failed runs can be inspected after the
// fact. Implementations should be thread-safe and scope records by run
// identifier.
type TranscriptStore interface {
	AppendMessage(runID string, m Message) error
	Messages(runID string) ([]Message, error)
	SaveSnapshot(runID string, s *State) error
	Snapshot(runID string) (*State, error)
}
