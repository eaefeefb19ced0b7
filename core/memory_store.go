package core

// SearchResult is a single hit returned by MemoryStore.Search.
type SearchResult struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// MemoryStore defines persistence + retrieval (search) for findings a
// responder wants to recall on later cycles. Implementations can back search
// with embeddings, keywords or any heuristic.
type MemoryStore interface {
	Store(runID string, content string, metadata map[string]any) error
	Search(runID string, query string, limit int) ([]SearchResult, error)
	Delete(runID string, memoryID string) error
}
