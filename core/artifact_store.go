package core

// ArtifactStore defines the interface for work-product persistence (plans,
// draft solutions). Implementations should be thread-safe and scope
// artifacts by run identifier. Short method names (Save/Get/List/Delete)
// mirror the other store interfaces for consistency.
type ArtifactStore interface {
	Save(runID, artifactID string, data []byte) error
	Get(runID, artifactID string) ([]byte, error)
	List(runID string) ([]string, error)
	Delete(runID, artifactID string) error
}
