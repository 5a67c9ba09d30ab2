package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks voicekb/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with payload metadata.
type Point struct {
	ID      string
	Vec     []float32
	Payload map[string]any
}

// ScoredPoint is a similarity-search result. Results are ordered by
// descending score as returned by the store; callers must not re-sort.
type ScoredPoint struct {
	ID      string
	Score   float32
	Payload map[string]any
}

// CollectionInfo describes the state of the collection.
type CollectionInfo struct {
	Name         string `json:"name"`
	VectorsCount int    `json:"vectors_count"`
	PointsCount  int    `json:"points_count"`
	Status       string `json:"status"`
}

// VectorStore defines the vector storage operations used by the retrieval
// and ingestion pipelines. Implementations are scoped to one collection.
type VectorStore interface {
	// Upsert inserts or updates points in the collection.
	Upsert(ctx context.Context, points []Point) error

	// Search performs a similarity search, returning at most topK points
	// with score >= scoreThreshold, ordered by descending score.
	Search(ctx context.Context, query []float32, topK int, scoreThreshold float32) ([]ScoredPoint, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, ids []string) error

	// CollectionExists reports whether the collection exists.
	CollectionExists(ctx context.Context) (bool, error)

	// EnsureCollection creates the collection if missing and validates the
	// vector size if it already exists.
	EnsureCollection(ctx context.Context, vectorSize int) error

	// DeleteCollection removes the collection if it exists.
	DeleteCollection(ctx context.Context) error

	// GetCollectionInfo returns collection name, counts and status.
	GetCollectionInfo(ctx context.Context) (*CollectionInfo, error)

	// Close releases the underlying client connection.
	Close() error
}
