package storage

import "time"

// DocumentRecord is a catalog entry for one ingested markdown file.
type DocumentRecord struct {
	ID        string // UUID
	Path      string // Path relative to the ingestion root
	Title     string // Extracted document title
	Hash      string // SHA-256 hex of file content
	UpdatedAt time.Time
}

// ChunkRecord is a catalog entry for one chunk of an ingested document.
// The chunk text itself lives in the vector-store payload; the catalog only
// tracks identity and shape.
type ChunkRecord struct {
	ID         string // UUID, same as the vector-store point ID
	DocumentID string // Foreign key to documents.id
	ChunkIndex int    // Position within the document, starting at 0
	Header     string // Nearest enclosing heading text
	Level      int    // Heading depth, 0 for headerless content
	CharCount  int    // Character count of the chunk text
}
