package chunker

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

// Metadata carries provenance information for a chunk.
type Metadata struct {
	// Source is the originating document identifier (filename for ingested
	// files). Defaults to "unknown" when the caller provides none.
	Source string
	// Header is the nearest enclosing heading text. Empty for headerless content.
	Header string
	// Level is the heading depth (1-3). Zero means no enclosing heading.
	Level int
}

// Chunk is an immutable unit of document text with provenance metadata.
// It is the unit of embedding and vector storage; its ID is used as the
// vector-store point key.
type Chunk struct {
	ID   string
	Text string
	Meta Metadata
}

// newChunk creates a chunk with a freshly generated UUID.
func newChunk(text string, meta Metadata) Chunk {
	return Chunk{
		ID:   uuid.New().String(),
		Text: text,
		Meta: meta,
	}
}

// CharCount returns the number of characters (runes) in the chunk text.
func (c Chunk) CharCount() int {
	return utf8.RuneCountInString(c.Text)
}
