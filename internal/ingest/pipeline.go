// Package ingest orchestrates the ingestion of markdown files: chunking,
// embedding, vector upsert, and catalog bookkeeping for incremental
// re-ingestion.
package ingest

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"voicekb/internal/chunker"
	"voicekb/internal/contextutil"
	"voicekb/internal/embed"
	"voicekb/internal/storage"
	"voicekb/internal/vectorstore"
)

// EmbedBatchSize is the embedding window size during ingestion. Kept smaller
// than the retrieval-side default to stay under the embedding API rate limit
// when ingesting large knowledge bases.
const EmbedBatchSize = 5

// FileResult reports what happened to a single file.
type FileResult struct {
	Skipped    bool
	Title      string
	ChunkCount int
	CharCounts []int
}

// Pipeline ingests markdown files into the vector store and the catalog.
type Pipeline struct {
	chunker   *chunker.MarkdownChunker
	embedder  embed.Embedder
	store     vectorstore.VectorStore
	docRepo   storage.DocumentStore
	chunkRepo storage.ChunkStore
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	c *chunker.MarkdownChunker,
	embedder embed.Embedder,
	store vectorstore.VectorStore,
	docRepo storage.DocumentStore,
	chunkRepo storage.ChunkStore,
) *Pipeline {
	return &Pipeline{
		chunker:   c,
		embedder:  embedder,
		store:     store,
		docRepo:   docRepo,
		chunkRepo: chunkRepo,
	}
}

// IngestFile ingests one markdown file. root is the ingestion root directory
// and relPath the file's path relative to it; relPath is the catalog key.
// Files whose content hash matches the catalog are skipped, otherwise old
// vector points are replaced with freshly chunked and embedded content.
func (p *Pipeline) IngestFile(ctx context.Context, root, relPath string) (*FileResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	content, err := os.ReadFile(filepath.Join(root, relPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", relPath, err)
	}

	hash := sha256.Sum256(content)
	hashHex := fmt.Sprintf("%x", hash)

	existing, err := p.docRepo.GetByPath(ctx, relPath)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing document: %w", err)
	}

	if existing != nil && existing.Hash == hashHex {
		logger.DebugContext(ctx, "skipping unchanged file", "path", relPath, "hash", hashHex)
		return &FileResult{Skipped: true, Title: existing.Title}, nil
	}

	title := extractTitle(content, relPath)

	// Source metadata uses the bare filename; spoken answers cite files, not
	// directory trees.
	chunks := p.chunker.ChunkDocument(string(content), filepath.Base(relPath))
	if len(chunks) == 0 {
		logger.WarnContext(ctx, "no chunks generated", "path", relPath)
		return &FileResult{Title: title}, nil
	}

	docID := uuid.New().String()
	if existing != nil {
		docID = existing.ID
	}

	if err := p.docRepo.Upsert(ctx, &storage.DocumentRecord{
		ID:    docID,
		Path:  relPath,
		Title: title,
		Hash:  hashHex,
	}); err != nil {
		return nil, fmt.Errorf("failed to upsert document: %w", err)
	}

	if existing != nil {
		if err := p.removeOldChunks(ctx, docID); err != nil {
			return nil, err
		}
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectors, err := p.embedder.EmbedBatch(ctx, texts, embed.TaskDocument, EmbedBatchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunks), len(vectors))
	}

	records := make([]storage.ChunkRecord, len(chunks))
	points := make([]vectorstore.Point, len(chunks))
	charCounts := make([]int, len(chunks))

	for i, chunk := range chunks {
		records[i] = storage.ChunkRecord{
			ID:         chunk.ID,
			DocumentID: docID,
			ChunkIndex: i,
			Header:     chunk.Meta.Header,
			Level:      chunk.Meta.Level,
			CharCount:  chunk.CharCount(),
		}
		points[i] = vectorstore.Point{
			ID:  chunk.ID,
			Vec: vectors[i],
			Payload: map[string]any{
				"text":        chunk.Text,
				"source":      chunk.Meta.Source,
				"header":      chunk.Meta.Header,
				"level":       chunk.Meta.Level,
				"chunk_index": i,
			},
		}
		charCounts[i] = chunk.CharCount()
	}

	if err := p.chunkRepo.Insert(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to insert chunk records: %w", err)
	}

	if err := p.store.Upsert(ctx, points); err != nil {
		return nil, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.InfoContext(ctx, "ingested file", "path", relPath, "title", title, "chunks", len(chunks))

	return &FileResult{
		Title:      title,
		ChunkCount: len(chunks),
		CharCounts: charCounts,
	}, nil
}

// removeOldChunks drops a document's previous chunks from both stores.
// Vector-store deletion failures are logged rather than fatal; the new
// upsert overwrites any points that survived.
func (p *Pipeline) removeOldChunks(ctx context.Context, docID string) error {
	logger := contextutil.LoggerFromContext(ctx)

	oldIDs, err := p.chunkRepo.ListIDsByDocument(ctx, docID)
	if err != nil {
		return fmt.Errorf("failed to list old chunk IDs: %w", err)
	}
	if len(oldIDs) == 0 {
		return nil
	}

	if err := p.store.Delete(ctx, oldIDs); err != nil {
		logger.WarnContext(ctx, "failed to delete old vector points", "error", err, "count", len(oldIDs))
	}

	if err := p.chunkRepo.DeleteByDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete old chunk records: %w", err)
	}
	return nil
}

// IngestDir walks root recursively and ingests every markdown file.
// Per-file errors are logged and counted but do not stop the run; a non-nil
// error is returned alongside the stats when any file failed.
func (p *Pipeline) IngestDir(ctx context.Context, root string) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Hidden directories (.git, .obsidian) are not knowledge base content.
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	logger.InfoContext(ctx, "starting ingestion", "root", root, "total_files", len(files))

	stats := &Stats{}
	for _, relPath := range files {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		result, err := p.IngestFile(ctx, root, relPath)
		if err != nil {
			stats.FilesFailed++
			logger.ErrorContext(ctx, "failed to ingest file", "path", relPath, "error", err)
			continue
		}

		if result.Skipped {
			stats.FilesSkipped++
			continue
		}

		stats.FilesProcessed++
		stats.recordChunks(result.CharCounts)
		stats.ChunksEmbedded += result.ChunkCount
	}
	stats.finalize()

	logger.InfoContext(ctx, "ingestion completed",
		"processed", stats.FilesProcessed,
		"skipped", stats.FilesSkipped,
		"failed", stats.FilesFailed,
		"chunks", stats.ChunksEmbedded,
	)

	if stats.FilesFailed > 0 {
		return stats, fmt.Errorf("ingestion completed with %d errors", stats.FilesFailed)
	}
	return stats, nil
}
