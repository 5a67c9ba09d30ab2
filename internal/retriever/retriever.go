// Package retriever combines query embedding and vector search, and formats
// the retrieved chunks for injection into an LLM prompt.
package retriever

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"voicekb/internal/contextutil"
	"voicekb/internal/embed"
	"voicekb/internal/vectorstore"
)

// Defaults for retrieval configuration.
const (
	DefaultTopK           = 3
	DefaultScoreThreshold = 0.3
)

// contextSeparator joins chunks in the formatted context string.
const contextSeparator = "\n\n---\n\n"

// sourceTextLimit is the truncation length (in characters) for source
// descriptors returned alongside the context.
const sourceTextLimit = 100

// Retriever embeds queries and searches the vector store. It holds the
// configured defaults for top-k and score threshold; per-call overrides take
// precedence.
type Retriever struct {
	embedder       embed.Embedder
	store          vectorstore.VectorStore
	topK           int
	scoreThreshold float32
}

// New creates a Retriever. Non-positive topK or scoreThreshold fall back to
// the package defaults.
func New(embedder embed.Embedder, store vectorstore.VectorStore, topK int, scoreThreshold float32) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if scoreThreshold <= 0 {
		scoreThreshold = DefaultScoreThreshold
	}
	return &Retriever{
		embedder:       embedder,
		store:          store,
		topK:           topK,
		scoreThreshold: scoreThreshold,
	}
}

// Retrieve embeds the query and searches the vector store, returning results
// in the store's descending-score order. An empty or whitespace-only query
// short-circuits to an empty result. topK and scoreThreshold override the
// configured defaults when positive. Embedding and search failures propagate
// to the caller; there is no retry at this layer.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, scoreThreshold float32) ([]RetrievalResult, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		logger.WarnContext(ctx, "empty query provided to retriever")
		return nil, nil
	}

	if topK <= 0 {
		topK = r.topK
	}
	if scoreThreshold <= 0 {
		scoreThreshold = r.scoreThreshold
	}

	start := time.Now()

	queryVector, err := r.embedder.Embed(ctx, query, embed.TaskQuery)
	if err != nil {
		logger.ErrorContext(ctx, "failed to embed query", "error", err)
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	embedTime := time.Since(start)

	searchStart := time.Now()
	points, err := r.store.Search(ctx, queryVector, topK, scoreThreshold)
	if err != nil {
		logger.ErrorContext(ctx, "failed to search vector store", "error", err)
		return nil, fmt.Errorf("failed to search vector store: %w", err)
	}

	results := make([]RetrievalResult, len(points))
	for i, point := range points {
		results[i] = resultFromScoredPoint(point)
	}

	logger.InfoContext(ctx, "retrieval completed",
		"results", len(results),
		"total_ms", time.Since(start).Milliseconds(),
		"embed_ms", embedTime.Milliseconds(),
		"search_ms", time.Since(searchStart).Milliseconds(),
	)

	return results, nil
}

// RetrieveContext retrieves chunks and joins their texts into a single
// context string for the LLM prompt. When includeMetadata is set, each chunk
// is prefixed with its 1-based index and section header. Returns "" when
// nothing was retrieved.
func (r *Retriever) RetrieveContext(ctx context.Context, query string, topK int, includeMetadata bool) (string, error) {
	results, err := r.Retrieve(ctx, query, topK, 0)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(results))
	for i, result := range results {
		if includeMetadata {
			if result.Meta.Header != "" {
				parts = append(parts, fmt.Sprintf("[%d] %s\n%s", i+1, result.Meta.Header, result.Text))
			} else {
				parts = append(parts, fmt.Sprintf("[%d] %s", i+1, result.Text))
			}
		} else {
			parts = append(parts, result.Text)
		}
	}

	return strings.Join(parts, contextSeparator), nil
}

// RetrieveWithSources retrieves chunks and returns the joined context
// alongside a parallel list of source descriptors for UI display.
func (r *Retriever) RetrieveWithSources(ctx context.Context, query string, topK int) (string, []SourceRef, error) {
	results, err := r.Retrieve(ctx, query, topK, 0)
	if err != nil {
		return "", nil, err
	}
	if len(results) == 0 {
		return "", nil, nil
	}

	parts := make([]string, 0, len(results))
	sources := make([]SourceRef, 0, len(results))

	for i, result := range results {
		parts = append(parts, result.Text)
		sources = append(sources, SourceRef{
			Index:  i + 1,
			Text:   truncate(result.Text, sourceTextLimit),
			Score:  roundScore(result.Score),
			Header: result.Meta.Header,
			Source: result.Meta.Source,
		})
	}

	return strings.Join(parts, "\n\n"), sources, nil
}

// truncate shortens text to limit characters, marking the cut with an ellipsis.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit]) + "..."
}

// roundScore rounds a similarity score to 3 decimal places for display.
func roundScore(score float32) float64 {
	return math.Round(float64(score)*1000) / 1000
}
