// Package embed provides text embedding via the Google Generative Language
// API (text-embedding-004 family).
package embed

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks voicekb/internal/embed Embedder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// TaskType selects task-optimized embeddings.
type TaskType string

const (
	// TaskDocument is used when embedding knowledge-base chunks for storage.
	TaskDocument TaskType = "RETRIEVAL_DOCUMENT"
	// TaskQuery is used when embedding a search query.
	TaskQuery TaskType = "RETRIEVAL_QUERY"
)

// DefaultBatchSize is the window size for batch embedding. Requests within a
// window are issued concurrently; the next window starts only after the
// whole window completes.
const DefaultBatchSize = 10

// Embedder defines the embedding operations the pipeline and retriever need.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string, task TaskType) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, preserving input
	// order. The whole batch fails on the first error.
	EmbedBatch(ctx context.Context, texts []string, task TaskType, batchSize int) ([][]float32, error)
}

// GoogleClient is an Embedder backed by the Generative Language REST API.
type GoogleClient struct {
	BaseURL      string // e.g. "https://generativelanguage.googleapis.com"
	APIKey       string
	Model        string // e.g. "models/text-embedding-004"
	ExpectedSize int    // Expected vector size for validation; 0 disables the check.
	client       *http.Client
}

// NewGoogleClient creates an embeddings client. expectedSize should match
// the vector-store collection dimension so mismatches fail fast.
func NewGoogleClient(baseURL, apiKey, model string, expectedSize int) *GoogleClient {
	return &GoogleClient{
		BaseURL:      strings.TrimRight(baseURL, "/"),
		APIKey:       apiKey,
		Model:        model,
		ExpectedSize: expectedSize,
		client:       http.DefaultClient,
	}
}

// embedContentRequest is the request payload for the embedContent endpoint.
type embedContentRequest struct {
	Model    string  `json:"model"`
	Content  content `json:"content"`
	TaskType string  `json:"taskType"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// embedContentResponse is the response from the embedContent endpoint.
type embedContentResponse struct {
	Embedding struct {
		Values []float64 `json:"values"`
	} `json:"embedding"`
}

// Embed generates an embedding for a single text using the given task type.
func (c *GoogleClient) Embed(ctx context.Context, text string, task TaskType) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty input text")
	}

	url := fmt.Sprintf("%s/v1beta/%s:embedContent?key=%s", c.BaseURL, c.Model, c.APIKey)

	payload := embedContentRequest{
		Model:    c.Model,
		Content:  content{Parts: []part{{Text: text}}},
		TaskType: string(task),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status %d: %s", resp.StatusCode, string(raw))
	}

	var embeddingResp embedContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	values := embeddingResp.Embedding.Values
	if len(values) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}
	if c.ExpectedSize > 0 && len(values) != c.ExpectedSize {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(values), c.ExpectedSize)
	}

	vec := make([]float32, len(values))
	for i, v := range values {
		vec[i] = float32(v)
	}
	return vec, nil
}

// EmbedBatch embeds texts in fixed-size windows. Each window's requests run
// concurrently and the window is awaited before the next one starts, keeping
// result order aligned with input order. The first failure aborts the batch.
func (c *GoogleClient) EmbedBatch(ctx context.Context, texts []string, task TaskType, batchSize int) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("empty input array")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	vectors := make([][]float32, len(texts))

	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}

		var wg sync.WaitGroup
		errs := make([]error, end-start)

		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				vec, err := c.Embed(ctx, texts[i], task)
				if err != nil {
					errs[i-start] = fmt.Errorf("failed to embed text %d: %w", i, err)
					return
				}
				vectors[i] = vec
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
	}

	return vectors, nil
}
