package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_context_retriever.go -package=mocks voicekb/internal/handlers ContextRetriever

import (
	"context"
	"encoding/json"
	"net/http"

	"voicekb/internal/contextutil"
	"voicekb/internal/retriever"
)

// maxTopK bounds user-provided top_k values.
const maxTopK = 20

// ContextRetriever is the retrieval surface the query handler needs.
type ContextRetriever interface {
	RetrieveContext(ctx context.Context, query string, topK int, includeMetadata bool) (string, error)
	RetrieveWithSources(ctx context.Context, query string, topK int) (string, []retriever.SourceRef, error)
}

// QueryHandler handles knowledge-base retrieval requests.
type QueryHandler struct {
	retriever ContextRetriever
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(r ContextRetriever) *QueryHandler {
	return &QueryHandler{retriever: r}
}

// QueryRequest is the request payload for retrieval queries.
type QueryRequest struct {
	Query string `json:"query"`
	// TopK overrides the configured result count when positive; bounded at 20.
	TopK int `json:"top_k,omitempty"`
	// IncludeMetadata prefixes each context chunk with its index and header.
	// Ignored when WithSources is set.
	IncludeMetadata bool `json:"include_metadata,omitempty"`
	// WithSources requests source descriptors alongside the context.
	WithSources bool `json:"with_sources,omitempty"`
}

// QueryResponse is the response payload for retrieval queries.
type QueryResponse struct {
	Context string                `json:"context"`
	Sources []retriever.SourceRef `json:"sources,omitempty"`
}

// ServeHTTP handles POST requests for retrieval queries. An empty knowledge
// base or a query below the score threshold yields an empty context, not an
// error.
func (h *QueryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Query == "" {
		logger.WarnContext(ctx, "empty query in request")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	if req.TopK < 0 {
		req.TopK = 0
	}
	if req.TopK > maxTopK {
		req.TopK = maxTopK
	}

	var resp QueryResponse
	var err error

	if req.WithSources {
		resp.Context, resp.Sources, err = h.retriever.RetrieveWithSources(ctx, req.Query, req.TopK)
	} else {
		resp.Context, err = h.retriever.RetrieveContext(ctx, req.Query, req.TopK, req.IncludeMetadata)
	}
	if err != nil {
		logger.ErrorContext(ctx, "retrieval failed", "error", err)
		status, message := statusForRetrievalError(err)
		writeError(w, status, message)
		return
	}

	if err := writeJSON(w, resp); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
