package handlers

import (
	"net/http"

	"voicekb/internal/contextutil"
	"voicekb/internal/vectorstore"
)

// CollectionHandler exposes vector-store collection information.
type CollectionHandler struct {
	store vectorstore.VectorStore
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(store vectorstore.VectorStore) *CollectionHandler {
	return &CollectionHandler{store: store}
}

// ServeHTTP handles GET requests for collection info.
func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	info, err := h.store.GetCollectionInfo(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get collection info", "error", err)
		writeError(w, http.StatusServiceUnavailable, "Vector store unavailable")
		return
	}

	if err := writeJSON(w, info); err != nil {
		logger.ErrorContext(ctx, "failed to encode response", "error", err)
	}
}
