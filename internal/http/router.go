// Package http wires the API routes and middleware.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"voicekb/internal/handlers"
	"voicekb/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Retriever   handlers.ContextRetriever
	VectorStore vectorstore.VectorStore
}

// NewRouter creates the API router.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	queryHandler := handlers.NewQueryHandler(deps.Retriever)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore)
	collectionHandler := handlers.NewCollectionHandler(deps.VectorStore)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/query", queryHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodGet, "/collection", collectionHandler)
	})

	return r
}
