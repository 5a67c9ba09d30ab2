package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"voicekb/internal/config"
	"voicekb/internal/embed"
	"voicekb/internal/http"
	"voicekb/internal/retriever"
	"voicekb/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogging(cfg)

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	if err := vectorStore.EnsureCollection(ctx, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.VectorSize)

	embedder := embed.NewGoogleClient(cfg.EmbeddingBaseURL, cfg.GoogleAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	kbRetriever := retriever.New(embedder, vectorStore, cfg.TopK, float32(cfg.ScoreThreshold))
	slog.Info("Retriever initialized", "top_k", cfg.TopK, "score_threshold", cfg.ScoreThreshold)

	router := http.NewRouter(&http.Deps{
		Retriever:   kbRetriever,
		VectorStore: vectorStore,
	})

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}

// setupLogging configures the default slog logger from config.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)
}
