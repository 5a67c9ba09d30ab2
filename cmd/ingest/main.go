// Command ingest chunks, embeds, and stores a directory of markdown files
// in the knowledge base. Unchanged files (by content hash) are skipped, so
// repeated runs only pay for what changed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"voicekb/internal/chunker"
	"voicekb/internal/config"
	"voicekb/internal/embed"
	"voicekb/internal/ingest"
	"voicekb/internal/storage"
	"voicekb/internal/vectorstore"
)

func main() {
	dir := flag.String("dir", "", "directory of markdown files to ingest (required)")
	recreate := flag.Bool("recreate", false, "drop and recreate the collection before ingesting")
	flag.Parse()

	if *dir == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	ctx := context.Background()

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey, cfg.QdrantCollection)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	defer func() {
		_ = vectorStore.Close()
	}()

	if *recreate {
		slog.Info("Recreating collection", "collection", cfg.QdrantCollection)
		if err := vectorStore.DeleteCollection(ctx); err != nil {
			log.Fatalf("Failed to delete collection: %v", err)
		}
		// The catalog must be reset too, or unchanged files would be
		// skipped against an empty collection.
		if _, err := db.ExecContext(ctx, "DELETE FROM documents"); err != nil {
			log.Fatalf("Failed to reset catalog: %v", err)
		}
	}

	if err := vectorStore.EnsureCollection(ctx, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := embed.NewGoogleClient(cfg.EmbeddingBaseURL, cfg.GoogleAPIKey, cfg.EmbeddingModel, cfg.VectorSize)

	pipeline := ingest.NewPipeline(
		chunker.NewMarkdownChunker(cfg.ChunkSize, cfg.ChunkOverlap, cfg.MinChunkSize),
		embedder,
		vectorStore,
		storage.NewDocumentRepo(db),
		storage.NewChunkRepo(db),
	)

	stats, runErr := pipeline.IngestDir(ctx, *dir)

	if stats != nil {
		fmt.Printf("Files processed: %d\n", stats.FilesProcessed)
		fmt.Printf("Files skipped:   %d\n", stats.FilesSkipped)
		fmt.Printf("Files failed:    %d\n", stats.FilesFailed)
		fmt.Printf("Chunks embedded: %d\n", stats.ChunksEmbedded)
		if stats.ChunksCreated > 0 {
			fmt.Printf("Chunk chars:     min %d / max %d / mean %.1f\n",
				stats.CharStats.Min, stats.CharStats.Max, stats.CharStats.Mean)
		}
	}

	if runErr != nil {
		log.Fatalf("Ingestion failed: %v", runErr)
	}
}
