package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks voicekb/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"
)

// DocumentStore defines catalog operations for ingested documents.
type DocumentStore interface {
	// GetByPath returns the document record for a path.
	// Returns ErrNotFound if the document has never been ingested.
	GetByPath(ctx context.Context, path string) (*DocumentRecord, error)
	// Upsert inserts or replaces the record for a document.
	Upsert(ctx context.Context, doc *DocumentRecord) error
	// Count returns the number of cataloged documents.
	Count(ctx context.Context) (int, error)
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// GetByPath returns the document record for a path.
func (r *DocumentRepo) GetByPath(ctx context.Context, path string) (*DocumentRecord, error) {
	var doc DocumentRecord
	err := r.db.QueryRowContext(ctx,
		"SELECT id, path, title, hash, updated_at FROM documents WHERE path = ?",
		path,
	).Scan(&doc.ID, &doc.Path, &doc.Title, &doc.Hash, &doc.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query document: %w", err)
	}

	return &doc, nil
}

// Upsert inserts or replaces the record for a document, keyed by path.
func (r *DocumentRepo) Upsert(ctx context.Context, doc *DocumentRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, path, title, hash, updated_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(path) DO UPDATE SET title = excluded.title, hash = excluded.hash, updated_at = CURRENT_TIMESTAMP`,
		doc.ID, doc.Path, doc.Title, doc.Hash,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

// Count returns the number of cataloged documents.
func (r *DocumentRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}
