package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return db
}

func TestDocumentRepo_GetByPath_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)

	_, err := repo.GetByPath(context.Background(), "missing.md")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByPath() error = %v, want ErrNotFound", err)
	}
}

func TestDocumentRepo_UpsertAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{
		ID:    uuid.New().String(),
		Path:  "guides/setup.md",
		Title: "Setup Guide",
		Hash:  "abc123",
	}
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	got, err := repo.GetByPath(ctx, "guides/setup.md")
	if err != nil {
		t.Fatalf("GetByPath() error: %v", err)
	}
	if got.ID != doc.ID || got.Title != doc.Title || got.Hash != doc.Hash {
		t.Errorf("GetByPath() = %+v, want %+v", got, doc)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("GetByPath() UpdatedAt is zero")
	}
}

func TestDocumentRepo_UpsertReplacesByPath(t *testing.T) {
	db := newTestDB(t)
	repo := NewDocumentRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{ID: uuid.New().String(), Path: "a.md", Title: "Old", Hash: "old"}
	if err := repo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	updated := &DocumentRecord{ID: doc.ID, Path: "a.md", Title: "New", Hash: "new"}
	if err := repo.Upsert(ctx, updated); err != nil {
		t.Fatalf("Upsert() second call error: %v", err)
	}

	got, err := repo.GetByPath(ctx, "a.md")
	if err != nil {
		t.Fatalf("GetByPath() error: %v", err)
	}
	if got.Title != "New" || got.Hash != "new" {
		t.Errorf("GetByPath() after upsert = %+v, want updated title and hash", got)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestChunkRepo_InsertAndList(t *testing.T) {
	db := newTestDB(t)
	docRepo := NewDocumentRepo(db)
	chunkRepo := NewChunkRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{ID: uuid.New().String(), Path: "b.md", Hash: "h"}
	if err := docRepo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}

	chunks := []ChunkRecord{
		{ID: uuid.New().String(), DocumentID: doc.ID, ChunkIndex: 1, Header: "Second", Level: 2, CharCount: 120},
		{ID: uuid.New().String(), DocumentID: doc.ID, ChunkIndex: 0, Header: "First", Level: 1, CharCount: 80},
	}
	if err := chunkRepo.Insert(ctx, chunks); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	ids, err := chunkRepo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ListIDsByDocument() returned %d ids, want 2", len(ids))
	}
	// Ordered by chunk_index, not insertion order.
	if ids[0] != chunks[1].ID || ids[1] != chunks[0].ID {
		t.Errorf("ListIDsByDocument() = %v, want index order", ids)
	}
}

func TestChunkRepo_InsertEmpty(t *testing.T) {
	db := newTestDB(t)
	chunkRepo := NewChunkRepo(db)

	if err := chunkRepo.Insert(context.Background(), nil); err != nil {
		t.Errorf("Insert(nil) error: %v", err)
	}
}

func TestChunkRepo_InsertRejectsUnknownDocument(t *testing.T) {
	db := newTestDB(t)
	chunkRepo := NewChunkRepo(db)

	chunks := []ChunkRecord{
		{ID: uuid.New().String(), DocumentID: "no-such-document", ChunkIndex: 0},
	}
	if err := chunkRepo.Insert(context.Background(), chunks); err == nil {
		t.Error("Insert() with unknown document expected foreign key error, got nil")
	}
}

func TestChunkRepo_DeleteByDocument(t *testing.T) {
	db := newTestDB(t)
	docRepo := NewDocumentRepo(db)
	chunkRepo := NewChunkRepo(db)
	ctx := context.Background()

	doc := &DocumentRecord{ID: uuid.New().String(), Path: "c.md", Hash: "h"}
	if err := docRepo.Upsert(ctx, doc); err != nil {
		t.Fatalf("Upsert() error: %v", err)
	}
	chunks := []ChunkRecord{
		{ID: uuid.New().String(), DocumentID: doc.ID, ChunkIndex: 0},
		{ID: uuid.New().String(), DocumentID: doc.ID, ChunkIndex: 1},
	}
	if err := chunkRepo.Insert(ctx, chunks); err != nil {
		t.Fatalf("Insert() error: %v", err)
	}

	if err := chunkRepo.DeleteByDocument(ctx, doc.ID); err != nil {
		t.Fatalf("DeleteByDocument() error: %v", err)
	}

	ids, err := chunkRepo.ListIDsByDocument(ctx, doc.ID)
	if err != nil {
		t.Fatalf("ListIDsByDocument() error: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("ListIDsByDocument() after delete = %v, want empty", ids)
	}

	count, err := chunkRepo.Count(ctx)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, want 0", count)
	}
}
