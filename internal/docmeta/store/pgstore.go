package store

import (
	"context"
	"database/sql"
	"errors"

	"docroom/internal/docmeta/model"
	"docroom/pkg/logger"

	"github.com/lib/pq"
)

// PGStore is the Postgres-backed Store, for deployments where the flat demo
// file is not enough. Rooms live in a single doc_meta table.
type PGStore struct {
	DB *sql.DB
}

// NewPGStore wraps an open connection pool and ensures the schema exists.
func NewPGStore(db *sql.DB) (*PGStore, error) {
	s := &PGStore{DB: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PGStore) ensureSchema() error {
	_, err := s.DB.Exec(`CREATE TABLE IF NOT EXISTS doc_meta (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	)`)
	if err != nil {
		logger.Sugar.Errorf("Failed to ensure doc_meta schema: %v", err)
	}
	return err
}

func (s *PGStore) List(ctx context.Context) ([]model.DocMeta, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at FROM doc_meta ORDER BY updated_at DESC, id ASC`)
	if err != nil {
		logger.Sugar.Errorf("Failed to list documents: %v", err)
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.DocMeta, 0)
	for rows.Next() {
		var doc model.DocMeta
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			logger.Sugar.Errorf("Failed to scan document row: %v", err)
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *PGStore) Get(ctx context.Context, id string) (model.DocMeta, error) {
	var doc model.DocMeta
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, title, created_at, updated_at FROM doc_meta WHERE id = $1`, id).
		Scan(&doc.ID, &doc.Title, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DocMeta{}, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to get document %s: %v", id, err)
		return model.DocMeta{}, err
	}
	return doc, nil
}

func (s *PGStore) Add(ctx context.Context, meta model.DocMeta) (model.DocMeta, error) {
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO doc_meta (id, title, created_at, updated_at) VALUES ($1, $2, NOW(), NOW())
		RETURNING created_at, updated_at`, meta.ID, meta.Title).
		Scan(&meta.CreatedAt, &meta.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return model.DocMeta{}, ErrExists
		}
		logger.Sugar.Errorf("Failed to create document %s: %v", meta.ID, err)
		return model.DocMeta{}, err
	}
	return meta, nil
}

func (s *PGStore) Update(ctx context.Context, id string, upd Update) (model.DocMeta, error) {
	// Only the title is mutable today; extend the SET list as Update grows.
	var doc model.DocMeta
	err := s.DB.QueryRowContext(ctx,
		`UPDATE doc_meta SET title = COALESCE($2, title), updated_at = NOW() WHERE id = $1
		RETURNING id, title, created_at, updated_at`, id, upd.Title).
		Scan(&doc.ID, &doc.Title, &doc.CreatedAt, &doc.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DocMeta{}, ErrNotFound
	}
	if err != nil {
		logger.Sugar.Errorf("Failed to update document %s: %v", id, err)
		return model.DocMeta{}, err
	}
	return doc, nil
}

func (s *PGStore) Delete(ctx context.Context, id string) error {
	result, err := s.DB.ExecContext(ctx, `DELETE FROM doc_meta WHERE id = $1`, id)
	if err != nil {
		logger.Sugar.Errorf("Failed to delete document %s: %v", id, err)
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the pool. Postgres metadata is retained across runs.
func (s *PGStore) Close() error {
	return s.DB.Close()
}
