package store

import (
	"context"
	"errors"

	"docroom/internal/docmeta/model"
)

var (
	ErrNotFound = errors.New("document not found")
	ErrExists   = errors.New("document already exists")
)

// Update is a partial mutation of a DocMeta record. Nil fields are left
// untouched.
type Update struct {
	Title *string
}

// Store is the persistence contract for document metadata. It is the single
// source of truth for which rooms exist. Every mutating call must be durable
// before it returns.
type Store interface {
	// List returns all records, most recently updated first.
	List(ctx context.Context) ([]model.DocMeta, error)

	// Get returns the record with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (model.DocMeta, error)

	// Add inserts a new record, stamping CreatedAt and UpdatedAt.
	// Returns ErrExists if the id is already taken.
	Add(ctx context.Context, meta model.DocMeta) (model.DocMeta, error)

	// Update applies a partial mutation and bumps UpdatedAt.
	// Returns ErrNotFound if no record has the given id.
	Update(ctx context.Context, id string, upd Update) (model.DocMeta, error)

	// Delete removes the record with the given id, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases the store. See the implementations for retention
	// behavior.
	Close() error
}
