package service

import (
	"context"

	"docroom/internal/docmeta/model"
	"docroom/internal/docmeta/store"

	"github.com/google/uuid"
)

// DocService owns the metadata operations behind the REST surface. Handlers
// stay free of business rules; the store stays free of defaults.
type DocService struct {
	Store store.Store
}

func NewDocService(st store.Store) *DocService {
	return &DocService{Store: st}
}

// Create registers a new document. The generated id doubles as the room name
// the relay synchronizes the document under.
func (s *DocService) Create(ctx context.Context, title string) (model.DocMeta, error) {
	if title == "" {
		title = "Untitled Document"
	}
	meta := model.DocMeta{
		ID:    uuid.NewString(),
		Title: title,
	}
	return s.Store.Add(ctx, meta)
}

func (s *DocService) List(ctx context.Context) ([]model.DocMeta, error) {
	return s.Store.List(ctx)
}

func (s *DocService) UpdateTitle(ctx context.Context, id, title string) (model.DocMeta, error) {
	return s.Store.Update(ctx, id, store.Update{Title: &title})
}

func (s *DocService) Delete(ctx context.Context, id string) error {
	return s.Store.Delete(ctx, id)
}
