package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"docroom/internal/docmeta/model"
)

// FileStore holds the whole collection in memory, keyed by document id, and
// mirrors it to a single JSON file on every mutation. One process owns the
// file; the mutex serializes writers so concurrent requests cannot race on it.
type FileStore struct {
	path string

	mu   sync.RWMutex
	docs map[string]model.DocMeta
	now  func() time.Time
}

// NewFileStore loads the collection from path, or starts empty when the file
// does not exist yet. A file that exists but cannot be read or parsed is an
// init error rather than silent data loss.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		docs: make(map[string]model.DocMeta),
		now:  time.Now,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.docs); err != nil {
		return nil, fmt.Errorf("parse store file %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) List(ctx context.Context) ([]model.DocMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]model.DocMeta, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].UpdatedAt.Equal(docs[j].UpdatedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].UpdatedAt.After(docs[j].UpdatedAt)
	})
	return docs, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (model.DocMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return model.DocMeta{}, ErrNotFound
	}
	return doc, nil
}

func (s *FileStore) Add(ctx context.Context, meta model.DocMeta) (model.DocMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[meta.ID]; ok {
		return model.DocMeta{}, ErrExists
	}

	now := s.now().UTC()
	meta.CreatedAt = now
	meta.UpdatedAt = now
	s.docs[meta.ID] = meta

	if err := s.persistLocked(); err != nil {
		delete(s.docs, meta.ID)
		return model.DocMeta{}, err
	}
	return meta, nil
}

func (s *FileStore) Update(ctx context.Context, id string, upd Update) (model.DocMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.docs[id]
	if !ok {
		return model.DocMeta{}, ErrNotFound
	}

	doc := prev
	if upd.Title != nil {
		doc.Title = *upd.Title
	}
	doc.UpdatedAt = s.now().UTC()
	s.docs[id] = doc

	if err := s.persistLocked(); err != nil {
		s.docs[id] = prev
		return model.DocMeta{}, err
	}
	return doc, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.docs[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.docs, id)

	if err := s.persistLocked(); err != nil {
		s.docs[id] = prev
		return err
	}
	return nil
}

// Close deletes the backing file. The demo keeps no metadata across runs;
// a deployment that wants retention swaps in the Postgres store instead.
func (s *FileStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove store file: %w", err)
	}
	return nil
}

// persistLocked rewrites the whole collection. Write-to-temp plus rename keeps
// the file parseable even if the process dies mid-write. Callers hold mu.
func (s *FileStore) persistLocked() error {
	data, err := json.MarshalIndent(s.docs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write store file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename store file: %w", err)
	}
	return nil
}
