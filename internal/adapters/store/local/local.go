// Package local implements the gift store over a single JSON file on disk.
// It is the single-process backend: every operation takes the store lock, so
// callers within one process are strictly serialized.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"giftregistry/internal/domain"
)

type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a store persisting to the given file. The file is created on the
// first write; a missing file reads as an empty collection.
func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) List(ctx context.Context) ([]*domain.Gift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	gifts, err := s.load()
	if err != nil {
		return false, err
	}
	return indexOf(gifts, id) >= 0, nil
}

func (s *Store) Insert(ctx context.Context, gift *domain.Gift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gifts, err := s.load()
	if err != nil {
		return err
	}
	if indexOf(gifts, gift.ID) >= 0 {
		return persistErr("insert", fmt.Errorf("duplicate id %q", gift.ID))
	}
	gifts = append(gifts, gift.Clone())
	return s.save(gifts)
}

func (s *Store) Patch(ctx context.Context, id string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gifts, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(gifts, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	merged, err := merge(gifts[i], fields)
	if err != nil {
		return persistErr("patch", err)
	}
	merged.ID = id
	gifts[i] = merged
	return s.save(gifts)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	gifts, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(gifts, id)
	if i < 0 {
		// Deleting a missing id is not an error.
		return nil
	}
	gifts = append(gifts[:i], gifts[i+1:]...)
	return s.save(gifts)
}

func (s *Store) load() ([]*domain.Gift, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, persistErr("read", err)
	}
	var gifts []*domain.Gift
	if err := json.Unmarshal(raw, &gifts); err != nil {
		return nil, persistErr("read", err)
	}
	return gifts, nil
}

func (s *Store) save(gifts []*domain.Gift) error {
	raw, err := json.MarshalIndent(gifts, "", "  ")
	if err != nil {
		return persistErr("write", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return persistErr("write", err)
	}
	tmp, err := os.CreateTemp(dir, ".gifts-*")
	if err != nil {
		return persistErr("write", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return persistErr("write", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return persistErr("write", err)
	}
	// Rename keeps the file whole even if the process dies mid-write.
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return persistErr("write", err)
	}
	return nil
}

// merge applies the patch fields onto the stored record through its JSON form,
// leaving keys absent from the patch untouched.
func merge(gift *domain.Gift, fields map[string]any) (*domain.Gift, error) {
	raw, err := json.Marshal(gift)
	if err != nil {
		return nil, err
	}
	var record map[string]any
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	for k, v := range fields {
		record[k] = v
	}
	raw, err = json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var out domain.Gift
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func indexOf(gifts []*domain.Gift, id string) int {
	for i, g := range gifts {
		if g.ID == id {
			return i
		}
	}
	return -1
}

func persistErr(op string, err error) *domain.PersistenceError {
	return &domain.PersistenceError{Backend: "local", Op: op, Diagnostic: err.Error(), Err: err}
}
