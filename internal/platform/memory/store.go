// Package memory provides an in-process CollectionStore. Data lives only as
// long as the process; it backs tests and the "memory" storage driver.
package memory

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/oetprep/internal/store"
)

// Store keeps collections in a map guarded by a single mutex.
type Store struct {
	mu          sync.Mutex
	collections map[string][]byte
	logger      *slog.Logger
}

var _ store.CollectionStore = (*Store)(nil)

// New creates an empty Store.
func New(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		collections: make(map[string][]byte),
		logger:      log.With(slog.String("component", "memory_store")),
	}
}

// Load implements store.CollectionStore.
func (s *Store) Load(ctx context.Context, name string, seed []byte) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.current(ctx, name, seed)), nil
}

// Save implements store.CollectionStore.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[name] = bytes.Clone(data)
	return nil
}

// Update implements store.CollectionStore.
func (s *Store) Update(ctx context.Context, name string, seed []byte, fn store.UpdateFn) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(bytes.Clone(s.current(ctx, name, seed)))
	if err != nil {
		return err
	}
	if next != nil {
		s.collections[name] = bytes.Clone(next)
	}
	return nil
}

// Raw returns the stored bytes of name and whether the collection exists.
func (s *Store) Raw(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.collections[name]
	return bytes.Clone(data), ok
}

// current resolves the collection value. Callers hold s.mu.
func (s *Store) current(ctx context.Context, name string, seed []byte) []byte {
	data, ok := s.collections[name]
	if !ok {
		s.collections[name] = bytes.Clone(seed)
		return seed
	}
	return store.ValidOrSeed(ctx, s.logger, name, data, seed)
}
