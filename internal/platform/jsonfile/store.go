// Package jsonfile stores each collection as <name>.json in a data
// directory. Writes go to a temporary file that is renamed over the target,
// so readers never observe a partial document.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/phrazzld/oetprep/internal/store"
)

// Store is a file-per-collection CollectionStore.
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ store.CollectionStore = (*Store)(nil)

// New creates a Store rooted at dir, creating the directory if needed.
func New(dir string, log *slog.Logger) (*Store, error) {
	if dir == "" {
		return nil, errors.New("data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		dir:    dir,
		logger: log.With(slog.String("component", "jsonfile_store")),
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// Load implements store.CollectionStore.
func (s *Store) Load(ctx context.Context, name string, seed []byte) ([]byte, error) {
	if err := store.ValidateName(name); err != nil {
		return nil, err
	}
	unlock := s.lock(name)
	defer unlock()
	return s.current(ctx, name, seed)
}

// Save implements store.CollectionStore.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	unlock := s.lock(name)
	defer unlock()
	return s.write(name, data)
}

// Update implements store.CollectionStore.
func (s *Store) Update(ctx context.Context, name string, seed []byte, fn store.UpdateFn) error {
	if err := store.ValidateName(name); err != nil {
		return err
	}
	unlock := s.lock(name)
	defer unlock()

	current, err := s.current(ctx, name, seed)
	if err != nil {
		return err
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		return nil
	}
	return s.write(name, next)
}

// Path returns the file backing name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) lock(name string) func() {
	s.mu.Lock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// current reads the collection, creating it from seed when absent. Callers
// hold the collection lock.
func (s *Store) current(ctx context.Context, name string, seed []byte) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.write(name, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}
	if err != nil {
		return nil, store.NewStoreError(name, "load", "failed to read collection file", err)
	}
	return store.ValidOrSeed(ctx, s.logger, name, data, seed), nil
}

func (s *Store) write(name string, data []byte) error {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		// Not JSON; write verbatim.
		out.Reset()
		out.Write(data)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return store.NewStoreError(name, "save", "failed to create temp file", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(out.Bytes()); err != nil {
		_ = tmp.Close()
		return store.NewStoreError(name, "save", "failed to write temp file", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return store.NewStoreError(name, "save", "failed to sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return store.NewStoreError(name, "save", "failed to close temp file", err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		return store.NewStoreError(name, "save", "failed to replace collection file", err)
	}
	return nil
}
