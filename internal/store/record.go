package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// Record is an element of a list collection.
type Record interface {
	GetID() int
}

// NextID returns one more than the largest id in records, or 1 when empty.
func NextID[T Record](records []T) int {
	maxID := 0
	for _, r := range records {
		if id := r.GetID(); id > maxID {
			maxID = id
		}
	}
	return maxID + 1
}

var emptyList = []byte("[]")

// ErrNilStore is returned by constructors given a nil CollectionStore.
var ErrNilStore = errors.New("collection store cannot be nil")

// List is a typed view of a collection holding a JSON array of records.
type List[T Record] struct {
	store  CollectionStore
	name   string
	seed   []byte
	logger *slog.Logger
}

// NewList creates a List over the named collection. defaults seeds the
// collection when it does not exist yet; nil seeds an empty array.
func NewList[T Record](s CollectionStore, name string, defaults []T, log *slog.Logger) (*List[T], error) {
	if s == nil {
		return nil, ErrNilStore
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	seed := emptyList
	if defaults != nil {
		data, err := json.MarshalIndent(defaults, "", "  ")
		if err != nil {
			return nil, NewStoreError(name, "seed", "failed to encode defaults", err)
		}
		seed = data
	}
	if log == nil {
		log = slog.Default()
	}
	return &List[T]{
		store:  s,
		name:   name,
		seed:   seed,
		logger: log.With(slog.String("collection", name)),
	}, nil
}

// Name returns the underlying collection name.
func (l *List[T]) Name() string { return l.name }

// All returns every record in stored order.
func (l *List[T]) All(ctx context.Context) ([]T, error) {
	data, err := l.store.Load(ctx, l.name, l.seed)
	if err != nil {
		return nil, err
	}
	return l.decode(ctx, data), nil
}

// Find returns the first record with id. It returns an error wrapping
// ErrNotFound when no record matches.
func (l *List[T]) Find(ctx context.Context, id int) (T, error) {
	var zero T
	items, err := l.All(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range items {
		if item.GetID() == id {
			return item, nil
		}
	}
	return zero, NewStoreError(l.name, "find", fmt.Sprintf("id %d", id), ErrNotFound)
}

// Modify applies fn to the current records under the collection's exclusive
// lock. The result is written only when fn reports a change.
func (l *List[T]) Modify(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	return l.store.Update(ctx, l.name, l.seed, func(current []byte) ([]byte, error) {
		next, changed, err := fn(l.decode(ctx, current))
		if err != nil || !changed {
			return nil, err
		}
		if next == nil {
			next = []T{}
		}
		data, err := json.MarshalIndent(next, "", "  ")
		if err != nil {
			return nil, NewStoreError(l.name, "encode", "failed to encode records", err)
		}
		return data, nil
	})
}

// Append adds the record produced by build, which receives the next free id
// and the current records. Id assignment and the write happen atomically.
func (l *List[T]) Append(ctx context.Context, build func(id int, existing []T) (T, error)) (T, error) {
	var created T
	err := l.Modify(ctx, func(items []T) ([]T, bool, error) {
		item, err := build(NextID(items), items)
		if err != nil {
			return nil, false, err
		}
		created = item
		return append(items, item), true, nil
	})
	return created, err
}

func (l *List[T]) decode(ctx context.Context, data []byte) []T {
	var items []T
	err := json.Unmarshal(data, &items)
	if err == nil {
		return items
	}
	logger.FromContextOrDefault(ctx, l.logger).WarnContext(ctx, "collection has unexpected shape, using seed",
		slog.String("error", err.Error()))
	items = nil
	_ = json.Unmarshal(l.seed, &items)
	return items
}

// Document is a typed view of a collection holding a single JSON value.
type Document[T any] struct {
	store  CollectionStore
	name   string
	seed   []byte
	logger *slog.Logger
}

// NewDocument creates a Document over the named collection, seeded with
// initial when absent.
func NewDocument[T any](s CollectionStore, name string, initial T, log *slog.Logger) (*Document[T], error) {
	if s == nil {
		return nil, ErrNilStore
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	seed, err := json.MarshalIndent(initial, "", "  ")
	if err != nil {
		return nil, NewStoreError(name, "seed", "failed to encode initial value", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Document[T]{
		store:  s,
		name:   name,
		seed:   seed,
		logger: log.With(slog.String("collection", name)),
	}, nil
}

// Get returns the current value.
func (d *Document[T]) Get(ctx context.Context) (T, error) {
	data, err := d.store.Load(ctx, d.name, d.seed)
	if err != nil {
		var zero T
		return zero, err
	}
	return d.decode(ctx, data), nil
}

// Mutate applies fn to the current value under the collection's exclusive
// lock and stores the result when fn reports a change.
func (d *Document[T]) Mutate(ctx context.Context, fn func(doc T) (T, bool, error)) error {
	return d.store.Update(ctx, d.name, d.seed, func(current []byte) ([]byte, error) {
		next, changed, err := fn(d.decode(ctx, current))
		if err != nil || !changed {
			return nil, err
		}
		data, err := json.MarshalIndent(next, "", "  ")
		if err != nil {
			return nil, NewStoreError(d.name, "encode", "failed to encode document", err)
		}
		return data, nil
	})
}

func (d *Document[T]) decode(ctx context.Context, data []byte) T {
	var doc T
	err := json.Unmarshal(data, &doc)
	if err == nil {
		return doc
	}
	logger.FromContextOrDefault(ctx, d.logger).WarnContext(ctx, "collection has unexpected shape, using seed",
		slog.String("error", err.Error()))
	var seeded T
	_ = json.Unmarshal(d.seed, &seeded)
	return seeded
}
