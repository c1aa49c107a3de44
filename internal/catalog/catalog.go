// Package catalog serves test definitions. Both collections are seeded if
// absent and read once at construction; lookups are served from memory and
// return deep copies.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/store"
)

// Catalog is the read-only view of practice and mock tests.
type Catalog struct {
	practice *store.List[domain.Test]
	mock     *store.List[domain.Test]
	logger   *slog.Logger

	mu            sync.RWMutex
	practiceTests []domain.Test
	mockTests     []domain.Test
}

// New seeds missing collections with the default tests and loads both.
func New(ctx context.Context, s store.CollectionStore, log *slog.Logger) (*Catalog, error) {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "catalog"))

	practice, err := store.NewList(s, store.CollectionPracticeTests, DefaultPracticeTests(), log)
	if err != nil {
		return nil, err
	}
	mock, err := store.NewList(s, store.CollectionMockTests, DefaultMockTests(), log)
	if err != nil {
		return nil, err
	}

	c := &Catalog{practice: practice, mock: mock, logger: log}
	if err := c.Reload(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads both collections from the store.
func (c *Catalog) Reload(ctx context.Context) error {
	practice, err := c.practice.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load practice tests: %w", err)
	}
	mock, err := c.mock.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load mock tests: %w", err)
	}

	c.mu.Lock()
	c.practiceTests = practice
	c.mockTests = mock
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "test catalog loaded",
		slog.Int("practice_tests", len(practice)),
		slog.Int("mock_tests", len(mock)))
	return nil
}

// GetTestByID looks the id up in the practice collection and then the mock
// collection, so practice wins when both hold the id. It returns
// store.ErrTestNotFound when neither does.
func (c *Catalog) GetTestByID(ctx context.Context, id int) (*domain.Test, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if t := find(c.practiceTests, id); t != nil {
		return tagged(t, domain.TestKindPractice), nil
	}
	if t := find(c.mockTests, id); t != nil {
		return tagged(t, domain.TestKindMock), nil
	}
	return nil, store.NewStoreError(store.CollectionPracticeTests, "get", fmt.Sprintf("test %d", id), store.ErrTestNotFound)
}

// ListPracticeTests returns every practice test.
func (c *Catalog) ListPracticeTests(ctx context.Context) ([]*domain.Test, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return list(c.practiceTests, domain.TestKindPractice), nil
}

// ListMockTests returns every mock test.
func (c *Catalog) ListMockTests(ctx context.Context) ([]*domain.Test, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return list(c.mockTests, domain.TestKindMock), nil
}

func find(tests []domain.Test, id int) *domain.Test {
	for i := range tests {
		if tests[i].ID == id {
			return &tests[i]
		}
	}
	return nil
}

func tagged(t *domain.Test, kind domain.TestKind) *domain.Test {
	cp := t.Clone()
	cp.Kind = kind
	return cp
}

func list(tests []domain.Test, kind domain.TestKind) []*domain.Test {
	out := make([]*domain.Test, len(tests))
	for i := range tests {
		out[i] = tagged(&tests[i], kind)
	}
	return out
}
