package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"

	"github.com/phrazzld/oetprep/internal/platform/logger"
)

// Collection names used by the application.
const (
	CollectionPracticeTests      = "practice_tests"
	CollectionMockTests          = "full_mock_tests"
	CollectionPracticeResults    = "test_results"
	CollectionMockResults        = "mocktests_results"
	CollectionVocabulary         = "vocabulary"
	CollectionVocabularyProgress = "vocabulary_progress"
	CollectionUsers              = "users"
)

// UpdateFn receives the current collection bytes and returns the bytes to
// store. Returning nil bytes leaves the collection untouched.
type UpdateFn func(current []byte) ([]byte, error)

// CollectionStore persists named JSON collections.
type CollectionStore interface {
	// Load returns the collection's bytes. An absent collection is created
	// from seed and seed is returned. A collection that is not valid JSON is
	// reported in the log and seed is returned without overwriting it.
	Load(ctx context.Context, name string, seed []byte) ([]byte, error)

	// Save atomically replaces the collection with data.
	Save(ctx context.Context, name string, data []byte) error

	// Update runs fn against the current bytes (resolved as in Load) while
	// holding the collection exclusively, then stores its result.
	Update(ctx context.Context, name string, seed []byte, fn UpdateFn) error
}

var collectionName = regexp.MustCompile(`^[a-z0-9_]+$`)

// ValidateName returns ErrInvalidCollection unless name is a safe collection
// name. Backends call it before touching storage.
func ValidateName(name string) error {
	if !collectionName.MatchString(name) {
		return NewStoreError(name, "validate", "bad collection name", ErrInvalidCollection)
	}
	return nil
}

// ValidOrSeed returns data when it is valid JSON and seed otherwise, logging
// the corruption. Backends use it to resolve the current value of an existing
// collection.
func ValidOrSeed(ctx context.Context, log *slog.Logger, name string, data, seed []byte) []byte {
	if json.Valid(data) {
		return data
	}
	logger.FromContextOrDefault(ctx, log).WarnContext(ctx, "collection is not valid JSON, using seed",
		slog.String("collection", name),
		slog.Int("size", len(data)))
	return seed
}
