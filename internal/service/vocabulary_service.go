package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/store"
	"github.com/samber/lo"
)

// VocabularyService serves the medical vocabulary.
type VocabularyService interface {
	// ListWords returns words of specialty (case-insensitive); an empty
	// specialty returns all words.
	ListWords(ctx context.Context, specialty string) ([]domain.Word, error)

	// Specialties returns the sorted distinct non-empty specialties.
	Specialties(ctx context.Context) ([]string, error)

	// CheckWord looks word up case-insensitively.
	CheckWord(ctx context.Context, word string) (*domain.WordCheck, error)

	// ImportWords appends words not already present (by case-insensitive
	// spelling) and returns how many were added.
	ImportWords(ctx context.Context, words []domain.Word) (int, error)
}

type vocabularyServiceImpl struct {
	words  *store.List[domain.Word]
	logger *slog.Logger
}

var _ VocabularyService = (*vocabularyServiceImpl)(nil)

// NewVocabularyService creates a VocabularyService.
func NewVocabularyService(s store.CollectionStore, log *slog.Logger) (VocabularyService, error) {
	if s == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "vocabulary_service"))

	words, err := store.NewList[domain.Word](s, store.CollectionVocabulary, nil, log)
	if err != nil {
		return nil, err
	}
	return &vocabularyServiceImpl{words: words, logger: log}, nil
}

// ListWords implements VocabularyService.
func (s *vocabularyServiceImpl) ListWords(ctx context.Context, specialty string) ([]domain.Word, error) {
	words, err := s.words.All(ctx)
	if err != nil {
		return nil, NewServiceError("list_words", "failed to load vocabulary", err)
	}
	if specialty == "" {
		return words, nil
	}
	return lo.Filter(words, func(w domain.Word, _ int) bool {
		return strings.EqualFold(w.Specialty, specialty)
	}), nil
}

// Specialties implements VocabularyService.
func (s *vocabularyServiceImpl) Specialties(ctx context.Context) ([]string, error) {
	words, err := s.words.All(ctx)
	if err != nil {
		return nil, NewServiceError("specialties", "failed to load vocabulary", err)
	}
	specialties := lo.Uniq(lo.FilterMap(words, func(w domain.Word, _ int) (string, bool) {
		return w.Specialty, w.Specialty != ""
	}))
	sort.Strings(specialties)
	return specialties, nil
}

// CheckWord implements VocabularyService.
func (s *vocabularyServiceImpl) CheckWord(ctx context.Context, word string) (*domain.WordCheck, error) {
	word = strings.TrimSpace(word)
	words, err := s.words.All(ctx)
	if err != nil {
		return nil, NewServiceError("check_word", "failed to load vocabulary", err)
	}

	match, found := lo.Find(words, func(w domain.Word) bool {
		return strings.EqualFold(w.Word, word)
	})
	if !found || word == "" {
		return &domain.WordCheck{
			Correct: false,
			Message: fmt.Sprintf("%q is not found in our medical vocabulary database.", word),
		}, nil
	}
	return &domain.WordCheck{
		Correct:    true,
		Word:       match.Word,
		Definition: match.Definition,
		Specialty:  match.Specialty,
	}, nil
}

// ImportWords implements VocabularyService.
func (s *vocabularyServiceImpl) ImportWords(ctx context.Context, words []domain.Word) (int, error) {
	added := 0
	err := s.words.Modify(ctx, func(existing []domain.Word) ([]domain.Word, bool, error) {
		seen := make(map[string]bool, len(existing)+len(words))
		for _, w := range existing {
			seen[strings.ToLower(w.Word)] = true
		}
		next := existing
		id := store.NextID(existing)
		for _, w := range words {
			key := strings.ToLower(strings.TrimSpace(w.Word))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			w.ID = id
			w.Word = strings.TrimSpace(w.Word)
			id++
			next = append(next, w)
			added++
		}
		return next, added > 0, nil
	})
	if err != nil {
		return 0, NewServiceError("import_words", "failed to store vocabulary", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("vocabulary imported",
		slog.Int("submitted", len(words)),
		slog.Int("added", added))
	return added, nil
}
