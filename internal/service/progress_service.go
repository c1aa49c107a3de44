package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/store"
)

// RecentResultsLimit is the number of results shown on the dashboard.
const RecentResultsLimit = 5

// ProgressSummary aggregates a user's learning state.
type ProgressSummary struct {
	Results         []domain.ResultView `json:"test_results"`
	RecentResults   []domain.ResultView `json:"recent_tests"`
	TestsTaken      int                 `json:"all_test_count"`
	LearnedCount    int                 `json:"vocab_count"`
	TotalVocabulary int                 `json:"total_vocab"`
}

// ProgressService tracks learned vocabulary per user.
type ProgressService interface {
	// MarkLearned adds wordID to the user's learned set. It returns false,
	// without writing, when the word was already learned.
	MarkLearned(ctx context.Context, userID int64, wordID int) (bool, error)

	// GetProgress returns the user's learned word ids in the order learned.
	GetProgress(ctx context.Context, userID int64) ([]int, error)

	// Summary combines results history with vocabulary progress.
	Summary(ctx context.Context, userID int64) (*ProgressSummary, error)
}

type progressServiceImpl struct {
	progress *store.Document[domain.ProgressDocument]
	results  ResultService
	words    *store.List[domain.Word]
	logger   *slog.Logger
}

var _ ProgressService = (*progressServiceImpl)(nil)

// NewProgressService creates a ProgressService.
func NewProgressService(s store.CollectionStore, results ResultService, log *slog.Logger) (ProgressService, error) {
	if s == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}
	if results == nil {
		return nil, domain.NewValidationError("results", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "progress_service"))

	progress, err := store.NewDocument(s, store.CollectionVocabularyProgress, domain.ProgressDocument{}, log)
	if err != nil {
		return nil, err
	}
	words, err := store.NewList[domain.Word](s, store.CollectionVocabulary, nil, log)
	if err != nil {
		return nil, err
	}

	return &progressServiceImpl{
		progress: progress,
		results:  results,
		words:    words,
		logger:   log,
	}, nil
}

// MarkLearned implements ProgressService.
func (s *progressServiceImpl) MarkLearned(ctx context.Context, userID int64, wordID int) (bool, error) {
	key := domain.ProgressKey(userID)
	added := false

	err := s.progress.Mutate(ctx, func(doc domain.ProgressDocument) (domain.ProgressDocument, bool, error) {
		if doc == nil {
			doc = domain.ProgressDocument{}
		}
		p := doc[key]
		if p.Has(wordID) {
			return doc, false, nil
		}
		p.LearnedWords = append(p.LearnedWords, wordID)
		doc[key] = p
		added = true
		return doc, true, nil
	})
	if err != nil {
		return false, NewServiceError("mark_learned", "failed to update progress", err)
	}

	if added {
		logger.FromContextOrDefault(ctx, s.logger).Debug("word marked learned",
			slog.Int64("user_id", userID),
			slog.Int("word_id", wordID))
	}
	return added, nil
}

// GetProgress implements ProgressService.
func (s *progressServiceImpl) GetProgress(ctx context.Context, userID int64) ([]int, error) {
	doc, err := s.progress.Get(ctx)
	if err != nil {
		return nil, NewServiceError("get_progress", "failed to load progress", err)
	}
	learned := slices.Clone(doc[domain.ProgressKey(userID)].LearnedWords)
	if learned == nil {
		learned = []int{}
	}
	return learned, nil
}

// Summary implements ProgressService.
func (s *progressServiceImpl) Summary(ctx context.Context, userID int64) (*ProgressSummary, error) {
	results, err := s.results.GetResultsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	learned, err := s.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	words, err := s.words.All(ctx)
	if err != nil {
		return nil, NewServiceError("progress_summary", "failed to load vocabulary", err)
	}

	recent := results
	if len(recent) > RecentResultsLimit {
		recent = recent[:RecentResultsLimit]
	}
	return &ProgressSummary{
		Results:         results,
		RecentResults:   recent,
		TestsTaken:      len(results),
		LearnedCount:    len(learned),
		TotalVocabulary: len(words),
	}, nil
}
