package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math"
	"sort"
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/domain/scoring"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/store"
	"github.com/samber/lo"
)

// ResultService records graded attempts and serves result history.
type ResultService interface {
	// RecordResult appends a result to collection and returns its id.
	RecordResult(
		ctx context.Context,
		collection domain.ResultCollection,
		userID *int64,
		testID int,
		score float64,
		timeTakenMinutes int,
		answers map[string]string,
	) (int, error)

	// GetResultsForUser returns the user's practice results, newest first,
	// joined with test metadata.
	GetResultsForUser(ctx context.Context, userID int64) ([]domain.ResultView, error)

	// RecentResults returns at most n of the user's newest practice results.
	RecentResults(ctx context.Context, userID int64, n int) ([]domain.ResultView, error)

	// GetResultByID returns a result from collection.
	GetResultByID(ctx context.Context, collection domain.ResultCollection, id int) (*domain.Result, error)

	// GetPracticeResultForUser returns a practice result owned by userID.
	// Results of other users are reported as not found.
	GetPracticeResultForUser(ctx context.Context, userID int64, id int) (*domain.ResultView, error)

	// ResultWithTest returns a result together with its test, or a
	// placeholder when the test is no longer in the catalog.
	ResultWithTest(ctx context.Context, collection domain.ResultCollection, id int) (*domain.ResultWithTest, error)
}

type resultServiceImpl struct {
	lists   map[domain.ResultCollection]*store.List[domain.Result]
	catalog TestCatalog
	logger  *slog.Logger
	now     func() time.Time
}

var _ ResultService = (*resultServiceImpl)(nil)

// NewResultService creates a ResultService over both result collections.
func NewResultService(s store.CollectionStore, catalog TestCatalog, log *slog.Logger) (ResultService, error) {
	if s == nil {
		return nil, domain.NewValidationError("store", "cannot be nil", domain.ErrValidation)
	}
	if catalog == nil {
		return nil, domain.NewValidationError("catalog", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "result_service"))

	lists := make(map[domain.ResultCollection]*store.List[domain.Result], 2)
	for _, c := range []domain.ResultCollection{domain.PracticeResults, domain.MockResults} {
		l, err := store.NewList[domain.Result](s, string(c), nil, log)
		if err != nil {
			return nil, err
		}
		lists[c] = l
	}

	return &resultServiceImpl{
		lists:   lists,
		catalog: catalog,
		logger:  log,
		now:     time.Now,
	}, nil
}

func (s *resultServiceImpl) list(collection domain.ResultCollection) (*store.List[domain.Result], error) {
	l, ok := s.lists[collection]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidResultCollection, collection)
	}
	return l, nil
}

// RecordResult implements ResultService.
func (s *resultServiceImpl) RecordResult(
	ctx context.Context,
	collection domain.ResultCollection,
	userID *int64,
	testID int,
	score float64,
	timeTakenMinutes int,
	answers map[string]string,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	l, err := s.list(collection)
	if err != nil {
		return 0, NewServiceError("record_result", "unknown collection", err)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, NewServiceError("record_result", "invalid score",
			domain.NewValidationError("score", "must be a finite number", domain.ErrValidation))
	}
	score = scoring.Normalize(score)
	timeTakenMinutes = max(1, timeTakenMinutes)

	if answers == nil {
		answers = map[string]string{}
	}
	completedAt := s.now().UTC().Truncate(time.Second)

	result, err := l.Append(ctx, func(id int, _ []domain.Result) (domain.Result, error) {
		return domain.Result{
			ID:               id,
			UserID:           userID,
			TestID:           testID,
			ScorePercentage:  score,
			TimeTakenMinutes: timeTakenMinutes,
			Answers:          maps.Clone(answers),
			CompletedAt:      completedAt,
		}, nil
	})
	if err != nil {
		log.Error("failed to record result",
			slog.String("collection", string(collection)),
			slog.Int("test_id", testID),
			slog.String("error", err.Error()))
		return 0, NewServiceError("record_result", "failed to persist result", err)
	}

	log.Info("result recorded",
		slog.String("collection", string(collection)),
		slog.Int("result_id", result.ID),
		slog.Int("test_id", testID),
		slog.Float64("score", score))
	return result.ID, nil
}

// GetResultsForUser implements ResultService.
func (s *resultServiceImpl) GetResultsForUser(ctx context.Context, userID int64) ([]domain.ResultView, error) {
	all, err := s.lists[domain.PracticeResults].All(ctx)
	if err != nil {
		return nil, NewServiceError("get_results", "failed to load results", err)
	}

	owned := lo.Filter(all, func(r domain.Result, _ int) bool { return r.BelongsTo(userID) })
	views := lo.Map(owned, func(r domain.Result, _ int) domain.ResultView { return s.view(ctx, r) })

	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CompletedAt.After(views[j].CompletedAt)
	})
	return views, nil
}

// RecentResults implements ResultService.
func (s *resultServiceImpl) RecentResults(ctx context.Context, userID int64, n int) ([]domain.ResultView, error) {
	views, err := s.GetResultsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(views) > n {
		views = views[:n]
	}
	return views, nil
}

// GetResultByID implements ResultService.
func (s *resultServiceImpl) GetResultByID(
	ctx context.Context,
	collection domain.ResultCollection,
	id int,
) (*domain.Result, error) {
	l, err := s.list(collection)
	if err != nil {
		return nil, NewServiceError("get_result", "unknown collection", err)
	}
	r, err := l.Find(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.NewStoreError(string(collection), "find", fmt.Sprintf("result %d", id), store.ErrResultNotFound)
		}
		return nil, NewServiceError("get_result", "failed to load result", err)
	}
	return &r, nil
}

// GetPracticeResultForUser implements ResultService.
func (s *resultServiceImpl) GetPracticeResultForUser(ctx context.Context, userID int64, id int) (*domain.ResultView, error) {
	r, err := s.GetResultByID(ctx, domain.PracticeResults, id)
	if err != nil {
		return nil, err
	}
	if !r.BelongsTo(userID) {
		logger.FromContextOrDefault(ctx, s.logger).Debug("result requested by non-owner",
			slog.Int("result_id", id),
			slog.Int64("user_id", userID))
		return nil, store.NewStoreError(string(domain.PracticeResults), "find", fmt.Sprintf("result %d", id), store.ErrResultNotFound)
	}
	v := s.view(ctx, *r)
	return &v, nil
}

// ResultWithTest implements ResultService.
func (s *resultServiceImpl) ResultWithTest(
	ctx context.Context,
	collection domain.ResultCollection,
	id int,
) (*domain.ResultWithTest, error) {
	r, err := s.GetResultByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	test, missing := s.resolveTest(ctx, r.TestID)
	return &domain.ResultWithTest{Result: *r, Test: test, TestMissing: missing}, nil
}

func (s *resultServiceImpl) view(ctx context.Context, r domain.Result) domain.ResultView {
	test, _ := s.resolveTest(ctx, r.TestID)
	return domain.ResultView{Result: r, TestTitle: test.Title, TestSection: test.Section}
}

// resolveTest returns the catalog test or a placeholder when it is gone.
func (s *resultServiceImpl) resolveTest(ctx context.Context, testID int) (*domain.Test, bool) {
	test, err := s.catalog.GetTestByID(ctx, testID)
	if err == nil {
		return test, false
	}
	if !errors.Is(err, store.ErrNotFound) {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to resolve test for result",
			slog.Int("test_id", testID),
			slog.String("error", err.Error()))
	}
	return domain.PlaceholderTest(testID), true
}
