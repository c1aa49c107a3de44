package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/platform/logger"
	"github.com/phrazzld/oetprep/internal/session"
	"github.com/samber/lo"
)

// AnswerKeyPrefix marks submitted fields that are answers.
const AnswerKeyPrefix = "question_"

// StartOutcome describes a started attempt.
type StartOutcome struct {
	Test    *domain.Test
	Attempt domain.Attempt
	// AuthenticationRequired is set when a practice test was started
	// anonymously. The attempt is recorded but cannot be submitted until
	// the caller signs in.
	AuthenticationRequired bool
}

// SubmitOutcome describes a graded submission.
type SubmitOutcome struct {
	ResultID         int                     `json:"result_id"`
	Collection       domain.ResultCollection `json:"collection"`
	TestID           int                     `json:"test_id"`
	IsMock           bool                    `json:"is_mock"`
	ScorePercentage  float64                 `json:"score_percentage"`
	TimeTakenMinutes int                     `json:"time_taken_minutes"`
}

// ExamService runs the start and submit flow of a test attempt.
type ExamService interface {
	// StartTest records an attempt for testID in the session, replacing any
	// attempt already open there.
	StartTest(ctx context.Context, sessionID string, testID int, identity Identity) (*StartOutcome, error)

	// SubmitTest grades the session's attempt and records the result.
	SubmitTest(ctx context.Context, sessionID string, identity Identity, rawAnswers map[string]string) (*SubmitOutcome, error)
}

type examServiceImpl struct {
	catalog  TestCatalog
	sessions session.Store
	scorer   Scorer
	results  ResultService
	logger   *slog.Logger
	now      func() time.Time
}

var _ ExamService = (*examServiceImpl)(nil)

// NewExamService creates an ExamService.
func NewExamService(
	catalog TestCatalog,
	sessions session.Store,
	scorer Scorer,
	results ResultService,
	log *slog.Logger,
) (ExamService, error) {
	if catalog == nil {
		return nil, domain.NewValidationError("catalog", "cannot be nil", domain.ErrValidation)
	}
	if sessions == nil {
		return nil, domain.NewValidationError("sessions", "cannot be nil", domain.ErrValidation)
	}
	if scorer == nil {
		return nil, domain.NewValidationError("scorer", "cannot be nil", domain.ErrValidation)
	}
	if results == nil {
		return nil, domain.NewValidationError("results", "cannot be nil", domain.ErrValidation)
	}
	if log == nil {
		log = slog.Default()
	}
	return &examServiceImpl{
		catalog:  catalog,
		sessions: sessions,
		scorer:   scorer,
		results:  results,
		logger:   log.With(slog.String("component", "exam_service")),
		now:      time.Now,
	}, nil
}

// StartTest implements ExamService.
func (s *examServiceImpl) StartTest(
	ctx context.Context,
	sessionID string,
	testID int,
	identity Identity,
) (*StartOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	test, err := s.catalog.GetTestByID(ctx, testID)
	if err != nil {
		return nil, err
	}

	attempt := domain.NewAttempt(test, identity.UserIDPtr(), s.now())
	if err := s.sessions.Set(ctx, sessionID, attempt); err != nil {
		return nil, NewServiceError("start_test", "failed to record attempt", err)
	}

	log.Info("test started",
		slog.Int("test_id", testID),
		slog.Bool("is_mock", attempt.IsMock),
		slog.Bool("authenticated", identity.Authenticated))

	return &StartOutcome{
		Test:                   test,
		Attempt:                attempt,
		AuthenticationRequired: !attempt.IsMock && !identity.Authenticated,
	}, nil
}

// SubmitTest implements ExamService.
//
// A missing attempt yields ErrNoActiveAttempt. A practice attempt submitted
// anonymously yields ErrAuthenticationRequired and stays open. Otherwise the
// attempt is cleared before grading, so a failure later on cannot be retried
// with the same attempt.
func (s *examServiceImpl) SubmitTest(
	ctx context.Context,
	sessionID string,
	identity Identity,
	rawAnswers map[string]string,
) (*SubmitOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	attempt, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrNoActiveAttempt) {
			return nil, ErrNoActiveAttempt
		}
		return nil, NewServiceError("submit_test", "failed to read attempt", err)
	}

	if !attempt.IsMock && !identity.Authenticated {
		log.Info("practice submission rejected without authentication",
			slog.Int("test_id", attempt.TestID))
		return nil, ErrAuthenticationRequired
	}

	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return nil, NewServiceError("submit_test", "failed to clear attempt", err)
	}

	test, err := s.catalog.GetTestByID(ctx, attempt.TestID)
	if err != nil {
		return nil, err
	}

	answers := FilterAnswers(rawAnswers)
	score := s.scorer.Score(ctx, answers, test.GradingSection())
	minutes := attempt.TimeTakenMinutes(s.now())
	collection := domain.CollectionFor(attempt.IsMock)

	resultID, err := s.results.RecordResult(ctx, collection, identity.UserIDPtr(), test.ID, score, minutes, answers)
	if err != nil {
		return nil, err
	}

	log.Info("test submitted",
		slog.Int("test_id", test.ID),
		slog.Int("result_id", resultID),
		slog.Float64("score", score),
		slog.Int("time_taken_minutes", minutes))

	return &SubmitOutcome{
		ResultID:         resultID,
		Collection:       collection,
		TestID:           test.ID,
		IsMock:           attempt.IsMock,
		ScorePercentage:  score,
		TimeTakenMinutes: minutes,
	}, nil
}

// FilterAnswers keeps only fields named with AnswerKeyPrefix.
func FilterAnswers(raw map[string]string) map[string]string {
	return lo.PickBy(raw, func(key string, _ string) bool {
		return strings.HasPrefix(key, AnswerKeyPrefix)
	})
}
