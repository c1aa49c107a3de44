package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/phrazzld/oetprep/internal/catalog"
	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/domain/scoring"
	"github.com/phrazzld/oetprep/internal/platform/memory"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/phrazzld/oetprep/internal/session"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixture wires the services over an in-memory store.
type fixture struct {
	store    *memory.Store
	catalog  *catalog.Catalog
	sessions *session.MemoryStore
	results  service.ResultService
	progress service.ProgressService
	exams    service.ExamService
	vocab    service.VocabularyService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	mem := memory.New(nil)
	cat, err := catalog.New(ctx, mem, nil)
	require.NoError(t, err)

	results, err := service.NewResultService(mem, cat, nil)
	require.NoError(t, err)
	progress, err := service.NewProgressService(mem, results, nil)
	require.NoError(t, err)
	sessions := session.NewMemoryStore(0)
	exams, err := service.NewExamService(cat, sessions, scoring.NewScorer(nil, nil), results, nil)
	require.NoError(t, err)
	vocab, err := service.NewVocabularyService(mem, nil)
	require.NoError(t, err)

	return &fixture{
		store:    mem,
		catalog:  cat,
		sessions: sessions,
		results:  results,
		progress: progress,
		exams:    exams,
		vocab:    vocab,
	}
}

// storedResults decodes a result collection straight from the store.
func (f *fixture) storedResults(t *testing.T, c domain.ResultCollection) []domain.Result {
	t.Helper()
	raw, ok := f.store.Raw(string(c))
	if !ok {
		return nil
	}
	var out []domain.Result
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func int64Ptr(v int64) *int64 { return &v }

// mockResultService is a testify mock of service.ResultService.
type mockResultService struct {
	mock.Mock
}

func (m *mockResultService) RecordResult(
	ctx context.Context,
	collection domain.ResultCollection,
	userID *int64,
	testID int,
	score float64,
	minutes int,
	answers map[string]string,
) (int, error) {
	args := m.Called(ctx, collection, userID, testID, score, minutes, answers)
	return args.Int(0), args.Error(1)
}

func (m *mockResultService) GetResultsForUser(ctx context.Context, userID int64) ([]domain.ResultView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultView), args.Error(1)
}

func (m *mockResultService) RecentResults(ctx context.Context, userID int64, n int) ([]domain.ResultView, error) {
	args := m.Called(ctx, userID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ResultView), args.Error(1)
}

func (m *mockResultService) GetResultByID(ctx context.Context, c domain.ResultCollection, id int) (*domain.Result, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Result), args.Error(1)
}

func (m *mockResultService) GetPracticeResultForUser(ctx context.Context, userID int64, id int) (*domain.ResultView, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultView), args.Error(1)
}

func (m *mockResultService) ResultWithTest(ctx context.Context, c domain.ResultCollection, id int) (*domain.ResultWithTest, error) {
	args := m.Called(ctx, c, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResultWithTest), args.Error(1)
}
