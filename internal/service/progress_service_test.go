package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/oetprep/internal/domain"
	"github.com/phrazzld/oetprep/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkLearned(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	added, err := f.progress.MarkLearned(ctx, 1, 7)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = f.progress.MarkLearned(ctx, 1, 7)
	require.NoError(t, err)
	assert.False(t, added, "second mark is a no-op")

	added, err = f.progress.MarkLearned(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, added)

	learned, err := f.progress.GetProgress(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, learned)

	other, err := f.progress.GetProgress(ctx, 2)
	require.NoError(t, err)
	assert.NotNil(t, other)
	assert.Empty(t, other)
}

func TestProgressDocumentKeysByUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.progress.MarkLearned(ctx, 42, 1)
	require.NoError(t, err)

	raw, ok := f.store.Raw("vocabulary_progress")
	require.True(t, ok)
	assert.JSONEq(t, `{"42": {"learned_words": [1]}}`, string(raw))
}

func TestProgressSummary(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.vocab.ImportWords(ctx, []domain.Word{
		{Word: "Tachycardia", Definition: "fast heart rate", Specialty: "Cardiology"},
		{Word: "Dyspnea", Definition: "shortness of breath", Specialty: "Respiratory"},
	})
	require.NoError(t, err)

	for i := 0; i < service.RecentResultsLimit+2; i++ {
		_, err := f.results.RecordResult(ctx, domain.PracticeResults, int64Ptr(1), 1, 50, 2, nil)
		require.NoError(t, err)
	}
	_, err = f.progress.MarkLearned(ctx, 1, 1)
	require.NoError(t, err)

	sum, err := f.progress.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, service.RecentResultsLimit+2, sum.TestsTaken)
	assert.Len(t, sum.Results, service.RecentResultsLimit+2)
	assert.Len(t, sum.RecentResults, service.RecentResultsLimit)
	assert.Equal(t, 1, sum.LearnedCount)
	assert.Equal(t, 2, sum.TotalVocabulary)

	empty, err := f.progress.Summary(ctx, 9)
	require.NoError(t, err)
	assert.Zero(t, empty.TestsTaken)
	assert.Zero(t, empty.LearnedCount)
}

func TestNewProgressServiceValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := service.NewProgressService(nil, f.results, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = service.NewProgressService(f.store, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
