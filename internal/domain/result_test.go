package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollectionFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, PracticeResults, CollectionFor(false))
	assert.Equal(t, MockResults, CollectionFor(true))
	assert.True(t, PracticeResults.Valid())
	assert.True(t, MockResults.Valid())
	assert.False(t, ResultCollection("users").Valid())
}

func TestResultBelongsTo(t *testing.T) {
	t.Parallel()

	uid := int64(3)
	assert.True(t, Result{UserID: &uid}.BelongsTo(3))
	assert.False(t, Result{UserID: &uid}.BelongsTo(4))
	assert.False(t, Result{}.BelongsTo(3))
}

func TestVocabularyProgressHas(t *testing.T) {
	t.Parallel()

	p := VocabularyProgress{LearnedWords: []int{1, 5}}
	assert.True(t, p.Has(5))
	assert.False(t, p.Has(2))
	assert.False(t, VocabularyProgress{}.Has(1))
	assert.Equal(t, "12", ProgressKey(12))
}
