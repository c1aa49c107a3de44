package domain

import (
	"slices"
	"strconv"
)

// VocabularyProgress is the learned-word set of one user.
type VocabularyProgress struct {
	LearnedWords []int `json:"learned_words"`
}

// Has reports whether wordID is already learned.
func (p VocabularyProgress) Has(wordID int) bool {
	return slices.Contains(p.LearnedWords, wordID)
}

// ProgressDocument is the persisted map of user id (decimal string) to progress.
type ProgressDocument map[string]VocabularyProgress

// ProgressKey formats a user id as a progress document key.
func ProgressKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
