package domain

import (
	"errors"
	"time"
)

// ResultCollection names one of the two disjoint result id spaces.
type ResultCollection string

const (
	PracticeResults ResultCollection = "test_results"
	MockResults     ResultCollection = "mocktests_results"
)

// ErrInvalidResultCollection is returned for an unknown collection name.
var ErrInvalidResultCollection = errors.New("invalid result collection")

// Valid reports whether c is one of the known collections.
func (c ResultCollection) Valid() bool {
	return c == PracticeResults || c == MockResults
}

// CollectionFor picks the result collection for an attempt kind.
func CollectionFor(isMock bool) ResultCollection {
	if isMock {
		return MockResults
	}
	return PracticeResults
}

// Result is an immutable graded attempt.
type Result struct {
	ID               int               `json:"id"`
	UserID           *int64            `json:"user_id"`
	TestID           int               `json:"test_id"`
	ScorePercentage  float64           `json:"score_percentage"`
	TimeTakenMinutes int               `json:"time_taken_minutes"`
	Answers          map[string]string `json:"answers"`
	CompletedAt      time.Time         `json:"completed_at"`
}

// GetID implements store.Record.
func (r Result) GetID() int { return r.ID }

// BelongsTo reports whether the result was recorded for userID.
func (r Result) BelongsTo(userID int64) bool {
	return r.UserID != nil && *r.UserID == userID
}

// ResultView is a result joined with the display metadata of its test.
type ResultView struct {
	Result
	TestTitle   string  `json:"test_title"`
	TestSection Section `json:"test_section"`
}

// ResultWithTest pairs a result with its resolved (or placeholder) test for
// report rendering.
type ResultWithTest struct {
	Result Result
	Test   *Test
	// TestMissing is true when Test is a placeholder.
	TestMissing bool
}
