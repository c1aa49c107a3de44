package domain

import "time"

// Attempt is the in-progress state of one test sitting. It lives in the
// caller's session and is consumed by exactly one submission.
type Attempt struct {
	TestID    int       `json:"test_id"`
	StartedAt time.Time `json:"started_at"`
	IsMock    bool      `json:"is_mock"`
	// UserID is nil for anonymous mock attempts.
	UserID *int64 `json:"user_id,omitempty"`
}

// NewAttempt records the start of test at now for the optional user.
func NewAttempt(test *Test, userID *int64, now time.Time) Attempt {
	return Attempt{
		TestID:    test.ID,
		StartedAt: now.UTC(),
		IsMock:    test.IsMockTest,
		UserID:    userID,
	}
}

// TimeTakenMinutes returns whole elapsed minutes at now, never less than 1.
func (a Attempt) TimeTakenMinutes(now time.Time) int {
	minutes := int(now.Sub(a.StartedAt) / time.Minute)
	if minutes < 1 {
		return 1
	}
	return minutes
}
