package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttemptTimeTakenMinutes(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	a := Attempt{TestID: 1, StartedAt: start}

	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{"immediate", 0, 1},
		{"under a minute", 59 * time.Second, 1},
		{"exactly one minute", time.Minute, 1},
		{"floors partial minutes", 2*time.Minute + 59*time.Second, 2},
		{"long sitting", 3 * time.Hour, 180},
		{"clock skew", -time.Minute, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, a.TimeTakenMinutes(start.Add(tc.elapsed)))
		})
	}
}

func TestNewAttempt(t *testing.T) {
	t.Parallel()

	uid := int64(7)
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("X", 3600))
	a := NewAttempt(&Test{ID: 100, IsMockTest: true}, &uid, now)

	assert.Equal(t, 100, a.TestID)
	assert.True(t, a.IsMock)
	assert.Equal(t, time.UTC, a.StartedAt.Location())
	assert.True(t, a.StartedAt.Equal(now))
	assert.Equal(t, &uid, a.UserID)
}
