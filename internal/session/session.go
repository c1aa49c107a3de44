// Package session holds the in-progress attempt of each browser session.
// Expiry of idle sessions is the session store's concern; the exam flow only
// sees present or absent attempts.
package session

import (
	"context"
	"errors"

	"github.com/phrazzld/oetprep/internal/domain"
)

// ErrNoActiveAttempt is returned when a session holds no attempt.
var ErrNoActiveAttempt = errors.New("no active test attempt")

// ErrEmptySessionID is returned for operations without a session id.
var ErrEmptySessionID = errors.New("session id cannot be empty")

// Store keeps at most one attempt per session id.
type Store interface {
	// Get returns the session's attempt or ErrNoActiveAttempt.
	Get(ctx context.Context, sessionID string) (domain.Attempt, error)

	// Set records an attempt, replacing any previous one.
	Set(ctx context.Context, sessionID string, attempt domain.Attempt) error

	// Clear removes the attempt. Clearing an empty session is not an error.
	Clear(ctx context.Context, sessionID string) error
}
