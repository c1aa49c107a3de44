package session

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/oetprep/internal/domain"
)

type entry struct {
	attempt domain.Attempt
	touched time.Time
}

// MemoryStore is a process-local Store. Attempts untouched for longer than
// the idle timeout are treated as absent and removed by Expire.
type MemoryStore struct {
	mu          sync.Mutex
	entries     map[string]entry
	idleTimeout time.Duration
	now         func() time.Time
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a MemoryStore. A non-positive idleTimeout disables
// expiry.
func NewMemoryStore(idleTimeout time.Duration) *MemoryStore {
	return &MemoryStore{
		entries:     make(map[string]entry),
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// Get implements Store.
func (m *MemoryStore) Get(ctx context.Context, sessionID string) (domain.Attempt, error) {
	if sessionID == "" {
		return domain.Attempt{}, ErrNoActiveAttempt
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[sessionID]
	if !ok || m.expired(e, m.now()) {
		return domain.Attempt{}, ErrNoActiveAttempt
	}
	return e.attempt, nil
}

// Set implements Store.
func (m *MemoryStore) Set(ctx context.Context, sessionID string, attempt domain.Attempt) error {
	if sessionID == "" {
		return ErrEmptySessionID
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[sessionID] = entry{attempt: attempt, touched: m.now()}
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, sessionID)
	return nil
}

// Expire removes idle attempts and returns how many were dropped.
func (m *MemoryStore) Expire() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	removed := 0
	for id, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored attempts, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MemoryStore) expired(e entry, now time.Time) bool {
	return m.idleTimeout > 0 && now.Sub(e.touched) > m.idleTimeout
}
