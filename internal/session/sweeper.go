package session

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
)

// Expirer drops idle sessions.
type Expirer interface {
	Expire() int
}

// Sweeper periodically expires idle sessions on a gocron scheduler.
type Sweeper struct {
	scheduler *gocron.Scheduler
	target    Expirer
	interval  time.Duration
	logger    *slog.Logger
}

// NewSweeper creates a Sweeper that runs every interval once started.
func NewSweeper(target Expirer, interval time.Duration, log *slog.Logger) (*Sweeper, error) {
	if target == nil {
		return nil, fmt.Errorf("sweeper target cannot be nil")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("sweep interval must be positive, got %s", interval)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		target:    target,
		interval:  interval,
		logger:    log.With(slog.String("component", "session_sweeper")),
	}, nil
}

// Start schedules the sweep and runs the scheduler in the background.
func (s *Sweeper) Start() error {
	if _, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.Sweep); err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}
	s.scheduler.StartAsync()
	s.logger.Info("session sweeper started", slog.Duration("interval", s.interval))
	return nil
}

// Stop terminates the scheduler.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()
	s.logger.Info("session sweeper stopped")
}

// Sweep expires idle sessions once.
func (s *Sweeper) Sweep() {
	if n := s.target.Expire(); n > 0 {
		s.logger.Debug("expired idle sessions", slog.Int("count", n))
	}
}
