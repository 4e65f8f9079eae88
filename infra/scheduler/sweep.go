// Package scheduler runs periodic ledger maintenance on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper fails trades that outlived their period.
type Sweeper interface {
	Sweep(ctx context.Context, now time.Time) (int, error)
}

// SweepScheduler runs the expired-trade sweep on a cron schedule.
type SweepScheduler struct {
	sweeper  Sweeper
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	mu        sync.Mutex
	isRunning bool
}

// NewSweepScheduler accepts standard five-field cron expressions and
// descriptors such as "@every 1h".
func NewSweepScheduler(sweeper Sweeper, schedule string, logger *slog.Logger) *SweepScheduler {
	return &SweepScheduler{
		sweeper:  sweeper,
		schedule: schedule,
		timeout:  5 * time.Minute,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "sweep_scheduler"),
	}
}

func (s *SweepScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		return fmt.Errorf("failed to add cron job %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.isRunning = true
	s.logger.Info("Sweep scheduler started", "schedule", s.schedule)
	return nil
}

// Stop waits for a sweep in progress to finish.
func (s *SweepScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Sweep scheduler stopped")
}

func (s *SweepScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// Run sweeps once, now.
func (s *SweepScheduler) Run(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.sweeper.Sweep(ctx, time.Now())
}

func (s *SweepScheduler) runOnce() {
	s.logger.Debug("Starting scheduled sweep")
	failed, err := s.Run(context.Background())
	if err != nil {
		s.logger.Error("Scheduled sweep failed", "error", err)
		return
	}
	if failed > 0 {
		s.logger.Info("Scheduled sweep completed", "failed_trades", failed)
	}
}
