package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler drives a check function on a fixed interval. The interval is
// measured start-to-start (a ticker, not completion-relative): when a
// check is still running as the next tick fires, that tick is skipped and
// logged, never queued, so at most one check is active per instance.
type Scheduler struct {
	interval time.Duration
	check    func(ctx context.Context)
	logger   zerolog.Logger

	// loopCtx only cancels the timer loop; cycleCtx outlives it so an
	// in-flight check finishes instead of being aborted mid-write.
	loopCtx     context.Context
	loopCancel  context.CancelFunc
	cycleCtx    context.Context
	cycleCancel context.CancelFunc

	inFlight atomic.Bool
	loopWG   sync.WaitGroup
	cycleWG  sync.WaitGroup

	mu     sync.Mutex
	active bool

	skippedTicks atomic.Int64
}

// NewScheduler creates a scheduler that will invoke check every interval.
func NewScheduler(interval time.Duration, check func(ctx context.Context), logger zerolog.Logger) *Scheduler {
	loopCtx, loopCancel := context.WithCancel(context.Background())
	cycleCtx, cycleCancel := context.WithCancel(context.Background())
	return &Scheduler{
		interval:    interval,
		check:       check,
		logger:      logger.With().Str("component", "PollScheduler").Logger(),
		loopCtx:     loopCtx,
		loopCancel:  loopCancel,
		cycleCtx:    cycleCtx,
		cycleCancel: cycleCancel,
	}
}

// Start performs one immediate check and then schedules subsequent checks
// every interval. Starting an active scheduler is a logged no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		s.logger.Warn().Msg("Scheduler already active")
		return
	}
	s.active = true
	s.mu.Unlock()

	s.logger.Info().Dur("interval", s.interval).Msg("Scheduler starting")

	s.loopWG.Add(1)
	go s.loop()
}

func (s *Scheduler) loop() {
	defer s.loopWG.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runGuarded()

	for {
		select {
		case <-s.loopCtx.Done():
			s.logger.Debug().Msg("Scheduler loop stopping")
			return
		case <-ticker.C:
			s.runGuarded()
		}
	}
}

// runGuarded starts one check unless one is already in flight.
func (s *Scheduler) runGuarded() {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.skippedTicks.Add(1)
		s.logger.Warn().Msg("Previous check still running, skipping this tick")
		return
	}

	s.cycleWG.Add(1)
	go func() {
		defer func() {
			s.inFlight.Store(false)
			s.cycleWG.Done()
		}()
		s.check(s.cycleCtx)
	}()
}

// Stop cancels the pending timer and waits for any in-flight check to run
// to completion, so state writes are never cut short. Stopping an
// inactive scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	s.mu.Unlock()

	s.loopCancel()
	s.loopWG.Wait()
	s.cycleWG.Wait()
	s.cycleCancel()
	s.logger.Info().Msg("Scheduler stopped")
}

// SkippedTicks returns how many ticks were dropped by the overlap guard.
func (s *Scheduler) SkippedTicks() int64 {
	return s.skippedTicks.Load()
}
