package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// tickRunner is what the scheduler drives; EvaluateUseCase satisfies it.
type tickRunner interface {
	Tick(ctx context.Context) (*dto.ScanResultResponse, error)
}

// Scheduler fires the evaluation pass on a fixed interval. Explicit state
// machine: Stopped -> Start() -> Running -> Stop() -> Stopped. TickNow runs a
// synchronous pass in either state without changing it.
//
// A tick in progress is never interrupted; Stop only prevents future ticks.
// Overlapping ticks (timer vs. manual) are collapsed by an in-flight guard:
// the second caller is rejected instead of double-writing.
type Scheduler struct {
	runner   tickRunner
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	lastScan *time.Time

	inFlight sync.Mutex
}

// NewScheduler builds a stopped scheduler.
func NewScheduler(runner tickRunner, interval time.Duration, log *logger.Logger) *Scheduler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Scheduler{
		runner:   runner,
		interval: interval,
		log:      log,
		now:      time.Now,
	}
}

// WithClock overrides the time source used for the last-scan stamp. Tests only.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Start transitions Stopped -> Running. Starting a running scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	go s.loop(s.stop)
	s.log.Info().Dur("interval", s.interval).Msg("inventory monitor started")
}

// Stop transitions Running -> Stopped. The current tick, if any, completes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	s.log.Info().Msg("inventory monitor stopped")
}

// Running reports the scheduler state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastScan returns the time the last completed pass started, nil before the
// first pass. Display only; not persisted across restarts.
func (s *Scheduler) LastScan() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastScan == nil {
		return nil
	}
	t := *s.lastScan
	return &t
}

// TickNow runs one synchronous pass regardless of Running state. Returns
// domain.ErrConflict when a pass is already in progress.
func (s *Scheduler) TickNow(ctx context.Context) (*dto.ScanResultResponse, error) {
	if !s.inFlight.TryLock() {
		return nil, domain.ErrConflict
	}
	defer s.inFlight.Unlock()
	return s.run(ctx)
}

func (s *Scheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !s.inFlight.TryLock() {
				s.log.Debug().Msg("tick skipped: previous pass still running")
				continue
			}
			if _, err := s.run(context.Background()); err != nil {
				// A failed tick never halts the scheduler; wait for the next one.
				s.log.Error().Err(err).Msg("scheduled tick failed")
			}
			s.inFlight.Unlock()
		}
	}
}

func (s *Scheduler) run(ctx context.Context) (*dto.ScanResultResponse, error) {
	started := s.now()
	result, err := s.runner.Tick(ctx)
	if err != nil {
		return result, err
	}
	s.mu.Lock()
	s.lastScan = &started
	s.mu.Unlock()
	return result, nil
}
