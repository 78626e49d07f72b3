package monitor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appmonitor "github.com/kaynetech/RetailRx/internal/application/monitor"
	"github.com/kaynetech/RetailRx/internal/application/dto"
	"github.com/kaynetech/RetailRx/internal/domain"
	"github.com/kaynetech/RetailRx/pkg/logger"
)

// blockingRunner lets a test hold a tick open to provoke overlap.
type blockingRunner struct {
	mu      sync.Mutex
	ticks   int
	release chan struct{} // nil = return immediately
	started chan struct{}
}

func (r *blockingRunner) Tick(context.Context) (*dto.ScanResultResponse, error) {
	r.mu.Lock()
	r.ticks++
	r.mu.Unlock()
	if r.started != nil {
		r.started <- struct{}{}
	}
	if r.release != nil {
		<-r.release
	}
	return &dto.ScanResultResponse{ScannedAt: time.Now()}, nil
}

func (r *blockingRunner) tickCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ticks
}

func TestScheduler_StartStopStateMachine(t *testing.T) {
	s := appmonitor.NewScheduler(&blockingRunner{}, time.Hour, logger.Nop())

	assert.False(t, s.Running(), "a new scheduler is stopped")

	s.Start()
	assert.True(t, s.Running())
	s.Start() // idempotent
	assert.True(t, s.Running())

	s.Stop()
	assert.False(t, s.Running())
	s.Stop() // idempotent
	assert.False(t, s.Running())
}

func TestScheduler_TickNowWorksWhileStopped(t *testing.T) {
	runner := &blockingRunner{}
	s := appmonitor.NewScheduler(runner, time.Hour, logger.Nop())

	result, err := s.TickNow(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, 1, runner.tickCount())
	assert.False(t, s.Running(), "a manual tick must not change the state")
	assert.NotNil(t, s.LastScan())
}

func TestScheduler_OverlappingManualTickIsRejected(t *testing.T) {
	runner := &blockingRunner{
		release: make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	s := appmonitor.NewScheduler(runner, time.Hour, logger.Nop())

	done := make(chan error, 1)
	go func() {
		_, err := s.TickNow(context.Background())
		done <- err
	}()
	<-runner.started // first tick is now in flight

	_, err := s.TickNow(context.Background())
	assert.ErrorIs(t, err, domain.ErrConflict, "overlapping pass must be rejected, not doubled")

	close(runner.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, runner.tickCount())
}

func TestScheduler_ScheduledTicksFire(t *testing.T) {
	runner := &blockingRunner{}
	s := appmonitor.NewScheduler(runner, 20*time.Millisecond, logger.Nop())

	s.Start()
	defer s.Stop()

	require.Eventually(t, func() bool { return runner.tickCount() >= 2 },
		2*time.Second, 10*time.Millisecond, "the timer must keep firing passes")
	assert.NotNil(t, s.LastScan())
}

func TestScheduler_LastScanUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	s := appmonitor.NewScheduler(&blockingRunner{}, time.Hour, logger.Nop()).
		WithClock(func() time.Time { return fixed })

	_, err := s.TickNow(context.Background())
	require.NoError(t, err)

	last := s.LastScan()
	require.NotNil(t, last)
	assert.True(t, last.Equal(fixed))
}
