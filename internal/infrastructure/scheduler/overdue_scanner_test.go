package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rentflow/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeScanner struct {
	mu    sync.Mutex
	calls int
	limit int
	err   error
}

func (f *fakeScanner) ScanOverdue(_ context.Context, limit int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.limit = limit
	if f.err != nil {
		return 0, f.err
	}
	return 2, nil
}

func (f *fakeScanner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestOverdueInvoiceScheduler_RunOnce(t *testing.T) {
	t.Run("passes batch size to scanner", func(t *testing.T) {
		scanner := &fakeScanner{}
		sched := NewOverdueInvoiceScheduler(scanner, config.SchedulerConfig{
			ScanInterval: time.Hour,
			BatchSize:    25,
		}, zap.NewNop())

		sched.RunOnce(context.Background())

		assert.Equal(t, 1, scanner.callCount())
		assert.Equal(t, 25, scanner.limit)
	})

	t.Run("swallows scan errors", func(t *testing.T) {
		scanner := &fakeScanner{err: errors.New("db gone")}
		sched := NewOverdueInvoiceScheduler(scanner, config.SchedulerConfig{
			ScanInterval: time.Hour,
			BatchSize:    10,
		}, zap.NewNop())

		sched.RunOnce(context.Background())

		assert.Equal(t, 1, scanner.callCount())
	})
}

func TestOverdueInvoiceScheduler_StartStop(t *testing.T) {
	t.Run("scans on the ticker until stopped", func(t *testing.T) {
		scanner := &fakeScanner{}
		sched := NewOverdueInvoiceScheduler(scanner, config.SchedulerConfig{
			ScanInterval: 10 * time.Millisecond,
			BatchSize:    10,
		}, zap.NewNop())

		assert.NoError(t, sched.Start(context.Background()))

		assert.Eventually(t, func() bool {
			return scanner.callCount() >= 2
		}, time.Second, 5*time.Millisecond)

		assert.NoError(t, sched.Stop(context.Background()))
	})

	t.Run("defaults interval and batch when unset", func(t *testing.T) {
		sched := NewOverdueInvoiceScheduler(&fakeScanner{}, config.SchedulerConfig{}, zap.NewNop())

		assert.Equal(t, time.Hour, sched.interval)
		assert.Equal(t, 100, sched.batch)
	})
}
