package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rentflow/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// OverdueScanner is the source the scheduler polls for overdue invoices.
// The billing InvoiceService satisfies it.
type OverdueScanner interface {
	ScanOverdue(ctx context.Context, limit int) (int, error)
}

// OverdueInvoiceScheduler periodically scans for pending invoices past their
// due date and lets the scanner emit overdue events for each. The scan is a
// read-and-notify pass, so running it again after a crash is harmless.
type OverdueInvoiceScheduler struct {
	scanner  OverdueScanner
	interval time.Duration
	batch    int
	logger   *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOverdueInvoiceScheduler creates a scheduler from configuration
func NewOverdueInvoiceScheduler(scanner OverdueScanner, cfg config.SchedulerConfig, logger *zap.Logger) *OverdueInvoiceScheduler {
	interval := cfg.ScanInterval
	if interval <= 0 {
		interval = time.Hour
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = 100
	}
	return &OverdueInvoiceScheduler{
		scanner:  scanner,
		interval: interval,
		batch:    batch,
		logger:   logger,
	}
}

// Start begins the periodic scan. The first scan runs after one interval.
func (s *OverdueInvoiceScheduler) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("overdue invoice scheduler started",
		zap.Duration("scan_interval", s.interval),
		zap.Int("batch_size", s.batch),
	)
	return nil
}

// Stop stops the scheduler and waits for an in-flight scan to finish
func (s *OverdueInvoiceScheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("overdue invoice scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *OverdueInvoiceScheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScan(ctx)
		}
	}
}

// RunOnce performs a single scan outside the schedule
func (s *OverdueInvoiceScheduler) RunOnce(ctx context.Context) {
	s.runScan(ctx)
}

func (s *OverdueInvoiceScheduler) runScan(ctx context.Context) {
	count, err := s.scanner.ScanOverdue(ctx, s.batch)
	if err != nil {
		s.logger.Error("overdue invoice scan failed", zap.Error(err))
		return
	}
	if count > 0 {
		s.logger.Info("overdue invoices flagged", zap.Int("count", count))
	}
}
