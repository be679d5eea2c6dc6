package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper periodically runs the overdue-revision sweep in the background.
// A single instance is started at boot and stopped through its context on
// shutdown; request handling never waits on it.
type Sweeper struct {
	consensus Service
	interval  time.Duration
	logger    *zap.SugaredLogger
}

// NewSweeper creates a new overdue-revision sweeper.
func NewSweeper(consensus Service, interval time.Duration, logger *zap.SugaredLogger) *Sweeper {
	return &Sweeper{
		consensus: consensus,
		interval:  interval,
		logger:    logger,
	}
}

// Run sweeps on a fixed interval until the context is cancelled. Blocks, so
// callers run it in its own goroutine.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Infow("overdue revision sweeper started", "interval", s.interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("overdue revision sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.consensus.ProcessOverdueRevisions(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}
				s.logger.Errorw("overdue revision sweep failed", "error", err)
			}
		}
	}
}
