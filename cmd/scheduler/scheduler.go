package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RatingReconciler defines the job run by the scheduler
type RatingReconciler interface {
	// Reconcile recomputes drifted rating aggregates and returns how many were repaired
	Reconcile(ctx context.Context) (int, error)
}

// Scheduler runs the rating reconciliation on a cron schedule
type Scheduler struct {
	cron       *cron.Cron
	reconciler RatingReconciler
	logger     *zap.Logger
	timeout    time.Duration
}

// NewScheduler creates a new scheduler instance.
// spec accepts standard five-field expressions and descriptors such as "@every 1h".
func NewScheduler(spec string, reconciler RatingReconciler, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		logger:     logger,
		timeout:    10 * time.Minute,
	}

	if _, err := s.cron.AddFunc(spec, s.reconcile); err != nil {
		return nil, err
	}

	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

// reconcile runs one reconciliation pass
func (s *Scheduler) reconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	repaired, err := s.reconciler.Reconcile(ctx)
	if err != nil {
		s.logger.Error("Rating reconciliation failed", zap.Int("repaired", repaired), zap.Error(err))
		return
	}

	s.logger.Info("Rating reconciliation finished",
		zap.Int("repaired", repaired),
		zap.Duration("duration", time.Since(start)),
	)
}
