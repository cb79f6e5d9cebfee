package services

import (
	"context"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/ai-literacy/toolbox/internal/rating"
	"go.uber.org/zap"
)

type ratingReconciler struct {
	repo   SubmissionRepository
	logger *zap.Logger
}

// NewRatingReconciler creates a service that repairs stored aggregates whose count or average drifted from their votes
func NewRatingReconciler(repo SubmissionRepository, logger *zap.Logger) *ratingReconciler {
	return &ratingReconciler{
		repo:   repo,
		logger: logger,
	}
}

// Reconcile recomputes every inconsistent aggregate and returns how many submissions were repaired
func (r *ratingReconciler) Reconcile(ctx context.Context) (int, error) {
	subs, err := r.repo.GetAll(ctx)
	if err != nil {
		return 0, apperrors.Storage("reconcile", err)
	}

	repaired := 0
	for _, sub := range subs {
		if err := ctx.Err(); err != nil {
			return repaired, err
		}
		if rating.IsConsistent(sub.Rating) {
			continue
		}

		if _, err := r.repo.Update(ctx, sub.ID, func(s *models.Submission) error {
			s.Rating = rating.Recompute(s.Rating.Votes)
			return nil
		}); err != nil {
			r.logger.Error("failed to repair rating", zap.String("submission_id", sub.ID), zap.Error(err))
			continue
		}

		r.logger.Info("rating repaired",
			zap.String("submission_id", sub.ID),
			zap.Int("stored_count", sub.Rating.Count),
			zap.Float64("stored_average", sub.Rating.Average),
		)
		repaired++
	}

	return repaired, nil
}
