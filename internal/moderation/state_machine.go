// Package moderation governs the review status of a submission.
//
// pending is the only initial state. approved and rejected are terminal and
// absorb every further transition under the normal workflow.
package moderation

import (
	"strings"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
)

// InitialStatus is the status every new submission starts in
const InitialStatus = models.ReviewStatusPending

var transitions = map[models.ReviewStatus][]models.ReviewStatus{
	models.ReviewStatusPending: {models.ReviewStatusApproved, models.ReviewStatusRejected},
}

// ParseStatus converts a raw status string into a known ReviewStatus
func ParseStatus(raw string) (models.ReviewStatus, error) {
	status := models.ReviewStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected:
		return status, nil
	default:
		return "", apperrors.ErrUnknownStatus
	}
}

// CanTransition reports whether from -> to is a legal move
func CanTransition(from, to models.ReviewStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Transition moves sub to target and records the moderator and notes.
// sub is left untouched; the moved copy is returned.
func Transition(sub *models.Submission, target models.ReviewStatus, notes, moderatorID string) (*models.Submission, error) {
	moderatorID = strings.TrimSpace(moderatorID)
	if moderatorID == "" {
		return nil, &apperrors.ValidationError{Violations: []apperrors.Violation{
			{Field: "reviewedBy", Code: apperrors.MissingField},
		}}
	}

	if !CanTransition(sub.ReviewStatus, target) {
		return nil, &apperrors.IllegalTransitionError{From: sub.ReviewStatus, To: target}
	}

	next := sub.Clone()
	next.ReviewStatus = target
	next.ReviewNotes = strings.TrimSpace(notes)
	next.ReviewedBy = moderatorID

	return next, nil
}
