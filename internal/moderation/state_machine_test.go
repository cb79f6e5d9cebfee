package moderation

import (
	"testing"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubmission(status models.ReviewStatus) *models.Submission {
	return &models.Submission{
		ID:           "sub-1",
		Title:        "Prompt Quest",
		ReviewStatus: status,
		Tags:         []string{"ml"},
		Rating:       models.RatingAggregate{Votes: []float64{5}, Count: 1, Average: 5},
	}
}

func TestTransition(t *testing.T) {
	tests := []struct {
		name          string
		from          models.ReviewStatus
		to            models.ReviewStatus
		expectedError bool
	}{
		{name: "pending to approved", from: models.ReviewStatusPending, to: models.ReviewStatusApproved},
		{name: "pending to rejected", from: models.ReviewStatusPending, to: models.ReviewStatusRejected},
		{name: "pending to pending", from: models.ReviewStatusPending, to: models.ReviewStatusPending, expectedError: true},
		{name: "approved to pending", from: models.ReviewStatusApproved, to: models.ReviewStatusPending, expectedError: true},
		{name: "approved to rejected", from: models.ReviewStatusApproved, to: models.ReviewStatusRejected, expectedError: true},
		{name: "approved to approved", from: models.ReviewStatusApproved, to: models.ReviewStatusApproved, expectedError: true},
		{name: "rejected to approved", from: models.ReviewStatusRejected, to: models.ReviewStatusApproved, expectedError: true},
		{name: "rejected to pending", from: models.ReviewStatusRejected, to: models.ReviewStatusPending, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := newSubmission(tt.from)

			result, err := Transition(sub, tt.to, " looks good ", "admin-7")

			if tt.expectedError {
				var illegal *apperrors.IllegalTransitionError
				require.ErrorAs(t, err, &illegal)
				assert.Equal(t, tt.from, illegal.From)
				assert.Equal(t, tt.to, illegal.To)
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, result.ReviewStatus)
			assert.Equal(t, "looks good", result.ReviewNotes)
			assert.Equal(t, "admin-7", result.ReviewedBy)
			assert.Equal(t, sub.Rating, result.Rating)
			// the input is not modified
			assert.Equal(t, tt.from, sub.ReviewStatus)
			assert.Empty(t, sub.ReviewedBy)
		})
	}
}

func TestTransition_RepeatedApprovalRejected(t *testing.T) {
	sub := newSubmission(models.ReviewStatusPending)

	approved, err := Transition(sub, models.ReviewStatusApproved, "", "admin")
	require.NoError(t, err)

	again, err := Transition(approved, models.ReviewStatusApproved, "", "admin")
	assert.Nil(t, again)
	assert.EqualError(t, err, "illegal transition from approved to approved")
}

func TestTransition_RequiresModerator(t *testing.T) {
	result, err := Transition(newSubmission(models.ReviewStatusPending), models.ReviewStatusApproved, "", "  ")

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.True(t, verr.Has(apperrors.MissingField, "reviewedBy"))
	assert.Nil(t, result)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" Approved ")
	require.NoError(t, err)
	assert.Equal(t, models.ReviewStatusApproved, status)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, apperrors.ErrUnknownStatus)
}
