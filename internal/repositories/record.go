// Package repositories holds the storage engines for submissions.
//
// Every engine gives per-record atomic read-modify-write through Update and lists
// submissions in insertion order.
package repositories

import (
	"time"

	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/google/uuid"
)

// newSubmissionRecord builds the initial stored form of a validated submission.
// Identifier and timestamp are generated per call.
func newSubmissionRecord(v *models.ValidatedSubmission) *models.Submission {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	return &models.Submission{
		ID:                uuid.NewString(),
		UploaderName:      v.UploaderName,
		UploaderEmail:     v.UploaderEmail,
		UploadType:        v.UploadType,
		UploadDate:        time.Now().UTC().Truncate(time.Millisecond),
		AgeRecommendation: v.AgeRecommendation,
		Title:             v.Title,
		Description:       v.Description,
		FileURL:           v.FileURL,
		ThumbnailURL:      v.ThumbnailURL,
		Tags:              append([]string(nil), tags...),
		ReviewStatus:      models.ReviewStatusPending,
		Rating:            models.RatingAggregate{Votes: []float64{}},
	}
}
