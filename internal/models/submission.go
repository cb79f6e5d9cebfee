package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// UploadType represents the kind of tool being submitted
type UploadType string

const (
	UploadTypeGame      UploadType = "game"
	UploadTypeEducation UploadType = "education"
	UploadTypeOther     UploadType = "other"
)

// UploadTypes lists every accepted upload type
var UploadTypes = []UploadType{UploadTypeGame, UploadTypeEducation, UploadTypeOther}

// ReviewStatus represents the moderation state of a submission
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "pending"
	ReviewStatusApproved ReviewStatus = "approved"
	ReviewStatusRejected ReviewStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed out of the status
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewStatusApproved || s == ReviewStatusRejected
}

// Submission represents a catalog entry contributed by a community member
type Submission struct {
	ID                string          `json:"id" bson:"_id"`
	UploaderName      string          `json:"uploaderName" bson:"uploaderName"`
	UploaderEmail     string          `json:"uploaderEmail" bson:"uploaderEmail"`
	UploadType        UploadType      `json:"uploadType" bson:"uploadType"`
	UploadDate        time.Time       `json:"uploadDate" bson:"uploadDate"`
	AgeRecommendation string          `json:"ageRecommendation" bson:"ageRecommendation"`
	Title             string          `json:"title" bson:"title"`
	Description       string          `json:"description" bson:"description"`
	FileURL           string          `json:"fileURL" bson:"fileURL"`
	ThumbnailURL      string          `json:"thumbnailURL" bson:"thumbnailURL"`
	Tags              []string        `json:"tags" bson:"tags"`
	ReviewStatus      ReviewStatus    `json:"reviewStatus" bson:"reviewStatus"`
	ReviewNotes       string          `json:"reviewNotes,omitempty" bson:"reviewNotes,omitempty"`
	ReviewedBy        string          `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	Rating            RatingAggregate `json:"rating" bson:"rating"`
	// Version is bumped on every stored mutation and backs optimistic concurrency in document stores
	Version int64 `json:"-" bson:"version"`
}

// Clone returns a deep copy so callers never share slices with a store
func (s *Submission) Clone() *Submission {
	c := *s
	c.Tags = append([]string(nil), s.Tags...)
	c.Rating.Votes = append([]float64{}, s.Rating.Votes...)
	return &c
}

// RatingAggregate holds the raw star votes of a submission and the values derived from them
type RatingAggregate struct {
	Votes   []float64 `json:"votes" bson:"votes"`
	Count   int       `json:"count" bson:"count"`
	Average float64   `json:"average" bson:"average"`
}

// ValidatedSubmission is a payload that passed every entry rule and can be persisted
type ValidatedSubmission struct {
	UploaderName      string
	UploaderEmail     string
	UploadType        UploadType
	AgeRecommendation string
	Title             string
	Description       string
	FileURL           string
	ThumbnailURL      string
	Tags              []string
}

// SubmissionPayload represents the raw body of POST /api/add-entry
type SubmissionPayload struct {
	UploaderName      string  `json:"uploaderName"`
	UploaderEmail     string  `json:"uploaderEmail"`
	UploadType        string  `json:"uploadType"`
	AgeRecommendation string  `json:"ageRecommendation"`
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	FileURL           string  `json:"fileURL"`
	ThumbnailURL      string  `json:"thumbnailURL"`
	Tags              TagList `json:"tags"`
}

// TagList accepts either a comma-delimited string or a JSON array of strings.
// Entries are kept raw; normalization is done by the entry validator.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler
func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = nil
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*t = strings.Split(joined, ",")
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	*t = list
	return nil
}

// RateRequest represents the body of PATCH /api/rate-toolbox
type RateRequest struct {
	ToolboxID string   `json:"toolboxId"`
	Rating    *float64 `json:"rating"`
}

// ReviewRequest represents the body of PATCH /api/review-entry
type ReviewRequest struct {
	ToolboxID  string       `json:"toolboxId"`
	Status     ReviewStatus `json:"status"`
	Notes      string       `json:"notes,omitempty"`
	ReviewedBy string       `json:"reviewedBy"`
}

// SubmissionResult is returned by mutating service operations.
// Warnings carry delivery problems that did not affect the stored record.
type SubmissionResult struct {
	Submission *Submission
	Warnings   []string
}
