// Package apperrors declares the error taxonomy shared by the toolbox core and its HTTP surface.
package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ai-literacy/toolbox/internal/models"
)

var (
	// ErrNotFound is returned when a referenced submission does not exist
	ErrNotFound = errors.New("submission not found")
	// ErrInvalidRating is returned for votes outside of [1,5]
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrUnknownStatus is returned for review statuses outside of pending, approved and rejected
	ErrUnknownStatus = errors.New("unknown review status")
)

// ViolationCode identifies which entry rule was broken
type ViolationCode string

const (
	MissingField ViolationCode = "MissingField"
	InvalidEmail ViolationCode = "InvalidEmail"
	InvalidType  ViolationCode = "InvalidType"
)

// Violation is a single broken entry rule
type Violation struct {
	Field string        `json:"field"`
	Code  ViolationCode `json:"code"`
	Value string        `json:"value,omitempty"`
}

func (v Violation) String() string {
	switch v.Code {
	case MissingField:
		return fmt.Sprintf("MissingField(%s)", v.Field)
	case InvalidType:
		return fmt.Sprintf("InvalidType(%s)", v.Value)
	default:
		return string(v.Code)
	}
}

// ValidationError reports every rule a submission payload violates, in field order
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Has reports whether the error contains a violation with the given code and field.
// An empty field matches any field.
func (e *ValidationError) Has(code ViolationCode, field string) bool {
	for _, v := range e.Violations {
		if v.Code == code && (field == "" || v.Field == field) {
			return true
		}
	}
	return false
}

// IllegalTransitionError is returned when moderation is attempted out of a terminal state
type IllegalTransitionError struct {
	From models.ReviewStatus
	To   models.ReviewStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}

// StorageError wraps an I/O failure of the storage collaborator
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// DeliveryError wraps a failure of the delivery collaborator for one event
type DeliveryError struct {
	Event models.NotificationType
	Err   error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver %s notification: %v", e.Event, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Storage wraps err as a StorageError unless it is nil, a not-found error or already wrapped
func Storage(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}
