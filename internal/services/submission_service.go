package services

import (
	"context"
	"errors"
	"iter"
	"strings"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/moderation"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/ai-literacy/toolbox/internal/notification"
	"github.com/ai-literacy/toolbox/internal/rating"
	"go.uber.org/zap"
)

// SubmissionRepository is the storage contract every submission store satisfies
type SubmissionRepository interface {
	// Create persists a validated submission
	//
	// The store assigns a fresh identifier and upload timestamp, sets review status to pending
	// and starts from an empty rating aggregate.
	//
	// If some error occurs during data insert, the error will be returned together with "nil" value.
	Create(ctx context.Context, v *models.ValidatedSubmission) (*models.Submission, error)
	// GetAll retrieves every stored submission in insertion order
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	GetAll(ctx context.Context) ([]models.Submission, error)
	// GetByID retrieves a submission by its ID
	//
	// "id" parameter is used to retrieve a submission by its ID.
	//
	// Returns apperrors.ErrNotFound if no submission has the given ID.
	GetByID(ctx context.Context, id string) (*models.Submission, error)
	// Update applies mutate to the stored submission as one atomic read-modify-write
	//
	// "id" parameter selects the submission.
	// "mutate" receives a private copy; returning an error aborts the update and leaves the record unchanged.
	//
	// Returns apperrors.ErrNotFound if no submission has the given ID.
	Update(ctx context.Context, id string, mutate func(sub *models.Submission) error) (*models.Submission, error)
	// Ping checks that the store is reachable
	Ping(ctx context.Context) error
}

// NotificationDispatcher hands notification events to the delivery collaborator
type NotificationDispatcher interface {
	// Dispatch schedules delivery of a single event.
	//
	// A returned error never affects already committed storage changes.
	Dispatch(ctx context.Context, event models.NotificationEvent) error
}

type submissionService struct {
	repo       SubmissionRepository
	validator  *EntryValidator
	dispatcher NotificationDispatcher
	logger     *zap.Logger
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(repo SubmissionRepository, dispatcher NotificationDispatcher, logger *zap.Logger) *submissionService {
	return &submissionService{
		repo:       repo,
		validator:  NewEntryValidator(),
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Create validates a payload, stores it as a pending submission and notifies the submitter and the admin
func (s *submissionService) Create(ctx context.Context, payload *models.SubmissionPayload) (*models.SubmissionResult, error) {
	validated, err := s.validator.Validate(payload)
	if err != nil {
		return nil, err
	}

	sub, err := s.repo.Create(ctx, validated)
	if err != nil {
		return nil, apperrors.Storage("create", err)
	}

	s.logger.Info("submission created", zap.String("submission_id", sub.ID), zap.String("upload_type", string(sub.UploadType)))

	return &models.SubmissionResult{
		Submission: sub,
		Warnings:   s.dispatch(ctx, notification.OnSubmissionCreated(sub)),
	}, nil
}

// GetAll returns every submission in insertion order
func (s *submissionService) GetAll(ctx context.Context) ([]models.Submission, error) {
	subs, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Storage("list", err)
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, nil
}

// GetByID returns a single submission
func (s *submissionService) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, &apperrors.ValidationError{Violations: []apperrors.Violation{{Field: "id", Code: apperrors.MissingField}}}
	}

	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Storage("get", err)
	}
	return sub, nil
}

// Rate records one star vote and returns the submission with its recomputed aggregate.
// Invalid votes are rejected before the store is touched.
func (s *submissionService) Rate(ctx context.Context, req *models.RateRequest) (*models.Submission, error) {
	verr := &apperrors.ValidationError{}
	id := strings.TrimSpace(req.ToolboxID)
	if id == "" {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "toolboxId", Code: apperrors.MissingField})
	}
	if req.Rating == nil {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "rating", Code: apperrors.MissingField})
	}
	if len(verr.Violations) > 0 {
		return nil, verr
	}

	vote := *req.Rating
	if err := rating.ValidateVote(vote); err != nil {
		return nil, err
	}

	sub, err := s.repo.Update(ctx, id, func(sub *models.Submission) error {
		agg, err := rating.AddVote(sub.Rating, vote)
		if err != nil {
			return err
		}
		sub.Rating = agg
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("vote recorded",
		zap.String("submission_id", sub.ID),
		zap.Int("count", sub.Rating.Count),
		zap.Float64("average", sub.Rating.Average),
	)

	return sub, nil
}

// Review moves a submission out of pending and notifies the uploader about the decision
func (s *submissionService) Review(ctx context.Context, req *models.ReviewRequest) (*models.SubmissionResult, error) {
	verr := &apperrors.ValidationError{}
	id := strings.TrimSpace(req.ToolboxID)
	if id == "" {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "toolboxId", Code: apperrors.MissingField})
	}
	if strings.TrimSpace(string(req.Status)) == "" {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "status", Code: apperrors.MissingField})
	}
	if len(verr.Violations) > 0 {
		return nil, verr
	}

	target, err := moderation.ParseStatus(string(req.Status))
	if err != nil {
		return nil, err
	}

	var from models.ReviewStatus
	sub, err := s.repo.Update(ctx, id, func(sub *models.Submission) error {
		from = sub.ReviewStatus
		next, err := moderation.Transition(sub, target, req.Notes, req.ReviewedBy)
		if err != nil {
			return err
		}
		*sub = *next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("submission reviewed",
		zap.String("submission_id", sub.ID),
		zap.String("from", string(from)),
		zap.String("to", string(sub.ReviewStatus)),
		zap.String("reviewed_by", sub.ReviewedBy),
	)

	return &models.SubmissionResult{
		Submission: sub,
		Warnings:   s.dispatch(ctx, notification.OnStateChanged(sub, from, sub.ReviewStatus)),
	}, nil
}

// SendSubmissionEmails re-sends the confirmation and admin notices for an address.
// Every notice is attempted; unlike creation, delivery failures are joined into the operation error.
func (s *submissionService) SendSubmissionEmails(ctx context.Context, req *models.SubmitEmailRequest) error {
	to := strings.TrimSpace(req.To)
	switch {
	case to == "":
		return &apperrors.ValidationError{Violations: []apperrors.Violation{{Field: "to", Code: apperrors.MissingField}}}
	case !ValidEmail(to):
		return &apperrors.ValidationError{Violations: []apperrors.Violation{{Field: "to", Code: apperrors.InvalidEmail}}}
	}

	var errs []error
	for event := range notification.SubmissionReceived("", to, "", strings.TrimSpace(req.Title)) {
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			s.logger.Warn("failed to dispatch notification", zap.String("type", string(event.Type)), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SendContactMessage forwards a visitor message to the contact mailbox
func (s *submissionService) SendContactMessage(ctx context.Context, req *models.ContactRequest) error {
	trimmed := models.ContactRequest{
		Name:      strings.TrimSpace(req.Name),
		EmailFrom: strings.TrimSpace(req.EmailFrom),
		Message:   strings.TrimSpace(req.Message),
	}

	verr := &apperrors.ValidationError{}
	if trimmed.Name == "" {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "name", Code: apperrors.MissingField})
	}
	switch {
	case trimmed.EmailFrom == "":
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "emailFrom", Code: apperrors.MissingField})
	case !ValidEmail(trimmed.EmailFrom):
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "emailFrom", Code: apperrors.InvalidEmail})
	}
	if trimmed.Message == "" {
		verr.Violations = append(verr.Violations, apperrors.Violation{Field: "message", Code: apperrors.MissingField})
	}
	if len(verr.Violations) > 0 {
		return verr
	}

	for event := range notification.OnContactMessage(&trimmed) {
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

// Ping checks the storage collaborator
func (s *submissionService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// dispatch delivers every event and turns failures into warnings.
// The request context may already be cancelled after the write committed, so its cancellation is dropped.
func (s *submissionService) dispatch(ctx context.Context, events iter.Seq[models.NotificationEvent]) []string {
	ctx = context.WithoutCancel(ctx)
	warnings := []string{}

	for event := range events {
		if err := s.dispatcher.Dispatch(ctx, event); err != nil {
			s.logger.Warn("failed to dispatch notification",
				zap.String("type", string(event.Type)),
				zap.String("submission_id", event.SubmissionID),
				zap.Error(err),
			)
			warnings = append(warnings, err.Error())
		}
	}

	return warnings
}
