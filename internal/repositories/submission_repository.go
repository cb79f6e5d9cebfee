package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"go.uber.org/zap"
)

type submissionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSubmissionRepository creates a MySQL backed submission repository.
// Each submission is kept as a JSON document next to the columns used for ordering and filtering.
func NewSubmissionRepository(db *sql.DB, logger *zap.Logger) *submissionRepository {
	return &submissionRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new pending submission
func (r *submissionRepository) Create(ctx context.Context, v *models.ValidatedSubmission) (*models.Submission, error) {
	sub := newSubmissionRecord(v)

	document, err := json.Marshal(sub)
	if err != nil {
		return nil, apperrors.Storage("create", fmt.Errorf("failed to encode submission: %w", err))
	}

	query := `
		INSERT INTO submissions (id, review_status, upload_date, version, document)
		VALUES (?, ?, ?, ?, ?)
	`

	if _, err := r.db.ExecContext(ctx, query, sub.ID, sub.ReviewStatus, sub.UploadDate, sub.Version, document); err != nil {
		r.logger.Error("failed to insert submission", zap.Error(err))
		return nil, apperrors.Storage("create", fmt.Errorf("failed to insert submission: %w", err))
	}

	return sub, nil
}

// GetAll retrieves every submission in insertion order
func (r *submissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	query := `
		SELECT document, version
		FROM submissions
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to query submissions", zap.Error(err))
		return nil, apperrors.Storage("list", fmt.Errorf("failed to query submissions: %w", err))
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			r.logger.Error("failed to scan submission", zap.Error(err))
			return nil, apperrors.Storage("list", err)
		}
		subs = append(subs, *sub)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("error iterating rows", zap.Error(err))
		return nil, apperrors.Storage("list", fmt.Errorf("error iterating rows: %w", err))
	}

	return subs, nil
}

// GetByID retrieves a submission by its ID
func (r *submissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	query := `
		SELECT document, version
		FROM submissions
		WHERE id = ?
		LIMIT 1
	`

	sub, err := scanSubmission(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to query submission", zap.String("submission_id", id), zap.Error(err))
		return nil, apperrors.Storage("get", err)
	}

	return sub, nil
}

// Update locks the row, applies mutate and writes the result back in one transaction
func (r *submissionRepository) Update(ctx context.Context, id string, mutate func(sub *models.Submission) error) (*models.Submission, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Storage("update", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	query := `
		SELECT document, version
		FROM submissions
		WHERE id = ?
		FOR UPDATE
	`

	sub, err := scanSubmission(tx.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to lock submission", zap.String("submission_id", id), zap.Error(err))
		return nil, apperrors.Storage("update", err)
	}

	if err := mutate(sub); err != nil {
		return nil, err
	}
	sub.Version++

	document, err := json.Marshal(sub)
	if err != nil {
		return nil, apperrors.Storage("update", fmt.Errorf("failed to encode submission: %w", err))
	}

	query = `
		UPDATE submissions
		SET review_status = ?, version = ?, document = ?
		WHERE id = ?
	`

	if _, err := tx.ExecContext(ctx, query, sub.ReviewStatus, sub.Version, document, id); err != nil {
		r.logger.Error("failed to update submission", zap.String("submission_id", id), zap.Error(err))
		return nil, apperrors.Storage("update", fmt.Errorf("failed to update submission: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Storage("update", fmt.Errorf("failed to commit transaction: %w", err))
	}

	return sub, nil
}

// Ping checks the database connection
func (r *submissionRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return apperrors.Storage("ping", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		document []byte
		version  int64
	)
	if err := row.Scan(&document, &version); err != nil {
		return nil, err
	}

	var sub models.Submission
	if err := json.Unmarshal(document, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode submission: %w", err)
	}
	sub.Version = version
	if sub.Tags == nil {
		sub.Tags = []string{}
	}
	if sub.Rating.Votes == nil {
		sub.Rating.Votes = []float64{}
	}

	return &sub, nil
}
