package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	// baseConflictDelay and maxConflictDelay bound the wait between compare-and-swap attempts
	baseConflictDelay = 2 * time.Millisecond
	maxConflictDelay  = 100 * time.Millisecond
)

// errVersionConflict is returned when the context ends while writers still race for a document
var errVersionConflict = errors.New("submission was modified concurrently")

type mongoSubmissionRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewMongoSubmissionRepository creates a MongoDB backed submission repository
func NewMongoSubmissionRepository(db *mongo.Database, collection string, logger *zap.Logger) *mongoSubmissionRepository {
	return &mongoSubmissionRepository{
		collection: db.Collection(collection),
		logger:     logger,
	}
}

// EnsureIndexes creates the index backing insertion-ordered listing
func (r *mongoSubmissionRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "uploadDate", Value: 1}, {Key: "_id", Value: 1}},
	})
	if err != nil {
		return apperrors.Storage("ensure indexes", err)
	}
	return nil
}

// Create inserts a new pending submission document
func (r *mongoSubmissionRepository) Create(ctx context.Context, v *models.ValidatedSubmission) (*models.Submission, error) {
	sub := newSubmissionRecord(v)

	if _, err := r.collection.InsertOne(ctx, sub); err != nil {
		r.logger.Error("failed to insert submission", zap.Error(err))
		return nil, apperrors.Storage("create", fmt.Errorf("failed to insert submission: %w", err))
	}

	return sub, nil
}

// GetAll retrieves every submission ordered by upload date
func (r *mongoSubmissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		r.logger.Error("failed to query submissions", zap.Error(err))
		return nil, apperrors.Storage("list", fmt.Errorf("failed to query submissions: %w", err))
	}
	defer cursor.Close(ctx)

	subs := []models.Submission{}
	if err := cursor.All(ctx, &subs); err != nil {
		r.logger.Error("failed to decode submissions", zap.Error(err))
		return nil, apperrors.Storage("list", fmt.Errorf("failed to decode submissions: %w", err))
	}
	for i := range subs {
		normalizeDocument(&subs[i])
	}

	return subs, nil
}

// GetByID retrieves a submission by its ID
func (r *mongoSubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	var sub models.Submission
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&sub)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to query submission", zap.String("submission_id", id), zap.Error(err))
		return nil, apperrors.Storage("get", err)
	}
	normalizeDocument(&sub)

	return &sub, nil
}

// Update applies mutate with a compare-and-swap on the version field.
// Lost races are retried with jittered exponential backoff until one attempt wins or ctx ends,
// so concurrent votes are never dropped.
func (r *mongoSubmissionRepository) Update(ctx context.Context, id string, mutate func(sub *models.Submission) error) (*models.Submission, error) {
	for attempt := 1; ; attempt++ {
		current, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := mutate(next); err != nil {
			return nil, err
		}
		next.Version = current.Version + 1

		res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id, "version": current.Version}, next)
		if err != nil {
			r.logger.Error("failed to replace submission", zap.String("submission_id", id), zap.Error(err))
			return nil, apperrors.Storage("update", fmt.Errorf("failed to replace submission: %w", err))
		}
		if res.MatchedCount == 1 {
			return next, nil
		}

		r.logger.Debug("submission version conflict, retrying",
			zap.String("submission_id", id),
			zap.Int("attempt", attempt),
		)

		select {
		case <-ctx.Done():
			return nil, apperrors.Storage("update", fmt.Errorf("%w: %w", errVersionConflict, ctx.Err()))
		case <-time.After(conflictDelay(attempt)):
		}
	}
}

// conflictDelay doubles the wait per attempt up to maxConflictDelay and scales it by a random factor in [0.5, 1)
func conflictDelay(attempt int) time.Duration {
	delay := maxConflictDelay
	if attempt < 7 {
		delay = min(baseConflictDelay<<(attempt-1), maxConflictDelay)
	}
	return time.Duration(float64(delay) * (0.5 + rand.Float64()*0.5))
}

// Ping checks the MongoDB connection
func (r *mongoSubmissionRepository) Ping(ctx context.Context) error {
	if err := r.collection.Database().Client().Ping(ctx, nil); err != nil {
		return apperrors.Storage("ping", err)
	}
	return nil
}

func normalizeDocument(sub *models.Submission) {
	if sub.Tags == nil {
		sub.Tags = []string{}
	}
	if sub.Rating.Votes == nil {
		sub.Rating.Votes = []float64{}
	}
}
