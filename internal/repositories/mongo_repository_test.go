package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

// mongoDocument encodes a submission the way the driver stores it
func mongoDocument(t testing.TB, sub *models.Submission) bson.D {
	t.Helper()
	raw, err := bson.Marshal(sub)
	require.NoError(t, err)

	var doc bson.D
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func namespace(mt *mtest.T) string {
	return mt.Coll.Database().Name() + "." + mt.Coll.Name()
}

func findResponse(mt *mtest.T, subs ...*models.Submission) bson.D {
	mt.Helper()
	docs := make([]bson.D, 0, len(subs))
	for _, sub := range subs {
		docs = append(docs, mongoDocument(mt, sub))
	}
	return mtest.CreateCursorResponse(0, namespace(mt), mtest.FirstBatch, docs...)
}

func replaceResponse(matched int) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: matched},
		bson.E{Key: "nModified", Value: matched},
	)
}

func commandNames(mt *mtest.T) []string {
	var names []string
	for _, evt := range mt.GetAllStartedEvents() {
		names = append(names, evt.CommandName)
	}
	return names
}

func setupMongoRepository(mt *mtest.T) *mongoSubmissionRepository {
	return NewMongoSubmissionRepository(mt.DB, mt.Coll.Name(), zap.NewNop())
}

func TestMongoSubmissionRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		sub, err := repo.Create(context.Background(), validatedSubmission())

		require.NoError(mt, err)
		assert.NotEmpty(mt, sub.ID)
		assert.Equal(mt, models.ReviewStatusPending, sub.ReviewStatus)
		assert.Equal(mt, []float64{}, sub.Rating.Votes)
		assert.Equal(mt, []string{"insert"}, commandNames(mt))
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		sub, err := repo.Create(context.Background(), validatedSubmission())

		assert.Nil(mt, sub)
		var serr *apperrors.StorageError
		require.ErrorAs(mt, err, &serr)
		assert.Equal(mt, "create", serr.Op)
	})
}

func TestMongoSubmissionRepository_GetAll(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("keeps upload order and sorts by upload date then id", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		first := storedSubmission("s1", models.ReviewStatusPending)
		second := storedSubmission("s2", models.ReviewStatusApproved, 4, 5)
		second.Tags = nil
		mt.AddMockResponses(findResponse(mt, first, second))

		subs, err := repo.GetAll(context.Background())

		require.NoError(mt, err)
		require.Len(mt, subs, 2)
		assert.Equal(mt, "s1", subs[0].ID)
		assert.Equal(mt, "s2", subs[1].ID)
		assert.Equal(mt, []string{}, subs[1].Tags)
		assert.Equal(mt, []float64{4, 5}, subs[1].Rating.Votes)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		assert.Equal(mt, "find", evt.CommandName)
		keys, err := evt.Command.Lookup("sort").Document().Elements()
		require.NoError(mt, err)
		require.Len(mt, keys, 2)
		assert.Equal(mt, "uploadDate", keys[0].Key())
		assert.Equal(mt, "_id", keys[1].Key())
	})

	mt.Run("empty collection", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(findResponse(mt))

		subs, err := repo.GetAll(context.Background())

		require.NoError(mt, err)
		assert.NotNil(mt, subs)
		assert.Empty(mt, subs)
	})

	mt.Run("query error", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad query"}))

		subs, err := repo.GetAll(context.Background())

		assert.Nil(mt, subs)
		var serr *apperrors.StorageError
		assert.ErrorAs(mt, err, &serr)
	})
}

func TestMongoSubmissionRepository_GetByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(findResponse(mt, storedSubmission("s1", models.ReviewStatusPending, 3)))

		sub, err := repo.GetByID(context.Background(), "s1")

		require.NoError(mt, err)
		assert.Equal(mt, "s1", sub.ID)
		assert.Equal(mt, 1, sub.Rating.Count)
		assert.Equal(mt, []float64{3}, sub.Rating.Votes)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(findResponse(mt))

		sub, err := repo.GetByID(context.Background(), "missing")

		assert.Nil(mt, sub)
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
		var serr *apperrors.StorageError
		assert.False(mt, errors.As(err, &serr))
	})
}

func TestMongoSubmissionRepository_Update(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	addVote := func(vote float64) func(sub *models.Submission) error {
		return func(sub *models.Submission) error {
			sub.Rating.Votes = append(sub.Rating.Votes, vote)
			sub.Rating.Count = len(sub.Rating.Votes)
			return nil
		}
	}

	mt.Run("first attempt wins", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(
			findResponse(mt, storedSubmission("s1", models.ReviewStatusPending)),
			replaceResponse(1),
		)

		sub, err := repo.Update(context.Background(), "s1", addVote(5))

		require.NoError(mt, err)
		assert.Equal(mt, []float64{5}, sub.Rating.Votes)
		assert.Equal(mt, int64(1), sub.Version)
		assert.Equal(mt, []string{"find", "update"}, commandNames(mt))
	})

	mt.Run("lost race is retried on the fresh document", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		stale := storedSubmission("s1", models.ReviewStatusPending)
		fresh := storedSubmission("s1", models.ReviewStatusPending, 4)
		fresh.Version = 1
		mt.AddMockResponses(
			findResponse(mt, stale),
			replaceResponse(0),
			findResponse(mt, fresh),
			replaceResponse(1),
		)

		sub, err := repo.Update(context.Background(), "s1", addVote(5))

		require.NoError(mt, err)
		assert.Equal(mt, []float64{4, 5}, sub.Rating.Votes)
		assert.Equal(mt, 2, sub.Rating.Count)
		assert.Equal(mt, int64(2), sub.Version)
		assert.Equal(mt, []string{"find", "update", "find", "update"}, commandNames(mt))
	})

	mt.Run("many lost races never drop the vote", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		const losses = 15
		for i := range losses {
			current := storedSubmission("s1", models.ReviewStatusPending)
			current.Version = int64(i)
			mt.AddMockResponses(findResponse(mt, current), replaceResponse(0))
		}
		winner := storedSubmission("s1", models.ReviewStatusPending)
		winner.Version = losses
		mt.AddMockResponses(findResponse(mt, winner), replaceResponse(1))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		sub, err := repo.Update(ctx, "s1", addVote(3))

		require.NoError(mt, err)
		assert.Equal(mt, []float64{3}, sub.Rating.Votes)
		assert.Equal(mt, int64(losses+1), sub.Version)
	})

	mt.Run("not found", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(findResponse(mt))

		sub, err := repo.Update(context.Background(), "missing", addVote(3))

		assert.Nil(mt, sub)
		assert.ErrorIs(mt, err, apperrors.ErrNotFound)
		assert.Equal(mt, []string{"find"}, commandNames(mt))
	})

	mt.Run("mutation error aborts without writing", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(findResponse(mt, storedSubmission("s1", models.ReviewStatusApproved)))
		mutateErr := &apperrors.IllegalTransitionError{From: models.ReviewStatusApproved, To: models.ReviewStatusRejected}

		sub, err := repo.Update(context.Background(), "s1", func(sub *models.Submission) error {
			return mutateErr
		})

		assert.Nil(mt, sub)
		assert.Equal(mt, mutateErr, err)
		assert.Equal(mt, []string{"find"}, commandNames(mt))
	})

	mt.Run("write error", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(
			findResponse(mt, storedSubmission("s1", models.ReviewStatusPending)),
			mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 91, Message: "shutting down"}),
		)

		sub, err := repo.Update(context.Background(), "s1", addVote(3))

		assert.Nil(mt, sub)
		var serr *apperrors.StorageError
		require.ErrorAs(mt, err, &serr)
		assert.Equal(mt, "update", serr.Op)
	})
}

func TestMongoSubmissionRepository_Ping(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reachable", func(mt *mtest.T) {
		repo := setupMongoRepository(mt)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Ping(context.Background()))
	})
}

func TestConflictDelay(t *testing.T) {
	for attempt := 1; attempt <= 40; attempt++ {
		delay := conflictDelay(attempt)

		assert.Greater(t, delay, time.Duration(0))
		assert.LessOrEqual(t, delay, maxConflictDelay)
	}

	assert.Less(t, conflictDelay(1), baseConflictDelay)
}
