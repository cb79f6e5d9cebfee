package repositories

import (
	"context"
	"sync"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
)

// memoryRecord guards one submission; updates of different submissions never contend
type memoryRecord struct {
	mu  sync.Mutex
	sub *models.Submission
}

type memorySubmissionRepository struct {
	mu      sync.RWMutex // guards records and order
	records map[string]*memoryRecord
	order   []string
}

// NewMemorySubmissionRepository creates a process-local submission store.
// It is used for development runs and as the reference engine in tests.
func NewMemorySubmissionRepository() *memorySubmissionRepository {
	return &memorySubmissionRepository{
		records: make(map[string]*memoryRecord),
	}
}

// Create stores a new pending submission
func (r *memorySubmissionRepository) Create(ctx context.Context, v *models.ValidatedSubmission) (*models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("create", err)
	}

	sub := newSubmissionRecord(v)

	r.mu.Lock()
	r.records[sub.ID] = &memoryRecord{sub: sub}
	r.order = append(r.order, sub.ID)
	r.mu.Unlock()

	return sub.Clone(), nil
}

// GetAll returns copies of every submission in insertion order
func (r *memorySubmissionRepository) GetAll(ctx context.Context) ([]models.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage("list", err)
	}

	r.mu.RLock()
	records := make([]*memoryRecord, 0, len(r.order))
	for _, id := range r.order {
		records = append(records, r.records[id])
	}
	r.mu.RUnlock()

	subs := make([]models.Submission, 0, len(records))
	for _, rec := range records {
		rec.mu.Lock()
		subs = append(subs, *rec.sub.Clone())
		rec.mu.Unlock()
	}

	return subs, nil
}

// GetByID returns a copy of one submission
func (r *memorySubmissionRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	rec, err := r.record(ctx, "get", id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return rec.sub.Clone(), nil
}

// Update runs mutate on a copy while holding the record lock and stores the copy on success
func (r *memorySubmissionRepository) Update(ctx context.Context, id string, mutate func(sub *models.Submission) error) (*models.Submission, error) {
	rec, err := r.record(ctx, "update", id)
	if err != nil {
		return nil, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	next := rec.sub.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.Version++
	rec.sub = next

	return next.Clone(), nil
}

// Ping always succeeds unless ctx is done
func (r *memorySubmissionRepository) Ping(ctx context.Context) error {
	return apperrors.Storage("ping", ctx.Err())
}

func (r *memorySubmissionRepository) record(ctx context.Context, op, id string) (*memoryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.Storage(op, err)
	}

	r.mu.RLock()
	rec, ok := r.records[id]
	r.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	return rec, nil
}
