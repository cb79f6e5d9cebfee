package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ai-literacy/toolbox/internal/apperrors"
	"github.com/ai-literacy/toolbox/internal/models"
	"github.com/hibiken/asynq"
)

const (
	// TaskTypeDeliver is the asynq task type consumed by the delivery worker
	TaskTypeDeliver = "notification:deliver"
	// QueueName is the asynq queue notifications are enqueued to
	QueueName = "notifications"
)

// Enqueuer is the part of *asynq.Client used by the dispatcher
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqDispatcher hands notification events to the delivery worker through an asynq queue.
// Retries and backoff are owned by the worker side.
type AsynqDispatcher struct {
	client   Enqueuer
	maxRetry int
}

// NewAsynqDispatcher creates a dispatcher enqueueing with the given retry budget
func NewAsynqDispatcher(client Enqueuer, maxRetry int) *AsynqDispatcher {
	return &AsynqDispatcher{
		client:   client,
		maxRetry: maxRetry,
	}
}

// Dispatch enqueues a single event for delivery
func (d *AsynqDispatcher) Dispatch(ctx context.Context, event models.NotificationEvent) error {
	task, err := NewDeliveryTask(event)
	if err != nil {
		return &apperrors.DeliveryError{Event: event.Type, Err: err}
	}

	if _, err := d.client.EnqueueContext(ctx, task, asynq.Queue(QueueName), asynq.MaxRetry(d.maxRetry)); err != nil {
		return &apperrors.DeliveryError{Event: event.Type, Err: err}
	}

	return nil
}

// NewDeliveryTask encodes an event as an asynq task
func NewDeliveryTask(event models.NotificationEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification event: %w", err)
	}
	return asynq.NewTask(TaskTypeDeliver, payload), nil
}

// ParseDeliveryTask decodes the event carried by a delivery task
func ParseDeliveryTask(t *asynq.Task) (models.NotificationEvent, error) {
	var event models.NotificationEvent
	if err := json.Unmarshal(t.Payload(), &event); err != nil {
		return event, fmt.Errorf("failed to decode notification event: %w", err)
	}
	if event.Type == "" {
		return event, fmt.Errorf("notification event has no type")
	}
	return event, nil
}
