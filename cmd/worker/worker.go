package main

import (
	"context"
	"fmt"

	"github.com/ai-literacy/toolbox/internal/notification"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Sender defines the interface for delivering rendered e-mails
type Sender interface {
	// Send delivers msg.
	//
	// If some error occurs during delivery, the error will be returned and the task retried.
	Send(msg *notification.Message) error
}

// Worker renders notification events and sends them
type Worker struct {
	logger    *zap.Logger
	sender    Sender
	addresses notification.Addresses
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, sender Sender, addresses notification.Addresses) *Worker {
	return &Worker{
		logger:    logger,
		sender:    sender,
		addresses: addresses,
	}
}

// HandleDelivery handles notification:deliver tasks.
// Undecodable or unrenderable events are not retried.
func (w *Worker) HandleDelivery(ctx context.Context, t *asynq.Task) error {
	event, err := notification.ParseDeliveryTask(t)
	if err != nil {
		w.logger.Error("dropping malformed notification task", zap.Error(err))
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	msg, err := notification.Render(event, w.addresses)
	if err != nil {
		w.logger.Error("dropping unrenderable notification",
			zap.String("type", string(event.Type)),
			zap.String("submission_id", event.SubmissionID),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if err := w.sender.Send(msg); err != nil {
		w.logger.Warn("notification delivery failed",
			zap.String("type", string(event.Type)),
			zap.String("submission_id", event.SubmissionID),
			zap.Error(err),
		)
		return err
	}

	w.logger.Info("notification delivered",
		zap.String("type", string(event.Type)),
		zap.String("submission_id", event.SubmissionID),
	)
	return nil
}
