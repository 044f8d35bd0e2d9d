// Package queue holds the enqueue side of the asynq-backed background work.
// Audit ledger writes go through here so a redis hiccup can never change the
// outcome of a dispatch or verification request.
package queue

import (
	"context"

	"go.uber.org/zap"

	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/queue/client"
	"github.com/wellness-compass/backend/internal/queue/task"
	"github.com/wellness-compass/backend/pkg/logger"
)

// AttemptRecorder enqueues OTPAttempt ledger rows fire-and-forget: enqueue
// failures are logged and swallowed, never surfaced to the caller.
type AttemptRecorder struct{}

func NewAttemptRecorder() *AttemptRecorder {
	return &AttemptRecorder{}
}

func (r *AttemptRecorder) Record(ctx context.Context, attempt *domain.OTPAttempt) {
	data := task.RecordAttempt{
		PhoneNumber: attempt.PhoneNumber,
		IPAddress:   attempt.IPAddress,
		AttemptType: string(attempt.AttemptType),
		Status:      string(attempt.Status),
		OccurredAt:  attempt.CreatedAt,
	}
	if attempt.ErrorMessage != nil {
		data.ErrorMessage = *attempt.ErrorMessage
	}

	t, err := task.NewRecordAttemptTask(data)
	if err != nil {
		logger.Error("build record attempt task failed", zap.Error(err))
		return
	}

	asynqClient := client.GetClient(ctx)
	if asynqClient == nil {
		logger.Error("record attempt skipped: no queue client configured")
		return
	}

	if _, err := asynqClient.EnqueueContext(ctx, t); err != nil {
		logger.Error("enqueue record attempt task failed",
			zap.String("phone_number", attempt.PhoneNumber),
			zap.Error(err),
		)
	}
}

// CodeEmailer queues delivery of a locally issued code to the configured
// catch-all inbox.
type CodeEmailer struct {
	inbox string
}

func NewCodeEmailer(inbox string) *CodeEmailer {
	return &CodeEmailer{inbox: inbox}
}

func (e *CodeEmailer) Deliver(ctx context.Context, phoneNumber string, code string) error {
	t, err := task.NewSendCodeEmailTask(e.inbox, phoneNumber, code)
	if err != nil {
		return err
	}

	asynqClient := client.GetClient(ctx)
	if asynqClient == nil {
		return nil
	}

	_, err = asynqClient.EnqueueContext(ctx, t)
	return err
}
