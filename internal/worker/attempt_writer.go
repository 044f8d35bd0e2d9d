package worker

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/queue/task"
	"github.com/wellness-compass/backend/internal/repository"
)

type attemptWriter struct {
	attempts repository.OTPAttempts
}

func newAttemptWriter(attempts repository.OTPAttempts) *attemptWriter {
	return &attemptWriter{
		attempts: attempts,
	}
}

func (w *attemptWriter) WriteAttempt(ctx context.Context, data task.RecordAttempt) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate attempt id failed: %w", err)
	}

	attempt := &domain.OTPAttempt{
		ID:          id,
		PhoneNumber: data.PhoneNumber,
		IPAddress:   data.IPAddress,
		AttemptType: domain.AttemptType(data.AttemptType),
		Status:      domain.AttemptStatus(data.Status),
	}
	if data.ErrorMessage != "" {
		attempt.ErrorMessage = &data.ErrorMessage
	}

	if err := w.attempts.Create(ctx, attempt); err != nil {
		return fmt.Errorf("create otp attempt failed: %w", err)
	}

	return nil
}
