package worker

import (
	"context"

	"github.com/wellness-compass/backend/internal/queue/task"
	"github.com/wellness-compass/backend/internal/repository"
	emailProvider "github.com/wellness-compass/backend/pkg/email"
)

type Workers struct {
	AttemptWriter AttemptWriter
	EmailSender   EmailSender
}

type Deps struct {
	Repos         *repository.Repositories
	EmailProvider emailProvider.Sender
}

// AttemptWriter persists one audit ledger row per processed task.
type AttemptWriter interface {
	WriteAttempt(ctx context.Context, data task.RecordAttempt) error
}

// EmailSender delivers locally issued verification codes by email.
type EmailSender interface {
	SendCodeEmail(ctx context.Context, email string, phoneNumber string, code string) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		AttemptWriter: newAttemptWriter(deps.Repos.OTPAttempts),
		EmailSender:   newEmailSender(deps.EmailProvider),
	}
}
