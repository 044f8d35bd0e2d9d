package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wellness-compass/backend/internal/queue/task"
	"github.com/wellness-compass/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type sendCodeEmailProcessor struct {
	workers *worker.Workers
}

func NewSendCodeEmailProcessor(workers *worker.Workers) *sendCodeEmailProcessor {
	return &sendCodeEmailProcessor{
		workers: workers,
	}
}

func (p *sendCodeEmailProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.SendCodeEmail
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process send code email task json unmarshal failed: %w", err)
	}

	if err = p.workers.EmailSender.SendCodeEmail(ctx, data.Email, data.PhoneNumber, data.Code); err != nil {
		return fmt.Errorf("send code email failed: %w", err)
	}

	return nil
}
