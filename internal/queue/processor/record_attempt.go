package processor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/wellness-compass/backend/internal/queue/task"
	"github.com/wellness-compass/backend/internal/worker"

	"github.com/hibiken/asynq"
)

type recordAttemptProcessor struct {
	workers *worker.Workers
}

func NewRecordAttemptProcessor(workers *worker.Workers) *recordAttemptProcessor {
	return &recordAttemptProcessor{
		workers: workers,
	}
}

func (p *recordAttemptProcessor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var data task.RecordAttempt
	err := json.Unmarshal(t.Payload(), &data)
	if err != nil {
		return fmt.Errorf("process record attempt task json unmarshal failed: %w", err)
	}

	if err = p.workers.AttemptWriter.WriteAttempt(ctx, data); err != nil {
		return fmt.Errorf("write otp attempt failed: %w", err)
	}

	return nil
}
