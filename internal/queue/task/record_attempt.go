package task

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	RecordAttemptTaskName  = "recordOtpAttemptTask"
	RecordAttemptQueueName = "otpAuditQueue"
)

// RecordAttempt is the payload of one audit ledger write.
type RecordAttempt struct {
	PhoneNumber  string    `json:"phone_number"`
	IPAddress    string    `json:"ip_address"`
	AttemptType  string    `json:"attempt_type"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

func NewRecordAttemptTask(data RecordAttempt) (*asynq.Task, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		RecordAttemptTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(RecordAttemptQueueName),
	), nil
}
