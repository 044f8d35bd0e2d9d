package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	SendCodeEmailTaskName  = "sendCodeEmailTask"
	SendCodeEmailQueueName = "sendCodeEmailQueue"
)

// SendCodeEmail carries a locally issued verification code to the
// development catch-all inbox.
type SendCodeEmail struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

func NewSendCodeEmailTask(email string, phoneNumber string, code string) (*asynq.Task, error) {
	var data SendCodeEmail
	data.Email = email
	data.PhoneNumber = phoneNumber
	data.Code = code

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("json data marshal failed: %w", err)
	}

	return asynq.NewTask(
		SendCodeEmailTaskName,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue(SendCodeEmailQueueName),
	), nil
}
