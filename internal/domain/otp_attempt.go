package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttemptType string

const (
	AttemptTypeSend   AttemptType = "SEND"
	AttemptTypeVerify AttemptType = "VERIFY"
)

type AttemptStatus string

const (
	AttemptStatusSuccess AttemptStatus = "SUCCESS"
	AttemptStatusFailed  AttemptStatus = "FAILED"
	AttemptStatusBlocked AttemptStatus = "BLOCKED"
)

// OTPAttempt is an immutable audit entry, one per dispatch or verification
// call. Rows are append-only; the ledger keeps the full history even when
// the verification record itself is overwritten.
type OTPAttempt struct {
	ID           uuid.UUID     `db:"id"`
	PhoneNumber  string        `db:"phone_number"`
	IPAddress    string        `db:"ip_address"`
	AttemptType  AttemptType   `db:"attempt_type"`
	Status       AttemptStatus `db:"status"`
	ErrorMessage *string       `db:"error_message"`
	CreatedAt    time.Time     `db:"created_at"`
}
