package domain

import (
	"time"

	"github.com/google/uuid"
)

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "PENDING"
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	VerificationStatusExpired  VerificationStatus = "EXPIRED"
	// VerificationStatusFailed marks a challenge whose attempt budget is
	// exhausted; the number must request a fresh code.
	VerificationStatusFailed VerificationStatus = "FAILED"
)

// OTPVerification is the single active challenge for a phone number. Resends
// overwrite the row in place (last write wins), so at most one non-expired
// PENDING challenge exists per number.
type OTPVerification struct {
	ID                uuid.UUID          `db:"id"`
	PhoneNumber       string             `db:"phone_number"`
	ProviderReference string             `db:"provider_reference"`
	Status            VerificationStatus `db:"status"`
	AttemptsCount     int                `db:"attempts_count"`
	MaxAttempts       int                `db:"max_attempts"`
	ExpiresAt         time.Time          `db:"expires_at"`
	VerifiedAt        *time.Time         `db:"verified_at"`
	CreatedAt         time.Time          `db:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at"`
}

// IsExpired reports whether the challenge is past its lifetime, regardless
// of the persisted status.
func (v *OTPVerification) IsExpired(now time.Time) bool {
	return now.After(v.ExpiresAt)
}

// AttemptsExhausted reports whether further code checks are blocked.
func (v *OTPVerification) AttemptsExhausted() bool {
	return v.AttemptsCount >= v.MaxAttempts
}
