// Package provider abstracts the third-party phone verification service.
// The provider, not this service's database, is the source of truth for
// whether a submitted code is valid.
package provider

import (
	"context"
	"errors"
)

// ErrCodeRejected is returned by Check when the provider recognizes the
// challenge but the submitted code is wrong or no longer valid.
var ErrCodeRejected = errors.New("invalid or expired OTP code")

// Error carries a provider-reported failure whose message is surfaced to the
// caller as-is.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// StartResult holds the provider's opaque reference for a started challenge.
type StartResult struct {
	SID string
}

type Verifier interface {
	// Configured reports whether all credentials the provider needs are
	// present. Dispatch refuses requests otherwise.
	Configured() bool
	// Start asks the provider to deliver a fresh code to phoneNumber.
	Start(ctx context.Context, phoneNumber string) (*StartResult, error)
	// Check validates a submitted code. ErrCodeRejected means the code was
	// wrong; any *Error means the provider call itself failed.
	Check(ctx context.Context, phoneNumber string, code string) error
}
