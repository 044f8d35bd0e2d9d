package service

import "errors"

var (
	ErrProviderNotConfigured = errors.New("verification provider is not configured")
	ErrSendThrottled         = errors.New("too many codes requested")
	ErrNoPendingVerification = errors.New("no pending verification")
	ErrCodeExpired           = errors.New("verification code expired")
	ErrTooManyAttempts       = errors.New("too many failed attempts")

	ErrSessionNotFound = errors.New("refresh session not found")
	ErrSessionExpired  = errors.New("refresh session expired")
	ErrUserNotFound    = errors.New("user not found")
)
