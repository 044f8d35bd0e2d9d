package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wellness-compass/backend/internal/cache"
	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/internal/repository"
	"github.com/wellness-compass/backend/pkg/logger"
	"github.com/wellness-compass/backend/pkg/phone"

	"github.com/google/uuid"
)

type otpService struct {
	verifications repository.OTPVerifications
	attempts      repository.OTPAttempts
	users         Users
	provider      provider.Verifier
	sendLimiter   SendLimiter
	recorder      AttemptRecorder
	config        config.OTPConfig
}

func newOTPService(
	verifications repository.OTPVerifications,
	attempts repository.OTPAttempts,
	users Users,
	verifier provider.Verifier,
	sendLimiter SendLimiter,
	recorder AttemptRecorder,
	cfg config.OTPConfig,
) *otpService {
	return &otpService{
		verifications: verifications,
		attempts:      attempts,
		users:         users,
		provider:      verifier,
		sendLimiter:   sendLimiter,
		recorder:      recorder,
		config:        cfg,
	}
}

type SendOTPInput struct {
	PhoneNumber string
	CountryCode string
	IP          string
}

type SendOTPResult struct {
	PhoneNumber string
	SID         string
}

type VerifyOTPInput struct {
	PhoneNumber string
	Code        string
	IP          string
	UserAgent   string
}

type VerifyOTPResult struct {
	User   *domain.User
	Tokens *Tokens
}

// Send normalizes the phone number, starts a challenge with the provider
// and overwrites the verification record. The ledger write and the record
// upsert are both best-effort: once the provider call has decided the
// outcome, bookkeeping failures only get logged.
func (s *otpService) Send(ctx context.Context, input SendOTPInput) (*SendOTPResult, error) {
	normalized, err := phone.Normalize(input.PhoneNumber)
	if err != nil {
		// No side effects for malformed input, not even a ledger row.
		return nil, err
	}

	if !s.provider.Configured() {
		return nil, ErrProviderNotConfigured
	}

	if err := s.sendLimiter.Reserve(ctx, normalized); err != nil {
		if errors.Is(err, cache.ErrSendThrottled) {
			s.recordAttempt(ctx, normalized, input.IP, domain.AttemptTypeSend, domain.AttemptStatusBlocked, "Send rate limit exceeded")
			return nil, ErrSendThrottled
		}
		// The limiter is advisory; redis being down must not block sends.
		logger.Error("otp send limiter failed", zap.Error(err))
	}

	res, err := s.provider.Start(ctx, normalized)
	if err != nil {
		s.recordAttempt(ctx, normalized, input.IP, domain.AttemptTypeSend, domain.AttemptStatusFailed, err.Error())
		return nil, err
	}

	s.recordAttempt(ctx, normalized, input.IP, domain.AttemptTypeSend, domain.AttemptStatusSuccess, "")

	if err := s.storeChallenge(ctx, normalized, res.SID); err != nil {
		logger.Error("store otp challenge failed",
			zap.String("phone_number", normalized),
			zap.Error(err),
		)
	}

	return &SendOTPResult{PhoneNumber: normalized, SID: res.SID}, nil
}

// Verify checks a submitted code against the provider, guarded by the
// persisted challenge's expiry and attempt budget, and on success issues a
// session for the (possibly new) user owning the phone number.
func (s *otpService) Verify(ctx context.Context, input VerifyOTPInput) (*VerifyOTPResult, error) {
	phoneNumber := input.PhoneNumber

	verification, err := s.verifications.GetPendingByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusFailed, "No pending OTP verification found")
			return nil, ErrNoPendingVerification
		}
		return nil, fmt.Errorf("get pending verification failed: %w", err)
	}

	now := time.Now()
	if verification.IsExpired(now) {
		s.updateStatus(ctx, phoneNumber, domain.VerificationStatusExpired, nil)
		s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusFailed, "OTP code expired")
		return nil, ErrCodeExpired
	}

	if verification.AttemptsExhausted() {
		s.updateStatus(ctx, phoneNumber, domain.VerificationStatusFailed, nil)
		s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusBlocked, "Max verification attempts exceeded")
		return nil, ErrTooManyAttempts
	}

	if !s.provider.Configured() {
		return nil, ErrProviderNotConfigured
	}

	if err := s.provider.Check(ctx, phoneNumber, input.Code); err != nil {
		if incErr := s.verifications.IncrementAttempts(ctx, phoneNumber); incErr != nil {
			logger.Error("increment otp attempts failed", zap.Error(incErr))
		}
		s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusFailed, err.Error())
		return nil, err
	}

	s.updateStatus(ctx, phoneNumber, domain.VerificationStatusVerified, &now)

	user, err := s.users.FindOrCreateByPhone(ctx, phoneNumber)
	if err != nil {
		s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusFailed, "Failed to process user account")
		return nil, fmt.Errorf("find or create user failed: %w", err)
	}

	tokens, err := s.users.CreateSession(ctx, &user.ID, phoneNumber, input.UserAgent, input.IP)
	if err != nil {
		s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusFailed, "Failed to create session")
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	s.recordAttempt(ctx, phoneNumber, input.IP, domain.AttemptTypeVerify, domain.AttemptStatusSuccess, "")

	return &VerifyOTPResult{User: user, Tokens: tokens}, nil
}

func (s *otpService) RecentAttempts(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	return s.attempts.ListRecentByPhone(ctx, phoneNumber, limit)
}

func (s *otpService) storeChallenge(ctx context.Context, phoneNumber string, sid string) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generate verification id failed: %w", err)
	}

	verification := &domain.OTPVerification{
		ID:                id,
		PhoneNumber:       phoneNumber,
		ProviderReference: sid,
		Status:            domain.VerificationStatusPending,
		AttemptsCount:     0,
		MaxAttempts:       s.config.MaxAttempts,
		ExpiresAt:         time.Now().Add(s.config.TTL),
	}

	return s.verifications.Upsert(ctx, verification)
}

func (s *otpService) updateStatus(ctx context.Context, phoneNumber string, status domain.VerificationStatus, verifiedAt *time.Time) {
	if err := s.verifications.UpdateStatus(ctx, phoneNumber, status, verifiedAt); err != nil {
		logger.Error("update otp verification status failed",
			zap.String("phone_number", phoneNumber),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func (s *otpService) recordAttempt(
	ctx context.Context,
	phoneNumber string,
	ip string,
	attemptType domain.AttemptType,
	status domain.AttemptStatus,
	errorMessage string,
) {
	attempt := &domain.OTPAttempt{
		PhoneNumber: phoneNumber,
		IPAddress:   ip,
		AttemptType: attemptType,
		Status:      status,
		CreatedAt:   time.Now(),
	}
	if errorMessage != "" {
		attempt.ErrorMessage = &errorMessage
	}

	s.recorder.Record(ctx, attempt)
}
