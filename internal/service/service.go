package service

import (
	"context"

	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/internal/repository"
	"github.com/wellness-compass/backend/pkg/auth"

	"github.com/google/uuid"
)

type Services struct {
	OTP   OTP
	Users Users
}

// AttemptRecorder accepts audit ledger entries fire-and-forget; it never
// reports failure to the caller.
type AttemptRecorder interface {
	Record(ctx context.Context, attempt *domain.OTPAttempt)
}

// SendLimiter throttles dispatches per phone number.
type SendLimiter interface {
	Reserve(ctx context.Context, phoneNumber string) error
}

type Deps struct {
	Config       *config.Config
	TokenManager auth.TokenManager
	Provider     provider.Verifier
	SendLimiter  SendLimiter
	Recorder     AttemptRecorder
	Repos        *repository.Repositories
}

func NewServices(deps Deps) *Services {
	users := newUserService(deps.Repos.Users, deps.Repos.RefreshSessions, deps.TokenManager)

	return &Services{
		Users: users,
		OTP: newOTPService(
			deps.Repos.OTPVerifications,
			deps.Repos.OTPAttempts,
			users,
			deps.Provider,
			deps.SendLimiter,
			deps.Recorder,
			deps.Config.OTP,
		),
	}
}

type OTP interface {
	Send(ctx context.Context, input SendOTPInput) (*SendOTPResult, error)
	Verify(ctx context.Context, input VerifyOTPInput) (*VerifyOTPResult, error)
	RecentAttempts(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error)
}

type Users interface {
	FindOrCreateByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	CreateSession(ctx context.Context, userID *uuid.UUID, phoneNumber string, userAgent string, userIP string) (*Tokens, error)
	Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
