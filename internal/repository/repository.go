package repository

import (
	"context"
	"time"

	"github.com/wellness-compass/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	OTPVerifications OTPVerifications
	OTPAttempts      OTPAttempts
	Users            Users
	RefreshSessions  RefreshSessions
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		OTPVerifications: newOTPVerificationRepository(db),
		OTPAttempts:      newOTPAttemptRepository(db),
		Users:            newUserRepository(db),
		RefreshSessions:  newRefreshSessionRepository(db),
	}
}

type OTPVerifications interface {
	// Upsert writes the challenge for verification.PhoneNumber, overwriting
	// any existing row: provider reference replaced, attempts reset, expiry
	// refreshed. Last write wins.
	Upsert(ctx context.Context, verification *domain.OTPVerification) error
	GetPendingByPhone(ctx context.Context, phoneNumber string) (*domain.OTPVerification, error)
	UpdateStatus(ctx context.Context, phoneNumber string, status domain.VerificationStatus, verifiedAt *time.Time) error
	IncrementAttempts(ctx context.Context, phoneNumber string) error
}

type OTPAttempts interface {
	Create(ctx context.Context, attempt *domain.OTPAttempt) error
	ListRecentByPhone(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error)
}

type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error)
	GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type RefreshSessions interface {
	Create(ctx context.Context, session *domain.RefreshSession) error
	GetByToken(ctx context.Context, refreshToken uuid.UUID) (*domain.RefreshSession, error)
	DeleteByToken(ctx context.Context, refreshToken uuid.UUID) error
}
