package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/provider"
)

type mockVerifications struct {
	mock.Mock
}

func (m *mockVerifications) Upsert(ctx context.Context, verification *domain.OTPVerification) error {
	args := m.Called(ctx, verification)
	return args.Error(0)
}

func (m *mockVerifications) GetPendingByPhone(ctx context.Context, phoneNumber string) (*domain.OTPVerification, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OTPVerification), args.Error(1)
}

func (m *mockVerifications) UpdateStatus(ctx context.Context, phoneNumber string, status domain.VerificationStatus, verifiedAt *time.Time) error {
	args := m.Called(ctx, phoneNumber, status, verifiedAt)
	return args.Error(0)
}

func (m *mockVerifications) IncrementAttempts(ctx context.Context, phoneNumber string) error {
	args := m.Called(ctx, phoneNumber)
	return args.Error(0)
}

type mockAttempts struct {
	mock.Mock
}

func (m *mockAttempts) Create(ctx context.Context, attempt *domain.OTPAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *mockAttempts) ListRecentByPhone(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error) {
	args := m.Called(ctx, phoneNumber, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OTPAttempt), args.Error(1)
}

type mockUsersRepo struct {
	mock.Mock
}

func (m *mockUsersRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUsersRepo) GetByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUsersRepo) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type mockRefreshSessions struct {
	mock.Mock
}

func (m *mockRefreshSessions) Create(ctx context.Context, session *domain.RefreshSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockRefreshSessions) GetByToken(ctx context.Context, refreshToken uuid.UUID) (*domain.RefreshSession, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshSession), args.Error(1)
}

func (m *mockRefreshSessions) DeleteByToken(ctx context.Context, refreshToken uuid.UUID) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type mockVerifier struct {
	mock.Mock
}

func (m *mockVerifier) Configured() bool {
	return m.Called().Bool(0)
}

func (m *mockVerifier) Start(ctx context.Context, phoneNumber string) (*provider.StartResult, error) {
	args := m.Called(ctx, phoneNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.StartResult), args.Error(1)
}

func (m *mockVerifier) Check(ctx context.Context, phoneNumber string, code string) error {
	args := m.Called(ctx, phoneNumber, code)
	return args.Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) Record(ctx context.Context, attempt *domain.OTPAttempt) {
	m.Called(ctx, attempt)
}

type mockSendLimiter struct {
	mock.Mock
}

func (m *mockSendLimiter) Reserve(ctx context.Context, phoneNumber string) error {
	args := m.Called(ctx, phoneNumber)
	return args.Error(0)
}

type mockTokenManager struct {
	mock.Mock
}

func (m *mockTokenManager) NewJWT(userID *uuid.UUID, phoneNumber string) (string, time.Duration, error) {
	args := m.Called(userID, phoneNumber)
	return args.String(0), args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockTokenManager) Parse(accessToken string) (string, error) {
	args := m.Called(accessToken)
	return args.String(0), args.Error(1)
}

func (m *mockTokenManager) NewRefreshToken() (uuid.UUID, time.Duration, error) {
	args := m.Called()
	return args.Get(0).(uuid.UUID), args.Get(1).(time.Duration), args.Error(2)
}

func (m *mockTokenManager) ValidateRefreshToken(refreshToken string) (*uuid.UUID, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*uuid.UUID), args.Error(1)
}
