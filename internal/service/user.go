package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/repository"
	"github.com/wellness-compass/backend/pkg/auth"

	"github.com/google/uuid"
)

type userService struct {
	userRepository           repository.Users
	refreshSessionRepository repository.RefreshSessions
	tokenManager             auth.TokenManager
}

func newUserService(
	userRepository repository.Users,
	refreshSessionRepository repository.RefreshSessions,
	tokenManager auth.TokenManager,
) *userService {
	return &userService{
		userRepository:           userRepository,
		refreshSessionRepository: refreshSessionRepository,
		tokenManager:             tokenManager,
	}
}

type Tokens struct {
	AccessToken  string
	AccessTTL    time.Duration
	RefreshToken uuid.UUID
	RefreshTTL   time.Duration
}

// FindOrCreateByPhone returns the account owning phoneNumber, registering a
// new PATIENT account on first verification.
func (s *userService) FindOrCreateByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	user, err := s.userRepository.GetByPhone(ctx, phoneNumber)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by phone failed: %w", err)
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	newUser := &domain.User{
		ID:            userID,
		PhoneNumber:   phoneNumber,
		Role:          domain.RolePatient,
		AccountStatus: domain.AccountStatusActive,
	}

	if err := s.userRepository.Create(ctx, newUser); err != nil {
		// Two first-time verifications can race; the loser reads the row
		// the winner inserted.
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return s.userRepository.GetByPhone(ctx, phoneNumber)
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	return newUser, nil
}

func (s *userService) CreateSession(ctx context.Context, userID *uuid.UUID, phoneNumber string, userAgent string, userIP string) (*Tokens, error) {
	var (
		res Tokens
		err error
	)

	res.AccessToken, res.AccessTTL, err = s.tokenManager.NewJWT(userID, phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	res.RefreshToken, res.RefreshTTL, err = s.tokenManager.NewRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token failed: %w", err)
	}

	refreshSessionID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate refresh session id failed: %w", err)
	}
	refreshSession := &domain.RefreshSession{
		ID:           refreshSessionID,
		UserID:       *userID,
		RefreshToken: res.RefreshToken,
		UserAgent:    userAgent,
		IP:           userIP,
		ExpiresIn:    time.Now().Add(res.RefreshTTL),
	}

	if err := s.refreshSessionRepository.Create(ctx, refreshSession); err != nil {
		return nil, fmt.Errorf("create refresh session failed: %w", err)
	}

	return &res, nil
}

// Refresh rotates a refresh session: the presented token is invalidated and
// a fresh token pair is issued for the session's user.
func (s *userService) Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*Tokens, error) {
	tokenID, err := s.tokenManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrSessionNotFound
	}

	session, err := s.refreshSessionRepository.GetByToken(ctx, *tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get refresh session failed: %w", err)
	}

	if err := s.refreshSessionRepository.DeleteByToken(ctx, *tokenID); err != nil && !errors.Is(err, domain.ErrNoRowsAffected) {
		return nil, fmt.Errorf("delete refresh session failed: %w", err)
	}

	if time.Now().After(session.ExpiresIn) {
		return nil, ErrSessionExpired
	}

	user, err := s.userRepository.GetOneByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get session user failed: %w", err)
	}

	return s.CreateSession(ctx, &user.ID, user.PhoneNumber, userAgent, userIP)
}

func (s *userService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepository.GetOneByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
