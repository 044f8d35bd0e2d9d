package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wellness-compass/backend/internal/config"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	m, err := NewManager(config.JWTConfig{
		SigningKey:      "test-signing-key",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	})
	require.NoError(t, err)
	return m
}

func TestNewManagerRequiresConfig(t *testing.T) {
	_, err := NewManager(config.JWTConfig{AccessTokenTTL: time.Hour, RefreshTokenTTL: time.Hour})
	require.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", RefreshTokenTTL: time.Hour})
	require.Error(t, err)

	_, err = NewManager(config.JWTConfig{SigningKey: "k", AccessTokenTTL: time.Hour})
	require.Error(t, err)
}

func TestJWTRoundTrip(t *testing.T) {
	m := newTestManager(t)
	userID := uuid.New()

	token, ttl, err := m.NewJWT(&userID, "+967771234567")
	require.NoError(t, err)
	require.Equal(t, time.Hour, ttl)

	subject, err := m.Parse(token)
	require.NoError(t, err)
	require.Equal(t, userID.String(), subject)
}

func TestParseRejectsForeignSignature(t *testing.T) {
	m := newTestManager(t)
	other, err := NewManager(config.JWTConfig{
		SigningKey:      "different-key",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	userID := uuid.New()
	token, _, err := other.NewJWT(&userID, "+967771234567")
	require.NoError(t, err)

	_, err = m.Parse(token)
	require.Error(t, err)
}

func TestRefreshTokenValidation(t *testing.T) {
	m := newTestManager(t)

	token, ttl, err := m.NewRefreshToken()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, ttl)

	id, err := m.ValidateRefreshToken(token.String())
	require.NoError(t, err)
	require.Equal(t, token, *id)

	_, err = m.ValidateRefreshToken("not-a-uuid")
	require.Error(t, err)
}
