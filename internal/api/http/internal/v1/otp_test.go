package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/domain"
	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/internal/service"
	"github.com/wellness-compass/backend/pkg/phone"
	"github.com/wellness-compass/backend/pkg/validator"
)

type stubOTPService struct {
	sendResult   *service.SendOTPResult
	sendErr      error
	sendInput    *service.SendOTPInput
	verifyResult *service.VerifyOTPResult
	verifyErr    error
	verifyInput  *service.VerifyOTPInput
	attempts     []domain.OTPAttempt
}

func (s *stubOTPService) Send(ctx context.Context, input service.SendOTPInput) (*service.SendOTPResult, error) {
	s.sendInput = &input
	return s.sendResult, s.sendErr
}

func (s *stubOTPService) Verify(ctx context.Context, input service.VerifyOTPInput) (*service.VerifyOTPResult, error) {
	s.verifyInput = &input
	return s.verifyResult, s.verifyErr
}

func (s *stubOTPService) RecentAttempts(ctx context.Context, phoneNumber string, limit int) ([]domain.OTPAttempt, error) {
	return s.attempts, nil
}

type stubUsersService struct {
	user *domain.User
}

func (s *stubUsersService) FindOrCreateByPhone(ctx context.Context, phoneNumber string) (*domain.User, error) {
	return s.user, nil
}

func (s *stubUsersService) CreateSession(ctx context.Context, userID *uuid.UUID, phoneNumber string, userAgent string, userIP string) (*service.Tokens, error) {
	return &service.Tokens{}, nil
}

func (s *stubUsersService) Refresh(ctx context.Context, refreshToken string, userAgent string, userIP string) (*service.Tokens, error) {
	return &service.Tokens{}, nil
}

func (s *stubUsersService) GetOneByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if s.user == nil {
		return nil, service.ErrUserNotFound
	}
	return s.user, nil
}

func newTestRouter(t *testing.T, otp *stubOTPService) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	validator.RegisterGinValidator()

	h := NewHandler(
		&service.Services{OTP: otp, Users: &stubUsersService{}},
		nil,
		&config.Config{},
	)

	router := gin.New()
	h.Init(router.Group("/api"))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSendOTPSuccessShape(t *testing.T) {
	otp := &stubOTPService{sendResult: &service.SendOTPResult{PhoneNumber: "+967771234567", SID: "VE123"}}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/send", `{"phone_number":"771234567"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"success":true,"message":"OTP sent","data":{"sid":"VE123"}}`, rec.Body.String())
	require.Equal(t, "771234567", otp.sendInput.PhoneNumber)
}

func TestSendOTPMissingPhoneNumber(t *testing.T) {
	router := newTestRouter(t, &stubOTPService{})

	rec := postJSON(t, router, "/api/v1/otp/send", `{}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Phone number required"}`, rec.Body.String())
}

func TestSendOTPInvalidFormatMessage(t *testing.T) {
	otp := &stubOTPService{sendErr: phone.ErrInvalidFormat}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/send", `{"phone_number":"12345"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Invalid phone format. Use +1 (US) or +967 (Yemen)"}`, rec.Body.String())
}

func TestSendOTPServerConfigError(t *testing.T) {
	otp := &stubOTPService{sendErr: service.ErrProviderNotConfigured}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/send", `{"phone_number":"771234567"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Server config error"}`, rec.Body.String())
}

func TestSendOTPProviderErrorIsForwarded(t *testing.T) {
	otp := &stubOTPService{sendErr: &provider.Error{Message: "Invalid parameter: To"}}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/send", `{"phone_number":"771234567"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.JSONEq(t, `{"success":false,"error":"Invalid parameter: To"}`, rec.Body.String())
}

func TestSendOTPThrottled(t *testing.T) {
	otp := &stubOTPService{sendErr: service.ErrSendThrottled}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/send", `{"phone_number":"771234567"}`)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestVerifyOTPSuccessShape(t *testing.T) {
	userID := uuid.New()
	refreshToken := uuid.New()
	otp := &stubOTPService{verifyResult: &service.VerifyOTPResult{
		User: &domain.User{ID: userID, PhoneNumber: "+967771234567", Role: domain.RolePatient},
		Tokens: &service.Tokens{
			AccessToken:  "jwt-token",
			AccessTTL:    time.Hour,
			RefreshToken: refreshToken,
		},
	}}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/verify", `{"phone_number":"771234567","code":"123456"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool          `json:"success"`
		Data    verifyOTPData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
	require.Equal(t, "jwt-token", body.Data.AccessToken)
	require.Equal(t, refreshToken, body.Data.RefreshToken)
	require.Equal(t, userID, body.Data.User.ID)
	require.Equal(t, "PATIENT", body.Data.User.Role)

	// the handler normalizes before the service sees the number
	require.Equal(t, "+967771234567", otp.verifyInput.PhoneNumber)
}

func TestVerifyOTPRejectsMalformedCode(t *testing.T) {
	otp := &stubOTPService{}
	router := newTestRouter(t, otp)

	rec := postJSON(t, router, "/api/v1/otp/verify", `{"phone_number":"771234567","code":"12ab56"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Nil(t, otp.verifyInput)
}

func TestVerifyOTPErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"no pending", service.ErrNoPendingVerification, http.StatusBadRequest, "No pending OTP verification. Please request a new one."},
		{"expired", service.ErrCodeExpired, http.StatusBadRequest, "OTP code has expired. Please request a new one."},
		{"too many attempts", service.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many failed attempts. Please request a new OTP."},
		{"wrong code", provider.ErrCodeRejected, http.StatusBadRequest, "Invalid or expired OTP code"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t, &stubOTPService{verifyErr: tc.err})

			rec := postJSON(t, router, "/api/v1/otp/verify", `{"phone_number":"771234567","code":"123456"}`)

			require.Equal(t, tc.wantCode, rec.Code)

			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.False(t, body.Success)
			require.Equal(t, tc.wantMsg, body.Error)
		})
	}
}
