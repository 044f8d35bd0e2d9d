package v1

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellness-compass/backend/internal/provider"
	"github.com/wellness-compass/backend/internal/service"
	"github.com/wellness-compass/backend/pkg/logger"
	"github.com/wellness-compass/backend/pkg/phone"
)

func (h *Handler) initOTPRoutes(api *gin.RouterGroup) {
	otp := api.Group("/otp")

	otp.POST("/send", h.sendOTP)
	otp.POST("/verify", h.verifyOTP)
	otp.GET("/attempts", h.userIdentityMiddleware, h.listOTPAttempts)
}

type sendOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	CountryCode string `json:"country_code"`
}

type sendOTPData struct {
	SID string `json:"sid"`
}

// @Summary Send OTP
// @Tags OTP
// @Description Sends a one-time verification code to the given phone number
// @ModuleID sendOTP
// @Accept  json
// @Produce  json
// @Param input body sendOTPRequest true "phone number"
// @Success 200 {object} successResponse
// @Failure 400,429 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /otp/send [post]
func (h *Handler) sendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Phone number required")
		return
	}

	res, err := h.services.OTP.Send(c.Request.Context(), service.SendOTPInput{
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		IP:          c.ClientIP(),
	})
	if err != nil {
		h.sendOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "OTP sent",
		Data:    sendOTPData{SID: res.SID},
	})
}

func (h *Handler) sendOTPError(c *gin.Context, err error) {
	var providerErr *provider.Error

	switch {
	case errors.Is(err, phone.ErrInvalidFormat):
		newErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrProviderNotConfigured):
		logger.Error("otp send rejected: provider not configured")
		newErrorResponse(c, http.StatusInternalServerError, "Server config error")
	case errors.Is(err, service.ErrSendThrottled):
		newErrorResponse(c, http.StatusTooManyRequests, "Too many OTP requests. Please try again later.")
	case errors.As(err, &providerErr):
		newErrorResponse(c, http.StatusInternalServerError, providerErr.Message)
	default:
		logger.Error("otp send failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Internal error")
	}
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
	Code        string `json:"code" binding:"required,otpcode"`
}

type verifiedUser struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `json:"role"`
}

type verifyOTPData struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken uuid.UUID    `json:"refresh_token"`
	User         verifiedUser `json:"user"`
}

// @Summary Verify OTP
// @Tags OTP
// @Description Checks a submitted code and issues a session for the phone number's account
// @ModuleID verifyOTP
// @Accept  json
// @Produce  json
// @Param input body verifyOTPRequest true "phone number and code"
// @Success 200 {object} successResponse
// @Failure 400,429 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /otp/verify [post]
func (h *Handler) verifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Phone number and OTP code are required")
		return
	}

	normalized, err := phone.Normalize(req.PhoneNumber)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.services.OTP.Verify(c.Request.Context(), service.VerifyOTPInput{
		PhoneNumber: normalized,
		Code:        req.Code,
		IP:          c.ClientIP(),
		UserAgent:   c.Request.UserAgent(),
	})
	if err != nil {
		h.verifyOTPError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "Phone verified",
		Data: verifyOTPData{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
			User: verifiedUser{
				ID:          res.User.ID,
				PhoneNumber: res.User.PhoneNumber,
				Role:        string(res.User.Role),
			},
		},
	})
}

func (h *Handler) verifyOTPError(c *gin.Context, err error) {
	var providerErr *provider.Error

	switch {
	case errors.Is(err, service.ErrNoPendingVerification):
		newErrorResponse(c, http.StatusBadRequest, "No pending OTP verification. Please request a new one.")
	case errors.Is(err, service.ErrCodeExpired):
		newErrorResponse(c, http.StatusBadRequest, "OTP code has expired. Please request a new one.")
	case errors.Is(err, service.ErrTooManyAttempts):
		newErrorResponse(c, http.StatusTooManyRequests, "Too many failed attempts. Please request a new OTP.")
	case errors.Is(err, provider.ErrCodeRejected):
		newErrorResponse(c, http.StatusBadRequest, "Invalid or expired OTP code")
	case errors.Is(err, service.ErrProviderNotConfigured):
		logger.Error("otp verify rejected: provider not configured")
		newErrorResponse(c, http.StatusInternalServerError, "Server config error")
	case errors.As(err, &providerErr):
		newErrorResponse(c, http.StatusBadRequest, providerErr.Message)
	default:
		logger.Error("otp verify failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Internal error")
	}
}

type otpAttemptItem struct {
	PhoneNumber  string  `json:"phone_number"`
	IPAddress    string  `json:"ip_address"`
	AttemptType  string  `json:"attempt_type"`
	Status       string  `json:"status"`
	ErrorMessage *string `json:"error_message,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

// @Summary List OTP attempts
// @Tags OTP
// @Description Recent send/verify attempts for the authenticated user's phone number
// @ModuleID listOTPAttempts
// @Accept  json
// @Produce  json
// @Param limit query int false "max rows, default 20"
// @Success 200 {object} successResponse
// @Failure 401
// @Failure 500 {object} errorResponse
// @Security UserAuth
// @Router /otp/attempts [get]
func (h *Handler) listOTPAttempts(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		logger.Error("get attempts user failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Internal error")
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	attempts, err := h.services.OTP.RecentAttempts(c.Request.Context(), user.PhoneNumber, limit)
	if err != nil {
		logger.Error("list otp attempts failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Internal error")
		return
	}

	items := make([]otpAttemptItem, len(attempts))
	for i, a := range attempts {
		items[i] = otpAttemptItem{
			PhoneNumber:  a.PhoneNumber,
			IPAddress:    a.IPAddress,
			AttemptType:  string(a.AttemptType),
			Status:       string(a.Status),
			ErrorMessage: a.ErrorMessage,
			CreatedAt:    a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, successResponse{Success: true, Message: "OK", Data: items})
}
