package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wellness-compass/backend/internal/service"
	"github.com/wellness-compass/backend/pkg/logger"
)

func (h *Handler) initUsersRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	users.GET("/me", h.userIdentityMiddleware, h.getMe)

	auth := api.Group("/auth")
	auth.POST("/refresh", h.refreshSession)
}

type userProfile struct {
	ID            uuid.UUID `json:"id"`
	PhoneNumber   string    `json:"phone_number"`
	Role          string    `json:"role"`
	AccountStatus string    `json:"account_status"`
}

// @Summary Current user
// @Tags Users
// @Description Profile of the authenticated user
// @ModuleID getMe
// @Accept  json
// @Produce  json
// @Success 200 {object} successResponse
// @Failure 401
// @Failure 500 {object} errorResponse
// @Security UserAuth
// @Router /users/me [get]
func (h *Handler) getMe(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		newErrorResponse(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.services.Users.GetOneByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			newErrorResponse(c, http.StatusNotFound, "User not found")
			return
		}
		logger.Error("get user profile failed", zap.Error(err))
		newErrorResponse(c, http.StatusInternalServerError, "Internal error")
		return
	}

	c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "OK",
		Data: userProfile{
			ID:            user.ID,
			PhoneNumber:   user.PhoneNumber,
			Role:          string(user.Role),
			AccountStatus: string(user.AccountStatus),
		},
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type tokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken uuid.UUID `json:"refresh_token"`
}

// @Summary Refresh session
// @Tags Users
// @Description Rotates a refresh token into a new token pair
// @ModuleID refreshSession
// @Accept  json
// @Produce  json
// @Param input body refreshRequest true "refresh token"
// @Success 200 {object} successResponse
// @Failure 400,401 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /auth/refresh [post]
func (h *Handler) refreshSession(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "Refresh token required")
		return
	}

	tokens, err := h.services.Users.Refresh(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrUserNotFound):
			newErrorResponse(c, http.StatusUnauthorized, "Invalid refresh token")
		case errors.Is(err, service.ErrSessionExpired):
			newErrorResponse(c, http.StatusUnauthorized, "Session expired")
		default:
			logger.Error("refresh session failed", zap.Error(err))
			newErrorResponse(c, http.StatusInternalServerError, "Internal error")
		}
		return
	}

	c.JSON(http.StatusOK, successResponse{
		Success: true,
		Message: "OK",
		Data: tokenPair{
			AccessToken:  tokens.AccessToken,
			RefreshToken: tokens.RefreshToken,
		},
	})
}
