package v1

import (
	"github.com/wellness-compass/backend/internal/config"
	"github.com/wellness-compass/backend/internal/service"
	"github.com/wellness-compass/backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title Wellness Compass Verification API
// @version 1.0
// @description Phone verification (OTP) and session API

// @BasePath /api/v1

// @securityDefinitions.apikey UserAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initOTPRoutes(v1)
	h.initUsersRoutes(v1)
}
