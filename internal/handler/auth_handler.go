package handler

import (
	"net/http"

	"github.com/Drasasse/gestion-commerce-sub002/internal/middleware"
	"github.com/Drasasse/gestion-commerce-sub002/internal/service"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userService service.UserService
	jwtSecret   []byte
	logger      *zap.Logger
}

func NewAuthHandler(userService service.UserService, jwtSecret []byte, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, jwtSecret: jwtSecret, logger: logger}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.GET("/me", middleware.RequireAuth(h.jwtSecret), h.Me)
	}
}

// Login authenticates a user and issues an access token
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.LoginRequest  true  "Credentials"
// @Success      200  {object}  service.LoginResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	middleware.SetTokenCookie(c, res.Token)
	c.JSON(http.StatusOK, res)
}

// Logout clears the session cookie
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c)
	c.JSON(http.StatusOK, response.Deleted())
}

// Me returns the authenticated user's profile
// @Summary      Current user
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.UserResponse
// @Failure      401  {object}  map[string]interface{}
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), session)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
