package handler

import (
	"net/http"

	"github.com/Drasasse/gestion-commerce-sub002/internal/middleware"
	"github.com/Drasasse/gestion-commerce-sub002/internal/service"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/pagination"
	"github.com/Drasasse/gestion-commerce-sub002/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService service.UserService
	jwtSecret   []byte
	logger      *zap.Logger
}

func NewUserHandler(userService service.UserService, jwtSecret []byte, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, jwtSecret: jwtSecret, logger: logger}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/api/users", middleware.RequireAuth(h.jwtSecret))
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.PUT("/:id", h.UpdateUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// ListUsers returns paginated users, admin only
// @Summary      List users
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Filter by boutique"
// @Param        search      query  string  false  "Search by nom or email"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	users, total, err := h.userService.ListUsers(c.Request.Context(), session, c.Query("boutiqueId"), c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("users", users, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateUser creates a user account, admin only
// @Summary      Create user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateUserRequest  true  "User payload"
// @Success      201  {object}  service.UserResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUser returns a single user, admin only
// @Summary      Get user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  service.UserResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), session, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser updates a user account, admin only
// @Summary      Update user
// @Tags         users
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                     true  "User ID"
// @Param        payload  body  service.UpdateUserRequest  true  "Update payload"
// @Success      200  {object}  service.UserResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/users/{id} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user account, admin only
// @Summary      Delete user
// @Tags         users
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), session, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
