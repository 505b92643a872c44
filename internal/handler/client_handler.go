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

type ClientHandler struct {
	clientService service.ClientService
	jwtSecret     []byte
	logger        *zap.Logger
}

func NewClientHandler(clientService service.ClientService, jwtSecret []byte, logger *zap.Logger) *ClientHandler {
	return &ClientHandler{clientService: clientService, jwtSecret: jwtSecret, logger: logger}
}

func (h *ClientHandler) RegisterRoutes(router *gin.RouterGroup) {
	clients := router.Group("/api/clients", middleware.RequireAuth(h.jwtSecret))
	{
		clients.GET("", h.ListClients)
		clients.POST("", h.CreateClient)
		clients.GET("/:id", h.GetClient)
		clients.PUT("/:id", h.UpdateClient)
		clients.DELETE("/:id", h.DeleteClient)
	}
}

// ListClients returns paginated clients for the effective tenant
// @Summary      List clients
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        search      query  string  false  "Search by nom, email, telephone"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	clients, total, err := h.clientService.ListClients(c.Request.Context(), scope, c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("clients", clients, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateClient creates a client in the effective tenant
// @Summary      Create client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateClientRequest  true  "Client payload"
// @Success      201  {object}  service.ClientResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClient returns a client visible to the effective tenant
// @Summary      Get client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  service.ClientResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// UpdateClient updates a client
// @Summary      Update client
// @Tags         clients
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                       true  "Client ID"
// @Param        payload  body  service.UpdateClientRequest  true  "Update payload"
// @Success      200  {object}  service.ClientResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient deletes a client that no vente references
// @Summary      Delete client
// @Tags         clients
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Client ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/clients/{id} [delete]
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), scope, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
