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

type FournisseurHandler struct {
	fournisseurService service.FournisseurService
	jwtSecret          []byte
	logger             *zap.Logger
}

func NewFournisseurHandler(fournisseurService service.FournisseurService, jwtSecret []byte, logger *zap.Logger) *FournisseurHandler {
	return &FournisseurHandler{fournisseurService: fournisseurService, jwtSecret: jwtSecret, logger: logger}
}

func (h *FournisseurHandler) RegisterRoutes(router *gin.RouterGroup) {
	fournisseurs := router.Group("/api/fournisseurs", middleware.RequireAuth(h.jwtSecret))
	{
		fournisseurs.GET("", h.ListFournisseurs)
		fournisseurs.POST("", h.CreateFournisseur)
		fournisseurs.GET("/:id", h.GetFournisseur)
		fournisseurs.PUT("/:id", h.UpdateFournisseur)
		fournisseurs.DELETE("/:id", h.DeleteFournisseur)
	}
}

// ListFournisseurs returns paginated fournisseurs for the effective tenant
// @Summary      List fournisseurs
// @Tags         fournisseurs
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        search      query  string  false  "Search by nom, email, telephone"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/fournisseurs [get]
func (h *FournisseurHandler) ListFournisseurs(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	fournisseurs, total, err := h.fournisseurService.ListFournisseurs(c.Request.Context(), scope, c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("fournisseurs", fournisseurs, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateFournisseur creates a fournisseur in the effective tenant
// @Summary      Create fournisseur
// @Tags         fournisseurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateFournisseurRequest  true  "Fournisseur payload"
// @Success      201  {object}  service.FournisseurResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/fournisseurs [post]
func (h *FournisseurHandler) CreateFournisseur(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.CreateFournisseurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	fournisseur, err := h.fournisseurService.CreateFournisseur(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, fournisseur)
}

// GetFournisseur returns a fournisseur visible to the effective tenant
// @Summary      Get fournisseur
// @Tags         fournisseurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Fournisseur ID"
// @Success      200  {object}  service.FournisseurResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/fournisseurs/{id} [get]
func (h *FournisseurHandler) GetFournisseur(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	fournisseur, err := h.fournisseurService.GetFournisseur(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, fournisseur)
}

// UpdateFournisseur updates a fournisseur
// @Summary      Update fournisseur
// @Tags         fournisseurs
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                            true  "Fournisseur ID"
// @Param        payload  body  service.UpdateFournisseurRequest  true  "Update payload"
// @Success      200  {object}  service.FournisseurResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/fournisseurs/{id} [put]
func (h *FournisseurHandler) UpdateFournisseur(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.UpdateFournisseurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	fournisseur, err := h.fournisseurService.UpdateFournisseur(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, fournisseur)
}

// DeleteFournisseur deletes a fournisseur that no produit references
// @Summary      Delete fournisseur
// @Tags         fournisseurs
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Fournisseur ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/fournisseurs/{id} [delete]
func (h *FournisseurHandler) DeleteFournisseur(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	if err := h.fournisseurService.DeleteFournisseur(c.Request.Context(), scope, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
