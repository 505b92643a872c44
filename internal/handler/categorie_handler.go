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

type CategorieHandler struct {
	categorieService service.CategorieService
	jwtSecret        []byte
	logger           *zap.Logger
}

func NewCategorieHandler(categorieService service.CategorieService, jwtSecret []byte, logger *zap.Logger) *CategorieHandler {
	return &CategorieHandler{categorieService: categorieService, jwtSecret: jwtSecret, logger: logger}
}

func (h *CategorieHandler) RegisterRoutes(router *gin.RouterGroup) {
	categories := router.Group("/api/categories", middleware.RequireAuth(h.jwtSecret))
	{
		categories.GET("", h.ListCategories)
		categories.POST("", h.CreateCategorie)
		categories.GET("/:id", h.GetCategorie)
		categories.PUT("/:id", h.UpdateCategorie)
		categories.DELETE("/:id", h.DeleteCategorie)
	}
}

// ListCategories returns paginated categories for the effective tenant
// @Summary      List categories
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        search      query  string  false  "Search by nom"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/categories [get]
func (h *CategorieHandler) ListCategories(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	categories, total, err := h.categorieService.ListCategories(c.Request.Context(), scope, c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("categories", categories, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateCategorie creates a category in the effective tenant
// @Summary      Create category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateCategorieRequest  true  "Category payload"
// @Success      201  {object}  service.CategorieResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/categories [post]
func (h *CategorieHandler) CreateCategorie(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.CreateCategorieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	categorie, err := h.categorieService.CreateCategorie(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, categorie)
}

// GetCategorie returns a category visible to the effective tenant
// @Summary      Get category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  service.CategorieResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/categories/{id} [get]
func (h *CategorieHandler) GetCategorie(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	categorie, err := h.categorieService.GetCategorie(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, categorie)
}

// UpdateCategorie updates a category
// @Summary      Update category
// @Tags         categories
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                          true  "Category ID"
// @Param        payload  body  service.UpdateCategorieRequest  true  "Update payload"
// @Success      200  {object}  service.CategorieResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/categories/{id} [put]
func (h *CategorieHandler) UpdateCategorie(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.UpdateCategorieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	categorie, err := h.categorieService.UpdateCategorie(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, categorie)
}

// DeleteCategorie deletes a category that no produit references
// @Summary      Delete category
// @Tags         categories
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/categories/{id} [delete]
func (h *CategorieHandler) DeleteCategorie(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	if err := h.categorieService.DeleteCategorie(c.Request.Context(), scope, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
