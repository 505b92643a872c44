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

type ProduitHandler struct {
	produitService service.ProduitService
	jwtSecret      []byte
	logger         *zap.Logger
}

func NewProduitHandler(produitService service.ProduitService, jwtSecret []byte, logger *zap.Logger) *ProduitHandler {
	return &ProduitHandler{produitService: produitService, jwtSecret: jwtSecret, logger: logger}
}

func (h *ProduitHandler) RegisterRoutes(router *gin.RouterGroup) {
	produits := router.Group("/api/produits", middleware.RequireAuth(h.jwtSecret))
	{
		produits.GET("", h.ListProduits)
		produits.POST("", h.CreateProduit)
		produits.GET("/alertes", h.ListLowStock)
		produits.GET("/:id", h.GetProduit)
		produits.PUT("/:id", h.UpdateProduit)
		produits.DELETE("/:id", h.DeleteProduit)
	}
}

// ListProduits returns paginated produits for the effective tenant
// @Summary      List produits
// @Tags         produits
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        search      query  string  false  "Search by nom"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/produits [get]
func (h *ProduitHandler) ListProduits(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	produits, total, err := h.produitService.ListProduits(c.Request.Context(), scope, c.Query("search"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("produits", produits, response.NewPagination(params.Page, params.Limit, total)))
}

// ListLowStock returns produits at or under their alert threshold
// @Summary      List low stock produits
// @Tags         produits
// @Security     BearerAuth
// @Produce      json
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/produits/alertes [get]
func (h *ProduitHandler) ListLowStock(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	produits, err := h.produitService.ListLowStock(c.Request.Context(), scope)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"produits": produits})
}

// CreateProduit creates a produit in the effective tenant
// @Summary      Create produit
// @Tags         produits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateProduitRequest  true  "Produit payload"
// @Success      201  {object}  service.ProduitResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/produits [post]
func (h *ProduitHandler) CreateProduit(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.CreateProduitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	produit, err := h.produitService.CreateProduit(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, produit)
}

// GetProduit returns a produit visible to the effective tenant
// @Summary      Get produit
// @Tags         produits
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Produit ID"
// @Success      200  {object}  service.ProduitResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/produits/{id} [get]
func (h *ProduitHandler) GetProduit(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	produit, err := h.produitService.GetProduit(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, produit)
}

// UpdateProduit updates a produit
// @Summary      Update produit
// @Tags         produits
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                        true  "Produit ID"
// @Param        payload  body  service.UpdateProduitRequest  true  "Update payload"
// @Success      200  {object}  service.ProduitResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/produits/{id} [put]
func (h *ProduitHandler) UpdateProduit(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.UpdateProduitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	produit, err := h.produitService.UpdateProduit(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, produit)
}

// DeleteProduit deletes a produit that no vente line references
// @Summary      Delete produit
// @Tags         produits
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Produit ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/produits/{id} [delete]
func (h *ProduitHandler) DeleteProduit(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	if err := h.produitService.DeleteProduit(c.Request.Context(), scope, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
