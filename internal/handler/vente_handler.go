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

type VenteHandler struct {
	venteService service.VenteService
	jwtSecret    []byte
	logger       *zap.Logger
}

func NewVenteHandler(venteService service.VenteService, jwtSecret []byte, logger *zap.Logger) *VenteHandler {
	return &VenteHandler{venteService: venteService, jwtSecret: jwtSecret, logger: logger}
}

func (h *VenteHandler) RegisterRoutes(router *gin.RouterGroup) {
	ventes := router.Group("/api/ventes", middleware.RequireAuth(h.jwtSecret))
	{
		ventes.GET("", h.ListVentes)
		ventes.POST("", h.CreateVente)
		ventes.GET("/:id", h.GetVente)
		ventes.POST("/:id/paiements", h.AddPaiement)
		ventes.DELETE("/:id", h.DeleteVente)
	}
}

// ListVentes returns paginated ventes for the effective tenant
// @Summary      List ventes
// @Tags         ventes
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        statut      query  string  false  "Filter by statut: PAYEE, PARTIELLE, IMPAYEE"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/ventes [get]
func (h *VenteHandler) ListVentes(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	ventes, total, err := h.venteService.ListVentes(c.Request.Context(), scope, c.Query("statut"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("ventes", ventes, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateVente records a sale and decrements stock atomically
// @Summary      Create vente
// @Tags         ventes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateVenteRequest  true  "Vente payload"
// @Success      201  {object}  service.VenteResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/ventes [post]
func (h *VenteHandler) CreateVente(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.CreateVenteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	vente, err := h.venteService.CreateVente(c.Request.Context(), scope, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, vente)
}

// GetVente returns a vente with its lines and paiements
// @Summary      Get vente
// @Tags         ventes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Vente ID"
// @Success      200  {object}  service.VenteResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/ventes/{id} [get]
func (h *VenteHandler) GetVente(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	vente, err := h.venteService.GetVente(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vente)
}

// AddPaiement records a payment against a vente and refreshes its statut
// @Summary      Add paiement
// @Tags         ventes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                      true  "Vente ID"
// @Param        payload  body  service.AddPaiementRequest  true  "Paiement payload"
// @Success      200  {object}  service.VenteResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/ventes/{id}/paiements [post]
func (h *VenteHandler) AddPaiement(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	var req service.AddPaiementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	vente, err := h.venteService.AddPaiement(c.Request.Context(), scope, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, vente)
}

// DeleteVente cancels a vente and restores the sold stock
// @Summary      Delete vente
// @Tags         ventes
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Vente ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/ventes/{id} [delete]
func (h *VenteHandler) DeleteVente(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	if err := h.venteService.DeleteVente(c.Request.Context(), scope, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
