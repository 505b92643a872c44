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

type BoutiqueHandler struct {
	boutiqueService service.BoutiqueService
	jwtSecret       []byte
	logger          *zap.Logger
}

func NewBoutiqueHandler(boutiqueService service.BoutiqueService, jwtSecret []byte, logger *zap.Logger) *BoutiqueHandler {
	return &BoutiqueHandler{boutiqueService: boutiqueService, jwtSecret: jwtSecret, logger: logger}
}

func (h *BoutiqueHandler) RegisterRoutes(router *gin.RouterGroup) {
	boutiques := router.Group("/api/boutiques", middleware.RequireAuth(h.jwtSecret))
	{
		boutiques.GET("", h.ListBoutiques)
		boutiques.POST("", h.CreateBoutique)
		boutiques.GET("/:id", h.GetBoutique)
		boutiques.PUT("/:id", h.UpdateBoutique)
		boutiques.DELETE("/:id", h.DeleteBoutique)
	}
}

// ListBoutiques returns paginated boutiques, admin only
// @Summary      List boutiques
// @Tags         boutiques
// @Security     BearerAuth
// @Produce      json
// @Param        page          query  int     false  "Page number (default: 1)"
// @Param        limit         query  int     false  "Items per page (default: 20)"
// @Param        search        query  string  false  "Search by nom"
// @Param        includeStats  query  bool    false  "Attach aggregated stats to each boutique"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/boutiques [get]
func (h *BoutiqueHandler) ListBoutiques(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	params := pagination.Parse(c)
	includeStats := c.Query("includeStats") == "true"

	boutiques, total, err := h.boutiqueService.ListBoutiques(c.Request.Context(), session, c.Query("boutiqueId"), c.Query("search"), params.Page, params.Limit, includeStats)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("boutiques", boutiques, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateBoutique creates a boutique, admin only
// @Summary      Create boutique
// @Tags         boutiques
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateBoutiqueRequest  true  "Boutique payload"
// @Success      201  {object}  service.BoutiqueResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/boutiques [post]
func (h *BoutiqueHandler) CreateBoutique(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.CreateBoutiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	boutique, err := h.boutiqueService.CreateBoutique(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, boutique)
}

// GetBoutique returns a boutique, optionally with aggregated stats
// @Summary      Get boutique
// @Tags         boutiques
// @Security     BearerAuth
// @Produce      json
// @Param        id            path   string  true   "Boutique ID"
// @Param        includeStats  query  bool    false  "Attach aggregated stats"
// @Success      200  {object}  service.BoutiqueResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/boutiques/{id} [get]
func (h *BoutiqueHandler) GetBoutique(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}
	includeStats := c.Query("includeStats") == "true"

	boutique, err := h.boutiqueService.GetBoutique(c.Request.Context(), session, c.Param("id"), includeStats)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boutique)
}

// UpdateBoutique updates a boutique, admin only
// @Summary      Update boutique
// @Tags         boutiques
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path  string                         true  "Boutique ID"
// @Param        payload  body  service.UpdateBoutiqueRequest  true  "Update payload"
// @Success      200  {object}  service.BoutiqueResponse
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/boutiques/{id} [put]
func (h *BoutiqueHandler) UpdateBoutique(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.UpdateBoutiqueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	boutique, err := h.boutiqueService.UpdateBoutique(c.Request.Context(), session, c.Param("id"), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, boutique)
}

// DeleteBoutique deletes a boutique when nothing depends on it, admin only
// @Summary      Delete boutique
// @Tags         boutiques
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Boutique ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]interface{}
// @Router       /api/boutiques/{id} [delete]
func (h *BoutiqueHandler) DeleteBoutique(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.boutiqueService.DeleteBoutique(c.Request.Context(), session, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
