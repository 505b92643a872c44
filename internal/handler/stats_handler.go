package handler

import (
	"net/http"

	"github.com/Drasasse/gestion-commerce-sub002/internal/middleware"
	"github.com/Drasasse/gestion-commerce-sub002/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	statsService service.StatsService
	jwtSecret    []byte
	logger       *zap.Logger
}

func NewStatsHandler(statsService service.StatsService, jwtSecret []byte, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{statsService: statsService, jwtSecret: jwtSecret, logger: logger}
}

func (h *StatsHandler) RegisterRoutes(router *gin.RouterGroup) {
	stats := router.Group("/api/stats", middleware.RequireAuth(h.jwtSecret))
	{
		stats.GET("/dashboard", h.Dashboard)
	}
}

// Dashboard returns aggregated sales figures for the effective tenant
// @Summary      Dashboard stats
// @Tags         stats
// @Security     BearerAuth
// @Produce      json
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        startDate   query  string  false  "Start of range (YYYY-MM-DD, default 30 days ago)"
// @Param        endDate     query  string  false  "End of range (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  model.DashboardStats
// @Failure      400  {object}  map[string]interface{}
// @Router       /api/stats/dashboard [get]
func (h *StatsHandler) Dashboard(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	stats, err := h.statsService.Dashboard(c.Request.Context(), scope, c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
