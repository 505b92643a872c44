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

type TransactionHandler struct {
	transactionService service.TransactionService
	jwtSecret          []byte
	logger             *zap.Logger
}

func NewTransactionHandler(transactionService service.TransactionService, jwtSecret []byte, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, jwtSecret: jwtSecret, logger: logger}
}

func (h *TransactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	transactions := router.Group("/api/transactions", middleware.RequireAuth(h.jwtSecret))
	{
		transactions.GET("", h.ListTransactions)
		transactions.POST("", h.CreateTransaction)
		transactions.GET("/:id", h.GetTransaction)
		transactions.DELETE("/:id", h.DeleteTransaction)
	}
}

// ListTransactions returns paginated capital transactions for the effective tenant
// @Summary      List transactions
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        page        query  int     false  "Page number (default: 1)"
// @Param        limit       query  int     false  "Items per page (default: 20)"
// @Param        boutiqueId  query  string  false  "Tenant override (admin only)"
// @Param        type        query  string  false  "Filter by type: INJECTION, RETRAIT"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}
	params := pagination.Parse(c)

	transactions, total, err := h.transactionService.ListTransactions(c.Request.Context(), scope, c.Query("type"), params.Page, params.Limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.List("transactions", transactions, response.NewPagination(params.Page, params.Limit, total)))
}

// CreateTransaction records a capital injection or retrait, admin only
// @Summary      Create transaction
// @Tags         transactions
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body  service.CreateTransactionRequest  true  "Transaction payload"
// @Success      201  {object}  service.TransactionResponse
// @Failure      400  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /api/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	var req service.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(c.Request.Context(), session, req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, transaction)
}

// GetTransaction returns a transaction visible to the effective tenant
// @Summary      Get transaction
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  service.TransactionResponse
// @Failure      404  {object}  map[string]interface{}
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	scope, ok := currentScope(c, h.logger)
	if !ok {
		return
	}

	transaction, err := h.transactionService.GetTransaction(c.Request.Context(), scope, c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, transaction)
}

// DeleteTransaction removes a capital transaction, admin only
// @Summary      Delete transaction
// @Tags         transactions
// @Security     BearerAuth
// @Produce      json
// @Param        id  path  string  true  "Transaction ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]interface{}
// @Router       /api/transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	session, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), session, c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, response.Deleted())
}
