package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentpool/internal/repository"
	"talentpool/internal/service"
)

type LedgerHandler struct {
	Repo   repository.Repository
	Ledger *service.LedgerService
}

func (h *LedgerHandler) Register(r *gin.Engine) {
	g := r.Group("/api/companies/:company_id/tokens")
	g.GET("", h.balance)
	g.GET("/transactions", h.transactions)
	g.POST("/credit", h.credit)
}

// @Summary Get the company's token balance
// @Tags tokens
// @Param company_id path int true "company id"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/tokens [get]
func (h *LedgerHandler) balance(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	balance, err := h.Ledger.GetBalance(c.Request.Context(), companyID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, balance, nil)
}

// @Summary List token ledger transactions, newest first
// @Tags tokens
// @Param company_id path int true "company id"
// @Param entry_type query string false "entry type filter"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/tokens/transactions [get]
func (h *LedgerHandler) transactions(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	params := repository.ListTokenTransactionsParams{
		Limit:     limit,
		Offset:    offset,
		CompanyID: companyID,
		EntryType: strQueryPtr(c, "entry_type"),
		Since:     timeQueryPtr(c, "since"),
		OrderBy:   "created_at",
		Asc:       boolPtr(false),
	}
	items, err := h.Repo.ListTokenTransactions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountTokenTransactions(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

type creditTokensRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

// @Summary Credit tokens to a company (plan purchase landing)
// @Tags tokens
// @Accept json
// @Param company_id path int true "company id"
// @Param body body creditTokensRequest true "credit"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/tokens/credit [post]
func (h *LedgerHandler) credit(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	var req creditTokensRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if req.Amount <= 0 {
		Error(c, http.StatusBadRequest, "amount must be positive", nil)
		return
	}
	balance, err := h.Ledger.Credit(c.Request.Context(), companyID, req.Amount)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, balance, nil)
}
