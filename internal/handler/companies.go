package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentpool/internal/repository"
	"talentpool/internal/service"
)

type CompanyHandler struct {
	Repo      repository.Repository
	Companies *service.CompanyService
}

func (h *CompanyHandler) Register(r *gin.Engine) {
	g := r.Group("/api/companies")
	g.POST("", h.onboard)
	g.GET("", h.list)
	g.GET("/:company_id", h.get)
}

type onboardCompanyRequest struct {
	Name string `json:"name" binding:"required"`
	Plan string `json:"plan"`
}

// @Summary Onboard a company
// @Tags companies
// @Accept json
// @Param body body onboardCompanyRequest true "company"
// @Success 200 {object} apiResponse
// @Router /api/companies [post]
func (h *CompanyHandler) onboard(c *gin.Context) {
	if h.Companies == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	var req onboardCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		Error(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	company, err := h.Companies.Onboard(c.Request.Context(), req.Name, req.Plan)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, company, nil)
}

// @Summary List companies
// @Tags companies
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param name query string false "name filter"
// @Param plan query string false "plan filter"
// @Success 200 {object} apiResponse
// @Router /api/companies [get]
func (h *CompanyHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListCompaniesParams{
		Limit:   limit,
		Offset:  offset,
		Name:    strQueryPtr(c, "name"),
		Plan:    strQueryPtr(c, "plan"),
		OrderBy: "created_at",
		Asc:     boolPtr(false),
	}
	items, err := h.Repo.ListCompanies(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCompanies(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a company
// @Tags companies
// @Param company_id path int true "company id"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id} [get]
func (h *CompanyHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	company, err := h.Repo.GetCompanyByID(c.Request.Context(), companyID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if company == nil {
		Error(c, http.StatusNotFound, "company not found", nil)
		return
	}
	Ok(c, company, nil)
}
