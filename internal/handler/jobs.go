package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

type JobHandler struct {
	Repo repository.Repository
}

func (h *JobHandler) Register(r *gin.Engine) {
	g := r.Group("/api/jobs")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:job_id", h.get)
	g.PUT("/:job_id/status", h.updateStatus)
}

type createJobRequest struct {
	CompanyID   uint64  `json:"company_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	SalaryMin   *string `json:"salary_min"`
	SalaryMax   *string `json:"salary_max"`
}

// @Summary Create a job posting
// @Tags jobs
// @Accept json
// @Param body body createJobRequest true "job"
// @Success 200 {object} apiResponse
// @Router /api/jobs [post]
func (h *JobHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	company, err := h.Repo.GetCompanyByID(c.Request.Context(), req.CompanyID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if company == nil {
		Error(c, http.StatusNotFound, "company not found", nil)
		return
	}
	job := &models.JobPosting{
		CompanyID:   req.CompanyID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		Status:      models.JobStatusOpen,
	}
	salaryMin, ok := parseSalary(req.SalaryMin)
	if !ok {
		Error(c, http.StatusBadRequest, "invalid salary_min", nil)
		return
	}
	salaryMax, ok := parseSalary(req.SalaryMax)
	if !ok {
		Error(c, http.StatusBadRequest, "invalid salary_max", nil)
		return
	}
	job.SalaryMin = salaryMin
	job.SalaryMax = salaryMax
	if job.SalaryMin != nil && job.SalaryMax != nil && job.SalaryMax.LessThan(*job.SalaryMin) {
		Error(c, http.StatusBadRequest, "salary_max below salary_min", nil)
		return
	}
	if err := h.Repo.InsertJobPosting(c.Request.Context(), job); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, job, nil)
}

func parseSalary(raw *string) (*decimal.Decimal, bool) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, true
	}
	v, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil || v.IsNegative() {
		return nil, false
	}
	return &v, true
}

// @Summary List job postings
// @Tags jobs
// @Param company_id query int false "company filter"
// @Param status query string false "status filter"
// @Param location query string false "location filter"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/jobs [get]
func (h *JobHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListJobPostingsParams{
		Limit:    limit,
		Offset:   offset,
		Status:   strQueryPtr(c, "status"),
		Location: strQueryPtr(c, "location"),
		OrderBy:  "created_at",
		Asc:      boolPtr(false),
	}
	if companyID := uint64Query(c, "company_id"); companyID > 0 {
		params.CompanyID = &companyID
	}
	items, err := h.Repo.ListJobPostings(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountJobPostings(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Get a job posting
// @Tags jobs
// @Param job_id path int true "job id"
// @Success 200 {object} apiResponse
// @Router /api/jobs/{job_id} [get]
func (h *JobHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	jobID := uint64Param(c, "job_id")
	if jobID == 0 {
		Error(c, http.StatusBadRequest, "invalid job_id", nil)
		return
	}
	job, err := h.Repo.GetJobPostingByID(c.Request.Context(), jobID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if job == nil {
		Error(c, http.StatusNotFound, "job not found", nil)
		return
	}
	Ok(c, job, nil)
}

type updateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// @Summary Open or close a job posting
// @Tags jobs
// @Accept json
// @Param job_id path int true "job id"
// @Param body body updateJobStatusRequest true "status"
// @Success 200 {object} apiResponse
// @Router /api/jobs/{job_id}/status [put]
func (h *JobHandler) updateStatus(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	jobID := uint64Param(c, "job_id")
	if jobID == 0 {
		Error(c, http.StatusBadRequest, "invalid job_id", nil)
		return
	}
	var req updateJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	status := strings.TrimSpace(req.Status)
	if status != models.JobStatusOpen && status != models.JobStatusClosed {
		Error(c, http.StatusBadRequest, "status must be open or closed", nil)
		return
	}
	if err := h.Repo.UpdateJobPostingStatus(c.Request.Context(), jobID, status); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	job, _ := h.Repo.GetJobPostingByID(c.Request.Context(), jobID)
	Ok(c, job, nil)
}
