package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talentpool/internal/repository"
	"talentpool/internal/service"
)

type ApplicationHandler struct {
	Repo         repository.Repository
	Applications *service.ApplicationService
}

func (h *ApplicationHandler) Register(r *gin.Engine) {
	g := r.Group("/api/jobs/:job_id/applications")
	g.POST("", h.submit)
	g.GET("", h.list)
}

type submitApplicationRequest struct {
	CandidateID uint64 `json:"candidate_id" binding:"required"`
	CoverLetter string `json:"cover_letter"`
}

// @Summary Submit an application to a job posting
// @Tags applications
// @Accept json
// @Param job_id path int true "job id"
// @Param body body submitApplicationRequest true "application"
// @Success 200 {object} apiResponse
// @Router /api/jobs/{job_id}/applications [post]
func (h *ApplicationHandler) submit(c *gin.Context) {
	if h.Applications == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	jobID := uint64Param(c, "job_id")
	if jobID == 0 {
		Error(c, http.StatusBadRequest, "invalid job_id", nil)
		return
	}
	var req submitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	application, err := h.Applications.Submit(c.Request.Context(), jobID, req.CandidateID, req.CoverLetter)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, application, nil)
}

// @Summary List applications for a job posting
// @Tags applications
// @Param job_id path int true "job id"
// @Param status query string false "status filter"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/jobs/{job_id}/applications [get]
func (h *ApplicationHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	jobID := uint64Param(c, "job_id")
	if jobID == 0 {
		Error(c, http.StatusBadRequest, "invalid job_id", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListApplicationsParams{
		Limit:        limit,
		Offset:       offset,
		JobPostingID: &jobID,
		Status:       strQueryPtr(c, "status"),
	}
	items, err := h.Repo.ListApplications(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountApplications(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
