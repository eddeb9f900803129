package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentpool/internal/models"
	"talentpool/internal/repository"
	"talentpool/internal/service"
)

type PipelineHandler struct {
	Repo     repository.Repository
	Pipeline *service.PipelineService
}

func (h *PipelineHandler) Register(r *gin.Engine) {
	g := r.Group("/api/companies/:company_id/pipeline")
	g.GET("/stages", h.listStages)
	g.POST("/stages", h.createStage)
	g.PUT("/stages/reorder", h.reorderStages)
	g.GET("/board", h.board)
	g.POST("/candidates", h.addCandidate)
	g.POST("/candidates/:candidate_id/move", h.moveCandidate)
}

// @Summary List pipeline stages in board order
// @Tags pipeline
// @Param company_id path int true "company id"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/stages [get]
func (h *PipelineHandler) listStages(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	stages, err := h.Pipeline.ListStages(c.Request.Context(), companyID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, stages, nil)
}

type createStageRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Create a pipeline stage
// @Tags pipeline
// @Accept json
// @Param company_id path int true "company id"
// @Param body body createStageRequest true "stage"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/stages [post]
func (h *PipelineHandler) createStage(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	var req createStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		Error(c, http.StatusBadRequest, "name is required", nil)
		return
	}
	stage, err := h.Pipeline.CreateStage(c.Request.Context(), companyID, req.Name)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, stage, nil)
}

type reorderStagesRequest struct {
	Keys []string `json:"keys" binding:"required"`
}

// @Summary Reorder pipeline stages
// @Tags pipeline
// @Accept json
// @Param company_id path int true "company id"
// @Param body body reorderStagesRequest true "stage keys in new order"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/stages/reorder [put]
func (h *PipelineHandler) reorderStages(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	var req reorderStagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	stages, err := h.Pipeline.ReorderStages(c.Request.Context(), companyID, req.Keys)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, stages, nil)
}

type boardColumn struct {
	Stage   models.PipelineStage   `json:"stage"`
	Entries []models.PipelineEntry `json:"entries"`
}

// @Summary Get the pipeline board (stages with their entries)
// @Tags pipeline
// @Param company_id path int true "company id"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/board [get]
func (h *PipelineHandler) board(c *gin.Context) {
	if h.Repo == nil || h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	stages, err := h.Pipeline.ListStages(c.Request.Context(), companyID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	entries, err := h.Repo.ListPipelineEntries(c.Request.Context(), repository.ListPipelineEntriesParams{
		CompanyID: companyID,
		Limit:     500,
		OrderBy:   "last_touched_at",
		Asc:       boolPtr(false),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	byStage := make(map[string][]models.PipelineEntry, len(stages))
	for _, entry := range entries {
		byStage[entry.CurrentStageKey] = append(byStage[entry.CurrentStageKey], entry)
	}
	columns := make([]boardColumn, 0, len(stages))
	for _, stage := range stages {
		columns = append(columns, boardColumn{
			Stage:   stage,
			Entries: byStage[stage.Key],
		})
	}
	Ok(c, columns, nil)
}

type addCandidateRequest struct {
	CandidateID uint64 `json:"candidate_id" binding:"required"`
	StageKey    string `json:"stage_key"`
}

// @Summary Add a candidate to the pipeline
// @Tags pipeline
// @Accept json
// @Param company_id path int true "company id"
// @Param body body addCandidateRequest true "candidate"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/candidates [post]
func (h *PipelineHandler) addCandidate(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	var req addCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	entry, err := h.Pipeline.AddCandidate(c.Request.Context(), companyID, req.CandidateID, req.StageKey, "manual")
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, entry, nil)
}

type moveCandidateRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// @Summary Move a candidate between stages
// @Tags pipeline
// @Accept json
// @Param company_id path int true "company id"
// @Param candidate_id path int true "candidate id"
// @Param body body moveCandidateRequest true "move"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/pipeline/candidates/{candidate_id}/move [post]
func (h *PipelineHandler) moveCandidate(c *gin.Context) {
	if h.Pipeline == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	candidateID := uint64Param(c, "candidate_id")
	if companyID == 0 || candidateID == 0 {
		Error(c, http.StatusBadRequest, "invalid path params", nil)
		return
	}
	var req moveCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	entry, moved, err := h.Pipeline.MoveCandidate(c.Request.Context(), companyID, candidateID, req.From, req.To)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, entry, map[string]any{"moved": moved})
}
