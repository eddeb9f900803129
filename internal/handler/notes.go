package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talentpool/internal/repository"
	"talentpool/internal/service"
)

type NoteHandler struct {
	Notes *service.NoteService
}

func (h *NoteHandler) Register(r *gin.Engine) {
	g := r.Group("/api/companies/:company_id/candidates/:candidate_id/notes")
	g.POST("", h.addNote)
	g.GET("", h.listNotes)
}

type addNoteRequest struct {
	Body      string `json:"body" binding:"required"`
	CreatedBy string `json:"created_by" binding:"required"`
}

// @Summary Add a note to a candidate
// @Tags notes
// @Accept json
// @Param company_id path int true "company id"
// @Param candidate_id path int true "candidate id"
// @Param body body addNoteRequest true "note"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/candidates/{candidate_id}/notes [post]
func (h *NoteHandler) addNote(c *gin.Context) {
	if h.Notes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	candidateID := uint64Param(c, "candidate_id")
	if companyID == 0 || candidateID == 0 {
		Error(c, http.StatusBadRequest, "invalid path params", nil)
		return
	}
	var req addNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.Body) == "" {
		Error(c, http.StatusBadRequest, "body is required", nil)
		return
	}
	note, err := h.Notes.AddNote(c.Request.Context(), companyID, candidateID, req.Body, req.CreatedBy)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, note, nil)
}

// @Summary List candidate notes, newest first
// @Tags notes
// @Param company_id path int true "company id"
// @Param candidate_id path int true "candidate id"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/candidates/{candidate_id}/notes [get]
func (h *NoteHandler) listNotes(c *gin.Context) {
	if h.Notes == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	candidateID := uint64Param(c, "candidate_id")
	if companyID == 0 || candidateID == 0 {
		Error(c, http.StatusBadRequest, "invalid path params", nil)
		return
	}
	limit := intQuery(c, "limit", 100)
	offset := intQuery(c, "offset", 0)
	items, total, err := h.Notes.ListNotes(c.Request.Context(), repository.ListNotesParams{
		Limit:       limit,
		Offset:      offset,
		CompanyID:   companyID,
		CandidateID: candidateID,
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}
