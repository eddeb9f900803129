package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"talentpool/internal/service"
)

type UnlockHandler struct {
	Unlock *service.UnlockService
}

func (h *UnlockHandler) Register(r *gin.Engine) {
	r.POST("/api/companies/:company_id/candidates/:candidate_id/unlock", h.unlock)
}

// @Summary Unlock a candidate's contact data (charges tokens)
// @Tags unlock
// @Param company_id path int true "company id"
// @Param candidate_id path int true "candidate id"
// @Success 200 {object} apiResponse
// @Failure 402 {object} apiResponse "insufficient balance"
// @Failure 409 {object} apiResponse "already unlocked"
// @Router /api/companies/{company_id}/candidates/{candidate_id}/unlock [post]
func (h *UnlockHandler) unlock(c *gin.Context) {
	if h.Unlock == nil {
		Error(c, http.StatusInternalServerError, "service unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	candidateID := uint64Param(c, "candidate_id")
	if companyID == 0 || candidateID == 0 {
		Error(c, http.StatusBadRequest, "invalid path params", nil)
		return
	}
	entry, err := h.Unlock.UnlockCandidate(c.Request.Context(), companyID, candidateID)
	if errors.Is(err, service.ErrAlreadyUnlocked) && entry != nil {
		c.JSON(http.StatusConflict, apiResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
			Data:    entry,
		})
		return
	}
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, entry, nil)
}
