package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"talentpool/internal/models"
	"talentpool/internal/repository"
)

type CandidateHandler struct {
	Repo repository.Repository
}

func (h *CandidateHandler) Register(r *gin.Engine) {
	g := r.Group("/api/candidates")
	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:candidate_id", h.get)
}

type createCandidateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Headline string `json:"headline"`
	Location string `json:"location"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// candidateProfile is the company-facing view. Contact fields stay empty
// until the viewing company has unlocked the candidate.
type candidateProfile struct {
	ID         uint64     `json:"id"`
	FullName   string     `json:"full_name"`
	Headline   string     `json:"headline"`
	Location   string     `json:"location"`
	Email      string     `json:"email,omitempty"`
	Phone      string     `json:"phone,omitempty"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// @Summary Create a candidate profile
// @Tags candidates
// @Accept json
// @Param body body createCandidateRequest true "candidate"
// @Success 200 {object} apiResponse
// @Router /api/candidates [post]
func (h *CandidateHandler) create(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	var req createCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, "invalid body", nil)
		return
	}
	if strings.TrimSpace(req.FullName) == "" {
		Error(c, http.StatusBadRequest, "full_name is required", nil)
		return
	}
	candidate := &models.Candidate{
		FullName: strings.TrimSpace(req.FullName),
		Headline: strings.TrimSpace(req.Headline),
		Location: strings.TrimSpace(req.Location),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
	}
	if err := h.Repo.InsertCandidate(c.Request.Context(), candidate); err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, candidate, nil)
}

// @Summary List candidates
// @Tags candidates
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Param name query string false "name filter"
// @Param location query string false "location filter"
// @Success 200 {object} apiResponse
// @Router /api/candidates [get]
func (h *CandidateHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListCandidatesParams{
		Limit:    limit,
		Offset:   offset,
		Name:     strQueryPtr(c, "name"),
		Location: strQueryPtr(c, "location"),
		OrderBy:  "created_at",
		Asc:      boolPtr(false),
	}
	items, err := h.Repo.ListCandidates(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountCandidates(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	// Browse listings never include contact data regardless of unlocks.
	profiles := make([]candidateProfile, 0, len(items))
	for _, item := range items {
		profiles = append(profiles, redactedProfile(item))
	}
	Ok(c, profiles, paginationMeta(limit, offset, total))
}

// @Summary Get a candidate profile
// @Tags candidates
// @Param candidate_id path int true "candidate id"
// @Param company_id query int false "viewing company; reveals contact data if unlocked"
// @Success 200 {object} apiResponse
// @Router /api/candidates/{candidate_id} [get]
func (h *CandidateHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	candidateID := uint64Param(c, "candidate_id")
	if candidateID == 0 {
		Error(c, http.StatusBadRequest, "invalid candidate_id", nil)
		return
	}
	candidate, err := h.Repo.GetCandidateByID(c.Request.Context(), candidateID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if candidate == nil {
		Error(c, http.StatusNotFound, "candidate not found", nil)
		return
	}
	profile := redactedProfile(*candidate)
	if companyID := uint64Query(c, "company_id"); companyID > 0 {
		entry, err := h.Repo.GetPipelineEntry(c.Request.Context(), companyID, candidateID)
		if err != nil {
			Error(c, http.StatusBadGateway, err.Error(), nil)
			return
		}
		if entry != nil && entry.UnlockedAt != nil {
			profile.Email = candidate.Email
			profile.Phone = candidate.Phone
			profile.Unlocked = true
			profile.UnlockedAt = entry.UnlockedAt
		}
	}
	Ok(c, profile, nil)
}

func redactedProfile(candidate models.Candidate) candidateProfile {
	return candidateProfile{
		ID:        candidate.ID,
		FullName:  candidate.FullName,
		Headline:  candidate.Headline,
		Location:  candidate.Location,
		CreatedAt: candidate.CreatedAt,
	}
}
