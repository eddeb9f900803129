package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"talentpool/internal/repository"
	"talentpool/internal/stream"
)

type ActivityHandler struct {
	Repo         repository.Repository
	Stream       *stream.Hub
	Logger       *zap.Logger
	WriteTimeout time.Duration
}

func (h *ActivityHandler) Register(r *gin.Engine) {
	g := r.Group("/api/companies/:company_id/activities")
	g.GET("", h.list)
	g.GET("/stream", h.streamActivities)
}

// @Summary List activity records, newest first
// @Tags activities
// @Param company_id path int true "company id"
// @Param candidate_id query int false "candidate filter"
// @Param type query string false "activity type filter"
// @Param since query string false "RFC3339 lower bound"
// @Param limit query int false "limit"
// @Param offset query int false "offset"
// @Success 200 {object} apiResponse
// @Router /api/companies/{company_id}/activities [get]
func (h *ActivityHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	offset := intQuery(c, "offset", 0)
	params := repository.ListActivitiesParams{
		Limit:     limit,
		Offset:    offset,
		CompanyID: companyID,
		Type:      strQueryPtr(c, "type"),
		Since:     timeQueryPtr(c, "since"),
	}
	if candidateID := uint64Query(c, "candidate_id"); candidateID > 0 {
		params.CandidateID = &candidateID
	}
	items, err := h.Repo.ListActivities(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountActivities(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(limit, offset, total))
}

// @Summary Subscribe to the live activity feed over WebSocket
// @Tags activities
// @Param company_id path int true "company id"
// @Router /api/companies/{company_id}/activities/stream [get]
func (h *ActivityHandler) streamActivities(c *gin.Context) {
	if h.Stream == nil {
		Error(c, http.StatusInternalServerError, "stream unavailable", nil)
		return
	}
	companyID := uint64Param(c, "company_id")
	if companyID == 0 {
		Error(c, http.StatusBadRequest, "invalid company_id", nil)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("websocket accept failed", zap.Error(err))
		}
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	sub := h.Stream.Subscribe(companyID)
	defer sub.Close()

	writeTimeout := h.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case rec, ok := <-sub.C:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, rec)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
