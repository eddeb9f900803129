package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"talentpool/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// ServiceError maps the service error taxonomy onto HTTP statuses. Anything
// unrecognized is an infrastructure failure.
func ServiceError(c *gin.Context, err error) {
	Error(c, serviceStatus(err), err.Error(), nil)
}

func serviceStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInsufficientBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, service.ErrAlreadyUnlocked),
		errors.Is(err, service.ErrStageConflict),
		errors.Is(err, service.ErrStageExists),
		errors.Is(err, service.ErrAlreadyApplied),
		errors.Is(err, service.ErrJobClosed):
		return http.StatusConflict
	case errors.Is(err, service.ErrCandidateNotFound),
		errors.Is(err, service.ErrCompanyNotFound),
		errors.Is(err, service.ErrStageNotFound),
		errors.Is(err, service.ErrJobNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func uint64Query(c *gin.Context, key string) uint64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func uint64Param(c *gin.Context, key string) uint64 {
	raw := strings.TrimSpace(c.Param(key))
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func strQueryPtr(c *gin.Context, key string) *string {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		return &v
	}
	return nil
}

func timeQueryPtr(c *gin.Context, key string) *time.Time {
	if v := strings.TrimSpace(c.Query(key)); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			t := ts.UTC()
			return &t
		}
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

func paginationMeta(limit, offset int, total int64) map[string]any {
	return map[string]any{
		"limit":  limit,
		"offset": offset,
		"total":  total,
	}
}
