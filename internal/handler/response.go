package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"aquafund/internal/repository"
	"aquafund/internal/service"
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

// ServiceError maps the service error taxonomy onto HTTP statuses.
func ServiceError(c *gin.Context, err error) {
	var notFound *service.NotFoundError
	var invalid *service.ValidationError
	var transition *service.InvalidTransitionError
	switch {
	case errors.As(err, &notFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &invalid):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &transition):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrDuplicateOperation):
		Error(c, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, service.ErrNotEligible):
		Error(c, http.StatusUnprocessableEntity, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func stringQueryPtr(c *gin.Context, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}

func timeQueryPtr(c *gin.Context, key string) *time.Time {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, val); err == nil {
		parsed = parsed.UTC()
		return &parsed
	}
	if parsed, err := time.Parse("2006-01-02", val); err == nil {
		return &parsed
	}
	return nil
}

func dateWindowQuery(c *gin.Context) repository.DateWindow {
	return repository.DateWindow{
		Start: timeQueryPtr(c, "start"),
		End:   timeQueryPtr(c, "end"),
	}
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}

func boolPtr(v bool) *bool { return &v }
