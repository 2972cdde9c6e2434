// README: Read-only usage-accounting handlers (daily, monthly, trend, projected cost).
package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"breadrun/internal/modules/apiusage"
)

// UsageReader is the aggregate query surface; implemented by *apiusage.Service.
type UsageReader interface {
	Daily(ctx context.Context, day time.Time) (apiusage.Summary, error)
	Monthly(ctx context.Context, month string) (apiusage.Summary, error)
	Trend(ctx context.Context, days int) ([]apiusage.DayTotal, error)
	ProjectedMonthlyCost(ctx context.Context) (apiusage.Projection, error)
}

type UsageHandler struct {
	usage UsageReader
}

func NewUsageHandler(usage UsageReader) *UsageHandler {
	return &UsageHandler{usage: usage}
}

func (h *UsageHandler) Daily(c *gin.Context) {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		day = parsed
	}
	sum, err := h.usage.Daily(c.Request.Context(), day)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, sum)
}

func (h *UsageHandler) Monthly(c *gin.Context) {
	month := c.DefaultQuery("month", time.Now().Format("2006-01"))
	if _, err := time.Parse("2006-01", month); err != nil {
		writeError(c, http.StatusBadRequest, "month must be YYYY-MM")
		return
	}
	sum, err := h.usage.Monthly(c.Request.Context(), month)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, sum)
}

func (h *UsageHandler) Trend(c *gin.Context) {
	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > 365 {
			writeError(c, http.StatusBadRequest, "days must be between 1 and 365")
			return
		}
		days = n
	}
	trend, err := h.usage.Trend(c.Request.Context(), days)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, trend)
}

func (h *UsageHandler) ProjectedCost(c *gin.Context) {
	proj, err := h.usage.ProjectedMonthlyCost(c.Request.Context())
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, proj)
}
