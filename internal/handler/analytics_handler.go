package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"aquafund/internal/repository"
	"aquafund/internal/service"
)

type AnalyticsHandler struct {
	Analytics *service.AnalyticsService
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/analytics")
	group.GET("/roi/:investorId", h.roi)
	group.GET("/pnl", h.profitAndLoss)
	group.GET("/budget-variance/:cycleId", h.budgetVariance)
	group.GET("/feed-cost", h.feedCost)
	group.GET("/forecast/:cageId", h.forecast)
}

// @Summary ROI report for one investor
// @Tags analytics
// @Produce json
// @Param investorId path string true "investor id"
// @Param start query string false "window start (RFC3339 or YYYY-MM-DD)"
// @Param end query string false "window end"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/analytics/roi/{investorId} [get]
func (h *AnalyticsHandler) roi(c *gin.Context) {
	report, err := h.Analytics.CalculateROI(c.Request.Context(), strings.TrimSpace(c.Param("investorId")), dateWindowQuery(c))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Profit and loss statement
// @Tags analytics
// @Produce json
// @Param cage_id query string false "restrict to one cage"
// @Param cycle_id query string false "restrict to one cycle"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/analytics/pnl [get]
func (h *AnalyticsHandler) profitAndLoss(c *gin.Context) {
	filter := repository.LedgerFilter{
		CageID:  stringQueryPtr(c, "cage_id"),
		CycleID: stringQueryPtr(c, "cycle_id"),
		Window:  dateWindowQuery(c),
	}
	report, err := h.Analytics.ProfitAndLoss(c.Request.Context(), filter)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Budget versus actual spend for a cycle
// @Tags analytics
// @Produce json
// @Param cycleId path string true "cycle id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/analytics/budget-variance/{cycleId} [get]
func (h *AnalyticsHandler) budgetVariance(c *gin.Context) {
	report, err := h.Analytics.BudgetVariance(c.Request.Context(), strings.TrimSpace(c.Param("cycleId")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Feed cost analysis
// @Tags analytics
// @Produce json
// @Param cage_id query string false "restrict to one cage"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/analytics/feed-cost [get]
func (h *AnalyticsHandler) feedCost(c *gin.Context) {
	cageID := strings.TrimSpace(c.Query("cage_id"))
	report, err := h.Analytics.FeedCostAnalysis(c.Request.Context(), cageID)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Next-cycle financial forecast for a cage
// @Tags analytics
// @Produce json
// @Param cageId path string true "cage id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/analytics/forecast/{cageId} [get]
func (h *AnalyticsHandler) forecast(c *gin.Context) {
	report, err := h.Analytics.Forecast(c.Request.Context(), strings.TrimSpace(c.Param("cageId")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	if report == nil {
		Error(c, http.StatusNotFound, "no completed cycles for cage", nil)
		return
	}
	Ok(c, report, nil)
}
