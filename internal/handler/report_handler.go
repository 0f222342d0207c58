package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"aquafund/internal/service"
)

type ReportHandler struct {
	Reports *service.ReportService
}

func (h *ReportHandler) Register(r *gin.Engine) {
	group := r.Group("/api/v1/reports")
	group.GET("/comparative", h.comparative)
	group.GET("/portfolio", h.portfolio)
	group.GET("/cycles/:id", h.cycle)
	group.GET("/investors/:id/returns", h.investorReturns)
}

// @Summary Investors ranked by total returns
// @Tags reports
// @Produce json
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/reports/comparative [get]
func (h *ReportHandler) comparative(c *gin.Context) {
	report, err := h.Reports.ComparativeAnalysis(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Portfolio-wide performance summary
// @Tags reports
// @Produce json
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/reports/portfolio [get]
func (h *ReportHandler) portfolio(c *gin.Context) {
	report, err := h.Reports.PortfolioPerformance(c.Request.Context())
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Financial report for one cycle
// @Tags reports
// @Produce json
// @Param id path string true "cycle id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/reports/cycles/{id} [get]
func (h *ReportHandler) cycle(c *gin.Context) {
	report, err := h.Reports.CycleFinancialReport(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}

// @Summary Investor returns with yearly breakdown
// @Tags reports
// @Produce json
// @Param id path string true "investor id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/reports/investors/{id}/returns [get]
func (h *ReportHandler) investorReturns(c *gin.Context) {
	report, err := h.Reports.InvestorReturnsByCycle(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, report, nil)
}
