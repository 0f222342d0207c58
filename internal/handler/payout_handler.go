package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"aquafund/internal/repository"
	"aquafund/internal/service"
)

type PayoutHandler struct {
	Payouts *service.PayoutService
	Repo    repository.Repository

	// DefaultTaxRatePct applies when a legacy distribution request omits
	// its own rate.
	DefaultTaxRatePct decimal.Decimal
}

func (h *PayoutHandler) Register(r *gin.Engine) {
	dist := r.Group("/api/v1/distributions")
	dist.POST("", h.initiate)
	dist.POST("/estimate", h.estimate)
	dist.POST("/legacy", h.calculateLegacy)
	dist.GET("/:cycleId", h.getDistribution)

	r.GET("/api/v1/logs", h.listLogs)

	payouts := r.Group("/api/v1/payouts")
	payouts.GET("", h.list)
	payouts.GET("/:id", h.get)
	payouts.POST("/:id/approve", h.approve)
	payouts.POST("/:id/process", h.process)
	payouts.POST("/:id/reject", h.reject)
}

type distributionRequest struct {
	CycleID         string          `json:"cycleId" binding:"required"`
	HarvestedStock  int             `json:"harvestedStock"`
	HarvestWeightKg decimal.Decimal `json:"harvestWeightKg"`
	Revenue         decimal.Decimal `json:"revenue" binding:"required"`
	FarmExpenses    decimal.Decimal `json:"farmExpenses"`
	HarvestDate     time.Time       `json:"harvestDate" binding:"required"`
}

// @Summary Run the harvest profit distribution for a cycle
// @Tags distributions
// @Accept json
// @Produce json
// @Param request body distributionRequest true "harvest figures"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/distributions [post]
func (h *PayoutHandler) initiate(c *gin.Context) {
	var req distributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	result, err := h.Payouts.InitiateDistribution(c.Request.Context(), service.DistributionInput{
		CycleID:         req.CycleID,
		HarvestedStock:  req.HarvestedStock,
		HarvestWeightKg: req.HarvestWeightKg,
		Revenue:         req.Revenue,
		FarmExpenses:    req.FarmExpenses,
		HarvestDate:     req.HarvestDate,
	})
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, result, nil)
}

type estimateRequest struct {
	CycleID           string          `json:"cycleId" binding:"required"`
	ProjectedRevenue  decimal.Decimal `json:"projectedRevenue" binding:"required"`
	ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
}

// @Summary Preview payouts for projected harvest figures
// @Tags distributions
// @Accept json
// @Produce json
// @Param request body estimateRequest true "projected figures"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/distributions/estimate [post]
func (h *PayoutHandler) estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	breakdown, err := h.Payouts.EstimatePayouts(c.Request.Context(), req.CycleID, req.ProjectedRevenue, req.ProjectedExpenses)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, breakdown, nil)
}

type legacyDistributionRequest struct {
	CycleID    string           `json:"cycleId" binding:"required"`
	TaxRatePct *decimal.Decimal `json:"taxRatePct"`
}

// @Summary Distribute by share units with tax withheld
// @Tags distributions
// @Accept json
// @Produce json
// @Param request body legacyDistributionRequest true "cycle and tax rate"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/distributions/legacy [post]
func (h *PayoutHandler) calculateLegacy(c *gin.Context) {
	var req legacyDistributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	taxRate := h.DefaultTaxRatePct
	if req.TaxRatePct != nil {
		taxRate = *req.TaxRatePct
	}
	result, err := h.Payouts.CalculatePayoutsForCycle(c.Request.Context(), req.CycleID, taxRate)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Get the distribution run for a cycle
// @Tags distributions
// @Produce json
// @Param cycleId path string true "cycle id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/distributions/{cycleId} [get]
func (h *PayoutHandler) getDistribution(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	cycleID := strings.TrimSpace(c.Param("cycleId"))
	dist, err := h.Repo.GetDistributionByCycleID(c.Request.Context(), cycleID)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if dist == nil {
		Error(c, http.StatusNotFound, "no distribution for cycle", nil)
		return
	}
	Ok(c, dist, nil)
}

// @Summary List financial audit log entries
// @Tags logs
// @Produce json
// @Param type query string false "filter by entry type"
// @Param entity_id query string false "filter by entity"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/logs [get]
func (h *PayoutHandler) listLogs(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	items, err := h.Repo.ListFinancialLogs(c.Request.Context(), repository.ListFinancialLogsParams{
		Limit:    intQuery(c, "limit", 50),
		Offset:   intQuery(c, "offset", 0),
		Type:     stringQueryPtr(c, "type"),
		EntityID: stringQueryPtr(c, "entity_id"),
		Since:    timeQueryPtr(c, "since"),
	})
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, nil)
}

// @Summary List payouts
// @Tags payouts
// @Produce json
// @Param investor_id query string false "filter by investor"
// @Param cycle_id query string false "filter by cycle"
// @Param status query string false "filter by status"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/payouts [get]
func (h *PayoutHandler) list(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	params := repository.ListPayoutsParams{
		Limit:      intQuery(c, "limit", 50),
		Offset:     intQuery(c, "offset", 0),
		InvestorID: stringQueryPtr(c, "investor_id"),
		CycleID:    stringQueryPtr(c, "cycle_id"),
		Status:     stringQueryPtr(c, "status"),
		OrderBy:    "created_at",
		Asc:        boolPtr(false),
	}
	items, err := h.Repo.ListPayouts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	total, err := h.Repo.CountPayouts(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	Ok(c, items, paginationMeta(params.Limit, params.Offset, total))
}

// @Summary Get one payout
// @Tags payouts
// @Produce json
// @Param id path string true "payout id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/payouts/{id} [get]
func (h *PayoutHandler) get(c *gin.Context) {
	if h.Repo == nil {
		Error(c, http.StatusInternalServerError, "repo unavailable", nil)
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	payout, err := h.Repo.GetPayoutByID(c.Request.Context(), id)
	if err != nil {
		Error(c, http.StatusBadGateway, err.Error(), nil)
		return
	}
	if payout == nil {
		Error(c, http.StatusNotFound, "payout not found", nil)
		return
	}
	Ok(c, payout, nil)
}

// @Summary Approve a pending payout
// @Tags payouts
// @Produce json
// @Param id path string true "payout id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/payouts/{id}/approve [post]
func (h *PayoutHandler) approve(c *gin.Context) {
	payout, err := h.Payouts.Approve(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, payout, nil)
}

type processRequest struct {
	PaymentReference string `json:"paymentReference" binding:"required"`
}

// @Summary Mark an approved payout as paid
// @Tags payouts
// @Accept json
// @Produce json
// @Param id path string true "payout id"
// @Param request body processRequest true "payment reference"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/payouts/{id}/process [post]
func (h *PayoutHandler) process(c *gin.Context) {
	var req processRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	payout, err := h.Payouts.Process(c.Request.Context(), strings.TrimSpace(c.Param("id")), req.PaymentReference)
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, payout, nil)
}

// @Summary Reject a payout that has not been paid yet
// @Tags payouts
// @Produce json
// @Param id path string true "payout id"
// @Success 200 {object} handler.apiResponse
// @Router /api/v1/payouts/{id}/reject [post]
func (h *PayoutHandler) reject(c *gin.Context) {
	payout, err := h.Payouts.Reject(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		ServiceError(c, err)
		return
	}
	Ok(c, payout, nil)
}
