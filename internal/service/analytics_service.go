package service

import (
	"context"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aquafund/internal/finance"
	"aquafund/internal/models"
	"aquafund/internal/repository"
)

// AnalyticsService is the read side: it aggregates persisted cycles,
// investments and payouts into reports and never mutates state. All sums
// run on the decimal kernel; float arithmetic never touches money here.
type AnalyticsService struct {
	Repo   repository.Repository
	Logger *zap.Logger

	// ForecastWindow caps how many recent completed cycles feed the
	// forecast. Zero means the default of 6.
	ForecastWindow int
	// FeedUsageLimit caps how many usage rows the feed-cost analysis
	// reads. Zero means the default of 500.
	FeedUsageLimit int
}

type CageROI struct {
	CageID   string          `json:"cageId"`
	CageName string          `json:"cageName"`
	Returns  decimal.Decimal `json:"returns"`
}

type ROIReport struct {
	InvestorID       string          `json:"investorId"`
	TotalInvestment  decimal.Decimal `json:"totalInvestment"`
	TotalReturns     decimal.Decimal `json:"totalReturns"`
	ROIPct           decimal.Decimal `json:"roiPct"`
	AnnualizedROIPct decimal.Decimal `json:"annualizedRoiPct"`
	DaysHeld         int             `json:"daysHeld"`
	PerCage          []CageROI       `json:"perCage"`
}

// CalculateROI sums an investor's investments and payouts inside an
// optional date window and derives period and annualized ROI plus a
// per-cage breakdown.
func (s *AnalyticsService) CalculateROI(ctx context.Context, investorID string, window repository.DateWindow) (*ROIReport, error) {
	investor, err := s.Repo.GetInvestorByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, &NotFoundError{Entity: "investor", ID: investorID}
	}

	investments, err := s.Repo.ListInvestmentsByInvestor(ctx, investorID, window)
	if err != nil {
		return nil, err
	}
	payouts, err := s.Repo.ListPayoutsByInvestor(ctx, investorID, window)
	if err != nil {
		return nil, err
	}

	totalInvestment := decimal.Zero
	for _, inv := range investments {
		totalInvestment = totalInvestment.Add(inv.StakeAmount())
	}
	totalReturns := decimal.Zero
	for _, p := range payouts {
		totalReturns = totalReturns.Add(p.Amount)
	}

	roiPct := finance.ComputeROI(totalInvestment, totalReturns)
	daysHeld := holdingDays(investments, payouts)
	annualized := finance.AnnualizeReturn(roiPct, daysHeld)

	report := &ROIReport{
		InvestorID:       investorID,
		TotalInvestment:  finance.Round2(totalInvestment),
		TotalReturns:     finance.Round2(totalReturns),
		ROIPct:           roiPct,
		AnnualizedROIPct: annualized,
		DaysHeld:         daysHeld,
		PerCage:          perCageReturns(payouts),
	}

	if err := s.Repo.CreateFinancialLog(ctx, &models.FinancialLog{
		Type:       "roi_calculation",
		EntityID:   investorID,
		EntityType: "investor",
		Notes:      "roi " + roiPct.StringFixed(2) + "%, annualized " + annualized.StringFixed(2) + "%",
	}); err != nil && s.Logger != nil {
		s.Logger.Warn("audit ledger write failed", zap.String("entry", "roi_calculation"), zap.Error(err))
	}

	return report, nil
}

// holdingDays derives the holding period: earliest investment start to the
// latest payout date, at least one day, defaulting to a year when either
// end is missing.
func holdingDays(investments []models.Investment, payouts []models.Payout) int {
	var earliest, latest *time.Time
	for _, inv := range investments {
		start := inv.StartDate
		if earliest == nil || start.Before(*earliest) {
			earliest = &start
		}
	}
	for _, p := range payouts {
		at := p.CreatedAt
		if p.PaidAt != nil {
			at = *p.PaidAt
		}
		if latest == nil || at.After(*latest) {
			latest = &at
		}
	}
	if earliest == nil || latest == nil {
		return 365
	}
	days := int(math.Ceil(latest.Sub(*earliest).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

func perCageReturns(payouts []models.Payout) []CageROI {
	totals := map[string]decimal.Decimal{}
	names := map[string]string{}
	order := make([]string, 0)
	for _, p := range payouts {
		cageID := p.Cycle.CageID
		if cageID == "" {
			continue
		}
		if _, seen := totals[cageID]; !seen {
			order = append(order, cageID)
			names[cageID] = p.Cycle.Cage.Name
		}
		totals[cageID] = totals[cageID].Add(p.Amount)
	}
	out := make([]CageROI, 0, len(order))
	for _, cageID := range order {
		out = append(out, CageROI{
			CageID:   cageID,
			CageName: names[cageID],
			Returns:  finance.Round2(totals[cageID]),
		})
	}
	return out
}

type LedgerLine struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
}

type ProfitLossReport struct {
	finance.ProfitLossResult
	RevenueStreams   []LedgerLine `json:"revenueStreams"`
	ExpenseBreakdown []LedgerLine `json:"expenseBreakdown"`
}

// ProfitAndLoss buckets the expense ledger into direct and indirect costs
// using the fixed category partition and aggregates a P&L for a cage or a
// cycle, optionally windowed.
func (s *AnalyticsService) ProfitAndLoss(ctx context.Context, filter repository.LedgerFilter) (*ProfitLossReport, error) {
	revenues, err := s.Repo.ListRevenues(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Repo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	revenueAmounts := make([]decimal.Decimal, 0, len(revenues))
	streams := make([]LedgerLine, 0, len(revenues))
	for _, r := range revenues {
		revenueAmounts = append(revenueAmounts, r.Amount)
		streams = append(streams, LedgerLine{ID: r.ID, Label: r.Type, Amount: finance.Round2(r.Amount)})
	}

	direct := make([]decimal.Decimal, 0, len(expenses))
	indirect := make([]decimal.Decimal, 0)
	breakdown := make([]LedgerLine, 0, len(expenses))
	for _, e := range expenses {
		if e.Category.IsDirect() {
			direct = append(direct, e.Amount)
		} else {
			indirect = append(indirect, e.Amount)
		}
		breakdown = append(breakdown, LedgerLine{
			ID:       e.ID,
			Label:    e.Description,
			Amount:   finance.Round2(e.Amount),
			Category: string(e.Category),
		})
	}

	return &ProfitLossReport{
		ProfitLossResult: finance.ComputeProfitLoss(revenueAmounts, direct, indirect),
		RevenueStreams:   streams,
		ExpenseBreakdown: breakdown,
	}, nil
}

// BudgetVariance compares allocated versus spent per category for a cycle.
func (s *AnalyticsService) BudgetVariance(ctx context.Context, cycleID string) (*finance.BudgetVarianceResult, error) {
	budgets, err := s.Repo.ListBudgetAllocationsByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	lines := make([]finance.BudgetLine, 0, len(budgets))
	for _, b := range budgets {
		lines = append(lines, finance.BudgetLine{
			Category:  string(b.Category),
			Allocated: b.Allocated,
			Spent:     b.Spent,
		})
	}
	result := finance.ComputeBudgetVariance(lines)
	return &result, nil
}

// FeedCostAnalysis estimates feed spend for a cage (or the whole farm when
// cageID is empty) from recent usage against stock unit costs.
func (s *AnalyticsService) FeedCostAnalysis(ctx context.Context, cageID string) (*finance.FeedCostAnalysis, error) {
	limit := s.FeedUsageLimit
	if limit <= 0 {
		limit = 500
	}
	usage, err := s.Repo.ListFeedUsage(ctx, cageID, limit)
	if err != nil {
		return nil, err
	}
	stocks, err := s.Repo.ListFeedStocks(ctx)
	if err != nil {
		return nil, err
	}

	usageLines := make([]finance.FeedUsageLine, 0, len(usage))
	for _, u := range usage {
		usageLines = append(usageLines, finance.FeedUsageLine{FeedType: u.FeedType, QuantityKg: u.QuantityKg})
	}
	stockLines := make([]finance.FeedStockLine, 0, len(stocks))
	for _, st := range stocks {
		stockLines = append(stockLines, finance.FeedStockLine{FeedType: st.FeedType, CostPerKg: st.CostPerKg})
	}

	result := finance.ComputeFeedCostAnalysis(usageLines, stockLines)
	return &result, nil
}

// Forecast projects the next cycle for a cage from its most recent
// completed cycles. A cage without history yields nil.
func (s *AnalyticsService) Forecast(ctx context.Context, cageID string) (*finance.CycleForecast, error) {
	window := s.ForecastWindow
	if window <= 0 {
		window = 6
	}
	cycles, err := s.Repo.ListCompletedCyclesByCage(ctx, cageID, window)
	if err != nil {
		return nil, err
	}
	if len(cycles) == 0 {
		return nil, nil
	}

	stats := make([]finance.CycleStats, 0, len(cycles))
	for _, c := range cycles {
		st := finance.CycleStats{BiomassEndKg: c.BiomassEndKg}
		if c.FCR != nil {
			st.FCR = *c.FCR
		}
		if c.Profit != nil {
			st.Profit = *c.Profit
		}
		stats = append(stats, st)
	}
	return finance.ComputeForecastFromCycles(stats), nil
}
