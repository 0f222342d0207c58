package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"aquafund/internal/finance"
	"aquafund/internal/models"
	"aquafund/internal/repository"
)

// ReportService produces comparative and portfolio views over investors.
// It ranks by the cached aggregates and never recomputes payouts.
type ReportService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

type InvestorComparison struct {
	InvestorID      string          `json:"investorId"`
	Name            string          `json:"name"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalReturns    decimal.Decimal `json:"totalReturns"`
	ROI             decimal.Decimal `json:"roi"`
	InvestmentCount int             `json:"investmentCount"`
	PayoutCount     int             `json:"payoutCount"`
	AvgPayoutSize   decimal.Decimal `json:"avgPayoutSize"`
}

// ComparativeAnalysis lists all investors ranked by total returns.
func (s *ReportService) ComparativeAnalysis(ctx context.Context) ([]InvestorComparison, error) {
	investors, err := s.Repo.ListInvestors(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]InvestorComparison, 0, len(investors))
	for _, inv := range investors {
		investments, err := s.Repo.ListInvestmentsByInvestor(ctx, inv.ID, repository.DateWindow{})
		if err != nil {
			return nil, err
		}
		payouts, err := s.Repo.ListPayoutsByInvestor(ctx, inv.ID, repository.DateWindow{})
		if err != nil {
			return nil, err
		}

		avg := decimal.Zero
		if len(payouts) > 0 {
			total := decimal.Zero
			for _, p := range payouts {
				total = total.Add(p.Amount)
			}
			avg = finance.Round2(total.Div(decimal.NewFromInt(int64(len(payouts)))))
		}
		out = append(out, InvestorComparison{
			InvestorID:      inv.ID,
			Name:            inv.Name,
			TotalInvestment: inv.TotalInvestment,
			TotalReturns:    inv.TotalReturns,
			ROI:             inv.ROI,
			InvestmentCount: len(investments),
			PayoutCount:     len(payouts),
			AvgPayoutSize:   avg,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalReturns.GreaterThan(out[j].TotalReturns)
	})
	return out, nil
}

type InvestorRank struct {
	InvestorID      string          `json:"investorId"`
	Name            string          `json:"name"`
	ROI             decimal.Decimal `json:"roi"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalReturns    decimal.Decimal `json:"totalReturns"`
}

type PortfolioPerformance struct {
	TotalInvestors  int             `json:"totalInvestors"`
	ActiveInvestors int             `json:"activeInvestors"`
	TotalCapital    decimal.Decimal `json:"totalCapital"`
	TotalReturns    decimal.Decimal `json:"totalReturns"`
	OverallROI      decimal.Decimal `json:"overallRoi"`
	TopPerformers   []InvestorRank  `json:"topPerformers"`
	TopByAmount     []InvestorRank  `json:"topByAmount"`
}

// PortfolioPerformance summarizes the whole investor base: overall ROI,
// top five by ROI among funded investors, top five by capital.
func (s *ReportService) PortfolioPerformance(ctx context.Context) (*PortfolioPerformance, error) {
	investors, err := s.Repo.ListInvestors(ctx)
	if err != nil {
		return nil, err
	}

	totalCapital := decimal.Zero
	totalReturns := decimal.Zero
	active := 0
	for _, inv := range investors {
		totalCapital = totalCapital.Add(inv.TotalInvestment)
		totalReturns = totalReturns.Add(inv.TotalReturns)
		if inv.Status == "active" {
			active++
		}
	}

	funded := make([]models.Investor, 0, len(investors))
	for _, inv := range investors {
		if inv.TotalInvestment.IsPositive() {
			funded = append(funded, inv)
		}
	}
	sort.SliceStable(funded, func(i, j int) bool {
		return funded[i].ROI.GreaterThan(funded[j].ROI)
	})
	topPerformers := rankLines(funded, 5)

	byAmount := make([]models.Investor, len(investors))
	copy(byAmount, investors)
	sort.SliceStable(byAmount, func(i, j int) bool {
		return byAmount[i].TotalInvestment.GreaterThan(byAmount[j].TotalInvestment)
	})
	topByAmount := rankLines(byAmount, 5)

	return &PortfolioPerformance{
		TotalInvestors:  len(investors),
		ActiveInvestors: active,
		TotalCapital:    finance.Round2(totalCapital),
		TotalReturns:    finance.Round2(totalReturns),
		OverallROI:      finance.ComputeROI(totalCapital, totalReturns),
		TopPerformers:   topPerformers,
		TopByAmount:     topByAmount,
	}, nil
}

func rankLines(investors []models.Investor, limit int) []InvestorRank {
	if len(investors) < limit {
		limit = len(investors)
	}
	out := make([]InvestorRank, 0, limit)
	for _, inv := range investors[:limit] {
		out = append(out, InvestorRank{
			InvestorID:      inv.ID,
			Name:            inv.Name,
			ROI:             inv.ROI,
			TotalInvestment: inv.TotalInvestment,
			TotalReturns:    inv.TotalReturns,
		})
	}
	return out
}

type CycleInvestorReturn struct {
	InvestorID     string          `json:"investorId"`
	InvestorName   string          `json:"investorName"`
	Investment     decimal.Decimal `json:"investment"`
	SharePct       decimal.Decimal `json:"sharePct"`
	ExpectedPayout decimal.Decimal `json:"expectedPayout"`
	ActualPayout   decimal.Decimal `json:"actualPayout"`
}

type CycleFinancialReport struct {
	CycleID         string                `json:"cycleId"`
	CageName        string                `json:"cageName"`
	Species         string                `json:"species"`
	Status          models.CycleStatus    `json:"status"`
	TotalRevenue    decimal.Decimal       `json:"totalRevenue"`
	TotalExpenses   decimal.Decimal       `json:"totalExpenses"`
	GrossProfit     decimal.Decimal       `json:"grossProfit"`
	TotalInvestment decimal.Decimal       `json:"totalInvestment"`
	TotalPayouts    decimal.Decimal       `json:"totalPayouts"`
	InvestorReturns []CycleInvestorReturn `json:"investorReturns"`
	PayoutCount     int                   `json:"payoutCount"`
	PendingPayouts  int                   `json:"pendingPayouts"`
	PaidPayouts     int                   `json:"paidPayouts"`
}

// CycleFinancialReport collates the ledger, stakes and payouts of one cycle
// into a single financial summary.
func (s *ReportService) CycleFinancialReport(ctx context.Context, cycleID string) (*CycleFinancialReport, error) {
	cycle, err := s.Repo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "cycle", ID: cycleID}
	}

	filter := repository.LedgerFilter{CycleID: &cycle.ID}
	revenues, err := s.Repo.ListRevenues(ctx, filter)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Repo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}
	investments, err := s.Repo.ListInvestmentsForCycle(ctx, cycle.ID, cycle.CageID)
	if err != nil {
		return nil, err
	}
	payouts, err := s.Repo.ListPayoutsByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}

	totalRevenue := decimal.Zero
	for _, r := range revenues {
		totalRevenue = totalRevenue.Add(r.Amount)
	}
	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(e.Amount)
	}
	totalInvestment := decimal.Zero
	for _, inv := range investments {
		totalInvestment = totalInvestment.Add(inv.StakeAmount())
	}

	totalPayouts := decimal.Zero
	payoutByInvestor := map[string]decimal.Decimal{}
	pending, paid := 0, 0
	for _, p := range payouts {
		totalPayouts = totalPayouts.Add(p.Amount)
		payoutByInvestor[p.InvestorID] = payoutByInvestor[p.InvestorID].Add(p.Amount)
		switch p.Status {
		case models.PayoutPending:
			pending++
		case models.PayoutPaid:
			paid++
		}
	}

	returns := make([]CycleInvestorReturn, 0, len(investments))
	for _, inv := range investments {
		amount := inv.StakeAmount()
		share := decimal.Zero
		expected := decimal.Zero
		if totalInvestment.IsPositive() {
			share = amount.Div(totalInvestment)
			expected = share.Mul(totalPayouts)
		}
		returns = append(returns, CycleInvestorReturn{
			InvestorID:     inv.InvestorID,
			InvestorName:   inv.Investor.Name,
			Investment:     finance.Round2(amount),
			SharePct:       finance.Round2(share.Mul(decimal.NewFromInt(100))),
			ExpectedPayout: finance.Round2(expected),
			ActualPayout:   finance.Round2(payoutByInvestor[inv.InvestorID]),
		})
	}

	return &CycleFinancialReport{
		CycleID:         cycle.ID,
		CageName:        cycle.Cage.Name,
		Species:         cycle.Species,
		Status:          cycle.Status,
		TotalRevenue:    finance.Round2(totalRevenue),
		TotalExpenses:   finance.Round2(totalExpenses),
		GrossProfit:     finance.Round2(totalRevenue.Sub(totalExpenses)),
		TotalInvestment: finance.Round2(totalInvestment),
		TotalPayouts:    finance.Round2(totalPayouts),
		InvestorReturns: returns,
		PayoutCount:     len(payouts),
		PendingPayouts:  pending,
		PaidPayouts:     paid,
	}, nil
}

type YearlyReturn struct {
	Year       int             `json:"year"`
	Investment decimal.Decimal `json:"investment"`
	Returns    decimal.Decimal `json:"returns"`
	ROI        decimal.Decimal `json:"roi"`
}

type PayoutStats struct {
	PendingCount int             `json:"pendingCount"`
	PaidCount    int             `json:"paidCount"`
	TotalPending decimal.Decimal `json:"totalPending"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
}

type InvestorReturnsReport struct {
	InvestorID      string          `json:"investorId"`
	InvestorName    string          `json:"investorName"`
	TotalInvestment decimal.Decimal `json:"totalInvestment"`
	TotalReturns    decimal.Decimal `json:"totalReturns"`
	OverallROI      decimal.Decimal `json:"overallRoi"`
	YearlyBreakdown []YearlyReturn  `json:"yearlyBreakdown"`
	PayoutStats     PayoutStats     `json:"payoutStats"`
}

// InvestorReturnsByCycle breaks an investor's history down by year and
// payout status.
func (s *ReportService) InvestorReturnsByCycle(ctx context.Context, investorID string) (*InvestorReturnsReport, error) {
	investor, err := s.Repo.GetInvestorByID(ctx, investorID)
	if err != nil {
		return nil, err
	}
	if investor == nil {
		return nil, &NotFoundError{Entity: "investor", ID: investorID}
	}

	investments, err := s.Repo.ListInvestmentsByInvestor(ctx, investorID, repository.DateWindow{})
	if err != nil {
		return nil, err
	}
	payouts, err := s.Repo.ListPayoutsByInvestor(ctx, investorID, repository.DateWindow{})
	if err != nil {
		return nil, err
	}

	totalInvestment := decimal.Zero
	yearlyInvestment := map[int]decimal.Decimal{}
	for _, inv := range investments {
		amount := inv.StakeAmount()
		totalInvestment = totalInvestment.Add(amount)
		year := inv.StartDate.Year()
		yearlyInvestment[year] = yearlyInvestment[year].Add(amount)
	}

	totalReturns := decimal.Zero
	yearlyReturns := map[int]decimal.Decimal{}
	stats := PayoutStats{TotalPending: decimal.Zero, TotalPaid: decimal.Zero}
	for _, p := range payouts {
		totalReturns = totalReturns.Add(p.Amount)
		year := p.CreatedAt.Year()
		yearlyReturns[year] = yearlyReturns[year].Add(p.Amount)
		switch p.Status {
		case models.PayoutPending:
			stats.PendingCount++
			stats.TotalPending = stats.TotalPending.Add(p.Amount)
		case models.PayoutPaid:
			stats.PaidCount++
			stats.TotalPaid = stats.TotalPaid.Add(p.Amount)
		}
	}
	stats.TotalPending = finance.Round2(stats.TotalPending)
	stats.TotalPaid = finance.Round2(stats.TotalPaid)

	years := map[int]struct{}{}
	for y := range yearlyInvestment {
		years[y] = struct{}{}
	}
	for y := range yearlyReturns {
		years[y] = struct{}{}
	}
	sortedYears := make([]int, 0, len(years))
	for y := range years {
		sortedYears = append(sortedYears, y)
	}
	sort.Ints(sortedYears)

	yearly := make([]YearlyReturn, 0, len(sortedYears))
	for _, y := range sortedYears {
		yearly = append(yearly, YearlyReturn{
			Year:       y,
			Investment: finance.Round2(yearlyInvestment[y]),
			Returns:    finance.Round2(yearlyReturns[y]),
			ROI:        finance.ComputeROI(yearlyInvestment[y], yearlyReturns[y]),
		})
	}

	return &InvestorReturnsReport{
		InvestorID:      investorID,
		InvestorName:    investor.Name,
		TotalInvestment: finance.Round2(totalInvestment),
		TotalReturns:    finance.Round2(totalReturns),
		OverallROI:      finance.ComputeROI(totalInvestment, totalReturns),
		YearlyBreakdown: yearly,
		PayoutStats:     stats,
	}, nil
}
