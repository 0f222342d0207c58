package service

import (
	"context"

	"gorm.io/gorm"

	"aquafund/internal/models"
	"aquafund/internal/repository"
)

// stubRepo is an in-memory Repository for service tests. CreateDistributionTx
// enforces the one-distribution-per-cycle unique index the way the database
// does, returning gorm.ErrDuplicatedKey.
type stubRepo struct {
	cycles        map[string]*models.Cycle
	investors     map[string]*models.Investor
	investments   []models.Investment
	revenues      []models.Revenue
	expenses      []models.Expense
	budgets       []models.BudgetAllocation
	feedUsage     []models.FeedUsage
	feedStocks    []models.FeedStock
	distributions []models.Distribution
	payouts       []models.Payout
	logs          []models.FinancialLog

	aggregates map[string]repository.InvestorAggregates

	failAudit bool
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		cycles:     map[string]*models.Cycle{},
		investors:  map[string]*models.Investor{},
		aggregates: map[string]repository.InvestorAggregates{},
	}
}

var _ repository.Repository = (*stubRepo)(nil)

func (r *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (r *stubRepo) GetCycleByID(ctx context.Context, id string) (*models.Cycle, error) {
	c, ok := r.cycles[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *stubRepo) ListCompletedCyclesByCage(ctx context.Context, cageID string, limit int) ([]models.Cycle, error) {
	out := []models.Cycle{}
	for _, c := range r.cycles {
		if c.CageID == cageID && c.Status == models.CycleCompleted {
			out = append(out, *c)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubRepo) CompleteCycleTx(ctx context.Context, tx *gorm.DB, id string, update repository.CycleHarvestUpdate) error {
	c, ok := r.cycles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Status = models.CycleCompleted
	c.HarvestedStock = update.HarvestedStock
	rev := update.Revenue
	profit := update.Profit
	c.Revenue = &rev
	c.Profit = &profit
	end := update.EndDate
	c.EndDate = &end
	return nil
}

func (r *stubRepo) ListInvestmentsForCycle(ctx context.Context, cycleID, cageID string) ([]models.Investment, error) {
	out := []models.Investment{}
	for _, inv := range r.investments {
		if (inv.CycleID != nil && *inv.CycleID == cycleID) || (inv.CageID != nil && *inv.CageID == cageID) {
			if investor, ok := r.investors[inv.InvestorID]; ok {
				inv.Investor = *investor
			}
			out = append(out, inv)
		}
	}
	return out, nil
}

func (r *stubRepo) ListInvestmentsByInvestor(ctx context.Context, investorID string, window repository.DateWindow) ([]models.Investment, error) {
	out := []models.Investment{}
	for _, inv := range r.investments {
		if inv.InvestorID != investorID {
			continue
		}
		if window.Start != nil && inv.StartDate.Before(*window.Start) {
			continue
		}
		if window.End != nil && inv.StartDate.After(*window.End) {
			continue
		}
		out = append(out, inv)
	}
	return out, nil
}

func (r *stubRepo) GetInvestorByID(ctx context.Context, id string) (*models.Investor, error) {
	inv, ok := r.investors[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *stubRepo) ListInvestors(ctx context.Context) ([]models.Investor, error) {
	out := []models.Investor{}
	for _, inv := range r.investors {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *stubRepo) UpdateInvestorAggregates(ctx context.Context, id string, agg repository.InvestorAggregates) error {
	r.aggregates[id] = agg
	if inv, ok := r.investors[id]; ok {
		inv.TotalInvestment = agg.TotalInvestment
		inv.TotalReturns = agg.TotalReturns
		inv.ROI = agg.ROI
	}
	return nil
}

func (r *stubRepo) CreateDistributionTx(ctx context.Context, tx *gorm.DB, item *models.Distribution) error {
	for _, d := range r.distributions {
		if d.CycleID == item.CycleID {
			return gorm.ErrDuplicatedKey
		}
	}
	r.distributions = append(r.distributions, *item)
	return nil
}

func (r *stubRepo) GetDistributionByCycleID(ctx context.Context, cycleID string) (*models.Distribution, error) {
	for i := range r.distributions {
		if r.distributions[i].CycleID == cycleID {
			cp := r.distributions[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) CreatePayoutsTx(ctx context.Context, tx *gorm.DB, items []models.Payout) error {
	r.payouts = append(r.payouts, items...)
	return nil
}

func (r *stubRepo) GetPayoutByID(ctx context.Context, id string) (*models.Payout, error) {
	for i := range r.payouts {
		if r.payouts[i].ID == id {
			cp := r.payouts[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stubRepo) UpdatePayout(ctx context.Context, item *models.Payout) error {
	for i := range r.payouts {
		if r.payouts[i].ID == item.ID {
			r.payouts[i] = *item
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubRepo) ListPayouts(ctx context.Context, params repository.ListPayoutsParams) ([]models.Payout, error) {
	out := []models.Payout{}
	for _, p := range r.payouts {
		if params.InvestorID != nil && p.InvestorID != *params.InvestorID {
			continue
		}
		if params.CycleID != nil && p.CycleID != *params.CycleID {
			continue
		}
		if params.Status != nil && string(p.Status) != *params.Status {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubRepo) CountPayouts(ctx context.Context, params repository.ListPayoutsParams) (int64, error) {
	items, _ := r.ListPayouts(ctx, params)
	return int64(len(items)), nil
}

func (r *stubRepo) ListPayoutsByCycle(ctx context.Context, cycleID string) ([]models.Payout, error) {
	out := []models.Payout{}
	for _, p := range r.payouts {
		if p.CycleID == cycleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubRepo) ListPayoutsByInvestor(ctx context.Context, investorID string, window repository.DateWindow) ([]models.Payout, error) {
	out := []models.Payout{}
	for _, p := range r.payouts {
		if p.InvestorID != investorID {
			continue
		}
		if window.Start != nil && p.CreatedAt.Before(*window.Start) {
			continue
		}
		if window.End != nil && p.CreatedAt.After(*window.End) {
			continue
		}
		if c, ok := r.cycles[p.CycleID]; ok {
			p.Cycle = *c
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *stubRepo) CountPayoutsByCycle(ctx context.Context, cycleID string) (int64, error) {
	items, _ := r.ListPayoutsByCycle(ctx, cycleID)
	return int64(len(items)), nil
}

func (r *stubRepo) CreateRevenue(ctx context.Context, item *models.Revenue) error {
	if r.failAudit {
		return gorm.ErrInvalidDB
	}
	r.revenues = append(r.revenues, *item)
	return nil
}

func (r *stubRepo) CreateExpense(ctx context.Context, item *models.Expense) error {
	if r.failAudit {
		return gorm.ErrInvalidDB
	}
	r.expenses = append(r.expenses, *item)
	return nil
}

func (r *stubRepo) ListRevenues(ctx context.Context, filter repository.LedgerFilter) ([]models.Revenue, error) {
	out := []models.Revenue{}
	for _, item := range r.revenues {
		if filter.CycleID != nil && (item.CycleID == nil || *item.CycleID != *filter.CycleID) {
			continue
		}
		if filter.CageID != nil && (item.CageID == nil || *item.CageID != *filter.CageID) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) ListExpenses(ctx context.Context, filter repository.LedgerFilter) ([]models.Expense, error) {
	out := []models.Expense{}
	for _, item := range r.expenses {
		if filter.CycleID != nil && (item.CycleID == nil || *item.CycleID != *filter.CycleID) {
			continue
		}
		if filter.CageID != nil && (item.CageID == nil || *item.CageID != *filter.CageID) {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *stubRepo) ListBudgetAllocationsByCycle(ctx context.Context, cycleID string) ([]models.BudgetAllocation, error) {
	out := []models.BudgetAllocation{}
	for _, b := range r.budgets {
		if b.CycleID == cycleID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubRepo) ListFeedUsage(ctx context.Context, cageID string, limit int) ([]models.FeedUsage, error) {
	out := []models.FeedUsage{}
	for _, u := range r.feedUsage {
		if cageID != "" && (u.CageID == nil || *u.CageID != cageID) {
			continue
		}
		out = append(out, u)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *stubRepo) ListFeedStocks(ctx context.Context) ([]models.FeedStock, error) {
	return append([]models.FeedStock{}, r.feedStocks...), nil
}

func (r *stubRepo) CreateFinancialLog(ctx context.Context, item *models.FinancialLog) error {
	if r.failAudit {
		return gorm.ErrInvalidDB
	}
	r.logs = append(r.logs, *item)
	return nil
}

func (r *stubRepo) ListFinancialLogs(ctx context.Context, params repository.ListFinancialLogsParams) ([]models.FinancialLog, error) {
	out := []models.FinancialLog{}
	for _, l := range r.logs {
		if params.Type != nil && l.Type != *params.Type {
			continue
		}
		if params.EntityID != nil && l.EntityID != *params.EntityID {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
