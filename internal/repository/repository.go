package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"aquafund/internal/models"
)

// Repository is the persistence boundary for the distribution and analytics
// core. Writes that must be atomic take the open transaction through the
// ...Tx variants inside InTx. Aggregation reads return rows, never SQL float
// sums: money summation happens in services on the decimal kernel.
type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Cycles
	GetCycleByID(ctx context.Context, id string) (*models.Cycle, error)
	ListCompletedCyclesByCage(ctx context.Context, cageID string, limit int) ([]models.Cycle, error)
	CompleteCycleTx(ctx context.Context, tx *gorm.DB, id string, update CycleHarvestUpdate) error

	// Investments
	ListInvestmentsForCycle(ctx context.Context, cycleID, cageID string) ([]models.Investment, error)
	ListInvestmentsByInvestor(ctx context.Context, investorID string, window DateWindow) ([]models.Investment, error)

	// Investors
	GetInvestorByID(ctx context.Context, id string) (*models.Investor, error)
	ListInvestors(ctx context.Context) ([]models.Investor, error)
	UpdateInvestorAggregates(ctx context.Context, id string, agg InvestorAggregates) error

	// Distributions & payouts
	CreateDistributionTx(ctx context.Context, tx *gorm.DB, item *models.Distribution) error
	GetDistributionByCycleID(ctx context.Context, cycleID string) (*models.Distribution, error)
	CreatePayoutsTx(ctx context.Context, tx *gorm.DB, items []models.Payout) error
	GetPayoutByID(ctx context.Context, id string) (*models.Payout, error)
	UpdatePayout(ctx context.Context, item *models.Payout) error
	ListPayouts(ctx context.Context, params ListPayoutsParams) ([]models.Payout, error)
	CountPayouts(ctx context.Context, params ListPayoutsParams) (int64, error)
	ListPayoutsByCycle(ctx context.Context, cycleID string) ([]models.Payout, error)
	ListPayoutsByInvestor(ctx context.Context, investorID string, window DateWindow) ([]models.Payout, error)
	CountPayoutsByCycle(ctx context.Context, cycleID string) (int64, error)

	// Ledger
	CreateRevenue(ctx context.Context, item *models.Revenue) error
	CreateExpense(ctx context.Context, item *models.Expense) error
	ListRevenues(ctx context.Context, filter LedgerFilter) ([]models.Revenue, error)
	ListExpenses(ctx context.Context, filter LedgerFilter) ([]models.Expense, error)

	// Budgets & feed
	ListBudgetAllocationsByCycle(ctx context.Context, cycleID string) ([]models.BudgetAllocation, error)
	ListFeedUsage(ctx context.Context, cageID string, limit int) ([]models.FeedUsage, error)
	ListFeedStocks(ctx context.Context) ([]models.FeedStock, error)

	// Audit
	CreateFinancialLog(ctx context.Context, item *models.FinancialLog) error
	ListFinancialLogs(ctx context.Context, params ListFinancialLogsParams) ([]models.FinancialLog, error)
}

// CycleHarvestUpdate caches harvest results onto the cycle as it is marked
// completed.
type CycleHarvestUpdate struct {
	HarvestedStock int
	Revenue        decimal.Decimal
	Profit         decimal.Decimal
	EndDate        time.Time
}

type InvestorAggregates struct {
	TotalInvestment decimal.Decimal
	TotalReturns    decimal.Decimal
	ROI             decimal.Decimal
}

type DateWindow struct {
	Start *time.Time
	End   *time.Time
}

func (w DateWindow) IsZero() bool {
	return w.Start == nil && w.End == nil
}

type LedgerFilter struct {
	CageID  *string
	CycleID *string
	Window  DateWindow
}

type ListPayoutsParams struct {
	Limit      int
	Offset     int
	InvestorID *string
	CycleID    *string
	Status     *string
	OrderBy    string
	Asc        *bool
}

type ListFinancialLogsParams struct {
	Limit    int
	Offset   int
	Type     *string
	EntityID *string
	Since    *time.Time
}
