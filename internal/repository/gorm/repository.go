package gormrepository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"aquafund/internal/models"
	"aquafund/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- Cycles -----------------------------------------------------------------

func (s *Store) GetCycleByID(ctx context.Context, id string) (*models.Cycle, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Cycle
	err := s.db.WithContext(ctx).
		Preload("Cage").
		Where("id = ?", strings.TrimSpace(id)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListCompletedCyclesByCage(ctx context.Context, cageID string, limit int) ([]models.Cycle, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Cycle
	err := s.db.WithContext(ctx).
		Where("cage_id = ?", strings.TrimSpace(cageID)).
		Where("status = ?", models.CycleCompleted).
		Order("end_date desc NULLS LAST").
		Limit(normalizeLimit(limit, 6)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CompleteCycleTx(ctx context.Context, tx *gorm.DB, id string, update repository.CycleHarvestUpdate) error {
	if tx == nil {
		return errors.New("nil transaction")
	}
	return tx.WithContext(ctx).
		Model(&models.Cycle{}).
		Where("id = ?", strings.TrimSpace(id)).
		Updates(map[string]any{
			"status":          models.CycleCompleted,
			"harvested_stock": update.HarvestedStock,
			"revenue":         update.Revenue,
			"profit":          update.Profit,
			"end_date":        update.EndDate,
		}).Error
}

// --- Investments ------------------------------------------------------------

func (s *Store) ListInvestmentsForCycle(ctx context.Context, cycleID, cageID string) ([]models.Investment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Preload("Investor")
	cycleID = strings.TrimSpace(cycleID)
	cageID = strings.TrimSpace(cageID)
	switch {
	case cycleID != "" && cageID != "":
		query = query.Where("cycle_id = ? OR cage_id = ?", cycleID, cageID)
	case cycleID != "":
		query = query.Where("cycle_id = ?", cycleID)
	case cageID != "":
		query = query.Where("cage_id = ?", cageID)
	}
	var items []models.Investment
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListInvestmentsByInvestor(ctx context.Context, investorID string, window repository.DateWindow) ([]models.Investment, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Where("investor_id = ?", strings.TrimSpace(investorID))
	if window.Start != nil {
		query = query.Where("start_date >= ?", *window.Start)
	}
	if window.End != nil {
		query = query.Where("start_date <= ?", *window.End)
	}
	var items []models.Investment
	if err := query.Order("start_date asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Investors --------------------------------------------------------------

func (s *Store) GetInvestorByID(ctx context.Context, id string) (*models.Investor, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Investor
	err := s.db.WithContext(ctx).Where("id = ?", strings.TrimSpace(id)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListInvestors(ctx context.Context) ([]models.Investor, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Investor
	if err := s.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) UpdateInvestorAggregates(ctx context.Context, id string, agg repository.InvestorAggregates) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Investor{}).
		Where("id = ?", strings.TrimSpace(id)).
		Updates(map[string]any{
			"total_investment": agg.TotalInvestment,
			"total_returns":    agg.TotalReturns,
			"roi":              agg.ROI,
		}).Error
}

// --- Distributions & payouts ------------------------------------------------

func (s *Store) CreateDistributionTx(ctx context.Context, tx *gorm.DB, item *models.Distribution) error {
	if tx == nil || item == nil {
		return errors.New("nil transaction or distribution")
	}
	return tx.WithContext(ctx).Create(item).Error
}

func (s *Store) GetDistributionByCycleID(ctx context.Context, cycleID string) (*models.Distribution, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Distribution
	err := s.db.WithContext(ctx).Where("cycle_id = ?", strings.TrimSpace(cycleID)).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreatePayoutsTx(ctx context.Context, tx *gorm.DB, items []models.Payout) error {
	if tx == nil || len(items) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(items, 100).Error
}

func (s *Store) GetPayoutByID(ctx context.Context, id string) (*models.Payout, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Payout
	err := s.db.WithContext(ctx).
		Preload("Investor").
		Preload("Cycle").
		Where("id = ?", strings.TrimSpace(id)).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) UpdatePayout(ctx context.Context, item *models.Payout) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"status":    item.Status,
			"reference": item.Reference,
			"paid_at":   item.PaidAt,
		}).Error
}

func (s *Store) ListPayouts(ctx context.Context, params repository.ListPayoutsParams) ([]models.Payout, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := applyPayoutFilters(s.db.WithContext(ctx).Model(&models.Payout{}).Preload("Investor").Preload("Cycle"), params)
	query = applyOrder(query, params.OrderBy, params.Asc, "created_at")
	var items []models.Payout
	err := query.
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPayouts(ctx context.Context, params repository.ListPayoutsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := applyPayoutFilters(s.db.WithContext(ctx).Model(&models.Payout{}), params).Count(&total).Error
	return total, err
}

func applyPayoutFilters(query *gorm.DB, params repository.ListPayoutsParams) *gorm.DB {
	if params.InvestorID != nil && strings.TrimSpace(*params.InvestorID) != "" {
		query = query.Where("investor_id = ?", strings.TrimSpace(*params.InvestorID))
	}
	if params.CycleID != nil && strings.TrimSpace(*params.CycleID) != "" {
		query = query.Where("cycle_id = ?", strings.TrimSpace(*params.CycleID))
	}
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	return query
}

func (s *Store) ListPayoutsByCycle(ctx context.Context, cycleID string) ([]models.Payout, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Payout
	err := s.db.WithContext(ctx).
		Preload("Investor").
		Where("cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListPayoutsByInvestor windows on created_at, so pending and processing
// payouts fall inside the range alongside paid ones; paid_at is display
// metadata only. Windowed ROI therefore counts in-flight payouts the same
// way the investor aggregates do.
func (s *Store) ListPayoutsByInvestor(ctx context.Context, investorID string, window repository.DateWindow) ([]models.Payout, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Preload("Cycle").
		Preload("Cycle.Cage").
		Where("investor_id = ?", strings.TrimSpace(investorID))
	if window.Start != nil {
		query = query.Where("created_at >= ?", *window.Start)
	}
	if window.End != nil {
		query = query.Where("created_at <= ?", *window.End)
	}
	var items []models.Payout
	if err := query.Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPayoutsByCycle(ctx context.Context, cycleID string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Payout{}).
		Where("cycle_id = ?", strings.TrimSpace(cycleID)).
		Count(&total).Error
	return total, err
}

// --- Ledger -----------------------------------------------------------------

func (s *Store) CreateRevenue(ctx context.Context, item *models.Revenue) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) CreateExpense(ctx context.Context, item *models.Expense) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListRevenues(ctx context.Context, filter repository.LedgerFilter) ([]models.Revenue, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Revenue{})
	query = applyLedgerFilter(query, filter, "occurred_at")
	var items []models.Revenue
	if err := query.Order("occurred_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter repository.LedgerFilter) ([]models.Expense, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.Expense{})
	query = applyLedgerFilter(query, filter, "incurred_at")
	var items []models.Expense
	if err := query.Order("incurred_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func applyLedgerFilter(query *gorm.DB, filter repository.LedgerFilter, dateColumn string) *gorm.DB {
	if filter.CageID != nil && strings.TrimSpace(*filter.CageID) != "" {
		query = query.Where("cage_id = ?", strings.TrimSpace(*filter.CageID))
	}
	if filter.CycleID != nil && strings.TrimSpace(*filter.CycleID) != "" {
		query = query.Where("cycle_id = ?", strings.TrimSpace(*filter.CycleID))
	}
	if filter.Window.Start != nil {
		query = query.Where(dateColumn+" >= ?", *filter.Window.Start)
	}
	if filter.Window.End != nil {
		query = query.Where(dateColumn+" <= ?", *filter.Window.End)
	}
	return query
}

// --- Budgets & feed ---------------------------------------------------------

func (s *Store) ListBudgetAllocationsByCycle(ctx context.Context, cycleID string) ([]models.BudgetAllocation, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.BudgetAllocation
	err := s.db.WithContext(ctx).
		Where("cycle_id = ?", strings.TrimSpace(cycleID)).
		Order("category asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListFeedUsage(ctx context.Context, cageID string, limit int) ([]models.FeedUsage, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.FeedUsage{})
	if strings.TrimSpace(cageID) != "" {
		query = query.Where("cage_id = ?", strings.TrimSpace(cageID))
	}
	var items []models.FeedUsage
	err := query.
		Order("date desc").
		Limit(normalizeLimit(limit, 500)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) ListFeedStocks(ctx context.Context) ([]models.FeedStock, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.FeedStock
	if err := s.db.WithContext(ctx).Order("received_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- Audit ------------------------------------------------------------------

func (s *Store) CreateFinancialLog(ctx context.Context, item *models.FinancialLog) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListFinancialLogs(ctx context.Context, params repository.ListFinancialLogsParams) ([]models.FinancialLog, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.FinancialLog{})
	if params.Type != nil && strings.TrimSpace(*params.Type) != "" {
		query = query.Where("type = ?", strings.TrimSpace(*params.Type))
	}
	if params.EntityID != nil && strings.TrimSpace(*params.EntityID) != "" {
		query = query.Where("entity_id = ?", strings.TrimSpace(*params.EntityID))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	var items []models.FinancialLog
	err := query.
		Order("created_at desc").
		Limit(normalizeLimit(params.Limit, 200)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "desc"
	if asc != nil && *asc {
		direction = "asc"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > 500 {
		return 500
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

var _ repository.Repository = (*Store)(nil)
