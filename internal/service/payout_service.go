package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"aquafund/internal/allocation"
	"aquafund/internal/finance"
	"aquafund/internal/models"
	"aquafund/internal/repository"
)

// PayoutService orchestrates the harvest -> distribute -> approve -> pay
// workflow. Payout rows are created here and nowhere else.
type PayoutService struct {
	Repo          repository.Repository
	Logger        *zap.Logger
	HarvestPolicy allocation.Policy
}

// DistributionInput carries the harvest figures a distribution is computed
// from.
type DistributionInput struct {
	CycleID         string
	HarvestedStock  int
	HarvestWeightKg decimal.Decimal
	Revenue         decimal.Decimal
	FarmExpenses    decimal.Decimal
	HarvestDate     time.Time
}

type DistributionResult struct {
	Distribution models.Distribution
	Payouts      []models.Payout
	Breakdown    []allocation.Breakdown
	TotalPayout  decimal.Decimal
}

func (s *PayoutService) harvestPolicy() allocation.Policy {
	if s.HarvestPolicy != nil {
		return s.HarvestPolicy
	}
	p, _ := allocation.ByName(allocation.PolicyRevenueProfitSplit)
	return p
}

func validateDistributionInput(input DistributionInput) error {
	if input.CycleID == "" {
		return &ValidationError{Field: "cycleId", Reason: "required"}
	}
	if !input.Revenue.IsPositive() {
		return &ValidationError{Field: "revenue", Reason: "must be positive"}
	}
	if input.FarmExpenses.IsNegative() {
		return &ValidationError{Field: "farmExpenses", Reason: "must not be negative"}
	}
	if input.HarvestDate.IsZero() {
		return &ValidationError{Field: "harvestDate", Reason: "required"}
	}
	return nil
}

// InitiateDistribution runs the harvest-triggered distribution for a cycle:
// one pending payout per investor under the revenue/profit split policy.
// The distribution row, all payout rows and the cycle completion commit in
// a single transaction; the unique distribution per cycle makes the
// operation idempotent even against concurrent initiators. Audit ledger
// entries are written best-effort after commit, and investor aggregates are
// recalculated unconditionally.
func (s *PayoutService) InitiateDistribution(ctx context.Context, input DistributionInput) (*DistributionResult, error) {
	if err := validateDistributionInput(input); err != nil {
		return nil, err
	}

	cycle, err := s.Repo.GetCycleByID(ctx, input.CycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "cycle", ID: input.CycleID}
	}

	existing, err := s.Repo.CountPayoutsByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateOperation
	}

	stakes, err := s.stakesForCycle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	if len(stakes) == 0 {
		return nil, ErrNotEligible
	}

	policy := s.harvestPolicy()
	breakdown := policy.Allocate(allocation.Input{
		Revenue:      input.Revenue,
		FarmExpenses: input.FarmExpenses,
		Stakes:       stakes,
	})
	if len(breakdown) == 0 {
		return nil, ErrNotEligible
	}

	runRef := "DIST-" + shortID(uuid.NewString())
	now := time.Now().UTC()
	profit := input.Revenue.Sub(input.FarmExpenses)

	totalPayout := decimal.Zero
	payouts := make([]models.Payout, 0, len(breakdown))
	for _, b := range breakdown {
		totalPayout = totalPayout.Add(b.Total)
		payouts = append(payouts, models.Payout{
			ID:         uuid.NewString(),
			InvestorID: b.InvestorID,
			CycleID:    cycle.ID,
			Amount:     b.Total,
			Status:     models.PayoutPending,
			Reference:  fmt.Sprintf("%s-%s", runRef, shortID(b.InvestorID)),
			CreatedAt:  now,
		})
	}
	totalPayout = finance.Round2(totalPayout)

	dist := models.Distribution{
		ID:           uuid.NewString(),
		CycleID:      cycle.ID,
		Policy:       policy.Name(),
		Reference:    runRef,
		Revenue:      finance.Round2(input.Revenue),
		FarmExpenses: finance.Round2(input.FarmExpenses),
		TotalPayout:  totalPayout,
		PayoutCount:  len(payouts),
		HarvestDate:  input.HarvestDate,
		CreatedAt:    now,
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.CreateDistributionTx(ctx, tx, &dist); err != nil {
			return err
		}
		if err := s.Repo.CreatePayoutsTx(ctx, tx, payouts); err != nil {
			return err
		}
		return s.Repo.CompleteCycleTx(ctx, tx, cycle.ID, repository.CycleHarvestUpdate{
			HarvestedStock: input.HarvestedStock,
			Revenue:        finance.Round2(input.Revenue),
			Profit:         finance.Round2(profit),
			EndDate:        input.HarvestDate,
		})
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race on the per-cycle unique distribution.
			return nil, ErrDuplicateOperation
		}
		return nil, err
	}

	s.recordHarvestLedger(ctx, cycle.ID, input, payouts)
	s.recalculateInvestorsFor(ctx, payouts)

	return &DistributionResult{
		Distribution: dist,
		Payouts:      payouts,
		Breakdown:    breakdown,
		TotalPayout:  totalPayout,
	}, nil
}

// Approve moves a pending payout to processing.
func (s *PayoutService) Approve(ctx context.Context, payoutID string) (*models.Payout, error) {
	return s.transition(ctx, payoutID, models.PayoutProcessing, "")
}

// Process completes a payout once the external transfer has been made. The
// payment reference replaces the distribution-run reference.
func (s *PayoutService) Process(ctx context.Context, payoutID, paymentRef string) (*models.Payout, error) {
	if paymentRef == "" {
		return nil, &ValidationError{Field: "paymentRef", Reason: "required"}
	}
	return s.transition(ctx, payoutID, models.PayoutPaid, paymentRef)
}

// Reject terminates a pending or processing payout.
func (s *PayoutService) Reject(ctx context.Context, payoutID string) (*models.Payout, error) {
	return s.transition(ctx, payoutID, models.PayoutRejected, "")
}

func (s *PayoutService) transition(ctx context.Context, payoutID string, next models.PayoutStatus, paymentRef string) (*models.Payout, error) {
	payout, err := s.Repo.GetPayoutByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout == nil {
		return nil, &NotFoundError{Entity: "payout", ID: payoutID}
	}
	if !payout.CanTransition(next) {
		return nil, &InvalidTransitionError{From: payout.Status, To: next}
	}

	payout.Status = next
	if next == models.PayoutPaid {
		now := time.Now().UTC()
		payout.PaidAt = &now
		payout.Reference = paymentRef
	}
	if err := s.Repo.UpdatePayout(ctx, payout); err != nil {
		return nil, err
	}

	// Aggregate consistency is eventual but the trigger is unconditional:
	// both entering and leaving the counted statuses recalculates.
	if err := s.RecalculateInvestorAggregates(ctx, payout.InvestorID); err != nil && s.Logger != nil {
		s.Logger.Warn("investor aggregate recalculation failed",
			zap.String("investor_id", payout.InvestorID),
			zap.Error(err),
		)
	}

	if s.Logger != nil {
		s.Logger.Info("payout transition",
			zap.String("payout_id", payout.ID),
			zap.String("status", string(next)),
		)
	}
	return payout, nil
}

// EstimatePayouts previews the harvest distribution for an active cycle
// against projected figures. Nothing is persisted.
func (s *PayoutService) EstimatePayouts(ctx context.Context, cycleID string, projectedRevenue, projectedExpenses decimal.Decimal) ([]allocation.Breakdown, error) {
	cycle, err := s.Repo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "cycle", ID: cycleID}
	}

	stakes, err := s.stakesForCycle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	return s.harvestPolicy().Allocate(allocation.Input{
		Revenue:      projectedRevenue,
		FarmExpenses: projectedExpenses,
		Stakes:       stakes,
	}), nil
}

// CalculatePayoutsForCycle is the legacy tax-adjusted distribution path:
// profit split proportionally by share units, payouts persisted directly in
// processing status. It shares the per-cycle distribution uniqueness with
// the harvest path, so only one of the two can ever run for a cycle.
func (s *PayoutService) CalculatePayoutsForCycle(ctx context.Context, cycleID string, taxRatePct decimal.Decimal) (*DistributionResult, error) {
	cycle, err := s.Repo.GetCycleByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if cycle == nil {
		return nil, &NotFoundError{Entity: "cycle", ID: cycleID}
	}

	existing, err := s.Repo.CountPayoutsByCycle(ctx, cycle.ID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateOperation
	}

	profit, err := s.cycleProfit(ctx, cycle)
	if err != nil {
		return nil, err
	}

	stakes, err := s.stakesForCycle(ctx, cycle)
	if err != nil {
		return nil, err
	}
	if len(stakes) == 0 {
		return nil, ErrNotEligible
	}
	// A stake without explicit units still participates with one unit.
	for i := range stakes {
		if stakes[i].Units.IsZero() {
			stakes[i].Units = decimal.NewFromInt(1)
		}
	}

	policy, err := allocation.ByName(allocation.PolicyProportionalUnits)
	if err != nil {
		return nil, err
	}
	breakdown := policy.Allocate(allocation.Input{
		Profit:     profit,
		TaxRatePct: taxRatePct,
		Stakes:     stakes,
	})
	if len(breakdown) == 0 {
		return nil, ErrNotEligible
	}

	runRef := "AUTO-" + shortID(cycle.ID)
	now := time.Now().UTC()
	totalPayout := decimal.Zero
	payouts := make([]models.Payout, 0, len(breakdown))
	for _, b := range breakdown {
		totalPayout = totalPayout.Add(b.Total)
		payouts = append(payouts, models.Payout{
			ID:         uuid.NewString(),
			InvestorID: b.InvestorID,
			CycleID:    cycle.ID,
			Amount:     b.Total,
			Status:     models.PayoutProcessing,
			Reference:  fmt.Sprintf("%s-%s", runRef, shortID(b.InvestorID)),
			CreatedAt:  now,
		})
	}
	totalPayout = finance.Round2(totalPayout)

	dist := models.Distribution{
		ID:          uuid.NewString(),
		CycleID:     cycle.ID,
		Policy:      policy.Name(),
		Reference:   runRef,
		Revenue:     decimal.Zero,
		TotalPayout: totalPayout,
		PayoutCount: len(payouts),
		HarvestDate: now,
		CreatedAt:   now,
	}

	err = s.Repo.InTx(ctx, func(tx *gorm.DB) error {
		if err := s.Repo.CreateDistributionTx(ctx, tx, &dist); err != nil {
			return err
		}
		return s.Repo.CreatePayoutsTx(ctx, tx, payouts)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateOperation
		}
		return nil, err
	}

	s.auditLog(ctx, &models.FinancialLog{
		Type:       "payout_distribution",
		EntityID:   cycle.ID,
		EntityType: "cycle",
		Amount:     decimalPtr(finance.Round2(profit)),
		Reference:  runRef,
		Metadata:   breakdownMetadata(taxRatePct, breakdown),
	})
	s.recalculateInvestorsFor(ctx, payouts)

	return &DistributionResult{
		Distribution: dist,
		Payouts:      payouts,
		Breakdown:    breakdown,
		TotalPayout:  totalPayout,
	}, nil
}

// RecalculateInvestorAggregates rebuilds the cached totals on one investor
// from the investment and payout rows. Only paid and processing payouts
// count as returns.
func (s *PayoutService) RecalculateInvestorAggregates(ctx context.Context, investorID string) error {
	investments, err := s.Repo.ListInvestmentsByInvestor(ctx, investorID, repository.DateWindow{})
	if err != nil {
		return err
	}
	payouts, err := s.Repo.ListPayoutsByInvestor(ctx, investorID, repository.DateWindow{})
	if err != nil {
		return err
	}

	totalInvestment := decimal.Zero
	for _, inv := range investments {
		totalInvestment = totalInvestment.Add(inv.StakeAmount())
	}
	totalReturns := decimal.Zero
	for _, p := range payouts {
		if p.Status == models.PayoutPaid || p.Status == models.PayoutProcessing {
			totalReturns = totalReturns.Add(p.Amount)
		}
	}

	return s.Repo.UpdateInvestorAggregates(ctx, investorID, repository.InvestorAggregates{
		TotalInvestment: finance.Round2(totalInvestment),
		TotalReturns:    finance.Round2(totalReturns),
		ROI:             finance.ComputeROI(totalInvestment, totalReturns),
	})
}

// RecalculateAllInvestors is the periodic reconciliation sweep for the
// derived investor aggregates.
func (s *PayoutService) RecalculateAllInvestors(ctx context.Context) error {
	investors, err := s.Repo.ListInvestors(ctx)
	if err != nil {
		return err
	}
	var firstErr error
	for _, inv := range investors {
		if err := s.RecalculateInvestorAggregates(ctx, inv.ID); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			if s.Logger != nil {
				s.Logger.Warn("aggregate reconcile failed",
					zap.String("investor_id", inv.ID),
					zap.Error(err),
				)
			}
		}
	}
	return firstErr
}

func (s *PayoutService) stakesForCycle(ctx context.Context, cycle *models.Cycle) ([]allocation.Stake, error) {
	investments, err := s.Repo.ListInvestmentsForCycle(ctx, cycle.ID, cycle.CageID)
	if err != nil {
		return nil, err
	}
	stakes := make([]allocation.Stake, 0, len(investments))
	for _, inv := range investments {
		stakes = append(stakes, allocation.Stake{
			InvestorID:   inv.InvestorID,
			InvestorName: inv.Investor.Name,
			Units:        inv.ShareUnits,
			Amount:       inv.StakeAmount(),
		})
	}
	return stakes, nil
}

// cycleProfit prefers the cached profit on the cycle and otherwise derives
// it from the revenue and expense ledgers.
func (s *PayoutService) cycleProfit(ctx context.Context, cycle *models.Cycle) (decimal.Decimal, error) {
	if cycle.Profit != nil {
		return *cycle.Profit, nil
	}
	filter := repository.LedgerFilter{CycleID: &cycle.ID}
	revenues, err := s.Repo.ListRevenues(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	expenses, err := s.Repo.ListExpenses(ctx, filter)
	if err != nil {
		return decimal.Zero, err
	}
	profit := decimal.Zero
	for _, r := range revenues {
		profit = profit.Add(r.Amount)
	}
	for _, e := range expenses {
		profit = profit.Sub(e.Amount)
	}
	return profit, nil
}

// recordHarvestLedger writes the revenue/expense/profit audit entries plus
// one ledger row per payout. This is best-effort: a failed write is logged
// and never fails the distribution that produced it.
func (s *PayoutService) recordHarvestLedger(ctx context.Context, cycleID string, input DistributionInput, payouts []models.Payout) {
	cyclePtr := cycleID
	s.auditWrite(ctx, "harvest revenue", s.Repo.CreateRevenue(ctx, &models.Revenue{
		ID:          uuid.NewString(),
		CycleID:     &cyclePtr,
		Type:        "harvest",
		Amount:      finance.Round2(input.Revenue),
		Description: "Harvest revenue for cycle",
		Reference:   "HARVEST-REVENUE-" + shortID(cycleID),
		OccurredAt:  input.HarvestDate,
	}))

	if input.FarmExpenses.IsPositive() {
		s.auditWrite(ctx, "harvest expense", s.Repo.CreateExpense(ctx, &models.Expense{
			ID:          uuid.NewString(),
			CycleID:     &cyclePtr,
			Category:    models.ExpenseOther,
			Amount:      finance.Round2(input.FarmExpenses),
			Description: "Farm operating expenses for cycle",
			Reference:   "HARVEST-EXPENSE-" + shortID(cycleID),
			IncurredAt:  input.HarvestDate,
		}))
	}

	profit := input.Revenue.Sub(input.FarmExpenses)
	if !profit.IsZero() {
		logType := "harvest_profit"
		if profit.IsNegative() {
			logType = "harvest_loss"
		}
		amount := finance.Round2(profit.Abs())
		s.auditLog(ctx, &models.FinancialLog{
			Type:       logType,
			EntityID:   cycleID,
			EntityType: "cycle",
			Amount:     &amount,
			Reference:  "HARVEST-PROFIT-" + shortID(cycleID),
			Notes:      "Revenue minus expenses at harvest",
		})
	}

	for _, p := range payouts {
		amount := p.Amount
		s.auditLog(ctx, &models.FinancialLog{
			Type:       "payout",
			EntityID:   p.InvestorID,
			EntityType: "investor",
			Amount:     &amount,
			Reference:  p.Reference,
			Notes:      "Investor payout from harvest",
		})
	}
}

func (s *PayoutService) recalculateInvestorsFor(ctx context.Context, payouts []models.Payout) {
	seen := map[string]struct{}{}
	for _, p := range payouts {
		if _, ok := seen[p.InvestorID]; ok {
			continue
		}
		seen[p.InvestorID] = struct{}{}
		if err := s.RecalculateInvestorAggregates(ctx, p.InvestorID); err != nil && s.Logger != nil {
			s.Logger.Warn("investor aggregate recalculation failed",
				zap.String("investor_id", p.InvestorID),
				zap.Error(err),
			)
		}
	}
}

func (s *PayoutService) auditLog(ctx context.Context, item *models.FinancialLog) {
	s.auditWrite(ctx, item.Type, s.Repo.CreateFinancialLog(ctx, item))
}

func (s *PayoutService) auditWrite(ctx context.Context, what string, err error) {
	if err != nil && s.Logger != nil {
		s.Logger.Warn("audit ledger write failed",
			zap.String("entry", what),
			zap.Error(err),
		)
	}
}

func breakdownMetadata(taxRatePct decimal.Decimal, breakdown []allocation.Breakdown) datatypes.JSON {
	type line struct {
		InvestorID string `json:"investorId"`
		Net        string `json:"net"`
	}
	lines := make([]line, 0, len(breakdown))
	for _, b := range breakdown {
		lines = append(lines, line{InvestorID: b.InvestorID, Net: b.Total.StringFixed(2)})
	}
	raw, err := json.Marshal(map[string]any{
		"taxRatePct": taxRatePct.String(),
		"payouts":    lines,
	})
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
