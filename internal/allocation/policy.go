// Package allocation defines the named payout allocation policies. Two
// divergent policies exist and both are preserved as explicit strategies
// selected by the caller; neither is canonical.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	PolicyProportionalUnits  = "proportional_units"
	PolicyRevenueProfitSplit = "revenue_profit_split"
)

// Stake is one investor's position as seen by a policy. Units drive the
// proportional-by-units policy, Amount drives the revenue/profit split.
type Stake struct {
	InvestorID   string
	InvestorName string
	Units        decimal.Decimal
	Amount       decimal.Decimal
}

// Input carries the cycle figures a policy allocates from. Policies ignore
// the fields they do not use.
type Input struct {
	Revenue      decimal.Decimal
	FarmExpenses decimal.Decimal
	Profit       decimal.Decimal
	TaxRatePct   decimal.Decimal
	Stakes       []Stake
}

// Breakdown is one investor's allocation line. Total is the net amount
// payable; the other money fields explain how it was arrived at and are
// zero where the policy does not produce them.
type Breakdown struct {
	InvestorID       string
	InvestorName     string
	SharePct         decimal.Decimal
	InvestmentAmount decimal.Decimal
	RevenueShare     decimal.Decimal
	ProfitShare      decimal.Decimal
	Gross            decimal.Decimal
	Tax              decimal.Decimal
	Total            decimal.Decimal
}

// Policy turns cycle figures and stakes into a payout breakdown. Allocate
// is pure: no I/O, no error paths, empty output when no stake is eligible.
type Policy interface {
	Name() string
	Allocate(in Input) []Breakdown
}

var registry = map[string]Policy{
	PolicyProportionalUnits:  &ProportionalUnitsPolicy{},
	PolicyRevenueProfitSplit: &RevenueProfitSplitPolicy{},
}

// ByName resolves a registered policy.
func ByName(name string) (Policy, error) {
	p, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("allocation: unknown policy %q", name)
	}
	return p, nil
}
