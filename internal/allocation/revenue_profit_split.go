package allocation

import (
	"github.com/shopspring/decimal"

	"aquafund/internal/finance"
)

// Allocation ratios for the harvest-triggered policy: 60% of an investor's
// proportional share comes from revenue, 40% from gross profit.
var (
	revenueRatio = decimal.NewFromFloat(0.6)
	profitRatio  = decimal.NewFromFloat(0.4)
)

// RevenueProfitSplitPolicy is the harvest-triggered distribution formula.
// Each investor's share is proportional to invested amount; the payout is
// revenue*share*0.6 plus max(0, grossProfit)*share*0.4, untaxed. A negative
// gross profit zeroes the profit leg but never claws back the revenue leg.
type RevenueProfitSplitPolicy struct{}

func (p *RevenueProfitSplitPolicy) Name() string { return PolicyRevenueProfitSplit }

func (p *RevenueProfitSplitPolicy) Allocate(in Input) []Breakdown {
	totalInvestment := decimal.Zero
	for _, s := range in.Stakes {
		totalInvestment = totalInvestment.Add(s.Amount)
	}
	if totalInvestment.IsZero() {
		return []Breakdown{}
	}

	grossProfit := in.Revenue.Sub(in.FarmExpenses)
	if grossProfit.IsNegative() {
		grossProfit = decimal.Zero
	}

	out := make([]Breakdown, 0, len(in.Stakes))
	for _, s := range in.Stakes {
		share := s.Amount.Div(totalInvestment)
		revenueShare := in.Revenue.Mul(share).Mul(revenueRatio)
		profitShare := grossProfit.Mul(share).Mul(profitRatio)
		total := revenueShare.Add(profitShare)
		out = append(out, Breakdown{
			InvestorID:       s.InvestorID,
			InvestorName:     s.InvestorName,
			SharePct:         finance.Round2(share.Mul(decimal.NewFromInt(100))),
			InvestmentAmount: s.Amount,
			RevenueShare:     finance.Round2(revenueShare),
			ProfitShare:      finance.Round2(profitShare),
			Total:            finance.Round2(total),
		})
	}
	return out
}
