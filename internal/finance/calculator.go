package finance

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// InvestorShare is one investor's stake expressed in share units.
type InvestorShare struct {
	InvestorID   string
	InvestorName string
	Units        decimal.Decimal
}

// PayoutBreakdown is one investor's line in a tax-adjusted proportional
// distribution.
type PayoutBreakdown struct {
	InvestorID   string
	InvestorName string
	Gross        decimal.Decimal
	Tax          decimal.Decimal
	Net          decimal.Decimal
}

// ComputeProportionalPayouts splits profit across shares proportionally to
// units and applies a flat tax rate per investor. A share set with zero
// total units yields an empty breakdown: a cycle with no eligible shares
// simply has nothing to distribute. Output order matches input order.
func ComputeProportionalPayouts(profit decimal.Decimal, shares []InvestorShare, taxRatePct decimal.Decimal) []PayoutBreakdown {
	totalUnits := decimal.Zero
	for _, s := range shares {
		totalUnits = totalUnits.Add(s.Units)
	}
	if totalUnits.IsZero() {
		return []PayoutBreakdown{}
	}

	out := make([]PayoutBreakdown, 0, len(shares))
	for _, s := range shares {
		gross := profit.Mul(s.Units).Div(totalUnits)
		tax := gross.Mul(taxRatePct).Div(hundred)
		net := gross.Sub(tax)
		out = append(out, PayoutBreakdown{
			InvestorID:   s.InvestorID,
			InvestorName: s.InvestorName,
			Gross:        Round2(gross),
			Tax:          Round2(tax),
			Net:          Round2(net),
		})
	}
	return out
}

type ProfitLossResult struct {
	Revenue       decimal.Decimal
	DirectCosts   decimal.Decimal
	IndirectCosts decimal.Decimal
	GrossProfit   decimal.Decimal
	NetProfit     decimal.Decimal
	ProfitMargin  decimal.Decimal
}

// ComputeProfitLoss aggregates revenue and cost lines into a P&L. Margin is
// zero when there is no revenue.
func ComputeProfitLoss(revenues, directCosts, indirectCosts []decimal.Decimal) ProfitLossResult {
	revenue := Sum(revenues)
	direct := Sum(directCosts)
	indirect := Sum(indirectCosts)
	grossProfit := revenue.Sub(direct)
	netProfit := grossProfit.Sub(indirect)
	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = netProfit.Div(revenue).Mul(hundred)
	}
	return ProfitLossResult{
		Revenue:       Round2(revenue),
		DirectCosts:   Round2(direct),
		IndirectCosts: Round2(indirect),
		GrossProfit:   Round2(grossProfit),
		NetProfit:     Round2(netProfit),
		ProfitMargin:  Round2(margin),
	}
}

// ComputeROI returns (returned-invested)/invested*100, or zero when nothing
// was invested.
func ComputeROI(invested, returned decimal.Decimal) decimal.Decimal {
	if invested.IsZero() {
		return decimal.Zero
	}
	return Round2(returned.Sub(invested).Div(invested).Mul(hundred))
}

// AnnualizeReturn compound-annualizes a period ROI over daysHeld days:
// ((1 + roi/100)^(365/days) - 1) * 100. A non-positive holding period
// cannot be annualized and returns the input unchanged.
func AnnualizeReturn(roiPct decimal.Decimal, daysHeld int) decimal.Decimal {
	if daysHeld <= 0 {
		return Round2(roiPct)
	}
	base := decimal.NewFromInt(1).Add(roiPct.Div(hundred))
	if base.Sign() <= 0 {
		// Total loss or worse; the compound formula is undefined.
		return Round2(roiPct)
	}
	exp := decimal.NewFromInt(365).Div(decimal.NewFromInt(int64(daysHeld)))
	compounded, err := base.PowWithPrecision(exp, 12)
	if err != nil {
		return Round2(roiPct)
	}
	return Round2(compounded.Sub(decimal.NewFromInt(1)).Mul(hundred))
}

// BudgetLine is one category's allocation versus actual spend.
type BudgetLine struct {
	Category  string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
}

type BudgetVarianceLine struct {
	Category  string
	Allocated decimal.Decimal
	Spent     decimal.Decimal
	Variance  decimal.Decimal
}

type BudgetVarianceResult struct {
	Variance  []BudgetVarianceLine
	Overspent []BudgetVarianceLine
}

// ComputeBudgetVariance reports spent-minus-allocated per category and
// flags the categories that ran over.
func ComputeBudgetVariance(budgets []BudgetLine) BudgetVarianceResult {
	variance := make([]BudgetVarianceLine, 0, len(budgets))
	overspent := make([]BudgetVarianceLine, 0)
	for _, b := range budgets {
		line := BudgetVarianceLine{
			Category:  b.Category,
			Allocated: Round2(b.Allocated),
			Spent:     Round2(b.Spent),
			Variance:  Round2(b.Spent.Sub(b.Allocated)),
		}
		variance = append(variance, line)
		if line.Variance.IsPositive() {
			overspent = append(overspent, line)
		}
	}
	return BudgetVarianceResult{Variance: variance, Overspent: overspent}
}
