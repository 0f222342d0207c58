package allocation

import (
	"github.com/shopspring/decimal"

	"aquafund/internal/finance"
)

// ProportionalUnitsPolicy distributes profit proportionally to share units
// with a flat tax deduction per investor. This is the legacy distribution
// formula used by the direct calculate-and-persist path.
type ProportionalUnitsPolicy struct{}

func (p *ProportionalUnitsPolicy) Name() string { return PolicyProportionalUnits }

func (p *ProportionalUnitsPolicy) Allocate(in Input) []Breakdown {
	shares := make([]finance.InvestorShare, 0, len(in.Stakes))
	totalUnits := decimal.Zero
	for _, s := range in.Stakes {
		shares = append(shares, finance.InvestorShare{
			InvestorID:   s.InvestorID,
			InvestorName: s.InvestorName,
			Units:        s.Units,
		})
		totalUnits = totalUnits.Add(s.Units)
	}

	computed := finance.ComputeProportionalPayouts(in.Profit, shares, in.TaxRatePct)
	out := make([]Breakdown, 0, len(computed))
	for i, b := range computed {
		out = append(out, Breakdown{
			InvestorID:       b.InvestorID,
			InvestorName:     b.InvestorName,
			SharePct:         finance.Round2(finance.Pct(in.Stakes[i].Units, totalUnits)),
			InvestmentAmount: in.Stakes[i].Amount,
			Gross:            b.Gross,
			Tax:              b.Tax,
			Total:            b.Net,
		})
	}
	return out
}
