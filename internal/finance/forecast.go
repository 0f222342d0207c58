package finance

import "github.com/shopspring/decimal"

// CycleStats carries the per-cycle figures the forecast averages over.
type CycleStats struct {
	BiomassEndKg decimal.Decimal
	FCR          decimal.Decimal
	Profit       decimal.Decimal
}

type ConfidenceInterval struct {
	Lower decimal.Decimal
	Upper decimal.Decimal
}

type ForecastAssumptions struct {
	AvgBiomassEndKg decimal.Decimal
	AvgFCR          decimal.Decimal
	AvgProfit       decimal.Decimal
}

type CycleForecast struct {
	ForecastRevenue    decimal.Decimal
	ForecastExpense    decimal.Decimal
	ForecastProfit     decimal.Decimal
	ConfidenceInterval ConfidenceInterval
	Assumptions        ForecastAssumptions
}

var (
	revenueUplift  = decimal.NewFromFloat(1.15)
	expenseFactor  = decimal.NewFromFloat(0.6)
	bandLowerRatio = decimal.NewFromFloat(0.85)
	bandUpperRatio = decimal.NewFromFloat(1.15)
)

// ComputeForecastFromCycles projects the next cycle from simple averages of
// past completed cycles. No history means no forecast (nil, not an error).
func ComputeForecastFromCycles(cycles []CycleStats) *CycleForecast {
	if len(cycles) == 0 {
		return nil
	}

	n := decimal.NewFromInt(int64(len(cycles)))
	sumBiomass, sumFcr, sumProfit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, c := range cycles {
		sumBiomass = sumBiomass.Add(c.BiomassEndKg)
		sumFcr = sumFcr.Add(c.FCR)
		sumProfit = sumProfit.Add(c.Profit)
	}
	avgBiomass := sumBiomass.Div(n)
	avgFcr := sumFcr.Div(n)
	avgProfit := sumProfit.Div(n)

	forecastRevenue := avgProfit.Abs().Mul(revenueUplift)
	fcrDivisor := avgFcr
	if fcrDivisor.IsZero() {
		fcrDivisor = decimal.NewFromInt(1)
	}
	forecastExpense := forecastRevenue.Div(fcrDivisor).Mul(expenseFactor)
	forecastProfit := forecastRevenue.Sub(forecastExpense)

	return &CycleForecast{
		ForecastRevenue: Round2(forecastRevenue),
		ForecastExpense: Round2(forecastExpense),
		ForecastProfit:  Round2(forecastProfit),
		ConfidenceInterval: ConfidenceInterval{
			Lower: Round2(forecastProfit.Mul(bandLowerRatio)),
			Upper: Round2(forecastProfit.Mul(bandUpperRatio)),
		},
		Assumptions: ForecastAssumptions{
			AvgBiomassEndKg: Round2(avgBiomass),
			AvgFCR:          Round2(avgFcr),
			AvgProfit:       Round2(avgProfit),
		},
	}
}
