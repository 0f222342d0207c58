package finance

import "testing"

func TestComputeForecastFromCycles_Empty(t *testing.T) {
	if got := ComputeForecastFromCycles(nil); got != nil {
		t.Fatalf("want nil, got %+v", got)
	}
}

func TestComputeForecastFromCycles_SingleCycle(t *testing.T) {
	f := ComputeForecastFromCycles([]CycleStats{
		{BiomassEndKg: dec("1000"), FCR: dec("1.5"), Profit: dec("2000")},
	})
	if f == nil {
		t.Fatal("nil forecast")
	}
	// revenue = 2000 * 1.15 = 2300; expense = 2300/1.5*0.6 = 920.
	if !f.ForecastRevenue.Equal(dec("2300")) {
		t.Fatalf("revenue=%s want 2300", f.ForecastRevenue)
	}
	if !f.ForecastExpense.Equal(dec("920")) {
		t.Fatalf("expense=%s want 920", f.ForecastExpense)
	}
	if !f.ForecastProfit.Equal(dec("1380")) {
		t.Fatalf("profit=%s want 1380", f.ForecastProfit)
	}
	if !f.ConfidenceInterval.Lower.Equal(dec("1173")) || !f.ConfidenceInterval.Upper.Equal(dec("1587")) {
		t.Fatalf("interval=%s..%s", f.ConfidenceInterval.Lower, f.ConfidenceInterval.Upper)
	}
}

func TestComputeForecastFromCycles_NegativeProfitUsesMagnitude(t *testing.T) {
	f := ComputeForecastFromCycles([]CycleStats{
		{BiomassEndKg: dec("500"), FCR: dec("2"), Profit: dec("-1000")},
	})
	if !f.ForecastRevenue.Equal(dec("1150")) {
		t.Fatalf("revenue=%s want 1150", f.ForecastRevenue)
	}
}

func TestComputeForecastFromCycles_LowFCRDividesAsIs(t *testing.T) {
	f := ComputeForecastFromCycles([]CycleStats{
		{BiomassEndKg: dec("100"), FCR: dec("0.5"), Profit: dec("100")},
	})
	// expense = 115 / 0.5 * 0.6 = 138.
	if !f.ForecastExpense.Equal(dec("138")) {
		t.Fatalf("expense=%s want 138", f.ForecastExpense)
	}
}

func TestComputeForecastFromCycles_ZeroFCRGuard(t *testing.T) {
	f := ComputeForecastFromCycles([]CycleStats{
		{BiomassEndKg: dec("100"), FCR: dec("0"), Profit: dec("100")},
	})
	// divisor falls back to 1 only when the average FCR is zero.
	if !f.ForecastExpense.Equal(dec("69")) {
		t.Fatalf("expense=%s want 69", f.ForecastExpense)
	}
}

func TestComputeForecastFromCycles_Averages(t *testing.T) {
	f := ComputeForecastFromCycles([]CycleStats{
		{BiomassEndKg: dec("1000"), FCR: dec("1"), Profit: dec("1000")},
		{BiomassEndKg: dec("2000"), FCR: dec("3"), Profit: dec("3000")},
	})
	if !f.Assumptions.AvgBiomassEndKg.Equal(dec("1500")) {
		t.Fatalf("avgBiomass=%s", f.Assumptions.AvgBiomassEndKg)
	}
	if !f.Assumptions.AvgFCR.Equal(dec("2")) {
		t.Fatalf("avgFcr=%s", f.Assumptions.AvgFCR)
	}
	if !f.Assumptions.AvgProfit.Equal(dec("2000")) {
		t.Fatalf("avgProfit=%s", f.Assumptions.AvgProfit)
	}
}
