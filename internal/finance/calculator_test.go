package finance

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRound2_HalfUp(t *testing.T) {
	if got := Round2(dec("1.005")); !got.Equal(dec("1.01")) {
		t.Fatalf("Round2(1.005)=%s want 1.01", got)
	}
	if got := Round2(dec("1.004")); !got.Equal(dec("1.00")) {
		t.Fatalf("Round2(1.004)=%s want 1.00", got)
	}
	if got := Round2(dec("-1.005")); !got.Equal(dec("-1.01")) {
		t.Fatalf("Round2(-1.005)=%s want -1.01", got)
	}
}

func TestComputeProportionalPayouts_Basic(t *testing.T) {
	shares := []InvestorShare{
		{InvestorID: "a", Units: dec("60")},
		{InvestorID: "b", Units: dec("40")},
	}
	out := ComputeProportionalPayouts(dec("1000"), shares, dec("10"))
	if len(out) != 2 {
		t.Fatalf("len=%d want 2", len(out))
	}
	if !out[0].Gross.Equal(dec("600")) || !out[0].Tax.Equal(dec("60")) || !out[0].Net.Equal(dec("540")) {
		t.Fatalf("a: gross=%s tax=%s net=%s", out[0].Gross, out[0].Tax, out[0].Net)
	}
	if !out[1].Gross.Equal(dec("400")) || !out[1].Net.Equal(dec("360")) {
		t.Fatalf("b: gross=%s net=%s", out[1].Gross, out[1].Net)
	}
}

func TestComputeProportionalPayouts_ZeroUnits(t *testing.T) {
	shares := []InvestorShare{
		{InvestorID: "a", Units: decimal.Zero},
		{InvestorID: "b", Units: decimal.Zero},
	}
	out := ComputeProportionalPayouts(dec("1000"), shares, decimal.Zero)
	if len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}

func TestComputeProportionalPayouts_Conservation(t *testing.T) {
	shares := []InvestorShare{
		{InvestorID: "a", Units: dec("1")},
		{InvestorID: "b", Units: dec("1")},
		{InvestorID: "c", Units: dec("1")},
	}
	profit := dec("100")
	out := ComputeProportionalPayouts(profit, shares, decimal.Zero)
	total := decimal.Zero
	for _, b := range out {
		total = total.Add(b.Net)
	}
	// Each line is rounded independently, so the drift bound is one cent
	// per investor.
	drift := total.Sub(profit).Abs()
	bound := dec("0.01").Mul(decimal.NewFromInt(int64(len(shares))))
	if drift.GreaterThan(bound) {
		t.Fatalf("drift=%s exceeds %s", drift, bound)
	}
}

func TestComputeProportionalPayouts_OrderPreserved(t *testing.T) {
	shares := []InvestorShare{
		{InvestorID: "z", Units: dec("1")},
		{InvestorID: "a", Units: dec("2")},
	}
	out := ComputeProportionalPayouts(dec("30"), shares, decimal.Zero)
	if out[0].InvestorID != "z" || out[1].InvestorID != "a" {
		t.Fatalf("order=%s,%s want z,a", out[0].InvestorID, out[1].InvestorID)
	}
}

func TestComputeProfitLoss(t *testing.T) {
	res := ComputeProfitLoss(
		[]decimal.Decimal{dec("1000"), dec("500")},
		[]decimal.Decimal{dec("600"), dec("200")},
		[]decimal.Decimal{dec("100")},
	)
	if !res.Revenue.Equal(dec("1500")) {
		t.Fatalf("revenue=%s", res.Revenue)
	}
	if !res.GrossProfit.Equal(dec("700")) {
		t.Fatalf("grossProfit=%s", res.GrossProfit)
	}
	if !res.NetProfit.Equal(dec("600")) {
		t.Fatalf("netProfit=%s", res.NetProfit)
	}
	if !res.ProfitMargin.Equal(dec("40")) {
		t.Fatalf("margin=%s", res.ProfitMargin)
	}
}

func TestComputeProfitLoss_ZeroRevenue(t *testing.T) {
	res := ComputeProfitLoss(nil, []decimal.Decimal{dec("50")}, nil)
	if !res.ProfitMargin.IsZero() {
		t.Fatalf("margin=%s want 0", res.ProfitMargin)
	}
	if !res.NetProfit.Equal(dec("-50")) {
		t.Fatalf("netProfit=%s", res.NetProfit)
	}
}

func TestComputeROI(t *testing.T) {
	if got := ComputeROI(dec("1000"), dec("1250")); !got.Equal(dec("25")) {
		t.Fatalf("roi=%s want 25", got)
	}
	if got := ComputeROI(decimal.Zero, dec("1250")); !got.IsZero() {
		t.Fatalf("roi=%s want 0", got)
	}
	if got := ComputeROI(dec("1000"), dec("800")); !got.Equal(dec("-20")) {
		t.Fatalf("roi=%s want -20", got)
	}
}

func TestAnnualizeReturn_ZeroDays(t *testing.T) {
	if got := AnnualizeReturn(dec("25"), 0); !got.Equal(dec("25")) {
		t.Fatalf("got=%s want 25", got)
	}
}

func TestAnnualizeReturn_FullYear(t *testing.T) {
	got := AnnualizeReturn(dec("25"), 365)
	if !got.Equal(dec("25")) {
		t.Fatalf("got=%s want 25", got)
	}
}

func TestAnnualizeReturn_HalfYear(t *testing.T) {
	// 10% over ~half a year compounds to a bit over 21% annualized.
	got := AnnualizeReturn(dec("10"), 182)
	if got.LessThan(dec("20")) || got.GreaterThan(dec("22")) {
		t.Fatalf("got=%s want within [20,22]", got)
	}
}

func TestAnnualizeReturn_TotalLoss(t *testing.T) {
	if got := AnnualizeReturn(dec("-100"), 100); !got.Equal(dec("-100")) {
		t.Fatalf("got=%s want -100", got)
	}
}

func TestComputeBudgetVariance(t *testing.T) {
	res := ComputeBudgetVariance([]BudgetLine{
		{Category: "feed", Allocated: dec("1000"), Spent: dec("1200")},
		{Category: "labor", Allocated: dec("500"), Spent: dec("400")},
	})
	if len(res.Variance) != 2 {
		t.Fatalf("variance len=%d", len(res.Variance))
	}
	if !res.Variance[0].Variance.Equal(dec("200")) {
		t.Fatalf("feed variance=%s want 200", res.Variance[0].Variance)
	}
	if !res.Variance[1].Variance.Equal(dec("-100")) {
		t.Fatalf("labor variance=%s want -100", res.Variance[1].Variance)
	}
	if len(res.Overspent) != 1 || res.Overspent[0].Category != "feed" {
		t.Fatalf("overspent=%+v", res.Overspent)
	}
}
