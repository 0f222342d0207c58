package allocation

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

func TestByName(t *testing.T) {
	for _, name := range []string{PolicyProportionalUnits, PolicyRevenueProfitSplit} {
		p, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%s): %v", name, err)
		}
		if p.Name() != name {
			t.Fatalf("Name()=%s want %s", p.Name(), name)
		}
	}
	if _, err := ByName("nope"); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestRevenueProfitSplit_Basic(t *testing.T) {
	p := &RevenueProfitSplitPolicy{}
	out := p.Allocate(Input{
		Revenue:      dec("10000"),
		FarmExpenses: dec("6000"),
		Stakes: []Stake{
			{InvestorID: "a", Amount: dec("7500")},
			{InvestorID: "b", Amount: dec("2500")},
		},
	})
	if len(out) != 2 {
		t.Fatalf("len=%d want 2", len(out))
	}
	// a holds 75%: revenue leg 10000*0.75*0.6=4500, profit leg 4000*0.75*0.4=1200.
	if !out[0].SharePct.Equal(dec("75")) {
		t.Fatalf("a share=%s want 75", out[0].SharePct)
	}
	if !out[0].RevenueShare.Equal(dec("4500")) {
		t.Fatalf("a revenueShare=%s want 4500", out[0].RevenueShare)
	}
	if !out[0].ProfitShare.Equal(dec("1200")) {
		t.Fatalf("a profitShare=%s want 1200", out[0].ProfitShare)
	}
	if !out[0].Total.Equal(dec("5700")) {
		t.Fatalf("a total=%s want 5700", out[0].Total)
	}
	if !out[1].Total.Equal(dec("1900")) {
		t.Fatalf("b total=%s want 1900", out[1].Total)
	}
}

func TestRevenueProfitSplit_NegativeProfitZeroesProfitLeg(t *testing.T) {
	p := &RevenueProfitSplitPolicy{}
	out := p.Allocate(Input{
		Revenue:      dec("1000"),
		FarmExpenses: dec("5000"),
		Stakes:       []Stake{{InvestorID: "a", Amount: dec("100")}},
	})
	if !out[0].ProfitShare.IsZero() {
		t.Fatalf("profitShare=%s want 0", out[0].ProfitShare)
	}
	// Revenue leg still pays out: 1000 * 1.0 * 0.6.
	if !out[0].Total.Equal(dec("600")) {
		t.Fatalf("total=%s want 600", out[0].Total)
	}
}

func TestRevenueProfitSplit_NoInvestment(t *testing.T) {
	p := &RevenueProfitSplitPolicy{}
	out := p.Allocate(Input{
		Revenue: dec("1000"),
		Stakes:  []Stake{{InvestorID: "a", Amount: decimal.Zero}},
	})
	if len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}

func TestProportionalUnits_TaxApplied(t *testing.T) {
	p := &ProportionalUnitsPolicy{}
	out := p.Allocate(Input{
		Profit:     dec("1000"),
		TaxRatePct: dec("15"),
		Stakes: []Stake{
			{InvestorID: "a", Units: dec("3"), Amount: dec("300")},
			{InvestorID: "b", Units: dec("1"), Amount: dec("100")},
		},
	})
	if len(out) != 2 {
		t.Fatalf("len=%d want 2", len(out))
	}
	if !out[0].Gross.Equal(dec("750")) || !out[0].Tax.Equal(dec("112.50")) || !out[0].Total.Equal(dec("637.50")) {
		t.Fatalf("a: %+v", out[0])
	}
	if !out[0].SharePct.Equal(dec("75")) {
		t.Fatalf("a share=%s want 75", out[0].SharePct)
	}
	if !out[1].InvestmentAmount.Equal(dec("100")) {
		t.Fatalf("b amount=%s", out[1].InvestmentAmount)
	}
}

func TestProportionalUnits_ZeroUnitsEmpty(t *testing.T) {
	p := &ProportionalUnitsPolicy{}
	out := p.Allocate(Input{
		Profit: dec("1000"),
		Stakes: []Stake{{InvestorID: "a", Units: decimal.Zero}},
	})
	if len(out) != 0 {
		t.Fatalf("len=%d want 0", len(out))
	}
}
