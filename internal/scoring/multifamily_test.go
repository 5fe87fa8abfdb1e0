package scoring

import (
	"errors"
	"testing"
)

func multiFamilyFields() Fields {
	return Fields{
		"unit_count":         10,
		"monthly_rent_roll":  10000,
		"expenses":           4000,
		"cap_rate":           6,
		"vacancy_rate":       4,
		"stabilization_time": 0,
		"purchase_price":     900000,
	}
}

func TestMultiFamilyRegression(t *testing.T) {
	// annualNOI = (10000*(1-0.04) - 4000) * 12 = 67200
	// propertyValue = 67200 / 0.06 = 1,120,000
	// base = (1,120,000 - 900,000) / 1,120,000 * 60 ≈ 11.7857
	// cash flow 6000/10 units = 600/unit -> +25; vacancy 4% -> +10; stabilization 0
	// score = round(46.7857) = 47 -> Yellow, offer cap rate unchanged
	res, err := NewEngine().Analyze(MultiFamily, multiFamilyFields())
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.SniperScore != 47 {
		t.Fatalf("score = %d, want 47", res.SniperScore)
	}
	if res.RiskLevel != RiskYellow || res.ExitStrategy != "Value-Add Opportunity" {
		t.Fatalf("got %s/%s, want Yellow/Value-Add Opportunity", res.RiskLevel, res.ExitStrategy)
	}
	if res.RecommendedOffer != 1120000.00 {
		t.Fatalf("offer = %v, want 1120000.00", res.RecommendedOffer)
	}
}

func TestMultiFamilyGreenLowersOfferCapRate(t *testing.T) {
	f := Fields{
		"unit_count":        10,
		"monthly_rent_roll": 10000,
		"expenses":          2000,
		"cap_rate":          6,
		"vacancy_rate":      0,
		"purchase_price":    400000,
	}
	// annualNOI = 96000, value = 1.6M, base = 45; +25 cash flow, +10 vacancy -> 80
	// offer cap rate 6 - 0.5 = 5.5 -> 96000 / 0.055
	res, err := NewEngine().Analyze(MultiFamily, f)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.SniperScore != 80 {
		t.Fatalf("score = %d, want 80", res.SniperScore)
	}
	if res.RiskLevel != RiskGreen || res.ExitStrategy != "Buy & Hold" {
		t.Fatalf("got %s/%s, want Green/Buy & Hold", res.RiskLevel, res.ExitStrategy)
	}
	if res.RecommendedOffer != 1745454.55 {
		t.Fatalf("offer = %v, want 1745454.55", res.RecommendedOffer)
	}
}

func TestMultiFamilyRedRaisesOfferCapRate(t *testing.T) {
	f := Fields{
		"unit_count":        20,
		"monthly_rent_roll": 5000,
		"expenses":          4000,
		"cap_rate":          7,
		"vacancy_rate":      10,
		"purchase_price":    200000,
	}
	// annualNOI = (4500-4000)*12 = 6000, value ≈ 85714, base ≈ -80
	// cash flow 1000/20 = 50/unit -> +10; vacancy 10% -> 0; total clamps to 0
	// offer cap rate 7 + 1 = 8 -> 6000 / 0.08 = 75000
	res, err := NewEngine().Analyze(MultiFamily, f)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.SniperScore != 0 {
		t.Fatalf("score = %d, want 0", res.SniperScore)
	}
	if res.RiskLevel != RiskRed || res.ExitStrategy != "Pass" {
		t.Fatalf("got %s/%s, want Red/Pass", res.RiskLevel, res.ExitStrategy)
	}
	if res.RecommendedOffer != 75000.00 {
		t.Fatalf("offer = %v, want 75000.00", res.RecommendedOffer)
	}
}

func TestMultiFamilyCapRateDefaults(t *testing.T) {
	f := multiFamilyFields()
	delete(f, "cap_rate")
	// annualNOI = 67200, value = 67200/0.07 = 960000
	// base = (960000-900000)/960000*60 = 3.75; +25 +10 -> round(38.75) = 39 Red
	res, err := NewEngine().Analyze(MultiFamily, f)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if res.SniperScore != 39 || res.RiskLevel != RiskRed {
		t.Fatalf("got %d/%s, want 39/Red", res.SniperScore, res.RiskLevel)
	}
}

func TestMultiFamilyStabilizationPenalty(t *testing.T) {
	cases := []struct {
		months float64
		want   int
	}{
		{0, 47},
		{6, 47},
		{7, 42},
		{13, 37},
	}
	for _, c := range cases {
		f := multiFamilyFields()
		f["stabilization_time"] = c.months
		res, err := NewEngine().Analyze(MultiFamily, f)
		if err != nil {
			t.Fatalf("analyze(stabilization=%v): %v", c.months, err)
		}
		if res.SniperScore != c.want {
			t.Fatalf("stabilization=%v: score = %d, want %d", c.months, res.SniperScore, c.want)
		}
	}
}

func TestMultiFamilyDivisionGuards(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(Fields)
		quantity string
	}{
		{"zero units", func(f Fields) { f["unit_count"] = 0 }, "unit_count"},
		{"zero cap rate", func(f Fields) { f["cap_rate"] = 0 }, "cap_rate"},
		{"zero property value", func(f Fields) {
			// NOI of exactly zero: rent roll covers expenses with no surplus
			f["monthly_rent_roll"] = 4000
			f["expenses"] = 4000
			f["vacancy_rate"] = 0
		}, "property value"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := multiFamilyFields()
			c.mutate(f)
			_, err := NewEngine().Analyze(MultiFamily, f)
			var dz *DivisionByZeroError
			if !errors.As(err, &dz) {
				t.Fatalf("expected DivisionByZeroError, got %v", err)
			}
			if dz.Quantity != c.quantity {
				t.Fatalf("quantity = %q, want %q", dz.Quantity, c.quantity)
			}
		})
	}
}
