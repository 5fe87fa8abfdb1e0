package crm

import (
	"testing"

	"github.com/re-hustle/rehustle-api/internal/deal"
	"github.com/re-hustle/rehustle-api/internal/scoring"
)

func sampleDeal() deal.Deal {
	return deal.Deal{
		ID:           "deal-1",
		UserID:       "u1",
		PropertyType: scoring.Land,
		Address:      "123 Dirt Rd",
		Notes:        "call seller back",
		Fields: scoring.Fields{
			"purchase_price":     float64(30000),
			"market_value":       "60000",
			"seller_motivation":  "Hot",
			"road_access":        "Yes",
			"utilities":          "Yes",
			"environmental_risk": "None",
		},
		SniperScore:      85,
		RiskLevel:        scoring.RiskGreen,
		ExitStrategy:     "Flip",
		RecommendedOffer: 42000,
		CreatedAt:        1700000000,
	}
}

func TestFormatGoHighLevelIsFlat(t *testing.T) {
	out, err := Formatter{}.Format(sampleDeal(), GoHighLevel)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out["deal_score"] != 85 {
		t.Fatalf("deal_score = %v, want 85", out["deal_score"])
	}
	if out["property_address"] != "123 Dirt Rd" {
		t.Fatalf("property_address = %v", out["property_address"])
	}
	if out["exit_strategy"] != "Flip" {
		t.Fatalf("exit_strategy = %v", out["exit_strategy"])
	}
	// property-specific fields are merged in, with string numbers coerced
	if out["market_value"] != float64(60000) {
		t.Fatalf("market_value = %v (%T), want 60000", out["market_value"], out["market_value"])
	}
	if out["seller_motivation"] != "Hot" {
		t.Fatalf("seller_motivation = %v", out["seller_motivation"])
	}
}

func TestFormatPodioIsNested(t *testing.T) {
	out, err := Formatter{}.Format(sampleDeal(), Podio)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	fields, ok := out["fields"].(map[string]any)
	if !ok {
		t.Fatalf("missing fields envelope: %v", out)
	}
	if fields["title"] != "Land Deal: 123 Dirt Rd" {
		t.Fatalf("title = %v", fields["title"])
	}
	score, ok := fields["sniper_score"].(map[string]any)
	if !ok || score["value"] != 85 {
		t.Fatalf("sniper_score = %v", fields["sniper_score"])
	}
}

func TestFormatNotionCarriesDatabaseID(t *testing.T) {
	out, err := Formatter{NotionDatabaseID: "db-42"}.Format(sampleDeal(), Notion)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	parent, ok := out["parent"].(map[string]any)
	if !ok || parent["database_id"] != "db-42" {
		t.Fatalf("parent = %v", out["parent"])
	}
	props, ok := out["properties"].(map[string]any)
	if !ok {
		t.Fatalf("missing properties: %v", out)
	}
	scoreProp, ok := props["Sniper Score"].(map[string]any)
	if !ok || scoreProp["number"] != 85 {
		t.Fatalf("Sniper Score = %v", props["Sniper Score"])
	}
}

func TestPropertyFieldsPerType(t *testing.T) {
	d := sampleDeal()
	d.PropertyType = scoring.MultiFamily
	d.Fields = scoring.Fields{
		"unit_count":        float64(10),
		"monthly_rent_roll": float64(10000),
		"expenses":          float64(4000),
		"cap_rate":          "6",
		"vacancy_rate":      float64(4),
		"purchase_price":    float64(900000),
	}
	got := propertyFields(d)
	if got["unit_count"] != float64(10) || got["cap_rate"] != float64(6) {
		t.Fatalf("multi-family fields = %v", got)
	}
	if _, present := got["stabilization_time"]; !present {
		t.Fatal("stabilization_time should be mapped even when absent")
	}

	d.PropertyType = scoring.PropertyType("Warehouse")
	if got := propertyFields(d); len(got) != 0 {
		t.Fatalf("unknown type should map no fields, got %v", got)
	}
}

func TestFormatFallsBackToCommonProperties(t *testing.T) {
	out, err := Formatter{}.Format(sampleDeal(), "SomethingElse")
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if out["sniperScore"] != 85 || out["propertyType"] != "Land" {
		t.Fatalf("common payload = %v", out)
	}
}
