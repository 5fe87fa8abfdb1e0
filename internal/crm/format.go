// Package crm formats saved deals for third-party CRM systems and pushes
// them over HTTP. Field mapping only; no scoring logic lives here.
package crm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/re-hustle/rehustle-api/internal/deal"
	"github.com/re-hustle/rehustle-api/internal/scoring"
)

// Supported CRM targets. "None" disables sync.
const (
	GoHighLevel = "GoHighLevel"
	Podio       = "Podio"
	Notion      = "Notion"
	REIReply    = "REI Reply"
)

// Formatter maps a deal record onto the payload shape each CRM expects.
type Formatter struct {
	NotionDatabaseID string
}

func (f Formatter) Format(d deal.Deal, crmType string) (map[string]any, error) {
	common := map[string]any{
		"dealId":           d.ID,
		"timestamp":        d.CreatedAt,
		"sniperScore":      d.SniperScore,
		"riskLevel":        string(d.RiskLevel),
		"recommendedOffer": d.RecommendedOffer,
		"exitStrategy":     d.ExitStrategy,
		"propertyType":     string(d.PropertyType),
		"address":          d.Address,
		"notes":            d.Notes,
	}

	switch crmType {
	case GoHighLevel:
		// flat structure with custom fields
		out := map[string]any{
			"property_address":  d.Address,
			"deal_score":        d.SniperScore,
			"risk_level":        string(d.RiskLevel),
			"recommended_offer": d.RecommendedOffer,
			"exit_strategy":     d.ExitStrategy,
			"property_type":     string(d.PropertyType),
		}
		for k, v := range common {
			out[k] = v
		}
		for k, v := range propertyFields(d) {
			out[k] = v
		}
		return out, nil

	case Podio:
		// nested fields structure
		return map[string]any{
			"fields": map[string]any{
				"title":       fmt.Sprintf("%s Deal: %s", d.PropertyType, addressOr(d, "Unnamed Property")),
				"description": d.Notes,
				"sniper_score": map[string]any{
					"value": d.SniperScore,
				},
				"property_details": map[string]any{
					"address":       d.Address,
					"property_type": string(d.PropertyType),
					"risk_level":    string(d.RiskLevel),
					"exit_strategy": d.ExitStrategy,
				},
				"financial_details": map[string]any{
					"recommended_offer": d.RecommendedOffer,
				},
				"property_attributes": propertyFields(d),
			},
		}, nil

	case Notion:
		return map[string]any{
			"parent": map[string]any{"database_id": f.NotionDatabaseID},
			"properties": map[string]any{
				"Name": map[string]any{
					"title": []any{richText(fmt.Sprintf("%s Deal: %s", d.PropertyType, addressOr(d, "Unnamed Property")))},
				},
				"Address": map[string]any{
					"rich_text": []any{richText(addressOr(d, "Unnamed Property"))},
				},
				"Property Type": map[string]any{
					"select": map[string]any{"name": string(d.PropertyType)},
				},
				"Sniper Score": map[string]any{"number": d.SniperScore},
				"Risk Level": map[string]any{
					"select": map[string]any{"name": string(d.RiskLevel)},
				},
				"Recommended Offer": map[string]any{"number": d.RecommendedOffer},
				"Exit Strategy": map[string]any{
					"rich_text": []any{richText(d.ExitStrategy)},
				},
				"Analysis Date": map[string]any{
					"date": map[string]any{"start": time.Unix(d.CreatedAt, 0).UTC().Format(time.RFC3339)},
				},
				"Notes": map[string]any{
					"rich_text": []any{richText(d.Notes)},
				},
			},
		}, nil

	case REIReply:
		return map[string]any{
			"contact": map[string]any{
				"address":       d.Address,
				"property_type": string(d.PropertyType),
			},
			"property": propertyFields(d),
			"analysis": map[string]any{
				"score":             d.SniperScore,
				"risk_level":        string(d.RiskLevel),
				"recommended_offer": d.RecommendedOffer,
				"exit_strategy":     d.ExitStrategy,
			},
			"notes": d.Notes,
		}, nil

	default:
		return common, nil
	}
}

// propertyFields extracts the type-specific attributes from the raw
// submission for CRM consumption.
func propertyFields(d deal.Deal) map[string]any {
	switch d.PropertyType {
	case scoring.Land:
		return map[string]any{
			"purchase_price":     fieldNumber(d.Fields, "purchase_price"),
			"market_value":       fieldNumber(d.Fields, "market_value"),
			"seller_motivation":  fieldString(d.Fields, "seller_motivation"),
			"road_access":        fieldString(d.Fields, "road_access"),
			"utilities":          fieldString(d.Fields, "utilities"),
			"environmental_risk": fieldString(d.Fields, "environmental_risk"),
			"zoning_notes":       fieldString(d.Fields, "zoning_notes"),
		}
	case scoring.Residential:
		return map[string]any{
			"arv":                fieldNumber(d.Fields, "arv"),
			"repair_costs":       fieldNumber(d.Fields, "repair_costs"),
			"comps":              fieldString(d.Fields, "comps"),
			"distress_signals":   fieldString(d.Fields, "distress_signals"),
			"days_on_market":     fieldNumber(d.Fields, "days_on_market"),
			"neighborhood_score": fieldNumber(d.Fields, "neighborhood_score"),
		}
	case scoring.MultiFamily:
		return map[string]any{
			"unit_count":         fieldNumber(d.Fields, "unit_count"),
			"monthly_rent_roll":  fieldNumber(d.Fields, "monthly_rent_roll"),
			"expenses":           fieldNumber(d.Fields, "expenses"),
			"cap_rate":           fieldNumber(d.Fields, "cap_rate"),
			"vacancy_rate":       fieldNumber(d.Fields, "vacancy_rate"),
			"stabilization_time": fieldNumber(d.Fields, "stabilization_time"),
			"purchase_price":     fieldNumber(d.Fields, "purchase_price"),
		}
	case scoring.Commercial:
		return map[string]any{
			"noi":             fieldNumber(d.Fields, "noi"),
			"market_cap_rate": fieldNumber(d.Fields, "market_cap_rate"),
			"vacancy_rate":    fieldNumber(d.Fields, "vacancy_rate"),
			"location_score":  fieldNumber(d.Fields, "location_score"),
			"lease_terms":     fieldString(d.Fields, "lease_terms"),
			"purchase_price":  fieldNumber(d.Fields, "purchase_price"),
		}
	default:
		return map[string]any{}
	}
}

func addressOr(d deal.Deal, def string) string {
	if strings.TrimSpace(d.Address) == "" {
		return def
	}
	return d.Address
}

func richText(s string) map[string]any {
	return map[string]any{"text": map[string]any{"content": s}}
}

func fieldNumber(f scoring.Fields, key string) float64 {
	switch v := f[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func fieldString(f scoring.Fields, key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}
