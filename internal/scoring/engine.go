// Package scoring computes the Sniper Score for a submitted deal. It is a
// pure dispatcher: one strategy per property type, no I/O, no shared state.
package scoring

import (
	"fmt"
	"math"
)

// PropertyType is the closed set of deal categories the engine understands.
type PropertyType string

const (
	Land        PropertyType = "Land"
	Residential PropertyType = "Residential"
	MultiFamily PropertyType = "Multi-Family"
	Commercial  PropertyType = "Commercial"
)

// ParsePropertyType maps a raw request tag onto a known PropertyType.
func ParsePropertyType(s string) (PropertyType, error) {
	switch normalizeToken(s) {
	case "land":
		return Land, nil
	case "residential":
		return Residential, nil
	case "multifamily":
		return MultiFamily, nil
	case "commercial":
		return Commercial, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPropertyType, s)
	}
}

type RiskLevel string

const (
	RiskGreen  RiskLevel = "Green"
	RiskYellow RiskLevel = "Yellow"
	RiskRed    RiskLevel = "Red"
)

// Result is the outcome of analyzing one deal.
type Result struct {
	PropertyType     PropertyType `json:"property_type"`
	SniperScore      int          `json:"sniper_score"`
	RiskLevel        RiskLevel    `json:"risk_level"`
	ExitStrategy     string       `json:"exit_strategy"`
	RecommendedOffer float64      `json:"recommended_offer"`
}

// Strategy scores a single property type from its raw field values.
type Strategy interface {
	Score(f Fields) (Result, error)
}

// Engine routes by property type to the correct Strategy.
type Engine struct {
	strategies map[PropertyType]Strategy
}

// NewEngine installs the built-in per-type strategies.
func NewEngine() *Engine {
	return &Engine{
		strategies: map[PropertyType]Strategy{
			Land:        landStrategy{},
			Residential: residentialStrategy{},
			MultiFamily: multiFamilyStrategy{},
			Commercial:  commercialStrategy{},
		},
	}
}

// Analyze scores the deal with the strategy matching pt. The call is pure:
// identical inputs always produce identical results.
func (e *Engine) Analyze(pt PropertyType, f Fields) (Result, error) {
	s, ok := e.strategies[pt]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedPropertyType, pt)
	}
	res, err := s.Score(f)
	if err != nil {
		return Result{}, err
	}
	res.PropertyType = pt
	return res, nil
}

// clampScore rounds the raw score and pins it to [0,100].
func clampScore(raw float64) int {
	n := int(math.Round(raw))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// tier maps a clamped score to its risk level and per-type exit strategy.
// >70 is Green, 40..70 inclusive is Yellow, <40 is Red.
func tier(score int, green, yellow string) (RiskLevel, string) {
	switch {
	case score > 70:
		return RiskGreen, green
	case score >= 40:
		return RiskYellow, yellow
	default:
		return RiskRed, "Pass"
	}
}

// roundCents rounds a dollar amount to two decimals, flooring at zero so a
// recommended offer can never go negative.
func roundCents(amount float64) float64 {
	if amount < 0 {
		return 0
	}
	return math.Round(amount*100) / 100
}
