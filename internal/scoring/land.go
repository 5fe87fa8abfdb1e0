package scoring

// landStrategy scores raw land on the purchase discount to market value,
// adjusted for seller motivation, access, utilities and environmental risk.
type landStrategy struct{}

func (landStrategy) Score(f Fields) (Result, error) {
	purchase, err := f.requireNumber("purchase_price")
	if err != nil {
		return Result{}, err
	}
	market, err := f.requireNumber("market_value")
	if err != nil {
		return Result{}, err
	}
	if market == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "market_value"}
	}
	motivation, err := f.requireEnum("seller_motivation", "Hot", "Warm", "Cold", "Neutral")
	if err != nil {
		return Result{}, err
	}
	roadAccess, err := f.requireEnum("road_access", "Yes", "No")
	if err != nil {
		return Result{}, err
	}
	utilities, err := f.requireEnum("utilities", "Yes", "No")
	if err != nil {
		return Result{}, err
	}
	envRisk, err := f.requireEnum("environmental_risk", "None", "Low", "Medium", "High")
	if err != nil {
		return Result{}, err
	}

	base := (market - purchase) / market * 100

	adj := 0.0
	switch motivation {
	case "Hot":
		adj += 15
	case "Warm":
		adj += 7
	}
	if roadAccess == "Yes" {
		adj += 10
	} else {
		adj -= 15
	}
	if utilities == "Yes" {
		adj += 10
	} else {
		adj -= 10
	}
	switch envRisk {
	case "High":
		adj -= 20
	case "Medium":
		adj -= 10
	case "Low":
		adj -= 5
	}

	score := clampScore(base + adj)
	risk, exit := tier(score, "Flip", "Hold or Wholesale")

	return Result{
		SniperScore:      score,
		RiskLevel:        risk,
		ExitStrategy:     exit,
		RecommendedOffer: roundCents(market * 0.7),
	}, nil
}
