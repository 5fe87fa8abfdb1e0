package scoring

// residentialStrategy scores single-family flips off the spread between ARV
// and the maximum allowable offer (ARV*0.7 - repairs), adjusted for market
// staleness, distress signals and neighborhood quality.
type residentialStrategy struct{}

func (residentialStrategy) Score(f Fields) (Result, error) {
	arv, err := f.requireNumber("arv")
	if err != nil {
		return Result{}, err
	}
	repairs, err := f.requireNumber("repair_costs")
	if err != nil {
		return Result{}, err
	}
	if arv == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "arv"}
	}
	daysOnMarket, err := f.optionalNumber("days_on_market", 0)
	if err != nil {
		return Result{}, err
	}
	neighborhood, err := f.optionalNumber("neighborhood_score", 5)
	if err != nil {
		return Result{}, err
	}
	if neighborhood < 1 || neighborhood > 10 {
		return Result{}, &InvalidFieldError{Field: "neighborhood_score", Reason: "must be between 1 and 10"}
	}
	distress, err := f.requireEnum("distress_signals",
		"None", "Tax Lien", "Code Violation", "Pre-Foreclosure", "Probate", "Multiple")
	if err != nil {
		return Result{}, err
	}

	mao := arv*0.7 - repairs
	base := (arv - repairs - mao) / arv * 70

	adj := 0.0
	switch {
	case daysOnMarket > 120:
		adj -= 10
	case daysOnMarket > 90:
		adj -= 7
	case daysOnMarket > 60:
		adj -= 5
	case daysOnMarket > 30:
		adj -= 2
	}
	switch distress {
	case "Multiple":
		adj += 15
	case "Pre-Foreclosure", "Tax Lien":
		adj += 10
	case "Code Violation", "Probate":
		adj += 5
	}
	adj += neighborhood - 5

	score := clampScore(base + adj)
	risk, exit := tier(score, "Fix & Flip", "BRRRR or Wholesale")

	return Result{
		SniperScore:      score,
		RiskLevel:        risk,
		ExitStrategy:     exit,
		RecommendedOffer: roundCents(mao),
	}, nil
}
