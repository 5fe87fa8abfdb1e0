package scoring

import "unicode/utf8"

// commercialStrategy values income property off NOI at the market cap rate,
// with location, vacancy and lease-strength adjustments.
type commercialStrategy struct{}

func (commercialStrategy) Score(f Fields) (Result, error) {
	noi, err := f.requireNumber("noi")
	if err != nil {
		return Result{}, err
	}
	marketCapRate, err := f.requireNumber("market_cap_rate")
	if err != nil {
		return Result{}, err
	}
	vacancy, err := f.requireNumber("vacancy_rate")
	if err != nil {
		return Result{}, err
	}
	purchase, err := f.requireNumber("purchase_price")
	if err != nil {
		return Result{}, err
	}
	location, err := f.optionalNumber("location_score", 5)
	if err != nil {
		return Result{}, err
	}
	if location < 1 || location > 10 {
		return Result{}, &InvalidFieldError{Field: "location_score", Reason: "must be between 1 and 10"}
	}
	leaseTerms := f.text("lease_terms")

	if marketCapRate == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "market_cap_rate"}
	}
	propertyValue := noi / (marketCapRate / 100)
	if propertyValue == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "property value"}
	}

	base := (propertyValue - purchase) / propertyValue * 60
	locationAdj := (location - 5) * 3

	vacancyScore := 0.0
	switch {
	case vacancy == 0:
		vacancyScore = 15
	case vacancy < 5:
		vacancyScore = 10
	case vacancy < 10:
		vacancyScore = 5
	case vacancy > 20:
		vacancyScore = -15
	case vacancy > 15:
		vacancyScore = -10
	}

	leaseBonus := 0.0
	if utf8.RuneCountInString(leaseTerms) > 50 {
		leaseBonus = 10
	}

	score := clampScore(base + locationAdj + vacancyScore + leaseBonus)
	risk, exit := tier(score, "Long-term Hold", "Reposition & Hold")

	offerCapRate := marketCapRate
	switch {
	case score > 70:
		offerCapRate -= 0.5
	case score < 40:
		offerCapRate += 1.0
	}
	if offerCapRate == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "offer cap rate"}
	}

	return Result{
		SniperScore:      score,
		RiskLevel:        risk,
		ExitStrategy:     exit,
		RecommendedOffer: roundCents(noi / (offerCapRate / 100)),
	}, nil
}
