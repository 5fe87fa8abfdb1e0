package scoring

// multiFamilyStrategy values apartment deals off stabilized NOI at the asking
// cap rate, then layers cash-flow-per-unit, vacancy and stabilization-time
// adjustments on top of the equity spread.
type multiFamilyStrategy struct{}

func (multiFamilyStrategy) Score(f Fields) (Result, error) {
	units, err := f.requireNumber("unit_count")
	if err != nil {
		return Result{}, err
	}
	rentRoll, err := f.requireNumber("monthly_rent_roll")
	if err != nil {
		return Result{}, err
	}
	expenses, err := f.requireNumber("expenses")
	if err != nil {
		return Result{}, err
	}
	purchase, err := f.requireNumber("purchase_price")
	if err != nil {
		return Result{}, err
	}
	capRate, err := f.optionalNumber("cap_rate", 7.0)
	if err != nil {
		return Result{}, err
	}
	vacancy, err := f.optionalNumber("vacancy_rate", 0)
	if err != nil {
		return Result{}, err
	}
	stabilization, err := f.optionalNumber("stabilization_time", 0)
	if err != nil {
		return Result{}, err
	}
	if units == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "unit_count"}
	}
	if capRate == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "cap_rate"}
	}

	cashFlow := rentRoll - expenses
	annualNOI := (rentRoll*(1-vacancy/100) - expenses) * 12
	propertyValue := annualNOI / (capRate / 100)
	if propertyValue == 0 {
		return Result{}, &DivisionByZeroError{Quantity: "property value"}
	}

	base := (propertyValue - purchase) / propertyValue * 60

	perUnit := cashFlow / units
	cashFlowScore := 0.0
	switch {
	case perUnit >= 300:
		cashFlowScore = 25
	case perUnit >= 200:
		cashFlowScore = 20
	case perUnit >= 100:
		cashFlowScore = 15
	case perUnit > 0:
		cashFlowScore = 10
	}

	vacancyScore := 0.0
	switch {
	case vacancy < 5:
		vacancyScore = 10
	case vacancy < 8:
		vacancyScore = 5
	case vacancy > 15:
		vacancyScore = -10
	}

	stabilizationScore := 0.0
	switch {
	case stabilization > 12:
		stabilizationScore = -10
	case stabilization > 6:
		stabilizationScore = -5
	}

	score := clampScore(base + cashFlowScore + vacancyScore + stabilizationScore)
	risk, exit := tier(score, "Buy & Hold", "Value-Add Opportunity")

	offerCapRate := capRate
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
		RecommendedOffer: roundCents(annualNOI / (offerCapRate / 100)),
	}, nil
}
