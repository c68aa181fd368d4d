package scoring

import "propmatch-backend/internal/domain"

// Weights defines the overall-score blend. They sum to 1.0: location is a
// hard filter whose partial credit (same state only) is folded into the
// overall score rather than displayed as a fifth bar.
type Weights struct {
	Financial  float64 `json:"financial"`
	Urgency    float64 `json:"urgency"`
	Location   float64 `json:"location"`
	Motivation float64 `json:"motivation"`
	Closing    float64 `json:"closing"`
}

// DefaultWeights returns the documented 30/20/20/15/15 blend.
func DefaultWeights() Weights {
	return Weights{
		Financial:  0.30,
		Urgency:    0.20,
		Location:   0.20,
		Motivation: 0.15,
		Closing:    0.15,
	}
}

// Config collects the weights and adjustment tables the engine scores with.
type Config struct {
	Weights Weights

	// MotivationBase is the per-motivation starting score.
	MotivationBase map[domain.SellingMotivation]int

	// FlexibilityBonus is added to the motivation score.
	FlexibilityBonus map[domain.PriceFlexibility]int

	// FinancingAdjust tweaks the financial score for the buyer's financing
	// method against the seller's price flexibility. Cash is neutral
	// everywhere; financed buyers lose ground against firm sellers.
	FinancingAdjust map[domain.FinancingMethod]map[domain.PriceFlexibility]int

	// RehabFinancingBonus is added to the financial score when a hard-money
	// buyer meets a needs_work/distressed property (typical rehab loan fit).
	RehabFinancingBonus int
}

// DefaultConfig returns the production scoring tables.
func DefaultConfig() Config {
	financedRow := map[domain.PriceFlexibility]int{
		domain.FlexibilityFirm:         -10,
		domain.FlexibilitySlight:       -5,
		domain.FlexibilityModerate:     0,
		domain.FlexibilityVeryFlexible: 5,
	}
	neutralRow := map[domain.PriceFlexibility]int{
		domain.FlexibilityFirm:         0,
		domain.FlexibilitySlight:       0,
		domain.FlexibilityModerate:     0,
		domain.FlexibilityVeryFlexible: 0,
	}
	sellerFinancingRow := map[domain.PriceFlexibility]int{
		domain.FlexibilityFirm:         -5,
		domain.FlexibilitySlight:       0,
		domain.FlexibilityModerate:     5,
		domain.FlexibilityVeryFlexible: 15,
	}
	return Config{
		Weights: DefaultWeights(),
		MotivationBase: map[domain.SellingMotivation]int{
			domain.MotivationForeclosure:   90,
			domain.MotivationDivorce:       85,
			domain.MotivationJobRelocation: 80,
			domain.MotivationInherited:     75,
			domain.MotivationDownsizing:    70,
			domain.MotivationUpgrade:       65,
			domain.MotivationInvestment:    60,
			domain.MotivationOther:         50,
		},
		FlexibilityBonus: map[domain.PriceFlexibility]int{
			domain.FlexibilityFirm:         0,
			domain.FlexibilitySlight:       5,
			domain.FlexibilityModerate:     10,
			domain.FlexibilityVeryFlexible: 20,
		},
		FinancingAdjust: map[domain.FinancingMethod]map[domain.PriceFlexibility]int{
			domain.FinancingCash:            neutralRow,
			domain.FinancingConventional:    financedRow,
			domain.FinancingFHA:             financedRow,
			domain.FinancingVA:              financedRow,
			domain.FinancingHardMoney:       neutralRow,
			domain.FinancingSellerFinancing: sellerFinancingRow,
		},
		RehabFinancingBonus: 10,
	}
}
