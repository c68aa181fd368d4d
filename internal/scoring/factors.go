package scoring

import (
	"fmt"

	"propmatch-backend/internal/domain"
)

const maxAlignmentFactors = 5

// alignmentFactors evaluates a fixed, ordered rule list and keeps the first
// five hits. Order is the display priority, so it is part of the contract.
func alignmentFactors(buyer *domain.BuyerProfile, p Prospect,
	financial, urgency, motivation, location int) domain.StringList {
	type rule struct {
		hit  bool
		text string
	}
	rules := []rule{
		{buyer.FinancingMethod == domain.FinancingCash && financial >= 90,
			"Cash buyer - fast close"},
		{motivation >= 80,
			fmt.Sprintf("Seller highly motivated (%s)", motivationLabel(p.Motivation))},
		{buyer.PurchaseUrgency >= 7 && p.Urgency >= 7,
			"Both ready to transact now"},
		{buyer.WithinBudget(p.AskingPrice),
			"Within budget range"},
		{location == 100,
			"Preferred market match"},
		{p.Flexibility == domain.FlexibilityVeryFlexible || p.Flexibility == domain.FlexibilityModerate,
			"Seller open to price negotiation"},
		{buyer.FinancingMethod == domain.FinancingHardMoney &&
			(p.Condition == domain.ConditionNeedsWork || p.Condition == domain.ConditionDistressed),
			"Rehab financing fits property condition"},
		{buyer.IsInvestor && p.Condition == domain.ConditionDistressed,
			"Distressed asset for investor strategy"},
	}

	out := make(domain.StringList, 0, maxAlignmentFactors)
	for _, r := range rules {
		if !r.hit {
			continue
		}
		out = append(out, r.text)
		if len(out) == maxAlignmentFactors {
			break
		}
	}
	return out
}

func motivationLabel(m domain.SellingMotivation) string {
	switch m {
	case domain.MotivationJobRelocation:
		return "job relocation"
	case domain.MotivationForeclosure:
		return "foreclosure"
	case domain.MotivationDivorce:
		return "divorce"
	case domain.MotivationInherited:
		return "inherited property"
	case domain.MotivationDownsizing:
		return "downsizing"
	case domain.MotivationUpgrade:
		return "upgrading"
	case domain.MotivationInvestment:
		return "investment exit"
	default:
		return string(m)
	}
}
