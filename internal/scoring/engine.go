package scoring

import (
	"math"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
)

// Prospect is the seller-side input to scoring, flattened so registered and
// off-platform candidates score identically.
type Prospect struct {
	ID          uuid.UUID
	OffPlatform bool
	Location    domain.Location
	Type        domain.PropertyType
	AskingPrice float64
	Motivation  domain.SellingMotivation
	Urgency     int
	Flexibility domain.PriceFlexibility
	Condition   domain.PropertyCondition
}

// ProspectFromSeller projects a registered seller profile. The prospect ID is
// the seller's user ID, which is what MatchScore.SellerID references.
func ProspectFromSeller(s *domain.SellerProfile) Prospect {
	return Prospect{
		ID:          s.UserID,
		Location:    s.Location(),
		Type:        s.PropertyType,
		AskingPrice: s.AskingPrice,
		Motivation:  s.SellingMotivation,
		Urgency:     s.UrgencyLevel,
		Flexibility: s.PriceFlexibility,
		Condition:   s.PropertyCondition,
	}
}

// ProspectFromOffPlatform projects an ingested candidate.
func ProspectFromOffPlatform(o *domain.OffPlatformSeller) Prospect {
	return Prospect{
		ID:          o.SellerID,
		OffPlatform: true,
		Location:    o.Location(),
		Type:        o.PropertyType,
		AskingPrice: o.AskingPrice,
		Motivation:  o.SellingMotivation,
		Urgency:     o.UrgencyLevel,
		Flexibility: o.PriceFlexibility,
		Condition:   o.PropertyCondition,
	}
}

// Engine computes compatibility scores. It is pure: no I/O, no clock, no
// state beyond the configured tables, so recomputing is always idempotent.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Score evaluates a buyer against a candidate. ok is false when the pair is
// excluded: no location overlap, or overall score below the 40-point floor.
func (e *Engine) Score(buyer *domain.BuyerProfile, p Prospect) (*domain.MatchScore, bool) {
	location, ok := e.locationScore(buyer, p)
	if !ok {
		return nil, false
	}

	financial := e.financialScore(buyer, p)
	urgency := e.urgencyScore(buyer.PurchaseUrgency, p.Urgency)
	motivation := e.motivationScore(p)
	closing := e.closingProbabilityScore(financial, urgency, motivation, buyer.RenovationTolerance, p.Condition)

	w := e.cfg.Weights
	overall := clampScore(int(math.Round(
		w.Financial*float64(financial) +
			w.Urgency*float64(urgency) +
			w.Location*float64(location) +
			w.Motivation*float64(motivation) +
			w.Closing*float64(closing))))

	if overall < domain.MinOverallScore {
		return nil, false
	}

	m := &domain.MatchScore{
		BuyerID:                 buyer.UserID,
		OverallScore:            overall,
		FinancialScore:          financial,
		UrgencyScore:            urgency,
		MotivationScore:         motivation,
		ClosingProbabilityScore: closing,
		KeyAlignmentFactors:     alignmentFactors(buyer, p, financial, urgency, motivation, location),
	}
	id := p.ID
	if p.OffPlatform {
		m.OffPlatformSellerID = &id
	} else {
		m.SellerID = &id
	}
	return m, true
}

// locationScore is the hard filter: 100 on a city+state match with any
// preference, 60 on a state-only match, excluded otherwise.
func (e *Engine) locationScore(buyer *domain.BuyerProfile, p Prospect) (int, bool) {
	sameState := false
	for _, pref := range buyer.Locations {
		if pref.SameCityState(p.Location) {
			return 100, true
		}
		if pref.SameState(p.Location) {
			sameState = true
		}
	}
	if sameState {
		return 60, true
	}
	return 0, false
}

func (e *Engine) financialScore(buyer *domain.BuyerProfile, p Prospect) int {
	score := 100.0
	if p.AskingPrice > buyer.BudgetMax {
		over := (p.AskingPrice - buyer.BudgetMax) / buyer.BudgetMax * 150
		score = 100 - math.Min(100, over)
	}
	// Below budgetMin is simply affordable: no penalty.

	if row, ok := e.cfg.FinancingAdjust[buyer.FinancingMethod]; ok {
		score += float64(row[p.Flexibility])
	}
	if buyer.FinancingMethod == domain.FinancingHardMoney &&
		(p.Condition == domain.ConditionNeedsWork || p.Condition == domain.ConditionDistressed) {
		score += float64(e.cfg.RehabFinancingBonus)
	}
	return clampScore(int(math.Round(score)))
}

func (e *Engine) urgencyScore(buyerUrgency, sellerUrgency int) int {
	diff := buyerUrgency - sellerUrgency
	if diff < 0 {
		diff = -diff
	}
	score := 100 - diff*8
	if buyerUrgency >= 7 && sellerUrgency >= 7 {
		score += 10
	}
	return clampScore(score)
}

func (e *Engine) motivationScore(p Prospect) int {
	base, ok := e.cfg.MotivationBase[p.Motivation]
	if !ok {
		base = e.cfg.MotivationBase[domain.MotivationOther]
	}
	return clampScore(base + p.Urgency*3 + e.cfg.FlexibilityBonus[p.Flexibility])
}

func (e *Engine) closingProbabilityScore(financial, urgency, motivation int,
	tolerance domain.RenovationTolerance, condition domain.PropertyCondition) int {
	score := 0.4*float64(financial) + 0.3*float64(urgency) + 0.3*float64(motivation)
	if tolerance != domain.ToleranceAny {
		gap := condition.RequiredTolerance() - tolerance.Level()
		switch {
		case gap >= 2:
			score -= 15
		case gap == 1:
			score -= 5
		}
	}
	return clampScore(int(math.Round(score)))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
