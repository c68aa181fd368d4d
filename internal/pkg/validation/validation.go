package validation

import (
	"errors"
	"fmt"

	"propmatch-backend/internal/domain"
)

// Profiles missing required fields are skipped during enumeration with a
// diagnostic count; they never fail a recompute batch.
var ErrIncompleteProfile = errors.New("incomplete profile")

// BuyerProfile checks the fields the scoring engine depends on.
func BuyerProfile(b *domain.BuyerProfile) error {
	if b == nil {
		return ErrIncompleteProfile
	}
	if b.BudgetMin <= 0 || b.BudgetMax <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrIncompleteProfile)
	}
	if b.BudgetMin > b.BudgetMax {
		return fmt.Errorf("%w: budget min exceeds max", ErrIncompleteProfile)
	}
	if len(b.Locations) == 0 {
		return fmt.Errorf("%w: at least one location preference required", ErrIncompleteProfile)
	}
	if b.PurchaseUrgency < 1 || b.PurchaseUrgency > 10 {
		return fmt.Errorf("%w: purchase urgency outside [1,10]", ErrIncompleteProfile)
	}
	if !b.FinancingMethod.Valid() {
		return fmt.Errorf("%w: unknown financing method %q", ErrIncompleteProfile, b.FinancingMethod)
	}
	if !b.RenovationTolerance.Valid() {
		return fmt.Errorf("%w: unknown renovation tolerance %q", ErrIncompleteProfile, b.RenovationTolerance)
	}
	return nil
}

// SellerProfile checks a registered seller's listing fields.
func SellerProfile(s *domain.SellerProfile) error {
	if s == nil {
		return ErrIncompleteProfile
	}
	return sellerFields(s.AskingPrice, s.LocationCity, s.LocationState, s.UrgencyLevel,
		s.SellingMotivation, s.PriceFlexibility, s.PropertyCondition)
}

// OffPlatformSeller checks an ingested candidate the same way as a
// registered seller.
func OffPlatformSeller(o *domain.OffPlatformSeller) error {
	if o == nil {
		return ErrIncompleteProfile
	}
	return sellerFields(o.AskingPrice, o.LocationCity, o.LocationState, o.UrgencyLevel,
		o.SellingMotivation, o.PriceFlexibility, o.PropertyCondition)
}

func sellerFields(price float64, city, state string, urgency int,
	motivation domain.SellingMotivation, flex domain.PriceFlexibility, cond domain.PropertyCondition) error {
	if price <= 0 {
		return fmt.Errorf("%w: asking price must be positive", ErrIncompleteProfile)
	}
	if city == "" || state == "" {
		return fmt.Errorf("%w: location city and state required", ErrIncompleteProfile)
	}
	if urgency < 1 || urgency > 10 {
		return fmt.Errorf("%w: urgency level outside [1,10]", ErrIncompleteProfile)
	}
	if !motivation.Valid() {
		return fmt.Errorf("%w: unknown selling motivation %q", ErrIncompleteProfile, motivation)
	}
	if !flex.Valid() {
		return fmt.Errorf("%w: unknown price flexibility %q", ErrIncompleteProfile, flex)
	}
	if !cond.Valid() {
		return fmt.Errorf("%w: unknown property condition %q", ErrIncompleteProfile, cond)
	}
	return nil
}
