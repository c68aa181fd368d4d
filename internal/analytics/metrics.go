package analytics

import (
	"fmt"
	"math"
	"time"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
)

// Recommendation strings surfaced on the owner dashboard.
const (
	RecommendScaleSellerMarketing = "scale seller marketing"
	RecommendPauseSellerMarketing = "pause seller marketing"
)

// Config holds the marketplace-health thresholds.
type Config struct {
	ActiveWindow       time.Duration
	LiquidityThreshold float64
	OfferScore         int // match score counted as an "offer"
	CloseScore         int // match score counted as a likely close
	InquiryFloor       int // healthy funnel floors, whole percent
	OfferFloor         int
	CloseFloor         int
	CompletionFloor    int
}

func DefaultConfig() Config {
	return Config{
		ActiveWindow:       30 * 24 * time.Hour,
		LiquidityThreshold: 2.0,
		OfferScore:         70,
		CloseScore:         85,
		InquiryFloor:       25,
		OfferFloor:         15,
		CloseFloor:         10,
		CompletionFloor:    60,
	}
}

// Input is the full corpus the aggregation reads. Compute has no side
// effects and no clock of its own; Now is part of the input so the rolling
// window is deterministic in tests.
type Input struct {
	Users          []domain.User
	BuyerProfiles  []domain.BuyerProfile
	SellerProfiles []domain.SellerProfile
	Matches        []domain.MatchScore
	Now            time.Time
}

// OwnerDashboardMetrics is the operator-facing KPI set.
type OwnerDashboardMetrics struct {
	ActiveSellers            int                 `json:"active_sellers"`
	ActiveProfessionalBuyers int                 `json:"active_professional_buyers"`
	SellerBuyerRatio         string              `json:"seller_buyer_ratio"`
	InquiryRate              int                 `json:"inquiry_rate"`
	OfferRate                int                 `json:"offer_rate"`
	CloseRate                int                 `json:"close_rate"`
	AvgOffersPerPro          float64             `json:"avg_offers_per_pro"`
	LiquidityScore           float64             `json:"liquidity_score"`
	Recommendation           string              `json:"recommendation"`
	ProfileCompletionRate    int                 `json:"profile_completion_rate"`
	DropOffRate              int                 `json:"drop_off_rate"`
	Alerts                   []domain.OwnerAlert `json:"alerts"`
	GeneratedAt              time.Time           `json:"generated_at"`
}

// Compute aggregates the corpus into dashboard metrics. Pure: same input,
// same output.
func Compute(in Input, cfg Config) OwnerDashboardMetrics {
	users := make(map[uuid.UUID]*domain.User, len(in.Users))
	for i := range in.Users {
		users[in.Users[i].UserID] = &in.Users[i]
	}

	// Active sellers: completed profile + account active inside the window.
	var activeSellerIDs []uuid.UUID
	for i := range in.SellerProfiles {
		u, ok := users[in.SellerProfiles[i].UserID]
		if !ok {
			continue
		}
		if u.ActiveWithin(cfg.ActiveWindow, in.Now) {
			activeSellerIDs = append(activeSellerIDs, u.UserID)
		}
	}

	// Professional buyers additionally need a live subscription: a trial that
	// has not expired, or an active plan.
	var activeProIDs []uuid.UUID
	for i := range in.BuyerProfiles {
		u, ok := users[in.BuyerProfiles[i].UserID]
		if !ok || !u.Role.BuysProperties() {
			continue
		}
		if !u.ActiveWithin(cfg.ActiveWindow, in.Now) {
			continue
		}
		switch u.SubscriptionStatus {
		case domain.SubscriptionActive:
		case domain.SubscriptionTrial:
			if u.TrialExpired(in.Now) {
				continue
			}
		default:
			continue
		}
		activeProIDs = append(activeProIDs, u.UserID)
	}

	activeSellers := len(activeSellerIDs)
	activePros := len(activeProIDs)

	m := OwnerDashboardMetrics{
		ActiveSellers:            activeSellers,
		ActiveProfessionalBuyers: activePros,
		GeneratedAt:              in.Now,
	}

	if activePros == 0 {
		m.SellerBuyerRatio = "∞"
	} else {
		m.SellerBuyerRatio = fmt.Sprintf("%.2f", float64(activeSellers)/float64(activePros))
	}

	// Funnel rates: percentage of active sellers with at least one match
	// clearing each threshold.
	bySellerBest := make(map[uuid.UUID]int)
	byBuyerOffers := make(map[uuid.UUID]int)
	for i := range in.Matches {
		mt := &in.Matches[i]
		if mt.SellerID != nil {
			if mt.OverallScore > bySellerBest[*mt.SellerID] {
				bySellerBest[*mt.SellerID] = mt.OverallScore
			}
		}
		if mt.OverallScore >= cfg.OfferScore {
			byBuyerOffers[mt.BuyerID]++
		}
	}
	var inquiries, offers, closes int
	for _, id := range activeSellerIDs {
		best, ok := bySellerBest[id]
		if !ok {
			continue
		}
		inquiries++
		if best >= cfg.OfferScore {
			offers++
		}
		if best >= cfg.CloseScore {
			closes++
		}
	}
	m.InquiryRate = wholePercent(inquiries, activeSellers)
	m.OfferRate = wholePercent(offers, activeSellers)
	m.CloseRate = wholePercent(closes, activeSellers)

	// Liquidity: buyer absorption capacity against seller supply.
	if activePros > 0 {
		total := 0
		for _, id := range activeProIDs {
			total += byBuyerOffers[id]
		}
		m.AvgOffersPerPro = round2(float64(total) / float64(activePros))
	}
	if activeSellers > 0 {
		m.LiquidityScore = round2(float64(activePros) * m.AvgOffersPerPro / float64(activeSellers))
		if m.LiquidityScore < cfg.LiquidityThreshold {
			m.Recommendation = RecommendPauseSellerMarketing
		} else {
			m.Recommendation = RecommendScaleSellerMarketing
		}
	} else {
		// No seller supply at all: buyers have nothing to absorb.
		m.Recommendation = RecommendScaleSellerMarketing
	}

	// Completion funnel: registered sellers vs completed profiles.
	registeredSellers := 0
	for i := range in.Users {
		if in.Users[i].Role == domain.RoleSeller {
			registeredSellers++
		}
	}
	completed := len(in.SellerProfiles)
	if registeredSellers > 0 {
		m.ProfileCompletionRate = wholePercent(completed, registeredSellers)
		m.DropOffRate = 100 - m.ProfileCompletionRate
	}

	m.Alerts = imbalanceAlerts(&m, cfg, registeredSellers)
	return m
}

func imbalanceAlerts(m *OwnerDashboardMetrics, cfg Config, registeredSellers int) []domain.OwnerAlert {
	var out []domain.OwnerAlert
	critical := func(msg string) {
		out = append(out, domain.OwnerAlert{ID: uuid.New(), Severity: domain.SeverityCritical, Message: msg, CreatedAt: m.GeneratedAt})
	}
	warning := func(msg string) {
		out = append(out, domain.OwnerAlert{ID: uuid.New(), Severity: domain.SeverityWarning, Message: msg, CreatedAt: m.GeneratedAt})
	}

	if m.ActiveProfessionalBuyers == 0 {
		critical("No active professional buyers: every seller is unserved")
	} else if float64(m.ActiveSellers)/float64(m.ActiveProfessionalBuyers) > 2 {
		critical(fmt.Sprintf("Seller/buyer imbalance: ratio %s exceeds 2.0", m.SellerBuyerRatio))
	}
	if m.ActiveSellers > 0 {
		if m.InquiryRate < cfg.InquiryFloor {
			warning(fmt.Sprintf("Inquiry rate %d%% below healthy floor of %d%%", m.InquiryRate, cfg.InquiryFloor))
		}
		if m.OfferRate < cfg.OfferFloor {
			warning(fmt.Sprintf("Offer rate %d%% below healthy floor of %d%%", m.OfferRate, cfg.OfferFloor))
		}
		if m.CloseRate < cfg.CloseFloor {
			warning(fmt.Sprintf("Close rate %d%% below healthy floor of %d%%", m.CloseRate, cfg.CloseFloor))
		}
	}
	if registeredSellers > 0 && m.ProfileCompletionRate < cfg.CompletionFloor {
		warning(fmt.Sprintf("Seller profile completion %d%% below %d%%", m.ProfileCompletionRate, cfg.CompletionFloor))
	}
	return out
}

func wholePercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
