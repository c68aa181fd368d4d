package access

import (
	"time"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
)

// CounterpartyView is the displayable side of a match. Redaction happens
// here, in the data layer: a locked entry never carries name, email, or
// exact address out of the engine, so a client cannot leak them.
type CounterpartyView struct {
	ID           uuid.UUID           `json:"id"`
	OffPlatform  bool                `json:"off_platform"`
	Name         string              `json:"name,omitempty"`
	Email        string              `json:"email,omitempty"`
	Address      string              `json:"address,omitempty"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	PropertyType domain.PropertyType `json:"property_type"`
	AskingPrice  float64             `json:"asking_price"`
}

// MatchView pairs a stored MatchScore with its counterparty for display.
type MatchView struct {
	MatchID                 uuid.UUID         `json:"match_id"`
	OverallScore            int               `json:"overall_score"`
	FinancialScore          int               `json:"financial_score"`
	UrgencyScore            int               `json:"urgency_score"`
	MotivationScore         int               `json:"motivation_score"`
	ClosingProbabilityScore int               `json:"closing_probability_score"`
	KeyAlignmentFactors     domain.StringList `json:"key_alignment_factors"`
	Locked                  bool              `json:"locked"`
	Counterparty            CounterpartyView  `json:"counterparty"`
}

// Gated is the plan-filtered view of a ranked match list. Locked entries stay
// in the slice (the UI renders the locked overlay from index UnlockedCount on)
// but with identifying fields removed.
type Gated struct {
	Matches       []MatchView `json:"matches"`
	UnlockedCount int         `json:"unlocked_count"`
	LockedCount   int         `json:"locked_count"`
}

// Config holds the per-tier unlock limits.
type Config struct {
	TrialUnlocked int
	BasicUnlocked int
}

func DefaultConfig() Config {
	return Config{TrialUnlocked: 1, BasicUnlocked: 5}
}

// Controller applies subscription gating at read time.
type Controller struct {
	Cfg Config
}

func NewController(cfg Config) *Controller {
	return &Controller{Cfg: cfg}
}

// UnlockCount returns how many of n ranked matches the user may see in full.
// Sellers see everything. Trial accounts keep the single free preview even
// after the trial expires; deeper matches need an active plan.
func (c *Controller) UnlockCount(user *domain.User, n int, now time.Time) int {
	if user == nil {
		return 0
	}
	if user.Role == domain.RoleSeller || user.Role == domain.RoleOwner {
		return n
	}
	switch user.SubscriptionStatus {
	case domain.SubscriptionActive:
		if user.Plan == domain.PlanPremium {
			return n
		}
		return min(n, c.Cfg.BasicUnlocked)
	case domain.SubscriptionTrial:
		return min(n, c.Cfg.TrialUnlocked)
	default:
		return 0
	}
}

// Visible gates a ranked view list. Ordering is preserved; entries past the
// unlock boundary are redacted in place.
func (c *Controller) Visible(user *domain.User, views []MatchView, now time.Time) Gated {
	unlocked := c.UnlockCount(user, len(views), now)
	out := make([]MatchView, len(views))
	copy(out, views)
	for i := range out {
		if i < unlocked {
			out[i].Locked = false
			continue
		}
		out[i].Locked = true
		out[i].Counterparty.Name = ""
		out[i].Counterparty.Email = ""
		out[i].Counterparty.Address = ""
	}
	return Gated{
		Matches:       out,
		UnlockedCount: unlocked,
		LockedCount:   len(views) - unlocked,
	}
}

// CanAccess reports whether the user is entitled to browse matches beyond the
// free preview. Evaluated against the clock on every call: trial state can
// flip mid-session.
func (c *Controller) CanAccess(user *domain.User, now time.Time) bool {
	if user == nil {
		return false
	}
	if user.Role == domain.RoleSeller || user.Role == domain.RoleOwner {
		return true
	}
	switch user.SubscriptionStatus {
	case domain.SubscriptionActive:
		return true
	case domain.SubscriptionTrial:
		return !user.TrialExpired(now)
	default:
		return false
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
