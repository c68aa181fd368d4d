package engine

import (
	"context"
	"errors"
	"time"

	"propmatch-backend/internal/access"
	"propmatch-backend/internal/alerts"
	"propmatch-backend/internal/analytics"
	"propmatch-backend/internal/domain"
	"propmatch-backend/internal/matching"
	"propmatch-backend/internal/repository"

	"github.com/google/uuid"
)

// Service is the in-process API surface: recompute, ranked reads, access
// gating, alerting, and the owner dashboard. All collaborators are injected;
// there is no ambient global state.
type Service struct {
	Profiles  repository.ProfileRepository
	Matches   repository.MatchRepository
	Indexer   *matching.Indexer
	Access    *access.Controller
	Alerts    *alerts.Generator
	Analytics *analytics.Service

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewService(profiles repository.ProfileRepository, matches repository.MatchRepository,
	indexer *matching.Indexer, ctrl *access.Controller, gen *alerts.Generator, an *analytics.Service) *Service {
	return &Service{
		Profiles:  profiles,
		Matches:   matches,
		Indexer:   indexer,
		Access:    ctrl,
		Alerts:    gen,
		Analytics: an,
		Now:       time.Now,
	}
}

// ComputeMatches recomputes the user's match set and diffs alerts against the
// prior committed snapshot, all under the per-user lock so the two steps are
// sequenced, never interleaved. Explicit and idempotent: callers (dashboard
// mounts, profile saves) invoke it as a command, not as a rendering side
// effect.
func (s *Service) ComputeMatches(ctx context.Context, userID uuid.UUID) ([]domain.MatchScore, error) {
	unlock := s.Indexer.Lock(userID)
	defer unlock()

	res, err := s.Indexer.Recompute(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Alerts.OnRecompute(ctx, userID, res.Previous, res.Matches); err != nil {
		return nil, err
	}
	return res.Matches, nil
}

// GetMatchesForUser returns the stored ranked set. Unknown users get an empty
// slice, never an error.
func (s *Service) GetMatchesForUser(ctx context.Context, userID uuid.UUID) ([]domain.MatchScore, error) {
	user, err := s.Profiles.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return []domain.MatchScore{}, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSeller {
		return s.Matches.ListForSeller(ctx, userID)
	}
	return s.Matches.ListForBuyer(ctx, userID)
}

// GetVisibleMatches returns the plan-gated, redacted dashboard payload.
func (s *Service) GetVisibleMatches(ctx context.Context, userID uuid.UUID) (access.Gated, error) {
	user, err := s.Profiles.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return access.Gated{Matches: []access.MatchView{}}, nil
	}
	if err != nil {
		return access.Gated{}, err
	}

	matches, err := s.GetMatchesForUser(ctx, userID)
	if err != nil {
		return access.Gated{}, err
	}
	views := make([]access.MatchView, 0, len(matches))
	for i := range matches {
		views = append(views, s.buildView(ctx, user, &matches[i]))
	}
	return s.Access.Visible(user, views, s.Now()), nil
}

func (s *Service) buildView(ctx context.Context, viewer *domain.User, m *domain.MatchScore) access.MatchView {
	v := access.MatchView{
		MatchID:                 m.MatchID,
		OverallScore:            m.OverallScore,
		FinancialScore:          m.FinancialScore,
		UrgencyScore:            m.UrgencyScore,
		MotivationScore:         m.MotivationScore,
		ClosingProbabilityScore: m.ClosingProbabilityScore,
		KeyAlignmentFactors:     m.KeyAlignmentFactors,
	}
	if viewer.Role == domain.RoleSeller {
		v.Counterparty = s.buyerView(ctx, m.BuyerID)
		return v
	}
	if m.OffPlatform() {
		v.Counterparty = s.offPlatformView(ctx, *m.OffPlatformSellerID)
		return v
	}
	v.Counterparty = s.sellerView(ctx, *m.SellerID)
	return v
}

func (s *Service) buyerView(ctx context.Context, buyerID uuid.UUID) access.CounterpartyView {
	cv := access.CounterpartyView{ID: buyerID}
	if u, err := s.Profiles.GetUser(ctx, buyerID); err == nil {
		cv.Name = u.Fullname
		cv.Email = u.Email
	}
	if p, err := s.Profiles.GetBuyerProfile(ctx, buyerID); err == nil {
		if loc, ok := p.PrimaryLocation(); ok {
			cv.City = loc.City
			cv.State = loc.State
		}
	}
	return cv
}

func (s *Service) sellerView(ctx context.Context, sellerID uuid.UUID) access.CounterpartyView {
	cv := access.CounterpartyView{ID: sellerID}
	if u, err := s.Profiles.GetUser(ctx, sellerID); err == nil {
		cv.Name = u.Fullname
		cv.Email = u.Email
	}
	if p, err := s.Profiles.GetSellerProfile(ctx, sellerID); err == nil {
		cv.City = p.LocationCity
		cv.State = p.LocationState
		cv.PropertyType = p.PropertyType
		cv.AskingPrice = p.AskingPrice
		if p.Address != nil {
			cv.Address = *p.Address
		}
	}
	return cv
}

func (s *Service) offPlatformView(ctx context.Context, sellerID uuid.UUID) access.CounterpartyView {
	cv := access.CounterpartyView{ID: sellerID, OffPlatform: true}
	if o, err := s.Profiles.GetOffPlatformSeller(ctx, sellerID); err == nil {
		if o.ContactName != nil {
			cv.Name = *o.ContactName
		}
		if o.ContactEmail != nil {
			cv.Email = *o.ContactEmail
		}
		if o.Address != nil {
			cv.Address = *o.Address
		}
		cv.City = o.LocationCity
		cv.State = o.LocationState
		cv.PropertyType = o.PropertyType
		cv.AskingPrice = o.AskingPrice
	}
	return cv
}

// CanAccessMatches reports plan entitlement beyond the free preview.
func (s *Service) CanAccessMatches(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.Profiles.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.Access.CanAccess(user, s.Now()), nil
}

// IsTrialExpired is evaluated fresh on every call, never cached.
func (s *Service) IsTrialExpired(ctx context.Context, userID uuid.UUID) (bool, error) {
	user, err := s.Profiles.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.TrialExpired(s.Now()), nil
}

// GetUnreadAlerts returns the user's unread match alerts, newest first.
func (s *Service) GetUnreadAlerts(ctx context.Context, userID uuid.UUID) ([]domain.MatchAlert, error) {
	return s.Alerts.Unread(ctx, userID)
}

// MarkAlertRead is monotonic.
func (s *Service) MarkAlertRead(ctx context.Context, alertID uuid.UUID) error {
	return s.Alerts.MarkRead(ctx, alertID)
}

// GetOwnerDashboardMetrics computes (or serves from cache) the operator KPIs.
func (s *Service) GetOwnerDashboardMetrics(ctx context.Context) (*analytics.OwnerDashboardMetrics, error) {
	return s.Analytics.OwnerMetrics(ctx)
}
