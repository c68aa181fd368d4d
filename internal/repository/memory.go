package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MemoryStore implements all three repositories in memory. Used by tests and
// by bootstrap when no DATABASE_URL is configured. Replace swaps an immutable
// snapshot under the lock, so readers never see a partial set.
type MemoryStore struct {
	mu          sync.RWMutex
	users       map[uuid.UUID]domain.User
	buyers      map[uuid.UUID]domain.BuyerProfile // keyed by user ID
	sellers     map[uuid.UUID]domain.SellerProfile
	offPlatform map[uuid.UUID]domain.OffPlatformSeller
	byBuyer     map[uuid.UUID][]domain.MatchScore
	alerts      map[uuid.UUID]domain.MatchAlert
	alertOrder  []uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[uuid.UUID]domain.User),
		buyers:      make(map[uuid.UUID]domain.BuyerProfile),
		sellers:     make(map[uuid.UUID]domain.SellerProfile),
		offPlatform: make(map[uuid.UUID]domain.OffPlatformSeller),
		byBuyer:     make(map[uuid.UUID][]domain.MatchScore),
		alerts:      make(map[uuid.UUID]domain.MatchAlert),
	}
}

func (s *MemoryStore) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) SaveUser(ctx context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = time.Now()
	s.users[u.UserID] = *u
	return nil
}

func (s *MemoryStore) GetBuyerProfile(ctx context.Context, userID uuid.UUID) (*domain.BuyerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.buyers[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) ListBuyerProfiles(ctx context.Context) ([]domain.BuyerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.BuyerProfile, 0, len(s.buyers))
	for _, p := range s.buyers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	return out, nil
}

func (s *MemoryStore) SaveBuyerProfile(ctx context.Context, p *domain.BuyerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ProfileID == uuid.Nil {
		p.ProfileID = uuid.New()
	}
	if prev, ok := s.buyers[p.UserID]; ok {
		p.ProfileID = prev.ProfileID
		p.CreatedAt = prev.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.buyers[p.UserID] = *p
	return nil
}

func (s *MemoryStore) GetSellerProfile(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.sellers[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *MemoryStore) ListSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sellerSlice(func(domain.SellerProfile) bool { return true }), nil
}

func (s *MemoryStore) ListActiveSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sellerSlice(func(p domain.SellerProfile) bool {
		return p.ListingStatus != domain.ListingSold
	}), nil
}

func (s *MemoryStore) sellerSlice(keep func(domain.SellerProfile) bool) []domain.SellerProfile {
	out := make([]domain.SellerProfile, 0, len(s.sellers))
	for _, p := range s.sellers {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID.String() < out[j].UserID.String() })
	return out
}

func (s *MemoryStore) SaveSellerProfile(ctx context.Context, p *domain.SellerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ProfileID == uuid.Nil {
		p.ProfileID = uuid.New()
	}
	if prev, ok := s.sellers[p.UserID]; ok {
		p.ProfileID = prev.ProfileID
		p.CreatedAt = prev.CreatedAt
	} else if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.UpdatedAt = time.Now()
	s.sellers[p.UserID] = *p
	return nil
}

func (s *MemoryStore) GetOffPlatformSeller(ctx context.Context, sellerID uuid.UUID) (*domain.OffPlatformSeller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.offPlatform[sellerID]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s *MemoryStore) ListOffPlatformByStates(ctx context.Context, states []string) ([]domain.OffPlatformSeller, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]struct{}, len(states))
	for _, st := range states {
		wanted[strings.ToLower(st)] = struct{}{}
	}
	var out []domain.OffPlatformSeller
	for _, o := range s.offPlatform {
		if o.ListingStatus == domain.ListingSold {
			continue
		}
		if _, ok := wanted[strings.ToLower(strings.TrimSpace(o.LocationState))]; ok {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SellerID.String() < out[j].SellerID.String() })
	return out, nil
}

func (s *MemoryStore) SaveOffPlatformSeller(ctx context.Context, o *domain.OffPlatformSeller) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.SellerID == uuid.Nil {
		o.SellerID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	o.UpdatedAt = time.Now()
	s.offPlatform[o.SellerID] = *o
	return nil
}

// --- MatchRepository ---

func (s *MemoryStore) ReplaceForBuyer(ctx context.Context, buyerID uuid.UUID, matches []domain.MatchScore) error {
	snapshot := validSnapshot(matches)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byBuyer[buyerID] = snapshot
	return nil
}

func (s *MemoryStore) ReplaceForSeller(ctx context.Context, sellerID uuid.UUID, matches []domain.MatchScore) error {
	snapshot := validSnapshot(matches)
	s.mu.Lock()
	defer s.mu.Unlock()
	// Remove this seller's pairs from every buyer's set, then splice the new
	// snapshot back in per buyer, keeping each buyer's ranking order.
	for buyerID, set := range s.byBuyer {
		kept := set[:0:0]
		for _, m := range set {
			if m.SellerID == nil || *m.SellerID != sellerID {
				kept = append(kept, m)
			}
		}
		for p := range kept {
			kept[p].Position = p
		}
		s.byBuyer[buyerID] = kept
	}
	for _, m := range snapshot {
		s.byBuyer[m.BuyerID] = insertRanked(s.byBuyer[m.BuyerID], m)
	}
	return nil
}

func validSnapshot(matches []domain.MatchScore) []domain.MatchScore {
	out := make([]domain.MatchScore, 0, len(matches))
	for _, m := range matches {
		if m.MatchID == uuid.Nil {
			m.MatchID = uuid.New()
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		m.UpdatedAt = time.Now()
		if err := m.Validate(); err != nil {
			log.Error().Err(err).Str("buyer_id", m.BuyerID.String()).Msg("Rejecting invalid match score")
			continue
		}
		out = append(out, m)
	}
	return out
}

// insertRanked keeps the presentation ordering (overall desc, closing desc,
// urgency desc, stable) when splicing a seller-side recompute into a buyer's
// stored set.
func insertRanked(set []domain.MatchScore, m domain.MatchScore) []domain.MatchScore {
	i := sort.Search(len(set), func(i int) bool {
		a, b := set[i], m
		if a.OverallScore != b.OverallScore {
			return a.OverallScore < b.OverallScore
		}
		if a.ClosingProbabilityScore != b.ClosingProbabilityScore {
			return a.ClosingProbabilityScore < b.ClosingProbabilityScore
		}
		return a.UrgencyScore < b.UrgencyScore
	})
	set = append(set, domain.MatchScore{})
	copy(set[i+1:], set[i:])
	set[i] = m
	for p := range set {
		set[p].Position = p
	}
	return set
}

func (s *MemoryStore) ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.MatchScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.byBuyer[buyerID]
	out := make([]domain.MatchScore, len(set))
	copy(out, set)
	return out, nil
}

func (s *MemoryStore) ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]domain.MatchScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MatchScore
	for _, set := range s.byBuyer {
		for _, m := range set {
			if m.SellerID != nil && *m.SellerID == sellerID {
				out = append(out, m)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OverallScore != out[j].OverallScore {
			return out[i].OverallScore > out[j].OverallScore
		}
		if out[i].ClosingProbabilityScore != out[j].ClosingProbabilityScore {
			return out[i].ClosingProbabilityScore > out[j].ClosingProbabilityScore
		}
		return out[i].UrgencyScore > out[j].UrgencyScore
	})
	return out, nil
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]domain.MatchScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MatchScore
	for _, set := range s.byBuyer {
		out = append(out, set...)
	}
	return out, nil
}

// --- AlertRepository ---

func (s *MemoryStore) Create(ctx context.Context, a *domain.MatchAlert) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.AlertID == uuid.Nil {
		a.AlertID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.alerts[a.AlertID] = *a
	s.alertOrder = append(s.alertOrder, a.AlertID)
	return nil
}

func (s *MemoryStore) ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.MatchAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MatchAlert
	for i := len(s.alertOrder) - 1; i >= 0; i-- {
		a := s.alerts[s.alertOrder[i]]
		if a.UserID == userID && !a.Read {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryStore) MarkRead(ctx context.Context, alertID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.alerts[alertID]
	if !ok {
		return ErrNotFound
	}
	a.Read = true
	s.alerts[alertID] = a
	return nil
}
