package matching

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"propmatch-backend/internal/domain"
	"propmatch-backend/internal/pkg/validation"
	"propmatch-backend/internal/repository"
	"propmatch-backend/internal/scoring"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Indexer enumerates eligible candidates for a user, scores them, and
// atomically replaces the stored match set. Recompute is idempotent and
// deterministic: unchanged profiles always yield the same set.
type Indexer struct {
	Profiles repository.ProfileRepository
	Matches  repository.MatchRepository
	Engine   *scoring.Engine

	// locks sequences recompute and alert diffing per user (two dashboard
	// tabs may trigger the same recompute concurrently).
	locks sync.Map
}

// Result carries the new set, the previous committed snapshot for alert
// diffing, and the count of candidates skipped for incomplete profiles.
type Result struct {
	Matches  []domain.MatchScore
	Previous []domain.MatchScore
	Skipped  int
}

// Lock acquires the per-user recompute mutex. The caller must invoke the
// returned release func; alert diffing happens inside the same critical
// section so it always compares against the prior committed snapshot.
func (ix *Indexer) Lock(userID uuid.UUID) func() {
	v, _ := ix.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Recompute rebuilds the match set for a user. Unknown users and users
// without a profile yield an empty result, never an error. The caller is
// expected to hold the per-user lock (the engine facade does).
func (ix *Indexer) Recompute(ctx context.Context, userID uuid.UUID) (*Result, error) {
	user, err := ix.Profiles.GetUser(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}
	if user.Role == domain.RoleSeller {
		return ix.recomputeSeller(ctx, user)
	}
	return ix.recomputeBuyer(ctx, user)
}

func (ix *Indexer) recomputeBuyer(ctx context.Context, user *domain.User) (*Result, error) {
	buyer, err := ix.Profiles.GetBuyerProfile(ctx, user.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	prev, err := ix.Matches.ListForBuyer(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	res := &Result{Previous: prev}
	if err := validation.BuyerProfile(buyer); err != nil {
		log.Warn().Err(err).Str("user_id", user.UserID.String()).Msg("Skipping recompute for incomplete buyer profile")
		res.Skipped++
		return res, ix.Matches.ReplaceForBuyer(ctx, user.UserID, nil)
	}

	sellers, err := ix.Profiles.ListActiveSellerProfiles(ctx)
	if err != nil {
		return nil, err
	}
	offPlatform, err := ix.Profiles.ListOffPlatformByStates(ctx, buyer.Locations.States())
	if err != nil {
		return nil, err
	}

	var matches []domain.MatchScore
	for i := range sellers {
		s := &sellers[i]
		if s.UserID == user.UserID {
			continue
		}
		if err := validation.SellerProfile(s); err != nil {
			res.Skipped++
			continue
		}
		if !buyer.PropertyTypes.Accepts(s.PropertyType) {
			continue
		}
		if m, ok := ix.Engine.Score(buyer, scoring.ProspectFromSeller(s)); ok {
			matches = append(matches, *m)
		}
	}
	for i := range offPlatform {
		o := &offPlatform[i]
		if err := validation.OffPlatformSeller(o); err != nil {
			res.Skipped++
			continue
		}
		if !buyer.PropertyTypes.Accepts(o.PropertyType) {
			continue
		}
		if m, ok := ix.Engine.Score(buyer, scoring.ProspectFromOffPlatform(o)); ok {
			matches = append(matches, *m)
		}
	}

	rank(matches)
	if err := ix.Matches.ReplaceForBuyer(ctx, user.UserID, matches); err != nil {
		return nil, err
	}
	res.Matches = matches
	log.Info().Str("user_id", user.UserID.String()).Int("matches", len(matches)).Int("skipped", res.Skipped).Msg("Recomputed buyer matches")
	return res, nil
}

func (ix *Indexer) recomputeSeller(ctx context.Context, user *domain.User) (*Result, error) {
	seller, err := ix.Profiles.GetSellerProfile(ctx, user.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return &Result{}, nil
	}
	if err != nil {
		return nil, err
	}

	prev, err := ix.Matches.ListForSeller(ctx, user.UserID)
	if err != nil {
		return nil, err
	}

	res := &Result{Previous: prev}
	if seller.ListingStatus == domain.ListingSold {
		return res, ix.Matches.ReplaceForSeller(ctx, user.UserID, nil)
	}
	if err := validation.SellerProfile(seller); err != nil {
		log.Warn().Err(err).Str("user_id", user.UserID.String()).Msg("Skipping recompute for incomplete seller profile")
		res.Skipped++
		return res, ix.Matches.ReplaceForSeller(ctx, user.UserID, nil)
	}

	buyers, err := ix.Profiles.ListBuyerProfiles(ctx)
	if err != nil {
		return nil, err
	}

	prospect := scoring.ProspectFromSeller(seller)
	var matches []domain.MatchScore
	for i := range buyers {
		b := &buyers[i]
		if b.UserID == user.UserID {
			continue
		}
		if err := validation.BuyerProfile(b); err != nil {
			res.Skipped++
			continue
		}
		if !b.PropertyTypes.Accepts(seller.PropertyType) {
			continue
		}
		if m, ok := ix.Engine.Score(b, prospect); ok {
			matches = append(matches, *m)
		}
	}

	rank(matches)
	if err := ix.Matches.ReplaceForSeller(ctx, user.UserID, matches); err != nil {
		return nil, err
	}
	res.Matches = matches
	log.Info().Str("user_id", user.UserID.String()).Int("matches", len(matches)).Int("skipped", res.Skipped).Msg("Recomputed seller matches")
	return res, nil
}

// rank applies the presentation ordering contract (overall desc, closing
// desc, urgency desc, insertion order stable) and stamps positions and
// timestamps.
func rank(matches []domain.MatchScore) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].OverallScore != matches[j].OverallScore {
			return matches[i].OverallScore > matches[j].OverallScore
		}
		if matches[i].ClosingProbabilityScore != matches[j].ClosingProbabilityScore {
			return matches[i].ClosingProbabilityScore > matches[j].ClosingProbabilityScore
		}
		return matches[i].UrgencyScore > matches[j].UrgencyScore
	})
	now := time.Now()
	for i := range matches {
		matches[i].Position = i
		if matches[i].MatchID == uuid.Nil {
			matches[i].MatchID = uuid.New()
		}
		matches[i].CreatedAt = now
		matches[i].UpdatedAt = now
	}
}
