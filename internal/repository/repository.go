package repository

import (
	"context"
	"errors"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
)

// ErrNotFound is returned for missing single-record lookups. List lookups for
// unknown IDs return empty slices instead, so callers always get a usable
// empty state.
var ErrNotFound = errors.New("record not found")

// ProfileRepository is the engine's view of the profile/persistence layer.
// Injected explicitly; the engine keeps no ambient global store.
type ProfileRepository interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	SaveUser(ctx context.Context, u *domain.User) error

	GetBuyerProfile(ctx context.Context, userID uuid.UUID) (*domain.BuyerProfile, error)
	ListBuyerProfiles(ctx context.Context) ([]domain.BuyerProfile, error)
	// SaveBuyerProfile replaces the whole profile keyed by user (onboarding
	// saves are never partial).
	SaveBuyerProfile(ctx context.Context, p *domain.BuyerProfile) error

	GetSellerProfile(ctx context.Context, userID uuid.UUID) (*domain.SellerProfile, error)
	ListSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error)
	// ListActiveSellerProfiles excludes sold listings.
	ListActiveSellerProfiles(ctx context.Context) ([]domain.SellerProfile, error)
	SaveSellerProfile(ctx context.Context, p *domain.SellerProfile) error

	GetOffPlatformSeller(ctx context.Context, sellerID uuid.UUID) (*domain.OffPlatformSeller, error)
	// ListOffPlatformByStates is the state-level pre-index: recompute never
	// scans the full off-platform catalog.
	ListOffPlatformByStates(ctx context.Context, states []string) ([]domain.OffPlatformSeller, error)
	SaveOffPlatformSeller(ctx context.Context, o *domain.OffPlatformSeller) error
}

// MatchRepository stores ranked match sets. Replace operations are atomic: a
// concurrent reader sees either the old complete set or the new one, never a
// half-written set.
type MatchRepository interface {
	ReplaceForBuyer(ctx context.Context, buyerID uuid.UUID, matches []domain.MatchScore) error
	ReplaceForSeller(ctx context.Context, sellerID uuid.UUID, matches []domain.MatchScore) error
	ListForBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.MatchScore, error)
	ListForSeller(ctx context.Context, sellerID uuid.UUID) ([]domain.MatchScore, error)
	ListAll(ctx context.Context) ([]domain.MatchScore, error)
}

// AlertRepository persists match alerts with monotonic read state.
type AlertRepository interface {
	Create(ctx context.Context, a *domain.MatchAlert) error
	ListUnread(ctx context.Context, userID uuid.UUID) ([]domain.MatchAlert, error)
	// MarkRead is idempotent; an alert never reverts to unread.
	MarkRead(ctx context.Context, alertID uuid.UUID) error
}
