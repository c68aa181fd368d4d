package analytics

import (
	"context"
	"encoding/json"
	"time"

	"propmatch-backend/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const metricsCacheKey = "owner:dashboard:metrics"

// Service loads the corpus from the repositories and computes the owner
// dashboard on demand. When a Redis client is configured the computed
// metrics are cached for a short TTL; the aggregation itself has no
// persisted side effects.
type Service struct {
	Profiles repository.ProfileRepository
	Matches  repository.MatchRepository
	Rdb      *redis.Client
	Cfg      Config
	CacheTTL time.Duration

	// Now is swappable in tests; defaults to time.Now.
	Now func() time.Time
}

func NewService(profiles repository.ProfileRepository, matches repository.MatchRepository, rdb *redis.Client, cfg Config, cacheTTL time.Duration) *Service {
	return &Service{
		Profiles: profiles,
		Matches:  matches,
		Rdb:      rdb,
		Cfg:      cfg,
		CacheTTL: cacheTTL,
		Now:      time.Now,
	}
}

// OwnerMetrics returns the dashboard, from cache when fresh.
func (s *Service) OwnerMetrics(ctx context.Context) (*OwnerDashboardMetrics, error) {
	if s.Rdb != nil && s.CacheTTL > 0 {
		if raw, err := s.Rdb.Get(ctx, metricsCacheKey).Bytes(); err == nil {
			var cached OwnerDashboardMetrics
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	users, err := s.Profiles.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	buyers, err := s.Profiles.ListBuyerProfiles(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.Profiles.ListSellerProfiles(ctx)
	if err != nil {
		return nil, err
	}
	matches, err := s.Matches.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	m := Compute(Input{
		Users:          users,
		BuyerProfiles:  buyers,
		SellerProfiles: sellers,
		Matches:        matches,
		Now:            s.Now(),
	}, s.Cfg)

	if s.Rdb != nil && s.CacheTTL > 0 {
		if raw, err := json.Marshal(&m); err == nil {
			if err := s.Rdb.Set(ctx, metricsCacheKey, raw, s.CacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("Failed to cache owner metrics")
			}
		}
	}
	return &m, nil
}
