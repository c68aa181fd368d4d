package bootstrap

import (
	"time"

	"propmatch-backend/internal/access"
	"propmatch-backend/internal/alerts"
	"propmatch-backend/internal/analytics"
	"propmatch-backend/internal/config"
	"propmatch-backend/internal/engine"
	"propmatch-backend/internal/infrastructure/database"
	"propmatch-backend/internal/matching"
	"propmatch-backend/internal/repository"
	"propmatch-backend/internal/scoring"

	"github.com/redis/go-redis/v9"
)

// New builds a fully wired engine service from config. With DATABASE_URL set
// the repositories run on Postgres; otherwise everything lives in memory
// (tests, local experiments). REDIS_URL enables the owner-metrics cache.
func New() (*engine.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig is New with an explicit config, for callers that load their
// own environment.
func NewWithConfig(cfg *config.Config) (*engine.Service, error) {
	var (
		profiles repository.ProfileRepository
		matches  repository.MatchRepository
		alertsRp repository.AlertRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		profiles = &repository.GormProfiles{DB: db}
		matches = &repository.GormMatches{DB: db}
		alertsRp = &repository.GormAlerts{DB: db}
	} else {
		store := repository.NewMemoryStore()
		profiles, matches, alertsRp = store, store, store
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opt)
	}

	indexer := &matching.Indexer{
		Profiles: profiles,
		Matches:  matches,
		Engine:   scoring.NewEngine(scoring.DefaultConfig()),
	}
	ctrl := access.NewController(access.Config{
		TrialUnlocked: cfg.TrialUnlocked,
		BasicUnlocked: cfg.BasicUnlocked,
	})
	gen := alerts.NewGenerator(alertsRp)
	anCfg := analytics.Config{
		ActiveWindow:       time.Duration(cfg.ActiveWindowDays) * 24 * time.Hour,
		LiquidityThreshold: cfg.LiquidityThreshold,
		OfferScore:         70,
		CloseScore:         alerts.HighProbabilityThreshold,
		InquiryFloor:       cfg.InquiryFloor,
		OfferFloor:         cfg.OfferFloor,
		CloseFloor:         cfg.CloseFloor,
		CompletionFloor:    cfg.CompletionFloor,
	}
	an := analytics.NewService(profiles, matches, rdb, anCfg, cfg.MetricsCacheTTL)

	return engine.NewService(profiles, matches, indexer, ctrl, gen, an), nil
}
