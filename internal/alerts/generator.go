package alerts

import (
	"context"
	"fmt"
	"time"

	"propmatch-backend/internal/domain"
	"propmatch-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// HighProbabilityThreshold is the overall score at which a match alert fires.
const HighProbabilityThreshold = 85

// Generator watches recompute output and emits one-time high-probability
// alerts. The diff runs against the previous committed snapshot, under the
// same per-user lock as the recompute itself.
type Generator struct {
	Repo      repository.AlertRepository
	Threshold int
}

func NewGenerator(repo repository.AlertRepository) *Generator {
	return &Generator{Repo: repo, Threshold: HighProbabilityThreshold}
}

// OnRecompute emits an alert for every pair in next that crosses the
// threshold relative to prev. A pair that stays at or above the threshold
// across recomputes never re-alerts; a pair that dips below and crosses
// again alerts again.
func (g *Generator) OnRecompute(ctx context.Context, userID uuid.UUID, prev, next []domain.MatchScore) ([]domain.MatchAlert, error) {
	prevScores := make(map[uuid.UUID]int, len(prev))
	for i := range prev {
		prevScores[counterpartyFor(userID, &prev[i])] = prev[i].OverallScore
	}

	var emitted []domain.MatchAlert
	for i := range next {
		m := &next[i]
		if m.OverallScore < g.Threshold {
			continue
		}
		counterparty := counterpartyFor(userID, m)
		if old, seen := prevScores[counterparty]; seen && old >= g.Threshold {
			continue
		}
		a := domain.MatchAlert{
			UserID:         userID,
			CounterpartyID: counterparty,
			Score:          m.OverallScore,
			Message:        fmt.Sprintf("New high-probability match: overall score %d", m.OverallScore),
			CreatedAt:      time.Now(),
		}
		if err := g.Repo.Create(ctx, &a); err != nil {
			return emitted, err
		}
		log.Info().Str("user_id", userID.String()).Str("counterparty_id", a.CounterpartyID.String()).Int("score", a.Score).Msg("Emitted high-probability match alert")
		emitted = append(emitted, a)
	}
	return emitted, nil
}

// counterpartyFor resolves the match's other side relative to the user whose
// set was recomputed. Buyer recomputes share the BuyerID, so the counterparty
// is the seller side; seller recomputes share the seller side, so the
// counterparty is each match's buyer. Within one user's set this uniquely
// identifies the pair.
func counterpartyFor(userID uuid.UUID, m *domain.MatchScore) uuid.UUID {
	if m.BuyerID != userID {
		return m.BuyerID
	}
	return m.CounterpartyID()
}

// Unread returns the user's unread alerts, newest first. Unknown users get an
// empty slice.
func (g *Generator) Unread(ctx context.Context, userID uuid.UUID) ([]domain.MatchAlert, error) {
	return g.Repo.ListUnread(ctx, userID)
}

// MarkRead flips an alert to read. Monotonic: re-marking is a no-op and an
// alert never reverts to unread.
func (g *Generator) MarkRead(ctx context.Context, alertID uuid.UUID) error {
	return g.Repo.MarkRead(ctx, alertID)
}
