package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchAlert is emitted once when a pair first crosses the high-probability
// threshold. Read state is per user and monotonic.
type MatchAlert struct {
	AlertID        uuid.UUID `gorm:"column:alert_id;type:uuid;primaryKey" json:"alert_id"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null;index" json:"user_id"`
	CounterpartyID uuid.UUID `gorm:"column:counterparty_id;type:uuid;not null" json:"counterparty_id"`
	Score          int       `gorm:"column:score;not null" json:"score"`
	Message        string    `gorm:"column:message;not null" json:"message"`
	Read           bool      `gorm:"column:read;not null;default:false" json:"read"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (MatchAlert) TableName() string {
	return "MatchAlerts"
}

func (a *MatchAlert) BeforeCreate(tx *gorm.DB) error {
	if a.AlertID == uuid.Nil {
		a.AlertID = uuid.New()
	}
	return nil
}

// OwnerAlert is a derived operator-facing alert. It is computed on demand by
// the analytics aggregation and never persisted.
type OwnerAlert struct {
	ID        uuid.UUID     `json:"id"`
	Severity  AlertSeverity `json:"severity"`
	Message   string        `json:"message"`
	CreatedAt time.Time     `json:"createdAt"`
}
