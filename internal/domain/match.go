package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MinOverallScore is the visibility floor: pairs scoring below it are never
// stored or returned.
const MinOverallScore = 40

// MatchScore is one scored buyer/candidate pair. Exactly one of SellerID or
// OffPlatformSellerID is set. Position preserves the ranking contract
// (overall desc, closing desc, urgency desc, stable) across read-back.
type MatchScore struct {
	MatchID                 uuid.UUID  `gorm:"column:match_id;type:uuid;primaryKey" json:"match_id"`
	BuyerID                 uuid.UUID  `gorm:"column:buyer_id;type:uuid;not null;index" json:"buyer_id"`
	SellerID                *uuid.UUID `gorm:"column:seller_id;type:uuid;index" json:"seller_id,omitempty"`
	OffPlatformSellerID     *uuid.UUID `gorm:"column:off_platform_seller_id;type:uuid;index" json:"off_platform_seller_id,omitempty"`
	OverallScore            int        `gorm:"column:overall_score;not null" json:"overall_score"`
	FinancialScore          int        `gorm:"column:financial_score;not null" json:"financial_score"`
	UrgencyScore            int        `gorm:"column:urgency_score;not null" json:"urgency_score"`
	MotivationScore         int        `gorm:"column:motivation_score;not null" json:"motivation_score"`
	ClosingProbabilityScore int        `gorm:"column:closing_probability_score;not null" json:"closing_probability_score"`
	KeyAlignmentFactors     StringList `gorm:"column:key_alignment_factors;type:json" json:"key_alignment_factors"`
	Position                int        `gorm:"column:position;not null" json:"position"`
	CreatedAt               time.Time  `json:"createdAt"`
	UpdatedAt               time.Time  `json:"updatedAt"`
}

func (MatchScore) TableName() string {
	return "MatchScores"
}

func (m *MatchScore) BeforeCreate(tx *gorm.DB) error {
	if m.MatchID == uuid.Nil {
		m.MatchID = uuid.New()
	}
	return nil
}

var (
	ErrCounterpartyXOR = errors.New("match must reference exactly one of seller or off-platform seller")
	ErrScoreOutOfRange = errors.New("match score outside [0,100]")
	ErrBelowFloor      = errors.New("match below minimum overall score")
)

// Validate enforces the structural invariants. Violations are programming
// defects: tests fail on them, production rejects the row instead of
// surfacing it.
func (m *MatchScore) Validate() error {
	if (m.SellerID == nil) == (m.OffPlatformSellerID == nil) {
		return ErrCounterpartyXOR
	}
	for _, s := range []int{m.OverallScore, m.FinancialScore, m.UrgencyScore, m.MotivationScore, m.ClosingProbabilityScore} {
		if s < 0 || s > 100 {
			return ErrScoreOutOfRange
		}
	}
	if m.OverallScore < MinOverallScore {
		return ErrBelowFloor
	}
	if len(m.KeyAlignmentFactors) > 5 {
		return errors.New("more than 5 key alignment factors")
	}
	return nil
}

// CounterpartyID returns whichever side of the XOR is set.
func (m *MatchScore) CounterpartyID() uuid.UUID {
	if m.SellerID != nil {
		return *m.SellerID
	}
	if m.OffPlatformSellerID != nil {
		return *m.OffPlatformSellerID
	}
	return uuid.Nil
}

// OffPlatform reports whether the counterparty is an off-platform record.
func (m *MatchScore) OffPlatform() bool {
	return m.OffPlatformSellerID != nil
}
