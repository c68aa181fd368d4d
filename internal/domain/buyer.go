package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BuyerProfile is created or replaced whole on (re)onboarding; it is never
// partially mutated.
type BuyerProfile struct {
	ProfileID           uuid.UUID           `gorm:"column:profile_id;type:uuid;primaryKey" json:"profile_id"`
	UserID              uuid.UUID           `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	BudgetMin           float64             `gorm:"column:budget_min;type:decimal(14,2);not null" json:"budget_min"`
	BudgetMax           float64             `gorm:"column:budget_max;type:decimal(14,2);not null" json:"budget_max"`
	Locations           LocationList        `gorm:"column:locations;type:json" json:"locations"`
	PropertyTypes       PropertyTypeList    `gorm:"column:property_types;type:json" json:"property_types"`
	PurchaseUrgency     int                 `gorm:"column:purchase_urgency;not null" json:"purchase_urgency"`
	FinancingMethod     FinancingMethod     `gorm:"column:financing_method;type:varchar(20);not null" json:"financing_method"`
	RenovationTolerance RenovationTolerance `gorm:"column:renovation_tolerance;type:varchar(20);not null" json:"renovation_tolerance"`
	IsInvestor          bool                `gorm:"column:is_investor;not null;default:false" json:"is_investor"`
	MinROI              *float64            `gorm:"column:min_roi;type:decimal(6,2)" json:"min_roi,omitempty"`
	Strategy            *string             `gorm:"column:strategy" json:"strategy,omitempty"`
	CreatedAt           time.Time           `json:"createdAt"`
	UpdatedAt           time.Time           `json:"updatedAt"`
}

func (BuyerProfile) TableName() string {
	return "BuyerProfiles"
}

func (b *BuyerProfile) BeforeCreate(tx *gorm.DB) error {
	if b.ProfileID == uuid.Nil {
		b.ProfileID = uuid.New()
	}
	return nil
}

// PrimaryLocation returns the first (primary) market preference.
func (b *BuyerProfile) PrimaryLocation() (Location, bool) {
	if len(b.Locations) == 0 {
		return Location{}, false
	}
	return b.Locations[0], true
}

// WithinBudget reports whether a price falls inside [BudgetMin, BudgetMax].
func (b *BuyerProfile) WithinBudget(price float64) bool {
	return price >= b.BudgetMin && price <= b.BudgetMax
}
