package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record the engine consumes from the profile layer:
// role, subscription tier, and trial window. Credentials live elsewhere.
type User struct {
	UserID             uuid.UUID          `gorm:"column:user_id;type:uuid;primaryKey" json:"user_id"`
	Fullname           string             `gorm:"column:fullname;not null" json:"fullname"`
	Email              string             `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Role               Role               `gorm:"column:role;type:varchar(20);not null;default:buyer" json:"role"`
	SubscriptionStatus SubscriptionStatus `gorm:"column:subscription_status;type:varchar(20);not null;default:none" json:"subscription_status"`
	Plan               Plan               `gorm:"column:plan;type:varchar(20)" json:"plan"`
	TrialEndsAt        *time.Time         `gorm:"column:trial_ends_at" json:"trial_ends_at"`
	LastActiveAt       time.Time          `gorm:"column:last_active_at" json:"last_active_at"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "Users"
}

// BeforeCreate sets UUID if not set (for DBs without gen_random_uuid).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UserID == uuid.Nil {
		u.UserID = uuid.New()
	}
	return nil
}

// TrialExpired is evaluated against the clock on every access check; trial
// state can flip mid-session so it is never cached.
func (u *User) TrialExpired(now time.Time) bool {
	if u.SubscriptionStatus != SubscriptionTrial {
		return false
	}
	return u.TrialEndsAt != nil && now.After(*u.TrialEndsAt)
}

// ActiveWithin reports whether the account was active inside the rolling
// window ending at now.
func (u *User) ActiveWithin(window time.Duration, now time.Time) bool {
	if u.LastActiveAt.IsZero() {
		return false
	}
	return !u.LastActiveAt.Before(now.Add(-window))
}
