package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerProfile has the same save-replaces-whole lifecycle as BuyerProfile.
type SellerProfile struct {
	ProfileID         uuid.UUID         `gorm:"column:profile_id;type:uuid;primaryKey" json:"profile_id"`
	UserID            uuid.UUID         `gorm:"column:user_id;type:uuid;not null;uniqueIndex" json:"user_id"`
	PropertyType      PropertyType      `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`
	AskingPrice       float64           `gorm:"column:asking_price;type:decimal(14,2);not null" json:"asking_price"`
	LocationCity      string            `gorm:"column:location_city;not null" json:"location_city"`
	LocationState     string            `gorm:"column:location_state;not null" json:"location_state"`
	LocationZip       string            `gorm:"column:location_zip" json:"location_zip"`
	LocationCountry   string            `gorm:"column:location_country" json:"location_country"`
	Address           *string           `gorm:"column:address" json:"address,omitempty"`
	Bedrooms          *int              `gorm:"column:bedrooms" json:"bedrooms,omitempty"`
	Bathrooms         *int              `gorm:"column:bathrooms" json:"bathrooms,omitempty"`
	SquareFeet        *int              `gorm:"column:square_feet" json:"square_feet,omitempty"`
	SellingMotivation SellingMotivation `gorm:"column:selling_motivation;type:varchar(20);not null" json:"selling_motivation"`
	UrgencyLevel      int               `gorm:"column:urgency_level;not null" json:"urgency_level"`
	PriceFlexibility  PriceFlexibility  `gorm:"column:price_flexibility;type:varchar(20);not null" json:"price_flexibility"`
	PropertyCondition PropertyCondition `gorm:"column:property_condition;type:varchar(20);not null" json:"property_condition"`
	ListingStatus     ListingStatus     `gorm:"column:listing_status;type:varchar(20);not null;default:available" json:"listing_status"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

func (SellerProfile) TableName() string {
	return "SellerProfiles"
}

func (s *SellerProfile) BeforeCreate(tx *gorm.DB) error {
	if s.ProfileID == uuid.Nil {
		s.ProfileID = uuid.New()
	}
	return nil
}

// Location assembles the flattened columns back into a Location value.
func (s *SellerProfile) Location() Location {
	return Location{
		City:    s.LocationCity,
		State:   s.LocationState,
		ZipCode: s.LocationZip,
		Country: s.LocationCountry,
	}
}
