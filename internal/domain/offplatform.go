package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OffPlatformSeller is a read-only candidate sourced by the external
// ingestion pipeline. The engine never mutates these rows; they are scored
// exactly like registered sellers.
type OffPlatformSeller struct {
	SellerID          uuid.UUID         `gorm:"column:seller_id;type:uuid;primaryKey" json:"seller_id"`
	PropertyType      PropertyType      `gorm:"column:property_type;type:varchar(20);not null" json:"property_type"`
	AskingPrice       float64           `gorm:"column:asking_price;type:decimal(14,2);not null" json:"asking_price"`
	LocationCity      string            `gorm:"column:location_city;not null" json:"location_city"`
	LocationState     string            `gorm:"column:location_state;not null;index" json:"location_state"`
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

	// Contact and public-record details from the ingestion source.
	ContactName   *string    `gorm:"column:contact_name" json:"contact_name,omitempty"`
	ContactEmail  *string    `gorm:"column:contact_email" json:"contact_email,omitempty"`
	ContactPhone  *string    `gorm:"column:contact_phone" json:"contact_phone,omitempty"`
	SocialLinks   StringList `gorm:"column:social_links;type:json" json:"social_links"`
	LotSizeSqft   *float64   `gorm:"column:lot_size_sqft;type:decimal(12,2)" json:"lot_size_sqft,omitempty"`
	TaxEstimate   *float64   `gorm:"column:tax_estimate;type:decimal(12,2)" json:"tax_estimate,omitempty"`
	HOAFee        *float64   `gorm:"column:hoa_fee;type:decimal(10,2)" json:"hoa_fee,omitempty"`
	YearBuilt     *int       `gorm:"column:year_built" json:"year_built,omitempty"`
	HasPool       bool       `gorm:"column:has_pool;not null;default:false" json:"has_pool"`
	HasGarage     bool       `gorm:"column:has_garage;not null;default:false" json:"has_garage"`
	LastSoldPrice *float64   `gorm:"column:last_sold_price;type:decimal(14,2)" json:"last_sold_price,omitempty"`
	LastSoldAt    *time.Time `gorm:"column:last_sold_at" json:"last_sold_at,omitempty"`
	SourceURL     string     `gorm:"column:source_url" json:"source_url"`

	// RawAttributes keeps the unparsed source payload for fields the schema
	// does not model yet.
	RawAttributes datatypes.JSON `gorm:"column:raw_attributes;type:json" json:"raw_attributes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (OffPlatformSeller) TableName() string {
	return "OffPlatformSellers"
}

func (o *OffPlatformSeller) BeforeCreate(tx *gorm.DB) error {
	if o.SellerID == uuid.Nil {
		o.SellerID = uuid.New()
	}
	return nil
}

func (o *OffPlatformSeller) Location() Location {
	return Location{
		City:    o.LocationCity,
		State:   o.LocationState,
		ZipCode: o.LocationZip,
		Country: o.LocationCountry,
	}
}
