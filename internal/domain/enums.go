package domain

// PropertyType is the closed set of property categories a buyer can target.
type PropertyType string

const (
	PropertySingleFamily PropertyType = "single_family"
	PropertyMultiFamily  PropertyType = "multi_family"
	PropertyCondo        PropertyType = "condo"
	PropertyTownhouse    PropertyType = "townhouse"
	PropertyLand         PropertyType = "land"
	PropertyCommercial   PropertyType = "commercial"
	PropertyMobileHome   PropertyType = "mobile_home"
)

func (p PropertyType) Valid() bool {
	switch p {
	case PropertySingleFamily, PropertyMultiFamily, PropertyCondo,
		PropertyTownhouse, PropertyLand, PropertyCommercial, PropertyMobileHome:
		return true
	}
	return false
}

// FinancingMethod is how a buyer intends to fund the purchase.
type FinancingMethod string

const (
	FinancingCash            FinancingMethod = "cash"
	FinancingConventional    FinancingMethod = "conventional"
	FinancingFHA             FinancingMethod = "fha"
	FinancingVA              FinancingMethod = "va"
	FinancingHardMoney       FinancingMethod = "hard_money"
	FinancingSellerFinancing FinancingMethod = "seller_financing"
)

func (f FinancingMethod) Valid() bool {
	switch f {
	case FinancingCash, FinancingConventional, FinancingFHA, FinancingVA,
		FinancingHardMoney, FinancingSellerFinancing:
		return true
	}
	return false
}

// RenovationTolerance is ordered: each level accepts everything below it,
// and ToleranceAny accepts any property condition.
type RenovationTolerance string

const (
	ToleranceNone     RenovationTolerance = "none"
	ToleranceMinor    RenovationTolerance = "minor"
	ToleranceModerate RenovationTolerance = "moderate"
	ToleranceMajor    RenovationTolerance = "major"
	ToleranceAny      RenovationTolerance = "any"
)

func (r RenovationTolerance) Valid() bool {
	switch r {
	case ToleranceNone, ToleranceMinor, ToleranceModerate, ToleranceMajor, ToleranceAny:
		return true
	}
	return false
}

// Level returns the rung on the renovation ladder, or -1 for ToleranceAny
// (which never mismatches).
func (r RenovationTolerance) Level() int {
	switch r {
	case ToleranceNone:
		return 0
	case ToleranceMinor:
		return 1
	case ToleranceModerate:
		return 2
	case ToleranceMajor:
		return 3
	}
	return -1
}

type SellingMotivation string

const (
	MotivationJobRelocation SellingMotivation = "job_relocation"
	MotivationDivorce       SellingMotivation = "divorce"
	MotivationForeclosure   SellingMotivation = "foreclosure"
	MotivationUpgrade       SellingMotivation = "upgrade"
	MotivationDownsizing    SellingMotivation = "downsizing"
	MotivationInvestment    SellingMotivation = "investment"
	MotivationInherited     SellingMotivation = "inherited"
	MotivationOther         SellingMotivation = "other"
)

func (m SellingMotivation) Valid() bool {
	switch m {
	case MotivationJobRelocation, MotivationDivorce, MotivationForeclosure,
		MotivationUpgrade, MotivationDownsizing, MotivationInvestment,
		MotivationInherited, MotivationOther:
		return true
	}
	return false
}

type PriceFlexibility string

const (
	FlexibilityFirm         PriceFlexibility = "firm"
	FlexibilitySlight       PriceFlexibility = "slight"
	FlexibilityModerate     PriceFlexibility = "moderate"
	FlexibilityVeryFlexible PriceFlexibility = "very_flexible"
)

func (f PriceFlexibility) Valid() bool {
	switch f {
	case FlexibilityFirm, FlexibilitySlight, FlexibilityModerate, FlexibilityVeryFlexible:
		return true
	}
	return false
}

type PropertyCondition string

const (
	ConditionExcellent  PropertyCondition = "excellent"
	ConditionGood       PropertyCondition = "good"
	ConditionFair       PropertyCondition = "fair"
	ConditionNeedsWork  PropertyCondition = "needs_work"
	ConditionDistressed PropertyCondition = "distressed"
)

func (c PropertyCondition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionNeedsWork, ConditionDistressed:
		return true
	}
	return false
}

// RequiredTolerance maps a property condition to the minimum renovation
// tolerance a buyer needs before the closing-probability penalty kicks in.
func (c PropertyCondition) RequiredTolerance() int {
	switch c {
	case ConditionExcellent, ConditionGood:
		return 0 // none
	case ConditionFair:
		return 1 // minor
	case ConditionNeedsWork:
		return 2 // moderate
	case ConditionDistressed:
		return 3 // major
	}
	return 0
}

type ListingStatus string

const (
	ListingAvailable ListingStatus = "available"
	ListingPending   ListingStatus = "pending"
	ListingSold      ListingStatus = "sold"
	ListingOffMarket ListingStatus = "off_market"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingAvailable, ListingPending, ListingSold, ListingOffMarket:
		return true
	}
	return false
}

type Role string

const (
	RoleBuyer    Role = "buyer"
	RoleInvestor Role = "investor"
	RoleSeller   Role = "seller"
	RoleOwner    Role = "owner"
)

// BuysProperties reports whether the role sits on the buy side of a match.
func (r Role) BuysProperties() bool {
	return r == RoleBuyer || r == RoleInvestor
}

type SubscriptionStatus string

const (
	SubscriptionTrial    SubscriptionStatus = "trial"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
	SubscriptionNone     SubscriptionStatus = "none"
)

type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

// AlertSeverity classifies operator alerts.
type AlertSeverity string

const (
	SeverityWarning  AlertSeverity = "warning"
	SeverityCritical AlertSeverity = "critical"
)
