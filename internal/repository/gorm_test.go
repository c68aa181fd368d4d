package repository

import (
	"context"
	"testing"

	"propmatch-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.User{},
		&domain.BuyerProfile{},
		&domain.SellerProfile{},
		&domain.OffPlatformSeller{},
		&domain.MatchScore{},
		&domain.MatchAlert{},
	))
	return db
}

func TestGormProfiles_UserRoundTrip(t *testing.T) {
	db := testDB(t)
	r := &GormProfiles{DB: db}
	ctx := context.Background()

	u := &domain.User{
		Fullname: "Ada Example",
		Email:    "ada@example.com",
		Role:     domain.RoleBuyer,
	}
	require.NoError(t, r.SaveUser(ctx, u))
	require.NotEqual(t, uuid.Nil, u.UserID)

	got, err := r.GetUser(ctx, u.UserID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", got.Email)

	_, err = r.GetUser(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

// Saving a profile again for the same user replaces it in place, keeping the
// original profile ID and creation time.
func TestGormProfiles_BuyerProfileUpsert(t *testing.T) {
	db := testDB(t)
	r := &GormProfiles{DB: db}
	ctx := context.Background()
	userID := uuid.New()

	first := &domain.BuyerProfile{
		UserID:              userID,
		BudgetMin:           100_000,
		BudgetMax:           200_000,
		Locations:           domain.LocationList{{City: "Phoenix", State: "AZ"}},
		PurchaseUrgency:     5,
		FinancingMethod:     domain.FinancingConventional,
		RenovationTolerance: domain.ToleranceMinor,
	}
	require.NoError(t, r.SaveBuyerProfile(ctx, first))

	second := &domain.BuyerProfile{
		UserID:              userID,
		BudgetMin:           150_000,
		BudgetMax:           300_000,
		Locations:           domain.LocationList{{City: "Tucson", State: "AZ"}},
		PurchaseUrgency:     8,
		FinancingMethod:     domain.FinancingCash,
		RenovationTolerance: domain.ToleranceAny,
	}
	require.NoError(t, r.SaveBuyerProfile(ctx, second))
	assert.Equal(t, first.ProfileID, second.ProfileID)

	got, err := r.GetBuyerProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 300_000.0, got.BudgetMax)
	assert.Equal(t, domain.FinancingCash, got.FinancingMethod)
	require.Len(t, got.Locations, 1)
	assert.Equal(t, "Tucson", got.Locations[0].City)

	all, err := r.ListBuyerProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGormProfiles_ActiveSellersExcludeSold(t *testing.T) {
	db := testDB(t)
	r := &GormProfiles{DB: db}
	ctx := context.Background()

	available := &domain.SellerProfile{
		UserID: uuid.New(), PropertyType: domain.PropertySingleFamily,
		AskingPrice: 400_000, LocationCity: "Phoenix", LocationState: "AZ",
		SellingMotivation: domain.MotivationDivorce, UrgencyLevel: 7,
		PriceFlexibility: domain.FlexibilityModerate, PropertyCondition: domain.ConditionGood,
		ListingStatus: domain.ListingAvailable,
	}
	sold := &domain.SellerProfile{
		UserID: uuid.New(), PropertyType: domain.PropertySingleFamily,
		AskingPrice: 350_000, LocationCity: "Phoenix", LocationState: "AZ",
		SellingMotivation: domain.MotivationUpgrade, UrgencyLevel: 3,
		PriceFlexibility: domain.FlexibilityFirm, PropertyCondition: domain.ConditionExcellent,
		ListingStatus: domain.ListingSold,
	}
	require.NoError(t, r.SaveSellerProfile(ctx, available))
	require.NoError(t, r.SaveSellerProfile(ctx, sold))

	active, err := r.ListActiveSellerProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, available.UserID, active[0].UserID)

	all, err := r.ListSellerProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormProfiles_OffPlatformStateIndex(t *testing.T) {
	db := testDB(t)
	r := &GormProfiles{DB: db}
	ctx := context.Background()

	az := &domain.OffPlatformSeller{
		SellerID: uuid.New(), PropertyType: domain.PropertySingleFamily,
		AskingPrice: 300_000, LocationCity: "Mesa", LocationState: "AZ",
		SellingMotivation: domain.MotivationInherited, UrgencyLevel: 6,
		PriceFlexibility: domain.FlexibilityVeryFlexible, PropertyCondition: domain.ConditionNeedsWork,
		ListingStatus: domain.ListingAvailable,
	}
	tx := &domain.OffPlatformSeller{
		SellerID: uuid.New(), PropertyType: domain.PropertySingleFamily,
		AskingPrice: 300_000, LocationCity: "Austin", LocationState: "TX",
		SellingMotivation: domain.MotivationInherited, UrgencyLevel: 6,
		PriceFlexibility: domain.FlexibilityVeryFlexible, PropertyCondition: domain.ConditionNeedsWork,
		ListingStatus: domain.ListingAvailable,
	}
	soldAZ := &domain.OffPlatformSeller{
		SellerID: uuid.New(), PropertyType: domain.PropertySingleFamily,
		AskingPrice: 300_000, LocationCity: "Tempe", LocationState: "AZ",
		SellingMotivation: domain.MotivationInherited, UrgencyLevel: 6,
		PriceFlexibility: domain.FlexibilityVeryFlexible, PropertyCondition: domain.ConditionNeedsWork,
		ListingStatus: domain.ListingSold,
	}
	for _, o := range []*domain.OffPlatformSeller{az, tx, soldAZ} {
		require.NoError(t, r.SaveOffPlatformSeller(ctx, o))
	}

	got, err := r.ListOffPlatformByStates(ctx, []string{"az"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, az.SellerID, got[0].SellerID)

	got, err = r.ListOffPlatformByStates(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func validMatch(buyerID, sellerID uuid.UUID, overall, position int) domain.MatchScore {
	sid := sellerID
	return domain.MatchScore{
		BuyerID:                 buyerID,
		SellerID:                &sid,
		OverallScore:            overall,
		FinancialScore:          overall,
		UrgencyScore:            overall,
		MotivationScore:         overall,
		ClosingProbabilityScore: overall,
		Position:                position,
	}
}

// Replace is delete-then-insert in one transaction; read-back follows stored
// positions, not insertion order.
func TestGormMatches_ReplaceAndReadBack(t *testing.T) {
	db := testDB(t)
	r := &GormMatches{DB: db}
	ctx := context.Background()
	buyerID := uuid.New()

	first := []domain.MatchScore{
		validMatch(buyerID, uuid.New(), 90, 0),
		validMatch(buyerID, uuid.New(), 80, 1),
	}
	require.NoError(t, r.ReplaceForBuyer(ctx, buyerID, first))

	top := uuid.New()
	second := []domain.MatchScore{
		validMatch(buyerID, uuid.New(), 70, 1),
		validMatch(buyerID, top, 95, 0),
	}
	require.NoError(t, r.ReplaceForBuyer(ctx, buyerID, second))

	got, err := r.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, top, *got[0].SellerID)
	assert.Equal(t, 95, got[0].OverallScore)
	assert.Equal(t, 0, got[0].Position)
}

// Rows violating the structural invariants never reach storage.
func TestGormMatches_RejectsInvalidRows(t *testing.T) {
	db := testDB(t)
	r := &GormMatches{DB: db}
	ctx := context.Background()
	buyerID := uuid.New()

	belowFloor := validMatch(buyerID, uuid.New(), 20, 1)
	bothSides := validMatch(buyerID, uuid.New(), 90, 2)
	op := uuid.New()
	bothSides.OffPlatformSellerID = &op

	require.NoError(t, r.ReplaceForBuyer(ctx, buyerID, []domain.MatchScore{
		validMatch(buyerID, uuid.New(), 85, 0),
		belowFloor,
		bothSides,
	}))

	got, err := r.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGormMatches_ReplaceForSellerClears(t *testing.T) {
	db := testDB(t)
	r := &GormMatches{DB: db}
	ctx := context.Background()
	sellerID := uuid.New()
	buyerA := uuid.New()
	buyerB := uuid.New()

	require.NoError(t, r.ReplaceForSeller(ctx, sellerID, []domain.MatchScore{
		validMatch(buyerA, sellerID, 90, 0),
		validMatch(buyerB, sellerID, 85, 0),
	}))

	got, err := r.ListForSeller(ctx, sellerID)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	require.NoError(t, r.ReplaceForSeller(ctx, sellerID, nil))
	got, err = r.ListForSeller(ctx, sellerID)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// A seller-side replace arrives with positions stamped against the seller's
// ranking; each touched buyer's rows must come back renumbered by the
// buyer-facing ordering.
func TestGormMatches_SellerReplaceRenumbersBuyers(t *testing.T) {
	db := testDB(t)
	r := &GormMatches{DB: db}
	ctx := context.Background()
	buyerID := uuid.New()
	seller := uuid.New()

	require.NoError(t, r.ReplaceForBuyer(ctx, buyerID, []domain.MatchScore{
		validMatch(buyerID, uuid.New(), 60, 0),
		validMatch(buyerID, uuid.New(), 55, 1),
	}))

	// The new pair carries position 1 from the seller's own ranked set.
	bumped := validMatch(buyerID, seller, 95, 1)
	otherBuyer := uuid.New()
	require.NoError(t, r.ReplaceForSeller(ctx, seller, []domain.MatchScore{
		validMatch(otherBuyer, seller, 97, 0),
		bumped,
	}))

	got, err := r.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, seller, *got[0].SellerID)
	assert.Equal(t, []int{95, 60, 55}, []int{got[0].OverallScore, got[1].OverallScore, got[2].OverallScore})
	for i := range got {
		assert.Equal(t, i, got[i].Position)
	}

	// Clearing the seller renumbers the survivors back down.
	require.NoError(t, r.ReplaceForSeller(ctx, seller, nil))
	got, err = r.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []int{60, 55}, []int{got[0].OverallScore, got[1].OverallScore})
	for i := range got {
		assert.Equal(t, i, got[i].Position)
	}

	other, err := r.ListForBuyer(ctx, otherBuyer)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormAlerts_MarkRead(t *testing.T) {
	db := testDB(t)
	r := &GormAlerts{DB: db}
	ctx := context.Background()
	userID := uuid.New()

	a := &domain.MatchAlert{
		UserID:         userID,
		CounterpartyID: uuid.New(),
		Score:          91,
		Message:        "New high-probability match: overall score 91",
	}
	require.NoError(t, r.Create(ctx, a))
	require.NotEqual(t, uuid.Nil, a.AlertID)

	unread, err := r.ListUnread(ctx, userID)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	require.NoError(t, r.MarkRead(ctx, a.AlertID))
	unread, err = r.ListUnread(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, unread)

	// Re-marking is a no-op; unknown IDs are reported.
	require.NoError(t, r.MarkRead(ctx, a.AlertID))
	assert.ErrorIs(t, r.MarkRead(ctx, uuid.New()), ErrNotFound)
}
