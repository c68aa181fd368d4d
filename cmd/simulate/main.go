// Command simulate seeds a synthetic marketplace, runs the matching pipeline
// for every participant, and prints the owner dashboard. Useful for eyeballing
// score distributions and liquidity thresholds without a real database: with
// no DATABASE_URL set everything runs in memory.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"propmatch-backend/bootstrap"
	"propmatch-backend/internal/domain"
	"propmatch-backend/internal/engine"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var markets = []domain.Location{
	{City: "Phoenix", State: "AZ"},
	{City: "Tucson", State: "AZ"},
	{City: "Miami", State: "FL"},
	{City: "Tampa", State: "FL"},
	{City: "Austin", State: "TX"},
}

var (
	financing = []domain.FinancingMethod{
		domain.FinancingCash, domain.FinancingConventional, domain.FinancingFHA,
		domain.FinancingVA, domain.FinancingHardMoney, domain.FinancingSellerFinancing,
	}
	tolerances = []domain.RenovationTolerance{
		domain.ToleranceNone, domain.ToleranceMinor, domain.ToleranceModerate,
		domain.ToleranceMajor, domain.ToleranceAny,
	}
	motivations = []domain.SellingMotivation{
		domain.MotivationJobRelocation, domain.MotivationDivorce, domain.MotivationForeclosure,
		domain.MotivationUpgrade, domain.MotivationDownsizing, domain.MotivationInvestment,
		domain.MotivationInherited, domain.MotivationOther,
	}
	flexibilities = []domain.PriceFlexibility{
		domain.FlexibilityFirm, domain.FlexibilitySlight,
		domain.FlexibilityModerate, domain.FlexibilityVeryFlexible,
	}
	conditions = []domain.PropertyCondition{
		domain.ConditionExcellent, domain.ConditionGood, domain.ConditionFair,
		domain.ConditionNeedsWork, domain.ConditionDistressed,
	}
	propertyTypes = []domain.PropertyType{
		domain.PropertySingleFamily, domain.PropertyMultiFamily,
		domain.PropertyCondo, domain.PropertyTownhouse,
	}
)

func main() {
	buyers := flag.Int("buyers", 25, "professional buyers to seed")
	sellers := flag.Int("sellers", 40, "registered sellers to seed")
	offPlatform := flag.Int("off-platform", 15, "off-platform candidates to seed")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	gofakeit.Seed(*seed)

	svc, err := bootstrap.New()
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap failed")
	}

	ctx := context.Background()
	buyerIDs := seedBuyers(ctx, svc, *buyers)
	sellerIDs := seedSellers(ctx, svc, *sellers)
	seedOffPlatform(ctx, svc, *offPlatform)

	var total int
	for _, id := range append(buyerIDs, sellerIDs...) {
		matches, err := svc.ComputeMatches(ctx, id)
		if err != nil {
			log.Fatal().Err(err).Str("user_id", id.String()).Msg("recompute failed")
		}
		total += len(matches)
	}
	fmt.Printf("seeded %d buyers, %d sellers, %d off-platform; %d matches stored\n",
		*buyers, *sellers, *offPlatform, total)

	m, err := svc.GetOwnerDashboardMetrics(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dashboard failed")
	}
	fmt.Println("--- owner dashboard ---")
	fmt.Printf("active sellers:        %d\n", m.ActiveSellers)
	fmt.Printf("active pro buyers:     %d\n", m.ActiveProfessionalBuyers)
	fmt.Printf("seller/buyer ratio:    %s\n", m.SellerBuyerRatio)
	fmt.Printf("inquiry/offer/close:   %d%% / %d%% / %d%%\n", m.InquiryRate, m.OfferRate, m.CloseRate)
	fmt.Printf("avg offers per pro:    %.2f\n", m.AvgOffersPerPro)
	fmt.Printf("liquidity score:       %.2f (%s)\n", m.LiquidityScore, m.Recommendation)
	fmt.Printf("completion/drop-off:   %d%% / %d%%\n", m.ProfileCompletionRate, m.DropOffRate)
	for _, a := range m.Alerts {
		fmt.Printf("[%s] %s\n", a.Severity, a.Message)
	}
}

func seedBuyers(ctx context.Context, svc *engine.Service, n int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		u := &domain.User{
			Fullname:           gofakeit.Name(),
			Email:              gofakeit.Email(),
			Role:               domain.RoleInvestor,
			SubscriptionStatus: domain.SubscriptionActive,
			Plan:               pick([]domain.Plan{domain.PlanBasic, domain.PlanPremium}),
			LastActiveAt:       time.Now().Add(-time.Duration(gofakeit.Number(0, 20)) * 24 * time.Hour),
		}
		must(svc.Profiles.SaveUser(ctx, u))

		budgetMin := gofakeit.Float64Range(150_000, 600_000)
		locs := domain.LocationList{pick(markets)}
		if gofakeit.Bool() {
			locs = append(locs, pick(markets))
		}
		must(svc.Profiles.SaveBuyerProfile(ctx, &domain.BuyerProfile{
			UserID:              u.UserID,
			BudgetMin:           budgetMin,
			BudgetMax:           budgetMin + gofakeit.Float64Range(50_000, 400_000),
			Locations:           locs,
			PurchaseUrgency:     gofakeit.Number(1, 10),
			FinancingMethod:     pick(financing),
			RenovationTolerance: pick(tolerances),
			IsInvestor:          true,
		}))
		ids = append(ids, u.UserID)
	}
	return ids
}

func seedSellers(ctx context.Context, svc *engine.Service, n int) []uuid.UUID {
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		u := &domain.User{
			Fullname:     gofakeit.Name(),
			Email:        gofakeit.Email(),
			Role:         domain.RoleSeller,
			LastActiveAt: time.Now().Add(-time.Duration(gofakeit.Number(0, 20)) * 24 * time.Hour),
		}
		must(svc.Profiles.SaveUser(ctx, u))

		loc := pick(markets)
		addr := gofakeit.Street()
		must(svc.Profiles.SaveSellerProfile(ctx, &domain.SellerProfile{
			UserID:            u.UserID,
			PropertyType:      pick(propertyTypes),
			AskingPrice:       gofakeit.Float64Range(150_000, 900_000),
			LocationCity:      loc.City,
			LocationState:     loc.State,
			Address:           &addr,
			SellingMotivation: pick(motivations),
			UrgencyLevel:      gofakeit.Number(1, 10),
			PriceFlexibility:  pick(flexibilities),
			PropertyCondition: pick(conditions),
			ListingStatus:     domain.ListingAvailable,
		}))
		ids = append(ids, u.UserID)
	}
	return ids
}

func seedOffPlatform(ctx context.Context, svc *engine.Service, n int) {
	for i := 0; i < n; i++ {
		loc := pick(markets)
		name := gofakeit.Name()
		email := gofakeit.Email()
		raw, _ := json.Marshal(map[string]any{"source": "county_records", "parcel": gofakeit.DigitN(10)})
		must(svc.Profiles.SaveOffPlatformSeller(ctx, &domain.OffPlatformSeller{
			PropertyType:      pick(propertyTypes),
			AskingPrice:       gofakeit.Float64Range(100_000, 800_000),
			LocationCity:      loc.City,
			LocationState:     loc.State,
			ContactName:       &name,
			ContactEmail:      &email,
			SellingMotivation: pick(motivations),
			UrgencyLevel:      gofakeit.Number(1, 10),
			PriceFlexibility:  pick(flexibilities),
			PropertyCondition: pick(conditions),
			ListingStatus:     domain.ListingAvailable,
			SourceURL:         gofakeit.URL(),
			RawAttributes:     raw,
		}))
	}
}

func pick[T any](options []T) T {
	return options[gofakeit.Number(0, len(options)-1)]
}

func must(err error) {
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}
