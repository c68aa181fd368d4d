package scoring

import (
	"testing"

	"propmatch-backend/internal/domain"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func phoenixBuyer() *domain.BuyerProfile {
	return &domain.BuyerProfile{
		UserID:              uuid.New(),
		BudgetMin:           300_000,
		BudgetMax:           500_000,
		Locations:           domain.LocationList{{City: "Phoenix", State: "AZ"}},
		PurchaseUrgency:     8,
		FinancingMethod:     domain.FinancingCash,
		RenovationTolerance: domain.ToleranceAny,
	}
}

func phoenixProspect() Prospect {
	return Prospect{
		ID:          uuid.New(),
		Location:    domain.Location{City: "Phoenix", State: "AZ"},
		Type:        domain.PropertySingleFamily,
		AskingPrice: 420_000,
		Motivation:  domain.MotivationForeclosure,
		Urgency:     9,
		Flexibility: domain.FlexibilityVeryFlexible,
		Condition:   domain.ConditionDistressed,
	}
}

// Motivated foreclosure seller vs cash buyer in the same market scores high
// and surfaces the expected alignment factors.
func TestScore_MotivatedSellerScenario(t *testing.T) {
	e := NewEngine(DefaultConfig())
	m, ok := e.Score(phoenixBuyer(), phoenixProspect())
	require.True(t, ok)
	require.NoError(t, m.Validate())

	assert.GreaterOrEqual(t, m.OverallScore, 80)
	assert.Contains(t, m.KeyAlignmentFactors, "Cash buyer - fast close")
	assert.Contains(t, m.KeyAlignmentFactors, "Seller highly motivated (foreclosure)")
	assert.Contains(t, m.KeyAlignmentFactors, "Both ready to transact now")
	assert.LessOrEqual(t, len(m.KeyAlignmentFactors), 5)
}

// No partial credit below state level: a Phoenix buyer never matches Miami.
func TestScore_LocationHardFilter(t *testing.T) {
	e := NewEngine(DefaultConfig())

	p := phoenixProspect()
	p.Location = domain.Location{City: "Miami", State: "FL"}
	_, ok := e.Score(phoenixBuyer(), p)
	assert.False(t, ok)

	// Same state, different city: included with reduced location credit.
	p.Location = domain.Location{City: "Tucson", State: "AZ"}
	sameState, ok := e.Score(phoenixBuyer(), p)
	require.True(t, ok)

	full, ok := e.Score(phoenixBuyer(), phoenixProspect())
	require.True(t, ok)
	assert.Greater(t, full.OverallScore, sameState.OverallScore)
}

// City+state matching is case-insensitive.
func TestScore_LocationCaseInsensitive(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := phoenixProspect()
	p.Location = domain.Location{City: "phoenix", State: "az"}
	m, ok := e.Score(phoenixBuyer(), p)
	require.True(t, ok)
	assert.GreaterOrEqual(t, m.OverallScore, domain.MinOverallScore)
}

// An eligible same-city seller within budget clears the 40-point floor.
func TestScore_EligiblePairClearsFloor(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := phoenixProspect()
	p.Motivation = domain.MotivationOther
	p.Flexibility = domain.FlexibilityFirm
	p.Condition = domain.ConditionGood
	p.Urgency = 5
	m, ok := e.Score(phoenixBuyer(), p)
	require.True(t, ok)
	assert.GreaterOrEqual(t, m.OverallScore, domain.MinOverallScore)
}

// Cash never scores below financed methods against a firm seller.
func TestScore_CashBeatsFHAAgainstFirmSeller(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := phoenixProspect()
	p.Flexibility = domain.FlexibilityFirm

	cash := phoenixBuyer()
	cash.FinancingMethod = domain.FinancingCash
	fha := phoenixBuyer()
	fha.FinancingMethod = domain.FinancingFHA

	mCash, ok := e.Score(cash, p)
	require.True(t, ok)
	mFHA, ok := e.Score(fha, p)
	require.True(t, ok)
	assert.GreaterOrEqual(t, mCash.FinancialScore, mFHA.FinancialScore)
}

// Over-budget asking prices are penalized proportionally; below budgetMin is
// simply affordable.
func TestScore_FinancialPenalties(t *testing.T) {
	e := NewEngine(DefaultConfig())
	b := phoenixBuyer()

	within := phoenixProspect()
	within.AskingPrice = 450_000
	over := phoenixProspect()
	over.AskingPrice = 600_000 // 20% over budgetMax -> 30 point penalty
	under := phoenixProspect()
	under.AskingPrice = 200_000

	mWithin, ok := e.Score(b, within)
	require.True(t, ok)
	mOver, ok := e.Score(b, over)
	require.True(t, ok)
	mUnder, ok := e.Score(b, under)
	require.True(t, ok)

	assert.Equal(t, 100, mWithin.FinancialScore)
	assert.Equal(t, 70, mOver.FinancialScore)
	assert.Equal(t, 100, mUnder.FinancialScore)
}

// Hard-money financing gets the rehab bonus on needs_work/distressed stock.
func TestScore_HardMoneyRehabBonus(t *testing.T) {
	e := NewEngine(DefaultConfig())

	hm := phoenixBuyer()
	hm.FinancingMethod = domain.FinancingHardMoney

	distressed := phoenixProspect()
	distressed.AskingPrice = 600_000 // push base below 100 so the bonus is visible
	pristine := distressed
	pristine.Condition = domain.ConditionExcellent

	mDistressed, ok := e.Score(hm, distressed)
	require.True(t, ok)
	mPristine, ok := e.Score(hm, pristine)
	require.True(t, ok)
	assert.Equal(t, mPristine.FinancialScore+10, mDistressed.FinancialScore)
}

// Renovation mismatch drags closing probability: none-tolerance vs distressed
// loses 15, one step short loses 5, tolerance=any loses nothing.
func TestScore_RenovationMismatchPenalty(t *testing.T) {
	e := NewEngine(DefaultConfig())
	p := phoenixProspect() // distressed

	tolerant := phoenixBuyer()
	tolerant.RenovationTolerance = domain.ToleranceAny
	oneShort := phoenixBuyer()
	oneShort.RenovationTolerance = domain.ToleranceModerate
	intolerant := phoenixBuyer()
	intolerant.RenovationTolerance = domain.ToleranceNone

	mTolerant, ok := e.Score(tolerant, p)
	require.True(t, ok)
	mOneShort, ok := e.Score(oneShort, p)
	require.True(t, ok)
	mIntolerant, ok := e.Score(intolerant, p)
	require.True(t, ok)

	assert.Greater(t, mTolerant.ClosingProbabilityScore, mOneShort.ClosingProbabilityScore)
	assert.Greater(t, mOneShort.ClosingProbabilityScore, mIntolerant.ClosingProbabilityScore)
}

// Urgency alignment: matched high urgencies earn the bonus, wide gaps decay
// at 8 points per step.
func TestScore_UrgencyAlignment(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Equal(t, 100, e.urgencyScore(8, 9)) // 92 + 10 clamped
	assert.Equal(t, 100, e.urgencyScore(7, 7))
	assert.Equal(t, 52, e.urgencyScore(1, 7))
	assert.Equal(t, 28, e.urgencyScore(1, 10))
}

// Property-based check: every valid enum/budget/urgency combination yields
// scores inside [0,100] and a structurally valid match (or a clean exclusion).
func TestScore_FuzzAllInputsStayInRange(t *testing.T) {
	gofakeit.Seed(42)
	e := NewEngine(DefaultConfig())

	financing := []domain.FinancingMethod{
		domain.FinancingCash, domain.FinancingConventional, domain.FinancingFHA,
		domain.FinancingVA, domain.FinancingHardMoney, domain.FinancingSellerFinancing,
	}
	tolerance := []domain.RenovationTolerance{
		domain.ToleranceNone, domain.ToleranceMinor, domain.ToleranceModerate,
		domain.ToleranceMajor, domain.ToleranceAny,
	}
	motivations := []domain.SellingMotivation{
		domain.MotivationJobRelocation, domain.MotivationDivorce, domain.MotivationForeclosure,
		domain.MotivationUpgrade, domain.MotivationDownsizing, domain.MotivationInvestment,
		domain.MotivationInherited, domain.MotivationOther,
	}
	flexibilities := []domain.PriceFlexibility{
		domain.FlexibilityFirm, domain.FlexibilitySlight,
		domain.FlexibilityModerate, domain.FlexibilityVeryFlexible,
	}
	conditions := []domain.PropertyCondition{
		domain.ConditionExcellent, domain.ConditionGood, domain.ConditionFair,
		domain.ConditionNeedsWork, domain.ConditionDistressed,
	}
	states := []string{"AZ", "FL", "TX"}

	for i := 0; i < 2000; i++ {
		budgetMin := gofakeit.Float64Range(10_000, 900_000)
		buyer := &domain.BuyerProfile{
			UserID:    uuid.New(),
			BudgetMin: budgetMin,
			BudgetMax: budgetMin + gofakeit.Float64Range(0, 900_000),
			Locations: domain.LocationList{{
				City:  gofakeit.City(),
				State: states[gofakeit.Number(0, len(states)-1)],
			}},
			PurchaseUrgency:     gofakeit.Number(1, 10),
			FinancingMethod:     financing[gofakeit.Number(0, len(financing)-1)],
			RenovationTolerance: tolerance[gofakeit.Number(0, len(tolerance)-1)],
			IsInvestor:          gofakeit.Bool(),
		}
		p := Prospect{
			ID:          uuid.New(),
			OffPlatform: gofakeit.Bool(),
			Location: domain.Location{
				City:  gofakeit.City(),
				State: states[gofakeit.Number(0, len(states)-1)],
			},
			Type:        domain.PropertySingleFamily,
			AskingPrice: gofakeit.Float64Range(10_000, 2_000_000),
			Motivation:  motivations[gofakeit.Number(0, len(motivations)-1)],
			Urgency:     gofakeit.Number(1, 10),
			Flexibility: flexibilities[gofakeit.Number(0, len(flexibilities)-1)],
			Condition:   conditions[gofakeit.Number(0, len(conditions)-1)],
		}

		m, ok := e.Score(buyer, p)
		if !ok {
			continue
		}
		require.NoError(t, m.Validate(), "iteration %d", i)
		for _, s := range []int{m.OverallScore, m.FinancialScore, m.UrgencyScore, m.MotivationScore, m.ClosingProbabilityScore} {
			require.GreaterOrEqual(t, s, 0, "iteration %d", i)
			require.LessOrEqual(t, s, 100, "iteration %d", i)
		}
		require.GreaterOrEqual(t, m.OverallScore, domain.MinOverallScore, "iteration %d", i)
	}
}

// Scoring is deterministic: identical inputs produce identical scores.
func TestScore_Deterministic(t *testing.T) {
	e := NewEngine(DefaultConfig())
	b := phoenixBuyer()
	p := phoenixProspect()

	m1, ok := e.Score(b, p)
	require.True(t, ok)
	m2, ok := e.Score(b, p)
	require.True(t, ok)

	assert.Equal(t, m1.OverallScore, m2.OverallScore)
	assert.Equal(t, m1.FinancialScore, m2.FinancialScore)
	assert.Equal(t, m1.UrgencyScore, m2.UrgencyScore)
	assert.Equal(t, m1.MotivationScore, m2.MotivationScore)
	assert.Equal(t, m1.ClosingProbabilityScore, m2.ClosingProbabilityScore)
	assert.Equal(t, m1.KeyAlignmentFactors, m2.KeyAlignmentFactors)
}
