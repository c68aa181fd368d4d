package repository

import (
	"context"
	"testing"

	"propmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memMatch(buyerID, sellerID uuid.UUID, overall, position int) domain.MatchScore {
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

// A seller-side recompute splices into each buyer's stored set without
// disturbing that buyer's ranking of other counterparties.
func TestMemoryStore_SellerReplaceKeepsBuyerRanking(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	buyerID := uuid.New()
	other := uuid.New()
	seller := uuid.New()

	require.NoError(t, store.ReplaceForBuyer(ctx, buyerID, []domain.MatchScore{
		memMatch(buyerID, other, 90, 0),
		memMatch(buyerID, seller, 70, 1),
	}))

	// Seller recompute bumps the pair to 95: it moves to the top of the
	// buyer's set.
	require.NoError(t, store.ReplaceForSeller(ctx, seller, []domain.MatchScore{
		memMatch(buyerID, seller, 95, 0),
	}))

	got, err := store.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, seller, *got[0].SellerID)
	assert.Equal(t, 95, got[0].OverallScore)
	assert.Equal(t, other, *got[1].SellerID)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, 1, got[1].Position)

	// Clearing the seller removes only that pair.
	require.NoError(t, store.ReplaceForSeller(ctx, seller, nil))
	got, err = store.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, other, *got[0].SellerID)
	assert.Equal(t, 0, got[0].Position)
}

func TestMemoryStore_ListForSellerRanked(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	seller := uuid.New()
	buyerA := uuid.New()
	buyerB := uuid.New()

	require.NoError(t, store.ReplaceForBuyer(ctx, buyerA, []domain.MatchScore{memMatch(buyerA, seller, 75, 0)}))
	require.NoError(t, store.ReplaceForBuyer(ctx, buyerB, []domain.MatchScore{memMatch(buyerB, seller, 92, 0)}))

	got, err := store.ListForSeller(ctx, seller)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, buyerB, got[0].BuyerID)
	assert.Equal(t, buyerA, got[1].BuyerID)
}

func TestMemoryStore_ReplaceRejectsInvalid(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	buyerID := uuid.New()

	require.NoError(t, store.ReplaceForBuyer(ctx, buyerID, []domain.MatchScore{
		memMatch(buyerID, uuid.New(), 88, 0),
		memMatch(buyerID, uuid.New(), 10, 1), // below floor
	}))

	got, err := store.ListForBuyer(ctx, buyerID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestMemoryStore_ProfileUpsertPreservesIdentity(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	userID := uuid.New()

	first := &domain.BuyerProfile{UserID: userID, BudgetMin: 1, BudgetMax: 2}
	require.NoError(t, store.SaveBuyerProfile(ctx, first))
	second := &domain.BuyerProfile{UserID: userID, BudgetMin: 3, BudgetMax: 4}
	require.NoError(t, store.SaveBuyerProfile(ctx, second))

	assert.Equal(t, first.ProfileID, second.ProfileID)
	got, err := store.GetBuyerProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, got.BudgetMax)
}
