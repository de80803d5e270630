package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopeasy/internal/domain/entity"
	"shopeasy/pkg/errors"
)

func TestWishlistAddAndFetch(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistUseCase(newFakeGateway(), newMockCatalog(earbuds(), tshirt()))

	require.NoError(t, wishlist.Add(ctx, testUser, "p1"))
	require.NoError(t, wishlist.Add(ctx, testUser, "p2"))

	items, skipped, err := wishlist.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Wireless Earbuds", items[0].Product.Name)
}

func TestWishlistAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	wishlist := NewWishlistUseCase(gateway, newMockCatalog(earbuds()))

	require.NoError(t, wishlist.Add(ctx, testUser, "p1"))
	require.NoError(t, wishlist.Add(ctx, testUser, "p1"))

	assert.Len(t, gateway.rawField("wishlists", testUser, "items"), 1)

	items, _, err := wishlist.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestWishlistAddUnknownProduct(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistUseCase(newFakeGateway(), newMockCatalog())

	err := wishlist.Add(ctx, testUser, "nope")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestWishlistRemove(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistUseCase(newFakeGateway(), newMockCatalog(earbuds()))

	require.NoError(t, wishlist.Add(ctx, testUser, "p1"))
	require.NoError(t, wishlist.Remove(ctx, testUser, "p1"))

	items, _, err := wishlist.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Removing again is a no-op.
	require.NoError(t, wishlist.Remove(ctx, testUser, "p1"))
}

func TestWishlistToggle(t *testing.T) {
	ctx := context.Background()
	wishlist := NewWishlistUseCase(newFakeGateway(), newMockCatalog(earbuds()))

	saved, err := wishlist.Toggle(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = wishlist.Toggle(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.False(t, saved)

	has, err := wishlist.Contains(ctx, testUser, "p1")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWishlistFetchDropsRetiredProducts(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	wishlist := NewWishlistUseCase(gateway, newMockCatalog(earbuds()))

	require.NoError(t, gateway.MergeArrayField(ctx, "wishlists", testUser, "items", entity.WishlistItem{
		ProductID: "retired", AddedAt: time.Now().UTC(),
	}.Map()))
	require.NoError(t, wishlist.Add(ctx, testUser, "p1"))

	items, skipped, err := wishlist.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	require.Len(t, skipped, 1)
	assert.Equal(t, "retired", skipped[0].ProductID)
	assert.Equal(t, entity.SkipProductMissing, skipped[0].Reason)
}

func TestWishlistFetchDeduplicatesLegacyEntries(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	wishlist := NewWishlistUseCase(gateway, newMockCatalog(earbuds()))

	first := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, gateway.MergeArrayField(ctx, "wishlists", testUser, "items", entity.WishlistItem{
		ProductID: "p1", AddedAt: first,
	}.Map()))
	require.NoError(t, gateway.MergeArrayField(ctx, "wishlists", testUser, "items", entity.WishlistItem{
		ProductID: "p1", AddedAt: first.Add(time.Hour),
	}.Map()))

	items, _, err := wishlist.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].AddedAt.Equal(first))
}
