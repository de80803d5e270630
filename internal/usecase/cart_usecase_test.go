package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopeasy/internal/domain/entity"
	"shopeasy/pkg/errors"
)

const testUser = "user-1"

func earbuds() *entity.Product {
	return &entity.Product{
		ID:       "p1",
		Name:     "Wireless Earbuds",
		Category: "Electronics",
		Merchants: []entity.MerchantOffer{
			{MerchantID: "m1", MerchantName: "SoundHub", Price: 79.99, DeliveryDate: time.Now().UTC().AddDate(0, 0, 2), InStock: true},
			{MerchantID: "m2", MerchantName: "MegaMart", Price: 74.50, DeliveryDate: time.Now().UTC().AddDate(0, 0, 5), InStock: true},
		},
	}
}

func tshirt() *entity.Product {
	return &entity.Product{
		ID:       "p2",
		Name:     "Cotton T-Shirt",
		Category: "Clothing",
		Merchants: []entity.MerchantOffer{
			{MerchantID: "m2", MerchantName: "MegaMart", Price: 19.99, DeliveryDate: time.Now().UTC().AddDate(0, 0, 3), InStock: true},
		},
	}
}

func TestCartAddThenFetch(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1, tshirt()))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 2))

	items, skipped, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, "m1", items[0].MerchantID)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, items[0].Offer)
	assert.Equal(t, 79.99, items[0].Offer.Price)
}

func TestCartAddCoalescesAtWriteTime(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 1))
	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 3))

	// The stored representation holds one entry per key, not one per add.
	assert.Len(t, gateway.rawField("carts", testUser, "items"), 1)

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestCartAddKeepsOriginalAddedAt(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 1))
	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	first := items[0].AddedAt

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 1))
	items, _, err = cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, items[0].AddedAt.Equal(first))
}

func TestCartDistinctOffersAreDistinctLines(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 2))
	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[1], 1))

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Zeroing one offer's quantity removes only that line.
	require.NoError(t, cart.SetQuantity(ctx, testUser, "p1", "m1", 0))

	items, _, err = cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "m2", items[0].MerchantID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartRemove(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 5))
	require.NoError(t, cart.Remove(ctx, testUser, "p1", "m1"))

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartSetQuantityUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 1))
	require.NoError(t, cart.SetQuantity(ctx, testUser, "p1", "m1", 7))

	assert.Len(t, gateway.rawField("carts", testUser, "items"), 1)

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartSetQuantityUnknownItem(t *testing.T) {
	ctx := context.Background()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(earbuds()))

	err := cart.SetQuantity(ctx, testUser, "p1", "m1", 2)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestCartClear(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	p2 := tshirt()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1, p2))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 2))
	require.NoError(t, cart.Add(ctx, testUser, p2, &p2.Merchants[0], 1))
	require.NoError(t, cart.Clear(ctx, testUser))

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Zero(t, cart.TotalItems(testUser))
}

func TestCartFetchDropsRetiredProducts(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	require.NoError(t, gateway.MergeArrayField(ctx, "carts", testUser, "items", entity.CartItem{
		ProductID: "retired", MerchantID: "m9", Quantity: 1, AddedAt: time.Now().UTC(),
	}.Map()))
	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 1))

	items, skipped, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	require.Len(t, skipped, 1)
	assert.Equal(t, "retired", skipped[0].ProductID)
	assert.Equal(t, entity.SkipProductMissing, skipped[0].Reason)
}

func TestCartFetchDropsRetiredOffers(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	require.NoError(t, gateway.MergeArrayField(ctx, "carts", testUser, "items", entity.CartItem{
		ProductID: "p1", MerchantID: "gone", Quantity: 1, AddedAt: time.Now().UTC(),
	}.Map()))

	items, skipped, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.Len(t, skipped, 1)
	assert.Equal(t, entity.SkipOfferMissing, skipped[0].Reason)
}

func TestCartFetchCoalescesLegacyDuplicates(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	p1 := earbuds()
	cart := NewCartUseCase(gateway, newMockCatalog(p1))

	older := time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)

	// Simulate history written by the old blind-append path.
	require.NoError(t, gateway.MergeArrayField(ctx, "carts", testUser, "items", entity.CartItem{
		ProductID: "p1", MerchantID: "m1", Quantity: 2, AddedAt: newer,
	}.Map()))
	require.NoError(t, gateway.MergeArrayField(ctx, "carts", testUser, "items", entity.CartItem{
		ProductID: "p1", MerchantID: "m1", Quantity: 3, AddedAt: older,
	}.Map()))

	items, _, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.True(t, items[0].AddedAt.Equal(older))
}

func TestCartFetchReportsMalformedEntries(t *testing.T) {
	ctx := context.Background()
	gateway := newFakeGateway()
	cart := NewCartUseCase(gateway, newMockCatalog(earbuds()))

	require.NoError(t, gateway.MergeArrayField(ctx, "carts", testUser, "items", map[string]interface{}{
		"productId": "p1",
		// merchantId missing
		"quantity": 1,
		"addedAt":  time.Now().UTC(),
	}))

	items, skipped, err := cart.Fetch(ctx, testUser)
	require.NoError(t, err)
	assert.Empty(t, items)
	require.Len(t, skipped, 1)
	assert.Equal(t, entity.SkipMalformed, skipped[0].Reason)
	assert.Equal(t, "p1", skipped[0].ProductID)
}

func TestCartTotals(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	p2 := tshirt()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1, p2))

	require.NoError(t, cart.Add(ctx, testUser, p1, &p1.Merchants[0], 2))
	require.NoError(t, cart.Add(ctx, testUser, p2, &p2.Merchants[0], 1))

	assert.Equal(t, 3, cart.TotalItems(testUser))

	// 2 x 79.99 + 19.99, exact in decimal arithmetic.
	want := decimal.RequireFromString("179.97")
	assert.True(t, cart.TotalPrice(testUser).Equal(want), "got %s", cart.TotalPrice(testUser))
}

func TestCartAddRejectsInvalidQuantity(t *testing.T) {
	ctx := context.Background()
	p1 := earbuds()
	cart := NewCartUseCase(newFakeGateway(), newMockCatalog(p1))

	err := cart.Add(ctx, testUser, p1, &p1.Merchants[0], 0)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}
