package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"shopeasy/internal/domain/entity"
	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/logger"
)

const (
	cartCollection = "carts"
	cartItemsField = "items"
)

// CartUseCase keeps a user's cart in sync between the remote document
// and an in-memory cache. All writes are read-modify-write against the
// full items array, so the stored representation is always coalesced
// by (productId, merchantId).
type CartUseCase struct {
	gateway repository.DocumentGateway
	catalog repository.CatalogRepository

	mu    sync.RWMutex
	items map[string][]entity.CartItem
}

func NewCartUseCase(gateway repository.DocumentGateway, catalog repository.CatalogRepository) *CartUseCase {
	return &CartUseCase{
		gateway: gateway,
		catalog: catalog,
		items:   make(map[string][]entity.CartItem),
	}
}

// Fetch loads the remote cart, hydrates each line with catalog data
// and refreshes the cache. Lines whose product or offer no longer
// exists in the catalog are dropped from the result and reported in
// the skipped list; catalog entries may be retired after being stored.
func (u *CartUseCase) Fetch(ctx context.Context, userID string) ([]entity.CartItem, []entity.SkippedItem, error) {
	stored, skipped, err := u.readRemote(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var hydrated []entity.CartItem
	for _, item := range stored {
		product, err := u.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Warn("Dropping cart item %s for user %s: product retired", item.Key(), userID)
				skipped = append(skipped, entity.SkippedItem{
					ProductID:  item.ProductID,
					MerchantID: item.MerchantID,
					Reason:     entity.SkipProductMissing,
				})
				continue
			}
			return nil, nil, err
		}

		offer := product.Offer(item.MerchantID)
		if offer == nil {
			logger.Warn("Dropping cart item %s for user %s: offer retired", item.Key(), userID)
			skipped = append(skipped, entity.SkippedItem{
				ProductID:  item.ProductID,
				MerchantID: item.MerchantID,
				Reason:     entity.SkipOfferMissing,
			})
			continue
		}

		item.Product = product
		item.Offer = offer
		hydrated = append(hydrated, item)
	}

	u.mu.Lock()
	u.items[userID] = hydrated
	u.mu.Unlock()

	return u.Items(userID), skipped, nil
}

// Add puts quantity units of (product, offer) into the cart. An
// existing line with the same key has its quantity incremented and
// keeps its original addedAt; otherwise a new line is appended.
func (u *CartUseCase) Add(ctx context.Context, userID string, product *entity.Product, offer *entity.MerchantOffer, quantity int) error {
	if quantity < 1 {
		return errors.BadRequest("Quantity must be at least 1", nil)
	}
	if product == nil || offer == nil {
		return errors.BadRequest("Product and offer are required", nil)
	}

	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i := range stored {
		if stored[i].ProductID == product.ID && stored[i].MerchantID == offer.MerchantID {
			stored[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		stored = append(stored, entity.CartItem{
			ProductID:  product.ID,
			MerchantID: offer.MerchantID,
			Quantity:   quantity,
			AddedAt:    time.Now().UTC(),
		})
	}

	if err := u.writeRemote(ctx, userID, stored); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cached := u.items[userID]
	for i := range cached {
		if cached[i].ProductID == product.ID && cached[i].MerchantID == offer.MerchantID {
			cached[i].Quantity += quantity
			return nil
		}
	}
	u.items[userID] = append(cached, entity.CartItem{
		ProductID:  product.ID,
		MerchantID: offer.MerchantID,
		Quantity:   quantity,
		AddedAt:    time.Now().UTC(),
		Product:    product,
		Offer:      offer,
	})
	return nil
}

// Remove deletes every stored entry matching (productID, merchantID).
func (u *CartUseCase) Remove(ctx context.Context, userID, productID, merchantID string) error {
	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return err
	}

	kept := stored[:0]
	for _, item := range stored {
		if item.ProductID == productID && item.MerchantID == merchantID {
			continue
		}
		kept = append(kept, item)
	}

	if err := u.writeRemote(ctx, userID, kept); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cached := u.items[userID][:0]
	for _, item := range u.items[userID] {
		if item.ProductID == productID && item.MerchantID == merchantID {
			continue
		}
		cached = append(cached, item)
	}
	u.items[userID] = cached
	return nil
}

// SetQuantity updates the line's quantity in a single remote write,
// preserving addedAt. A quantity of zero or less removes the line.
func (u *CartUseCase) SetQuantity(ctx context.Context, userID, productID, merchantID string, quantity int) error {
	if quantity <= 0 {
		return u.Remove(ctx, userID, productID, merchantID)
	}

	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return err
	}

	found := false
	for i := range stored {
		if stored[i].ProductID == productID && stored[i].MerchantID == merchantID {
			stored[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return errors.NotFound("Cart item", nil)
	}

	if err := u.writeRemote(ctx, userID, stored); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cached := u.items[userID]
	for i := range cached {
		if cached[i].ProductID == productID && cached[i].MerchantID == merchantID {
			cached[i].Quantity = quantity
			break
		}
	}
	return nil
}

// Clear empties the remote cart and the cache.
func (u *CartUseCase) Clear(ctx context.Context, userID string) error {
	if err := u.gateway.ReplaceArrayField(ctx, cartCollection, userID, cartItemsField, []map[string]interface{}{}); err != nil {
		return err
	}

	u.mu.Lock()
	delete(u.items, userID)
	u.mu.Unlock()
	return nil
}

// Items returns a copy of the cached cart lines for the user.
func (u *CartUseCase) Items(userID string) []entity.CartItem {
	u.mu.RLock()
	defer u.mu.RUnlock()
	items := make([]entity.CartItem, len(u.items[userID]))
	copy(items, u.items[userID])
	return items
}

// TotalItems is the sum of quantities across the cached cart.
func (u *CartUseCase) TotalItems(userID string) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	total := 0
	for _, item := range u.items[userID] {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the cached cart's value, computed with decimal
// arithmetic so per-line prices don't accumulate float error.
func (u *CartUseCase) TotalPrice(userID string) decimal.Decimal {
	u.mu.RLock()
	defer u.mu.RUnlock()
	total := decimal.Zero
	for _, item := range u.items[userID] {
		if item.Offer == nil {
			continue
		}
		price := decimal.NewFromFloat(item.Offer.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// readRemote decodes the stored cart and coalesces duplicate keys left
// behind by older append-only writers: quantities are summed and the
// earliest addedAt wins.
func (u *CartUseCase) readRemote(ctx context.Context, userID string) ([]entity.CartItem, []entity.SkippedItem, error) {
	doc, err := u.gateway.ReadDocument(ctx, cartCollection, userID)
	if err != nil {
		return nil, nil, err
	}

	var items []entity.CartItem
	var skipped []entity.SkippedItem
	for _, el := range arrayField(doc, cartItemsField) {
		m, ok := el.(map[string]interface{})
		if !ok {
			skipped = append(skipped, entity.SkippedItem{Reason: entity.SkipMalformed})
			continue
		}
		item, err := entity.CartItemFromMap(m)
		if err != nil {
			logger.Warn("Dropping malformed cart entry for user %s: %v", userID, err)
			skipped = append(skipped, entity.SkippedItem{
				ProductID:  stringField(m, "productId"),
				MerchantID: stringField(m, "merchantId"),
				Reason:     entity.SkipMalformed,
			})
			continue
		}
		items = append(items, item)
	}

	return coalesce(items), skipped, nil
}

func (u *CartUseCase) writeRemote(ctx context.Context, userID string, items []entity.CartItem) error {
	elements := make([]map[string]interface{}, len(items))
	for i, item := range items {
		elements[i] = item.Map()
	}
	return u.gateway.ReplaceArrayField(ctx, cartCollection, userID, cartItemsField, elements)
}

func coalesce(items []entity.CartItem) []entity.CartItem {
	var out []entity.CartItem
	index := make(map[string]int)
	for _, item := range items {
		if i, ok := index[item.Key()]; ok {
			out[i].Quantity += item.Quantity
			if item.AddedAt.Before(out[i].AddedAt) {
				out[i].AddedAt = item.AddedAt
			}
			continue
		}
		index[item.Key()] = len(out)
		out = append(out, item)
	}
	return out
}
