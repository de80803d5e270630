package usecase

import (
	"context"
	"sync"
	"time"

	"shopeasy/internal/domain/entity"
	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/logger"
)

const (
	wishlistCollection = "wishlists"
	wishlistItemsField = "items"
)

// WishlistUseCase mirrors CartUseCase with a single-field key
// (productId) and no quantity. Add is idempotent.
type WishlistUseCase struct {
	gateway repository.DocumentGateway
	catalog repository.CatalogRepository

	mu    sync.RWMutex
	items map[string][]entity.WishlistItem
}

func NewWishlistUseCase(gateway repository.DocumentGateway, catalog repository.CatalogRepository) *WishlistUseCase {
	return &WishlistUseCase{
		gateway: gateway,
		catalog: catalog,
		items:   make(map[string][]entity.WishlistItem),
	}
}

// Fetch loads the remote wishlist, hydrates products and refreshes the
// cache. Entries whose product no longer exists are dropped and
// reported in the skipped list.
func (u *WishlistUseCase) Fetch(ctx context.Context, userID string) ([]entity.WishlistItem, []entity.SkippedItem, error) {
	stored, skipped, err := u.readRemote(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	var hydrated []entity.WishlistItem
	for _, item := range stored {
		product, err := u.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				logger.Warn("Dropping wishlist item %s for user %s: product retired", item.ProductID, userID)
				skipped = append(skipped, entity.SkippedItem{
					ProductID: item.ProductID,
					Reason:    entity.SkipProductMissing,
				})
				continue
			}
			return nil, nil, err
		}

		item.Product = product
		hydrated = append(hydrated, item)
	}

	u.mu.Lock()
	u.items[userID] = hydrated
	u.mu.Unlock()

	return u.Items(userID), skipped, nil
}

// Add saves the product to the wishlist. Adding a product that is
// already saved is a no-op.
func (u *WishlistUseCase) Add(ctx context.Context, userID, productID string) error {
	product, err := u.catalog.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return err
	}

	for _, item := range stored {
		if item.ProductID == productID {
			return nil
		}
	}

	stored = append(stored, entity.WishlistItem{
		ProductID: productID,
		AddedAt:   time.Now().UTC(),
	})
	if err := u.writeRemote(ctx, userID, stored); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for _, item := range u.items[userID] {
		if item.ProductID == productID {
			return nil
		}
	}
	u.items[userID] = append(u.items[userID], entity.WishlistItem{
		ProductID: productID,
		AddedAt:   time.Now().UTC(),
		Product:   product,
	})
	return nil
}

// Remove deletes the product from the wishlist. Removing a product
// that is not saved is a no-op.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, productID string) error {
	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return err
	}

	kept := stored[:0]
	for _, item := range stored {
		if item.ProductID == productID {
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
		if item.ProductID == productID {
			continue
		}
		cached = append(cached, item)
	}
	u.items[userID] = cached
	return nil
}

// Toggle adds the product when absent and removes it when present,
// returning whether the product is saved afterwards.
func (u *WishlistUseCase) Toggle(ctx context.Context, userID, productID string) (bool, error) {
	saved, err := u.Contains(ctx, userID, productID)
	if err != nil {
		return false, err
	}

	if saved {
		return false, u.Remove(ctx, userID, productID)
	}
	return true, u.Add(ctx, userID, productID)
}

// Contains checks the remote wishlist for the product.
func (u *WishlistUseCase) Contains(ctx context.Context, userID, productID string) (bool, error) {
	stored, _, err := u.readRemote(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, item := range stored {
		if item.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

// Items returns a copy of the cached wishlist for the user.
func (u *WishlistUseCase) Items(userID string) []entity.WishlistItem {
	u.mu.RLock()
	defer u.mu.RUnlock()
	items := make([]entity.WishlistItem, len(u.items[userID]))
	copy(items, u.items[userID])
	return items
}

// readRemote decodes the stored wishlist, dropping duplicate product
// ids left behind by older append-only writers (first entry wins).
func (u *WishlistUseCase) readRemote(ctx context.Context, userID string) ([]entity.WishlistItem, []entity.SkippedItem, error) {
	doc, err := u.gateway.ReadDocument(ctx, wishlistCollection, userID)
	if err != nil {
		return nil, nil, err
	}

	var items []entity.WishlistItem
	var skipped []entity.SkippedItem
	seen := make(map[string]bool)
	for _, el := range arrayField(doc, wishlistItemsField) {
		m, ok := el.(map[string]interface{})
		if !ok {
			skipped = append(skipped, entity.SkippedItem{Reason: entity.SkipMalformed})
			continue
		}
		item, err := entity.WishlistItemFromMap(m)
		if err != nil {
			logger.Warn("Dropping malformed wishlist entry for user %s: %v", userID, err)
			skipped = append(skipped, entity.SkippedItem{
				ProductID: stringField(m, "productId"),
				Reason:    entity.SkipMalformed,
			})
			continue
		}
		if seen[item.ProductID] {
			continue
		}
		seen[item.ProductID] = true
		items = append(items, item)
	}

	return items, skipped, nil
}

func (u *WishlistUseCase) writeRemote(ctx context.Context, userID string, items []entity.WishlistItem) error {
	elements := make([]map[string]interface{}, len(items))
	for i, item := range items {
		elements[i] = item.Map()
	}
	return u.gateway.ReplaceArrayField(ctx, wishlistCollection, userID, wishlistItemsField, elements)
}
