package entity

import (
	"time"
)

// WishlistItem is one saved product in a user's wishlist. Product is
// hydrated from the catalog at read time and never persisted.
type WishlistItem struct {
	ProductID string    `json:"product_id"`
	AddedAt   time.Time `json:"added_at"`

	Product *Product `json:"product,omitempty"`
}

func (i WishlistItem) Map() map[string]interface{} {
	return map[string]interface{}{
		"productId": i.ProductID,
		"addedAt":   i.AddedAt,
	}
}

func WishlistItemFromMap(m map[string]interface{}) (WishlistItem, error) {
	var item WishlistItem
	var err error

	if item.ProductID, err = mapString(m, "productId"); err != nil {
		return WishlistItem{}, err
	}
	if item.AddedAt, err = mapTime(m, "addedAt"); err != nil {
		return WishlistItem{}, err
	}

	return item, nil
}
