package entity

import (
	"fmt"
	"time"
)

// CartItem is one line of a user's cart, keyed by (productId,
// merchantId). Product and Offer are hydrated from the catalog at read
// time for display and are never persisted.
type CartItem struct {
	ProductID  string    `json:"product_id"`
	MerchantID string    `json:"merchant_id"`
	Quantity   int       `json:"quantity"`
	AddedAt    time.Time `json:"added_at"`

	Product *Product       `json:"product,omitempty"`
	Offer   *MerchantOffer `json:"offer,omitempty"`
}

// Key identifies the line item within a cart.
func (i CartItem) Key() string {
	return fmt.Sprintf("%s-%s", i.ProductID, i.MerchantID)
}

// Map encodes the item into the persisted cart layout.
func (i CartItem) Map() map[string]interface{} {
	return map[string]interface{}{
		"productId":  i.ProductID,
		"merchantId": i.MerchantID,
		"quantity":   i.Quantity,
		"addedAt":    i.AddedAt,
	}
}

func CartItemFromMap(m map[string]interface{}) (CartItem, error) {
	var item CartItem
	var err error

	if item.ProductID, err = mapString(m, "productId"); err != nil {
		return CartItem{}, err
	}
	if item.MerchantID, err = mapString(m, "merchantId"); err != nil {
		return CartItem{}, err
	}
	if item.Quantity, err = mapInt(m, "quantity"); err != nil {
		return CartItem{}, err
	}
	if item.AddedAt, err = mapTime(m, "addedAt"); err != nil {
		return CartItem{}, err
	}

	return item, nil
}
