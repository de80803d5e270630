package entity

import (
	"time"
)

type MerchantOffer struct {
	MerchantID   string    `json:"merchant_id" firestore:"merchantId"`
	MerchantName string    `json:"merchant_name" firestore:"merchantName"`
	Price        float64   `json:"price" firestore:"price"`
	DeliveryDate time.Time `json:"delivery_date" firestore:"deliveryDate"`
	Link         string    `json:"link" firestore:"link"`
	InStock      bool      `json:"in_stock" firestore:"inStock"`
}

type Product struct {
	ID          string          `json:"id" firestore:"id"`
	Name        string          `json:"name" firestore:"name"`
	Description string          `json:"description" firestore:"description"`
	Category    string          `json:"category" firestore:"category"`
	ImageURL    string          `json:"image_url" firestore:"imageUrl"`
	Merchants   []MerchantOffer `json:"merchants" firestore:"merchants"`
}

// Offer returns the merchant offer with the given merchant id, or nil
// if the product has no such offer.
func (p *Product) Offer(merchantID string) *MerchantOffer {
	for i := range p.Merchants {
		if p.Merchants[i].MerchantID == merchantID {
			return &p.Merchants[i]
		}
	}
	return nil
}

// LowestPrice returns the cheapest offer price, or 0 when the product
// has no offers.
func (p *Product) LowestPrice() float64 {
	if len(p.Merchants) == 0 {
		return 0
	}
	lowest := p.Merchants[0].Price
	for _, m := range p.Merchants[1:] {
		if m.Price < lowest {
			lowest = m.Price
		}
	}
	return lowest
}

// IsAvailable reports whether any merchant has the product in stock.
func (p *Product) IsAvailable() bool {
	for _, m := range p.Merchants {
		if m.InStock {
			return true
		}
	}
	return false
}
