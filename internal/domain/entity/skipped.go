package entity

type SkipReason string

const (
	SkipProductMissing SkipReason = "product_missing"
	SkipOfferMissing   SkipReason = "offer_missing"
	SkipMalformed      SkipReason = "malformed"
)

// SkippedItem records a stored entry that a batch operation dropped
// instead of failing the whole batch, so callers can see what was
// left out rather than having it vanish silently.
type SkippedItem struct {
	ProductID  string     `json:"product_id"`
	MerchantID string     `json:"merchant_id,omitempty"`
	Reason     SkipReason `json:"reason"`
}
