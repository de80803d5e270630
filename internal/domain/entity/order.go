package entity

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
)

// ParseOrderStatus rejects anything outside the closed status set. A
// stored status we don't recognize is treated as corrupt data, not
// silently read back as pending.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderStatusPending, OrderStatusDelivered:
		return OrderStatus(raw), nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

// OrderItem is one line of an order batch. All lines created by a
// single checkout share an OrderID. Price and DeliveryDate are copies
// captured at checkout; later catalog changes do not affect them.
// Only Status and IsDelivered change after creation.
type OrderItem struct {
	OrderID      string      `json:"order_id"`
	ProductID    string      `json:"product_id"`
	MerchantID   string      `json:"merchant_id"`
	Quantity     int         `json:"quantity"`
	Price        float64     `json:"price"`
	Status       OrderStatus `json:"status"`
	OrderDate    time.Time   `json:"order_date"`
	DeliveryDate time.Time   `json:"delivery_date"`
	// IsDelivered mirrors Status for readers of the old layout.
	IsDelivered bool `json:"is_delivered"`

	Product *Product       `json:"product,omitempty"`
	Offer   *MerchantOffer `json:"offer,omitempty"`
}

// Map encodes the item into the persisted order layout.
func (i OrderItem) Map() map[string]interface{} {
	return map[string]interface{}{
		"orderId":      i.OrderID,
		"productId":    i.ProductID,
		"merchantId":   i.MerchantID,
		"quantity":     i.Quantity,
		"price":        i.Price,
		"status":       string(i.Status),
		"orderDate":    i.OrderDate,
		"deliveryDate": i.DeliveryDate,
		"isDelivered":  i.IsDelivered,
	}
}

func OrderItemFromMap(m map[string]interface{}) (OrderItem, error) {
	var item OrderItem
	var err error

	if item.OrderID, err = mapString(m, "orderId"); err != nil {
		return OrderItem{}, err
	}
	if item.ProductID, err = mapString(m, "productId"); err != nil {
		return OrderItem{}, err
	}
	if item.MerchantID, err = mapString(m, "merchantId"); err != nil {
		return OrderItem{}, err
	}
	if item.Quantity, err = mapInt(m, "quantity"); err != nil {
		return OrderItem{}, err
	}
	if item.Price, err = mapFloat(m, "price"); err != nil {
		return OrderItem{}, err
	}

	rawStatus, err := mapString(m, "status")
	if err != nil {
		return OrderItem{}, err
	}
	if item.Status, err = ParseOrderStatus(rawStatus); err != nil {
		return OrderItem{}, err
	}

	if item.OrderDate, err = mapTime(m, "orderDate"); err != nil {
		return OrderItem{}, err
	}
	if item.DeliveryDate, err = mapTime(m, "deliveryDate"); err != nil {
		return OrderItem{}, err
	}
	if item.IsDelivered, err = mapBool(m, "isDelivered"); err != nil {
		return OrderItem{}, err
	}

	return item, nil
}
