package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"shopeasy/internal/domain/entity"
	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/logger"
)

const (
	orderCollection = "orders"
	orderItemsField = "orderItems"
)

// OrderUseCase converts cart snapshots into immutable order history
// entries and tracks delivery status.
type OrderUseCase struct {
	gateway repository.DocumentGateway
	catalog repository.CatalogRepository
	cart    *CartUseCase

	mu     sync.RWMutex
	orders map[string][]entity.OrderItem
}

func NewOrderUseCase(gateway repository.DocumentGateway, catalog repository.CatalogRepository, cart *CartUseCase) *OrderUseCase {
	return &OrderUseCase{
		gateway: gateway,
		catalog: catalog,
		cart:    cart,
		orders:  make(map[string][]entity.OrderItem),
	}
}

// PlaceOrder checks out the user's cart. Every resulting order line
// shares one fresh order id; price and delivery date are copied from
// the offer at this instant. Cart lines whose catalog data is gone are
// skipped and reported, and checkout proceeds with the rest.
//
// Recording the order and clearing the cart are two independent
// remote writes with no rollback. When the clear fails the returned
// batch is non-nil alongside the error: the order is durably recorded
// and only the cart cleanup is outstanding.
func (u *OrderUseCase) PlaceOrder(ctx context.Context, userID string) ([]entity.OrderItem, []entity.SkippedItem, error) {
	cartItems, skipped, err := u.cart.Fetch(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	orderID := uuid.New().String()
	orderDate := time.Now().UTC()

	var batch []entity.OrderItem
	for _, item := range cartItems {
		if item.Product == nil || item.Offer == nil {
			skipped = append(skipped, entity.SkippedItem{
				ProductID:  item.ProductID,
				MerchantID: item.MerchantID,
				Reason:     entity.SkipProductMissing,
			})
			continue
		}

		batch = append(batch, entity.OrderItem{
			OrderID:      orderID,
			ProductID:    item.ProductID,
			MerchantID:   item.MerchantID,
			Quantity:     item.Quantity,
			Price:        item.Offer.Price,
			Status:       entity.OrderStatusPending,
			OrderDate:    orderDate,
			DeliveryDate: item.Offer.DeliveryDate,
			IsDelivered:  false,
			Product:      item.Product,
			Offer:        item.Offer,
		})
	}

	if len(batch) == 0 {
		return nil, skipped, errors.BadRequest("Cart has no orderable items", nil)
	}

	if err := u.appendRemote(ctx, userID, batch); err != nil {
		return nil, skipped, err
	}

	u.mu.Lock()
	u.orders[userID] = append(u.orders[userID], batch...)
	u.mu.Unlock()

	if err := u.cart.Clear(ctx, userID); err != nil {
		logger.Error("Order %s recorded but cart for user %s was not cleared: %v", orderID, userID, err)
		return batch, skipped, err
	}

	logger.Info("Placed order %s with %d items for user %s", orderID, len(batch), userID)
	return batch, skipped, nil
}

// Fetch loads the user's order history, hydrating product data
// best-effort; entries whose product is gone are dropped from the
// result and reported in the skipped list. A stored entry that fails
// strict decoding (including an unrecognized status) fails the fetch.
func (u *OrderUseCase) Fetch(ctx context.Context, userID string) ([]entity.OrderItem, []entity.SkippedItem, error) {
	doc, err := u.gateway.ReadDocument(ctx, orderCollection, userID)
	if err != nil {
		return nil, nil, err
	}

	var orders []entity.OrderItem
	var skipped []entity.SkippedItem
	for _, el := range arrayField(doc, orderItemsField) {
		m, ok := el.(map[string]interface{})
		if !ok {
			return nil, nil, errors.Internal("Corrupt order history entry", nil)
		}
		item, err := entity.OrderItemFromMap(m)
		if err != nil {
			return nil, nil, errors.Internal("Corrupt order history entry", err)
		}

		product, err := u.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, "NOT_FOUND") {
				skipped = append(skipped, entity.SkippedItem{
					ProductID:  item.ProductID,
					MerchantID: item.MerchantID,
					Reason:     entity.SkipProductMissing,
				})
				continue
			}
			return nil, nil, err
		}

		item.Product = product
		item.Offer = product.Offer(item.MerchantID)
		orders = append(orders, item)
	}

	u.mu.Lock()
	u.orders[userID] = orders
	u.mu.Unlock()

	return u.Items(userID), skipped, nil
}

// MarkDelivered flips the first history entry matching (orderID,
// productID) to delivered and rewrites the array. No match is a no-op,
// and repeating the call leaves the entry delivered; both are
// deliberate so the operation can be retried blindly.
func (u *OrderUseCase) MarkDelivered(ctx context.Context, userID, orderID, productID string) error {
	doc, err := u.gateway.ReadDocument(ctx, orderCollection, userID)
	if err != nil {
		return err
	}

	raw := arrayField(doc, orderItemsField)
	elements := make([]map[string]interface{}, 0, len(raw))
	found := false
	for _, el := range raw {
		m, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		if !found && stringField(m, "orderId") == orderID && stringField(m, "productId") == productID {
			m["status"] = string(entity.OrderStatusDelivered)
			m["isDelivered"] = true
			found = true
		}
		elements = append(elements, m)
	}

	if !found {
		return nil
	}

	if err := u.gateway.ReplaceArrayField(ctx, orderCollection, userID, orderItemsField, elements); err != nil {
		return err
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	cached := u.orders[userID]
	for i := range cached {
		if cached[i].OrderID == orderID && cached[i].ProductID == productID {
			cached[i].Status = entity.OrderStatusDelivered
			cached[i].IsDelivered = true
			break
		}
	}
	return nil
}

// Items returns a copy of the cached order history for the user.
func (u *OrderUseCase) Items(userID string) []entity.OrderItem {
	u.mu.RLock()
	defer u.mu.RUnlock()
	items := make([]entity.OrderItem, len(u.orders[userID]))
	copy(items, u.orders[userID])
	return items
}

// PendingCount is the number of cached orders still awaiting delivery.
func (u *OrderUseCase) PendingCount(userID string) int {
	u.mu.RLock()
	defer u.mu.RUnlock()
	count := 0
	for _, item := range u.orders[userID] {
		if item.Status == entity.OrderStatusPending {
			count++
		}
	}
	return count
}

// appendRemote adds the batch to the stored history, creating the
// document on first order. Existing entries are carried over as-is so
// a checkout never rewrites or validates old history.
func (u *OrderUseCase) appendRemote(ctx context.Context, userID string, batch []entity.OrderItem) error {
	doc, err := u.gateway.ReadDocument(ctx, orderCollection, userID)
	if err != nil {
		return err
	}

	raw := arrayField(doc, orderItemsField)
	elements := make([]map[string]interface{}, 0, len(raw)+len(batch))
	for _, el := range raw {
		if m, ok := el.(map[string]interface{}); ok {
			elements = append(elements, m)
		}
	}
	for _, item := range batch {
		elements = append(elements, item.Map())
	}

	return u.gateway.ReplaceArrayField(ctx, orderCollection, userID, orderItemsField, elements)
}
