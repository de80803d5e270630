package handler

import (
	"shopeasy/internal/usecase"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/response"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

func (h *OrderHandler) GetOrders(c echo.Context) error {
	userID := c.Get("uid").(string)

	orders, skipped, err := h.orderUseCase.Fetch(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"orders":        orders,
		"skipped":       skipped,
		"pending_count": h.orderUseCase.PendingCount(userID),
	})
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	userID := c.Get("uid").(string)

	batch, skipped, err := h.orderUseCase.PlaceOrder(c.Request().Context(), userID)
	if err != nil {
		if batch != nil {
			// Order was recorded; only the cart clear failed.
			return response.Error(c, errors.Internal("Order placed but cart was not cleared", err))
		}
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"orders":  batch,
		"skipped": skipped,
	})
}

func (h *OrderHandler) MarkDelivered(c echo.Context) error {
	userID := c.Get("uid").(string)
	orderID := c.Param("orderId")
	productID := c.Param("productId")

	if orderID == "" || productID == "" {
		return response.Error(c, errors.BadRequest("Order ID and product ID are required", nil))
	}

	err := h.orderUseCase.MarkDelivered(c.Request().Context(), userID, orderID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Order marked as delivered",
	})
}
