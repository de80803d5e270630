package handler

import (
	"shopeasy/internal/domain/repository"
	"shopeasy/internal/usecase"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/response"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	cartUseCase *usecase.CartUseCase
	catalog     repository.CatalogRepository
}

func NewCartHandler(cartUseCase *usecase.CartUseCase, catalog repository.CatalogRepository) *CartHandler {
	return &CartHandler{
		cartUseCase: cartUseCase,
		catalog:     catalog,
	}
}

type addCartItemRequest struct {
	ProductID  string `json:"product_id" validate:"required"`
	MerchantID string `json:"merchant_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"omitempty,min=1"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

func (h *CartHandler) GetCart(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, skipped, err := h.cartUseCase.Fetch(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items":       items,
		"skipped":     skipped,
		"total_items": h.cartUseCase.TotalItems(userID),
		"total_price": h.cartUseCase.TotalPrice(userID),
	})
}

func (h *CartHandler) AddItem(c echo.Context) error {
	userID := c.Get("uid").(string)

	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	product, err := h.catalog.GetByID(c.Request().Context(), req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	offer := product.Offer(req.MerchantID)
	if offer == nil {
		return response.Error(c, errors.NotFound("Merchant offer", nil))
	}

	if err := h.cartUseCase.Add(c.Request().Context(), userID, product, offer, req.Quantity); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]interface{}{
		"total_items": h.cartUseCase.TotalItems(userID),
	})
}

func (h *CartHandler) SetQuantity(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")
	merchantID := c.Param("merchantId")

	var req setQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.cartUseCase.SetQuantity(c.Request().Context(), userID, productID, merchantID, req.Quantity)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"total_items": h.cartUseCase.TotalItems(userID),
	})
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")
	merchantID := c.Param("merchantId")

	err := h.cartUseCase.Remove(c.Request().Context(), userID, productID, merchantID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Item removed from cart",
	})
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	userID := c.Get("uid").(string)

	if err := h.cartUseCase.Clear(c.Request().Context(), userID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Cart cleared",
	})
}
