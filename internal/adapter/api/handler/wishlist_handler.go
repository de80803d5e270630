package handler

import (
	"shopeasy/internal/usecase"
	"shopeasy/pkg/errors"
	"shopeasy/pkg/response"

	"github.com/labstack/echo/v4"
)

type WishlistHandler struct {
	wishlistUseCase *usecase.WishlistUseCase
}

func NewWishlistHandler(wishlistUseCase *usecase.WishlistUseCase) *WishlistHandler {
	return &WishlistHandler{
		wishlistUseCase: wishlistUseCase,
	}
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)

	items, skipped, err := h.wishlistUseCase.Fetch(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"items":   items,
		"skipped": skipped,
	})
}

func (h *WishlistHandler) AddToWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	if err := h.wishlistUseCase.Add(c.Request().Context(), userID, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, map[string]string{
		"product_id": productID,
	})
}

func (h *WishlistHandler) RemoveFromWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	if err := h.wishlistUseCase.Remove(c.Request().Context(), userID, productID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Product removed from wishlist",
	})
}

func (h *WishlistHandler) ToggleWishlist(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	saved, err := h.wishlistUseCase.Toggle(c.Request().Context(), userID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product_id":     productID,
		"is_in_wishlist": saved,
	})
}

func (h *WishlistHandler) CheckWishlistStatus(c echo.Context) error {
	userID := c.Get("uid").(string)
	productID := c.Param("productId")

	if productID == "" {
		return response.Error(c, errors.BadRequest("Product ID is required", nil))
	}

	saved, err := h.wishlistUseCase.Contains(c.Request().Context(), userID, productID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"product_id":     productID,
		"is_in_wishlist": saved,
	})
}
