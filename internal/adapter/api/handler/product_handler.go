package handler

import (
	"shopeasy/internal/domain/repository"
	"shopeasy/pkg/response"

	"github.com/labstack/echo/v4"
)

type ProductHandler struct {
	catalog repository.CatalogRepository
}

func NewProductHandler(catalog repository.CatalogRepository) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
	}
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	category := c.QueryParam("category")

	if category != "" {
		products, err := h.catalog.ListByCategory(c.Request().Context(), category)
		if err != nil {
			return response.Error(c, err)
		}
		return response.Success(c, products)
	}

	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalog.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}
