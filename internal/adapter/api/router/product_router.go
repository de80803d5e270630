package router

import (
	"github.com/labstack/echo/v4"

	"shopeasy/internal/adapter/api/handler"
)

func SetupProductRouter(e *echo.Echo, productHandler *handler.ProductHandler) {
	// Catalog is shared read-only; no authentication required
	products := e.Group("/v1/products")

	products.GET("", productHandler.ListProducts) // GET /v1/products?category=Electronics
	products.GET("/:id", productHandler.GetProduct)
}
