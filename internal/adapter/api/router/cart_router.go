package router

import (
	"github.com/labstack/echo/v4"

	"shopeasy/internal/adapter/api/handler"
	"shopeasy/internal/adapter/api/middleware"
)

func SetupCartRouter(e *echo.Echo, cartHandler *handler.CartHandler, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.Authenticate)

	throttled := limiter.Limit("cart_write")

	cart.GET("", cartHandler.GetCart)
	cart.POST("/items", cartHandler.AddItem, throttled)
	cart.PUT("/items/:productId/:merchantId", cartHandler.SetQuantity, throttled)
	cart.DELETE("/items/:productId/:merchantId", cartHandler.RemoveItem, throttled)
	cart.DELETE("", cartHandler.ClearCart, throttled)
}
