package router

import (
	"github.com/labstack/echo/v4"

	"shopeasy/internal/adapter/api/handler"
	"shopeasy/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, orderHandler *handler.OrderHandler, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.GetOrders)
	orders.POST("", orderHandler.PlaceOrder, limiter.Limit("place_order"))
	orders.PATCH("/:orderId/items/:productId/delivered", orderHandler.MarkDelivered)
}
