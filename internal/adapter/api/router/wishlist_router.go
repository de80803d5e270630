package router

import (
	"github.com/labstack/echo/v4"

	"shopeasy/internal/adapter/api/handler"
	"shopeasy/internal/adapter/api/middleware"
)

func SetupWishlistRouter(e *echo.Echo, wishlistHandler *handler.WishlistHandler, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	wishlist := e.Group("/v1/wishlist")
	wishlist.Use(authMiddleware.Authenticate)

	throttled := limiter.Limit("wishlist_write")

	wishlist.GET("", wishlistHandler.GetWishlist)
	wishlist.POST("/:productId", wishlistHandler.AddToWishlist, throttled)
	wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist, throttled)
	wishlist.POST("/:productId/toggle", wishlistHandler.ToggleWishlist, throttled)
	wishlist.GET("/:productId/status", wishlistHandler.CheckWishlistStatus)
}
