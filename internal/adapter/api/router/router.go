package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shopeasy/internal/adapter/api/handler"
	"shopeasy/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	wishlistHandler *handler.WishlistHandler,
	orderHandler *handler.OrderHandler,
	authHandler *handler.AuthHandler,
	limiter *middleware.RateLimiter,
) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/v1/auth/signout", authHandler.SignOut, authMiddleware.Authenticate)

	SetupProductRouter(e, productHandler)
	SetupCartRouter(e, cartHandler, authMiddleware, limiter)
	SetupWishlistRouter(e, wishlistHandler, authMiddleware, limiter)
	SetupOrderRouter(e, orderHandler, authMiddleware, limiter)
}
