package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/handler"
)

// RegisterRoutes registers routes that carry no authentication and no
// caching: the health check used by load balancers, and the static file
// mount serving uploaded present images.
func RegisterRoutes(e *echo.Echo, uploadDir string) {
	e.GET("/healthz", handler.Health)
	e.Static("/uploads", uploadDir)
}
