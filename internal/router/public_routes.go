package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/handler"
	"github.com/iliyamo/wishlist/internal/middleware"
)

// RegisterPublic registers the unauthenticated catalog endpoints.  Reads
// go through the Redis response cache (purged by every mutation);
// reservation is gated by the shared code inside the handler, not by a
// session, so it lives here rather than in the admin group.
func RegisterPublic(e *echo.Echo, p *handler.PresentHandler, r *handler.ReserveHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cached := middleware.NewRedisCache(cacheCfg, rdb)

	// Browsing the catalog requires nothing.
	e.GET("/api/presents", p.List, cached)
	e.GET("/api/presents/:id", p.Get, cached)

	// Reserving requires only the shared code in the body.
	e.POST("/api/presents/:id/reserve", r.Reserve)
}
