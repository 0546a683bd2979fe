package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/handler"
	"github.com/iliyamo/wishlist/internal/middleware"
)

// RegisterAdmin registers the session endpoints and every administrative
// mutation route.  Login and logout are open (logout merely clears the
// cookie, so gating it would only complicate expired-session UX).  All
// catalog mutations and the image upload sit behind AdminAuth: a request
// without a valid session cookie is rejected before any handler touches
// the store or the filesystem.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, p *handler.PresentHandler, u *handler.UploadHandler, jwtSecret string) {
	e.POST("/api/admin/login", a.Login)
	e.POST("/api/admin/logout", a.Logout)

	g := e.Group("/api", middleware.AdminAuth(jwtSecret))
	g.GET("/admin/me", a.Me)
	g.POST("/presents", p.Create)
	g.PUT("/presents/:id", p.Update)
	g.DELETE("/presents/:id", p.Delete)
	g.POST("/upload", u.Upload)
}
