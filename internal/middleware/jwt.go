package middleware // middleware provides reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/utils"
)

// SessionCookieName is the cookie carrying the admin session token.
const SessionCookieName = "admin_token"

// AdminAuth returns an Echo middleware that validates the admin session
// token and injects the bound username into the request context under the
// "admin" key.  The token is read from the session cookie set at login;
// a Bearer header is accepted as a fallback for non-browser clients.
// Every administrative mutation route must sit behind this middleware so
// an unauthenticated request never reaches the store or the filesystem.
func AdminAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(SessionCookieName); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing session token"})
			}

			username, err := utils.ParseAdminToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}

			// Handlers can read the authenticated principal via c.Get("admin").
			c.Set("admin", username)
			return next(c)
		}
	}
}
