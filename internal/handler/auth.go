package handler

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/utils"
)

// AdminHandler implements the session endpoints for the single
// administrative principal.  The admin identity comes from process
// configuration, not from a database row: the configured password is
// bcrypt-hashed once at construction and every login compares against
// that hash.  Sessions are stateless HS256 tokens carried in a cookie;
// logout only clears the client's cookie, there is no revocation list.
type AdminHandler struct {
	Cfg          config.Config
	passwordHash string
}

// NewAdminHandler builds the handler and hashes the configured admin
// password.  A hashing failure means the configuration is unusable, so it
// panics the same way the teacher-style constructors do for nil deps.
func NewAdminHandler(cfg config.Config) *AdminHandler {
	hash, err := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		panic("hashing admin password: " + err.Error())
	}
	return &AdminHandler{Cfg: cfg, passwordHash: hash}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies the supplied credentials against the configured admin
// identity and, on success, sets the session cookie.  A mismatched
// username and a mismatched password produce the same response so the
// caller cannot probe which half was wrong.
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(h.Cfg.AdminUsername)) == 1
	passOK := utils.VerifyPassword(h.passwordHash, req.Password)
	if !userOK || !passOK {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAdminToken(h.Cfg.JWTSecret, h.Cfg.AdminUsername)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	c.SetCookie(h.sessionCookie(tok.Token, int(utils.SessionTTL/time.Second)))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Logout clears the session cookie.  The token itself stays valid until
// its 24h expiry; stateless verification has nothing to revoke.
func (h *AdminHandler) Logout(c echo.Context) error {
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

// Me is a cheap session probe for the dashboard: it only runs behind
// AdminAuth, so reaching it at all means the cookie verified.
func (h *AdminHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"username": c.Get("admin")})
}

// sessionCookie builds the admin_token cookie.  Secure is tied to the
// environment so local development over plain HTTP still works.
func (h *AdminHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.Cfg.Env == "prod",
		SameSite: http.SameSiteStrictMode,
	}
}
