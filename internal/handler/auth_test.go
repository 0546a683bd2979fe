package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/utils"
)

func testConfig() config.Config {
	return config.Config{
		Env:             "test",
		JWTSecret:       "test-secret",
		AdminUsername:   "santa",
		AdminPassword:   "ho-ho-ho",
		ReservationCode: "north-pole",
		BcryptCost:      4, // minimum cost keeps the test suite fast
	}
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == middleware.SessionCookieName {
			return ck
		}
	}
	return nil
}

func authEcho(h *AdminHandler) *echo.Echo {
	e := echo.New()
	e.POST("/api/admin/login", h.Login)
	e.POST("/api/admin/logout", h.Logout)
	return e
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	h := NewAdminHandler(testConfig())
	e := authEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"santa","password":"ho-ho-ho"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck, "expected session cookie on successful login")
	assert.True(t, ck.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, ck.SameSite)
	assert.Equal(t, 86400, ck.MaxAge)
	assert.False(t, ck.Secure, "secure flag is off outside prod")

	username, err := utils.ParseAdminToken("test-secret", ck.Value)
	require.NoError(t, err)
	assert.Equal(t, "santa", username)
}

func TestLoginSecureCookieInProd(t *testing.T) {
	cfg := testConfig()
	cfg.Env = "prod"
	h := NewAdminHandler(cfg)
	e := authEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"santa","password":"ho-ho-ho"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck)
	assert.True(t, ck.Secure)
}

func TestLoginWrongPassword(t *testing.T) {
	h := NewAdminHandler(testConfig())
	e := authEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"santa","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookieFrom(t, rec), "failed login must not set a cookie")
}

func TestLoginWrongUsernameSameResponse(t *testing.T) {
	h := NewAdminHandler(testConfig())
	e := authEcho(h)

	recUser := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"grinch","password":"ho-ho-ho"}`)
	recPass := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"santa","password":"wrong"}`)

	// Bad username and bad password are indistinguishable to the caller.
	assert.Equal(t, http.StatusUnauthorized, recUser.Code)
	assert.Equal(t, recPass.Code, recUser.Code)
	assert.Equal(t, recPass.Body.String(), recUser.Body.String())
}

func TestLoginMissingFields(t *testing.T) {
	h := NewAdminHandler(testConfig())
	e := authEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/admin/login", `{"username":"santa"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	h := NewAdminHandler(testConfig())
	e := authEcho(h)

	rec := doJSON(e, http.MethodPost, "/api/admin/logout", ``)
	assert.Equal(t, http.StatusOK, rec.Code)

	ck := sessionCookieFrom(t, rec)
	require.NotNil(t, ck)
	assert.Empty(t, ck.Value)
	assert.Negative(t, ck.MaxAge, "logout must expire the cookie")
}
