package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/wishlist/internal/config"
	"github.com/iliyamo/wishlist/internal/middleware"
	"github.com/iliyamo/wishlist/internal/repository"
	"github.com/iliyamo/wishlist/internal/utils"
)

// presentEcho wires the catalog routes the way the router does: public
// reads open, mutations behind AdminAuth.
func presentEcho(repo *repository.PresentRepo) *echo.Echo {
	h := NewPresentHandler(repo, config.CacheConfig{}, nil)
	e := echo.New()
	e.GET("/api/presents", h.List)
	e.GET("/api/presents/:id", h.Get)
	g := e.Group("/api", middleware.AdminAuth("test-secret"))
	g.POST("/presents", h.Create)
	g.PUT("/presents/:id", h.Update)
	g.DELETE("/presents/:id", h.Delete)
	return e
}

// doAdminJSON sends a request carrying a valid admin session cookie.
func doAdminJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	tok, err := utils.NewAdminToken("test-secret", "santa")
	require.NoError(t, err)

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: tok.Token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListPresentsPublic(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM presents ORDER BY created_at DESC`)).
		WillReturnRows(presentRow("p1", false))

	req := httptest.NewRequest(http.MethodGet, "/api/presents", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isReserved":false`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListPresentsBadFilter(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/presents?min_price=abc", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetPresentNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	mock.ExpectQuery(regexp.QuoteMeta(selectPresentQ)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(presentCols))

	req := httptest.NewRequest(http.MethodGet, "/api/presents/missing", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRequiresSession(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	rec := doJSON(e, http.MethodPost, "/api/presents", `{"name":"Lamp","description":"A lamp","price":20}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The gate rejected the request before any store access.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateValidation(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"description":"x","price":1}`, "name is required"},
		{"blank name", `{"name":"  ","description":"x","price":1}`, "name is required"},
		{"missing description", `{"name":"Lamp","price":1}`, "description is required"},
		{"missing price", `{"name":"Lamp","description":"x"}`, "price is required"},
		{"negative price", `{"name":"Lamp","description":"x","price":-1}`, "price must be non-negative"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doAdminJSON(t, e, http.MethodPost, "/api/presents", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePresent(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO presents`)).
		WithArgs(sqlmock.AnyArg(), "Lamp", "A lamp", 20.0, []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectPresentQ)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(presentRow("p1", false))

	rec := doAdminJSON(t, e, http.MethodPost, "/api/presents", `{"name":"Lamp","description":"A lamp","price":20,"images":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isReserved":false`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateCanResetReservation(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	// Explicit isReserved=false is the administrative override path.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE presents SET name = ?`)).
		WithArgs("Lamp", "A lamp", 20.0, []byte(`[]`), false, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectPresentQ)).
		WithArgs("p1").
		WillReturnRows(presentRow("p1", false))

	rec := doAdminJSON(t, e, http.MethodPut, "/api/presents/p1", `{"name":"Lamp","description":"A lamp","price":20,"images":[],"isReserved":false}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isReserved":false`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateKeepsFlagWhenOmitted(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	// Without an explicit isReserved the handler reads the current flag
	// and carries it through the overwrite.
	mock.ExpectQuery(regexp.QuoteMeta(selectPresentQ)).
		WithArgs("p1").
		WillReturnRows(presentRow("p1", true))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE presents SET name = ?`)).
		WithArgs("Lamp", "A lamp", 25.0, []byte(`[]`), true, "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(selectPresentQ)).
		WithArgs("p1").
		WillReturnRows(presentRow("p1", true))

	rec := doAdminJSON(t, e, http.MethodPut, "/api/presents/p1", `{"name":"Lamp","description":"A lamp","price":25,"images":[]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isReserved":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePresentNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM presents WHERE id = ?`)).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := doAdminJSON(t, e, http.MethodDelete, "/api/presents/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePresent(t *testing.T) {
	repo, mock := newMockRepo(t)
	e := presentEcho(repo)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM presents WHERE id = ?`)).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := doAdminJSON(t, e, http.MethodDelete, "/api/presents/p1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
