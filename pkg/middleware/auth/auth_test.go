package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/skomarov/eshop/pkg/tokens"
)

var testSecret = []byte("test-secret")

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	return rec, c, handler(c)
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := tokens.NewAccessToken("5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", "customer", time.Minute, testSecret)
	require.NoError(t, err)

	mw := New(testSecret)
	rec, c, err := doRequest(t, mw.RequireAuth, "Bearer "+token)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", c.Get("user_id"))
	require.Equal(t, "customer", c.Get("role"))
}

func TestRequireAuthMissingHeader(t *testing.T) {
	mw := New(testSecret)
	_, _, err := doRequest(t, mw.RequireAuth, "")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	mw := New(testSecret)
	_, _, err := doRequest(t, mw.RequireAuth, "Token abc")

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	token, err := tokens.NewAccessToken("5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", "customer", time.Minute, []byte("other-secret"))
	require.NoError(t, err)

	mw := New(testSecret)
	_, _, err = doRequest(t, mw.RequireAuth, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := tokens.NewAccessToken("5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", "customer", -time.Minute, testSecret)
	require.NoError(t, err)

	mw := New(testSecret)
	_, _, err = doRequest(t, mw.RequireAuth, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireAdmin(t *testing.T) {
	adminToken, err := tokens.NewAccessToken("5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", "admin", time.Minute, testSecret)
	require.NoError(t, err)

	mw := New(testSecret)
	rec, _, err := doRequest(t, mw.RequireAdmin, "Bearer "+adminToken)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdminRejectsCustomer(t *testing.T) {
	token, err := tokens.NewAccessToken("5f9b1c64-7d2e-4d0a-9a57-3f2b8c1d0e11", "customer", time.Minute, testSecret)
	require.NoError(t, err)

	mw := New(testSecret)
	_, _, err = doRequest(t, mw.RequireAdmin, "Bearer "+token)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	require.Equal(t, http.StatusForbidden, he.Code)
}
