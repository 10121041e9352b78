package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/room-reservation/internal/utils"
)

const testSecret = "middleware-test-secret"

func performRequest(t *testing.T, mw echo.MiddlewareFunc, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"ok": true})
	})
	assert.NoError(t, h(c))
	return rec
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "MEMBER", 5)
	assert.NoError(t, err)

	rec := performRequest(t, JWTAuth(testSecret), at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec := performRequest(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsForeignToken(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "MEMBER", 5)
	assert.NoError(t, err)

	rec := performRequest(t, JWTAuth(testSecret), at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "STAFF", 5)
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+at.Token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotRole interface{}
	h := JWTAuth(testSecret)(func(c echo.Context) error {
		gotRole = c.Get("role")
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	assert.Equal(t, "STAFF", gotRole)
}

func requireWithRole(t *testing.T, role interface{}, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, h(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	// non-staff principal on a staff-only route fails regardless of input
	rec := requireWithRole(t, "MEMBER", "STAFF")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = requireWithRole(t, "STAFF", "STAFF")
	assert.Equal(t, http.StatusOK, rec.Code)

	// missing or malformed role claim is treated as forbidden
	rec = requireWithRole(t, nil, "STAFF")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = requireWithRole(t, 12345, "STAFF")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
