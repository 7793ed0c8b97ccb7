package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret, role string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  uint(1),
		"role": role,
		"name": "Admin",
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func runProtected(t *testing.T, token string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	h := handler
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	err := h(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, c
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tok := signTestToken(t, testSecret, "admin", time.Hour)
	rec, c := runProtected(t, tok, RequireAuth(testSecret))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", c.Get("role"))
	assert.Equal(t, "Admin", c.Get("name"))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runProtected(t, "", RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	tok := signTestToken(t, "other-secret", "admin", time.Hour)
	rec, _ := runProtected(t, tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	tok := signTestToken(t, testSecret, "admin", -time.Minute)
	rec, _ := runProtected(t, tok, RequireAuth(testSecret))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tok := signTestToken(t, testSecret, "viewer", time.Hour)
	rec, _ := runProtected(t, tok, RequireAuth(testSecret), RequireRole("admin"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	tok = signTestToken(t, testSecret, "admin", time.Hour)
	rec, _ = runProtected(t, tok, RequireAuth(testSecret), RequireRole("admin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
