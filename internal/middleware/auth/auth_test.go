package auth

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

var testSecret = []byte("test-jwt-secret")

func signToken(t *testing.T, secret []byte, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "7f0c2a92-7a51-4f3c-9d0e-111111111111",
		"email": "admin@example.com",
		"exp":   exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func newProtectedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"user_id": c.Get("user_id"),
			"email":   c.Get("email"),
		})
	}, RequireAuth(testSecret))
	return e
}

func doRequest(e *echo.Echo, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_MissingToken(t *testing.T) {
	rec := doRequest(newProtectedEcho(), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(-time.Hour))
	rec := doRequest(newProtectedEcho(), "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "token has expired")
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "garbage", header: "Bearer not-a-jwt"},
		{name: "wrong secret", header: "Bearer " + signToken(t, []byte("other-secret"), time.Now().Add(time.Hour))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newProtectedEcho(), tt.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid token")
		})
	}
}

func TestRequireAuth_ValidTokenSetsIdentity(t *testing.T) {
	token := signToken(t, testSecret, time.Now().Add(time.Hour))
	rec := doRequest(newProtectedEcho(), "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "7f0c2a92-7a51-4f3c-9d0e-111111111111")
	assert.Contains(t, rec.Body.String(), "admin@example.com")
}
