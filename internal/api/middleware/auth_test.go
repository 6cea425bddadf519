package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"roles":    []string{"user", "admin"},
		"exp":      time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(testSecret)(func(c echo.Context) error {
		called = true
		if got, _ := c.Get("username").(string); got != "alice" {
			t.Errorf("username claim not injected, got %q", got)
		}
		roles, _ := c.Get("roles").([]string)
		if len(roles) != 2 || roles[0] != "user" || roles[1] != "admin" {
			t.Errorf("roles claim not injected, got %v", roles)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not called")
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	e := echo.New()
	token := signedToken(t, "other-secret", jwt.MapClaims{"username": "alice"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	e := echo.New()
	token := signedToken(t, testSecret, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	err := Auth(testSecret)(func(echo.Context) error {
		t.Fatal("should not reach next handler")
		return nil
	})(c)

	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
