package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"marketReco/business/recommendation"
	"marketReco/pkg/utils"
)

const testSecret = "s3cret"

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func authedEcho() *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, fmt.Sprintf("%d/%v", c.Get("user_id").(uint), c.Get("role")))
	}, AuthMiddleware(testSecret))
	e.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, AuthMiddleware(testSecret), AdminOnly())
	return e
}

func bearer(t *testing.T, userID, role string, ttl time.Duration) string {
	t.Helper()
	token, err := utils.GenerateJWT(testSecret, userID, role, ttl)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return "Bearer " + token
}

func TestAuthMiddleware(t *testing.T) {
	e := authedEcho()

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"expired", bearer(t, "7", "customer", -time.Minute), http.StatusUnauthorized},
		{"non-numeric user", bearer(t, "abc", "customer", time.Hour), http.StatusForbidden},
		{"valid", bearer(t, "7", "customer", time.Hour), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := serve(e, req)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d (%s)", tc.want, rec.Code, rec.Body.String())
			}
			if tc.want == http.StatusOK && rec.Body.String() != "7/customer" {
				t.Fatalf("unexpected body %q", rec.Body.String())
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	e := authedEcho()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "1", "customer", time.Hour))
	if rec := serve(e, req); rec.Code != http.StatusForbidden {
		t.Fatalf("customer should be forbidden, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", bearer(t, "1", "admin", time.Hour))
	if rec := serve(e, req); rec.Code != http.StatusNoContent {
		t.Fatalf("admin should pass, got %d", rec.Code)
	}
}

func TestTraceMiddleware(t *testing.T) {
	e := echo.New()
	e.Use(TraceMiddleware())
	e.GET("/trace", func(c echo.Context) error {
		return c.String(http.StatusOK, TraceID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/trace", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := serve(e, req)
	if rec.Body.String() != "req-123" || rec.Header().Get("X-Request-ID") != "req-123" {
		t.Fatalf("expected caller id to be kept, got body=%q header=%q", rec.Body.String(), rec.Header().Get("X-Request-ID"))
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/trace", nil))
	if len(rec.Body.String()) != 36 || rec.Header().Get("X-Request-ID") != rec.Body.String() {
		t.Fatalf("expected a minted uuid, got %q", rec.Body.String())
	}
}

func TestErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler
	e.GET("/invalid", func(c echo.Context) error {
		return fmt.Errorf("wrap: %w", recommendation.ErrInvalidInput)
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	rec := serve(e, httptest.NewRequest(http.MethodGet, "/invalid", nil))
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "INVALID_INPUT") {
		t.Fatalf("expected 422 INVALID_INPUT, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError || strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("expected opaque 500, got %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(e, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rec.Code)
	}
}
