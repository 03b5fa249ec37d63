package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"SignalDash/internal/domain/models"
	"SignalDash/internal/service/ratelimit"
	"SignalDash/internal/service/tokens"
	xhttp "SignalDash/pkg/http"
)

type fixedUsers map[string]*models.User

func (f fixedUsers) User(_ context.Context, client string) (*models.User, error) {
	return f[client], nil
}

func newEcho(tm *tokens.Manager) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = xhttp.ErrorHandler
	e.Use(ClientSession(ClientConfig{Tokens: tm, CookieName: "sd_client"}))
	return e
}

func TestClientSession_IssuesAndReuses(t *testing.T) {
	tm := tokens.NewManager("secret", "signaldash", time.Hour)
	e := newEcho(tm)
	e.GET("/whoami", func(c echo.Context) error {
		if ClientFromContext(c.Request().Context()) != ClientID(c) {
			t.Errorf("context and echo client differ")
		}
		return c.String(http.StatusOK, ClientID(c))
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	token := rec.Header().Get(HeaderClientToken)
	first := rec.Body.String()
	if token == "" || first == "" {
		t.Fatalf("expected a new client, got token %q id %q", token, first)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sd_client" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != first || rec.Header().Get(HeaderClientToken) != "" {
		t.Fatalf("cookie should keep the client, got %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() != first {
		t.Fatalf("bearer token should keep the client, got %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Body.String() == first || rec.Header().Get(HeaderClientToken) == "" {
		t.Fatalf("an invalid token must start a new client")
	}
}

func TestRequireUser(t *testing.T) {
	tm := tokens.NewManager("secret", "signaldash", time.Hour)
	client, token, err := tm.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	e := newEcho(tm)
	users := fixedUsers{client: {ID: "1", FirstName: "أحمد"}}
	e.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, CurrentUser(c).FirstName)
	}, RequireUser(users))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a new client, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "أحمد" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	tm := tokens.NewManager("secret", "signaldash", time.Hour)
	_, token, _ := tm.Issue()
	e := newEcho(tm)
	e.POST("/go", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimit(ratelimit.New(2, 0), "go"))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/go", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}
}

func TestRateLimitByIPIgnoresFreshClients(t *testing.T) {
	tm := tokens.NewManager("secret", "signaldash", time.Hour)
	e := newEcho(tm)
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, RateLimitByIP(ratelimit.New(2, 0), "login"))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		// No cookie or token: every request is a brand new client.
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("fresh clients from one address should share a bucket, got %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "198.51.100.1:5000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("other address limited: %d", rec.Code)
	}
}
