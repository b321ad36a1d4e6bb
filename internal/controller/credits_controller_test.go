package controller

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/benvansteenbergen/console-sub000/internal/config"
	"github.com/benvansteenbergen/console-sub000/internal/pkg/serverutils"
	"github.com/benvansteenbergen/console-sub000/internal/service"
	"github.com/benvansteenbergen/console-sub000/internal/upstream"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

var testSession = config.SessionConfig{
	CookieName: "wingsuite_session",
	Secret:     "test-secret",
	TTL:        time.Hour,
}

func newCreditsApp(t *testing.T, srv *httptest.Server) *fiber.App {
	t.Helper()
	client := upstream.NewClient(config.UpstreamConfig{
		BaseURL:    srv.URL,
		WebhookURL: srv.URL,
		Timeout:    5 * time.Second,
	}, nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware(nopLogger{}))
	api := app.Group("/api")
	NewCreditsController(service.NewCreditsService(client)).
		RegisterRoutes(api, serverutils.SessionMiddleware(testSession))
	return app
}

func sessionCookie(t *testing.T, upstreamToken string) *http.Cookie {
	t.Helper()
	cookie, err := serverutils.IssueSessionCookie(testSession, upstreamToken, "user@example.com")
	require.NoError(t, err)
	return &http.Cookie{Name: cookie.Name, Value: cookie.Value}
}

func TestCreditsWithoutSessionSkipsUpstream(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	app := newCreditsApp(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	res, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, int64(0), atomic.LoadInt64(&calls), "unauthenticated request must never reach upstream")
}

func TestCreditsRejectsTamperedCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called")
	}))
	defer srv.Close()

	app := newCreditsApp(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	cookie := sessionCookie(t, "upstream-token")
	cookie.Value += "tampered"
	req.AddCookie(cookie)

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, res.StatusCode)
}

func TestCreditsNormalizesStringifiedNumbers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer upstream-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"credits_used": "150", "plan_credits": 1000}`))
	}))
	defer srv.Close()

	app := newCreditsApp(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	req.AddCookie(sessionCookie(t, "upstream-token"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"credits_used":150`)
	assert.Contains(t, string(body), `"plan_credits":1000`)
}

func TestCreditsUpstreamErrorBecomes502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	app := newCreditsApp(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	req.AddCookie(sessionCookie(t, "upstream-token"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, res.StatusCode)

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"success":false`)
}

func TestCreditsMalformedUpstreamBodyBecomes502(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<!doctype html>"))
	}))
	defer srv.Close()

	app := newCreditsApp(t, srv)

	req := httptest.NewRequest(http.MethodGet, "/api/credits", nil)
	req.AddCookie(sessionCookie(t, "upstream-token"))

	res, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, res.StatusCode)
}
